package jwt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/zoo-api/pkg/jwt"
)

const (
	testSecret     = "test-secret-key-for-unit-tests"
	testEmployeeID = "00000000-0000-0000-0000-000000000001"
	testIssuer     = "zoo-api-test"
)

func newSigner(t *testing.T, secret string, ttl time.Duration) *pkgjwt.Signer {
	t.Helper()
	s, err := pkgjwt.NewSigner(secret, testIssuer, ttl)
	require.NoError(t, err)
	return s
}

func TestIssueAndVerify_ConRole(t *testing.T) {
	s := newSigner(t, testSecret, time.Hour)
	tok, err := s.Issue(pkgjwt.Identity{EmployeeID: testEmployeeID, Role: "zootechnician"})
	require.NoError(t, err)

	id, err := s.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, testEmployeeID, id.EmployeeID)
	assert.Equal(t, "zootechnician", id.Role)
}

func TestVerify_TokenExpirado(t *testing.T) {
	s := newSigner(t, testSecret, -time.Minute)
	tok, err := s.Issue(pkgjwt.Identity{EmployeeID: testEmployeeID, Role: "admin"})
	require.NoError(t, err)

	_, err = s.Verify(tok)
	assert.ErrorIs(t, err, pkgjwt.ErrExpired)
}

func TestVerify_SecretIncorrecto(t *testing.T) {
	tok, err := newSigner(t, testSecret, time.Hour).Issue(pkgjwt.Identity{EmployeeID: testEmployeeID, Role: "admin"})
	require.NoError(t, err)

	_, err = newSigner(t, "otro-secret-completamente-distinto", time.Hour).Verify(tok)
	assert.ErrorIs(t, err, pkgjwt.ErrInvalid)
}

func TestVerify_OtroIssuer(t *testing.T) {
	other, err := pkgjwt.NewSigner(testSecret, "otro-servicio", time.Hour)
	require.NoError(t, err)
	tok, err := other.Issue(pkgjwt.Identity{EmployeeID: testEmployeeID, Role: "admin"})
	require.NoError(t, err)

	_, err = newSigner(t, testSecret, time.Hour).Verify(tok)
	assert.ErrorIs(t, err, pkgjwt.ErrInvalid)
}

func TestVerify_SinSubject(t *testing.T) {
	s := newSigner(t, testSecret, time.Hour)
	tok, err := s.Issue(pkgjwt.Identity{Role: "admin"})
	require.NoError(t, err)

	_, err = s.Verify(tok)
	assert.ErrorIs(t, err, pkgjwt.ErrInvalid)
}

func TestNewSigner_SecretVacio(t *testing.T) {
	_, err := pkgjwt.NewSigner("", testIssuer, time.Hour)
	assert.ErrorIs(t, err, pkgjwt.ErrNoSecret)
}
