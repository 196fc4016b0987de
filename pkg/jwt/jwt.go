// Package jwt emite y valida los tokens Bearer de los empleados.
package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrNoSecret = errors.New("jwt: secret vacío")
	ErrExpired  = errors.New("jwt: token expirado")
	ErrInvalid  = errors.New("jwt: token inválido")
)

// Identity lo que el token afirma sobre quien llama.
type Identity struct {
	EmployeeID string
	Role       string // admin | director | manager | zootechnician
}

type claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// Signer firma y verifica tokens HS256 con un secret e issuer fijos.
type Signer struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewSigner devuelve ErrNoSecret si secret está vacío.
func NewSigner(secret, issuer string, ttl time.Duration) (*Signer, error) {
	if secret == "" {
		return nil, ErrNoSecret
	}
	return &Signer{secret: []byte(secret), issuer: issuer, ttl: ttl}, nil
}

// Issue genera el token del empleado. El EmployeeID viaja como subject.
func (s *Signer) Issue(id Identity) (string, error) {
	now := time.Now()
	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   id.EmployeeID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		Role: id.Role,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(s.secret)
}

// Verify valida firma, expiración e issuer. Devuelve ErrExpired o ErrInvalid envueltos.
func (s *Signer) Verify(token string) (Identity, error) {
	var c claims
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}
	_, err := jwt.ParseWithClaims(token, &c, func(*jwt.Token) (any, error) { return s.secret, nil }, opts...)
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return Identity{}, ErrExpired
	case err != nil:
		return Identity{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	case c.Subject == "":
		return Identity{}, fmt.Errorf("%w: sin subject", ErrInvalid)
	}
	return Identity{EmployeeID: c.Subject, Role: c.Role}, nil
}
