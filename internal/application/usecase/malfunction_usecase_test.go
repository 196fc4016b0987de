package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/zoo-api/internal/application/dto"
	"github.com/jhoicas/zoo-api/internal/application/usecase"
	"github.com/jhoicas/zoo-api/internal/domain"
	"github.com/jhoicas/zoo-api/internal/domain/entity"
	"github.com/jhoicas/zoo-api/internal/domain/repository"
	"github.com/jhoicas/zoo-api/internal/infrastructure/memory"
	"github.com/jhoicas/zoo-api/pkg/logger"
)

func TestMalfunctionReport_NormalizaLugarYEstadoInicial(t *testing.T) {
	s := memory.NewStore()
	require.NoError(t, s.Employees().Create(context.Background(), &entity.Employee{ID: "emp-ana", FullName: "Ana", Username: "ana"}))
	uc := usecase.NewMalfunctionUseCase(s.Malfunctions(), logger.Nop())
	ctx := context.Background()

	out, err := uc.Report(ctx, "emp-ana", dto.MalfunctionRequest{Place: "Участок", Description: "  Cerca caída  "})
	require.NoError(t, err)
	assert.Equal(t, entity.PlaceSection, out.Place)
	assert.Equal(t, "Участок", out.PlaceLabel)
	assert.Equal(t, "Cerca caída", out.Description)
	assert.Equal(t, entity.MalfunctionStatusReported.String(), out.Status)
	assert.Nil(t, out.ResolvedAt)

	list, err := uc.List(ctx, "", "", 0, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Ana", list[0].EmployeeName)

	for _, bad := range []dto.MalfunctionRequest{
		{Place: "Луна", Description: "x"},
		{Place: "KITCHEN", Description: "   "},
	} {
		_, err := uc.Report(ctx, "emp-ana", bad)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
	_, err = uc.Report(ctx, "", dto.MalfunctionRequest{Place: "KITCHEN", Description: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.List(ctx, "", "abierta", 0, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMalfunctionTransition_Flujo(t *testing.T) {
	s := memory.NewStore()
	uc := usecase.NewMalfunctionUseCase(s.Malfunctions(), nil)
	ctx := context.Background()

	m, err := uc.Report(ctx, "emp-ana", dto.MalfunctionRequest{Place: "KITCHEN", Description: "Fuga de agua"})
	require.NoError(t, err)

	inProgress, err := uc.TransitionStatus(ctx, m.ID, "в процессе", "emp-boss")
	require.NoError(t, err)
	assert.Equal(t, "IN_PROGRESS", inProgress.Status)
	assert.Nil(t, inProgress.ResolvedAt)

	resolved, err := uc.TransitionStatus(ctx, m.ID, "RESOLVED", "emp-boss")
	require.NoError(t, err)
	require.NotNil(t, resolved.ResolvedAt)

	_, err = uc.TransitionStatus(ctx, m.ID, "IN_PROGRESS", "emp-boss")
	var state *domain.StateError
	require.ErrorAs(t, err, &state)
	assert.Equal(t, "RESOLVED", state.Current)

	_, err = uc.TransitionStatus(ctx, "no-existe", "RESOLVED", "emp-boss")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.TransitionStatus(ctx, m.ID, "cerrada", "emp-boss")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	stored, err := s.Malfunctions().GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.MalfunctionStatusResolved, stored.Status)
}

// racingRepo simula que otro empleado cambió el estado entre la lectura y la escritura.
type racingRepo struct {
	repository.MalfunctionRepository
}

func (r racingRepo) TransitionStatus(ctx context.Context, id string, from, to entity.MalfunctionStatus, resolvedAt *time.Time) (bool, error) {
	if _, err := r.MalfunctionRepository.TransitionStatus(ctx, id, from, entity.MalfunctionStatusInProgress, nil); err != nil {
		return false, err
	}
	return r.MalfunctionRepository.TransitionStatus(ctx, id, from, to, resolvedAt)
}

func TestMalfunctionTransition_CambioConcurrente_StateError(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	m, err := usecase.NewMalfunctionUseCase(s.Malfunctions(), nil).Report(ctx, "emp-ana", dto.MalfunctionRequest{Place: "PARK", Description: "Banco roto"})
	require.NoError(t, err)

	uc := usecase.NewMalfunctionUseCase(racingRepo{s.Malfunctions()}, nil)
	_, err = uc.TransitionStatus(ctx, m.ID, "RESOLVED", "emp-boss")
	assert.True(t, errors.Is(err, domain.ErrInvalidState), err)

	stored, err := s.Malfunctions().GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.MalfunctionStatusInProgress, stored.Status, "gana el cambio que llegó primero")
	assert.Nil(t, stored.ResolvedAt)
}
