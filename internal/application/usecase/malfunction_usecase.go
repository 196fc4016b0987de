package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/zoo-api/internal/application/dto"
	"github.com/jhoicas/zoo-api/internal/domain"
	"github.com/jhoicas/zoo-api/internal/domain/entity"
	"github.com/jhoicas/zoo-api/internal/domain/repository"
	"github.com/jhoicas/zoo-api/pkg/logger"
)

const maxDescriptionLen = 2000

// MalfunctionUseCase registro y seguimiento de averías de instalaciones.
type MalfunctionUseCase struct {
	repo repository.MalfunctionRepository
	log  *logger.Logger
	now  func() time.Time
}

// NewMalfunctionUseCase construye el caso de uso.
func NewMalfunctionUseCase(repo repository.MalfunctionRepository, log *logger.Logger) *MalfunctionUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &MalfunctionUseCase{repo: repo, log: log.Component("facility"), now: time.Now}
}

// Report registra una avería en estado REPORTED a nombre de employeeID.
func (uc *MalfunctionUseCase) Report(ctx context.Context, employeeID string, in dto.MalfunctionRequest) (*dto.MalfunctionDTO, error) {
	place, ok := entity.ParsePlace(in.Place)
	description := strings.TrimSpace(in.Description)
	if !ok || employeeID == "" || description == "" || len(description) > maxDescriptionLen {
		return nil, domain.ErrInvalidInput
	}
	m := &entity.Malfunction{
		ID:          uuid.New().String(),
		EmployeeID:  employeeID,
		Place:       place,
		Description: description,
		Status:      entity.MalfunctionStatusReported,
		CreatedAt:   uc.now().UTC(),
	}
	if err := uc.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	uc.log.Info().Str("malfunction_id", m.ID).Str("place", place).Str("employee_id", employeeID).Msg("avería registrada")
	out := ToMalfunctionDTO(m)
	return &out, nil
}

// List averías más recientes primero; place y status vacíos = todos.
func (uc *MalfunctionUseCase) List(ctx context.Context, place, status string, limit, offset int) ([]dto.MalfunctionDTO, error) {
	filter := repository.MalfunctionFilter{Limit: limit, Offset: offset}
	if place != "" {
		code, ok := entity.ParsePlace(place)
		if !ok {
			return nil, domain.ErrInvalidInput
		}
		filter.Place = code
	}
	if status != "" {
		st, ok := entity.ParseMalfunctionStatus(status)
		if !ok {
			return nil, domain.ErrInvalidInput
		}
		filter.Status = st
	}
	list, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MalfunctionDTO, 0, len(list))
	for _, m := range list {
		out = append(out, ToMalfunctionDTO(m))
	}
	return out, nil
}

// TransitionStatus avanza el estado de la avería. El cambio es condicional al estado leído:
// si otro empleado lo modificó entre medio se responde con StateError.
func (uc *MalfunctionUseCase) TransitionStatus(ctx context.Context, id, status, employeeID string) (*dto.MalfunctionDTO, error) {
	target, ok := entity.ParseMalfunctionStatus(status)
	if !ok {
		return nil, domain.ErrInvalidInput
	}
	m, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	if !m.Status.CanTransitionTo(target) {
		return nil, &domain.StateError{Resource: "avería", Current: m.Status.String(), Reason: "no puede pasar a " + target.String()}
	}

	var resolvedAt *time.Time
	if target == entity.MalfunctionStatusResolved {
		now := uc.now().UTC()
		resolvedAt = &now
	}
	changed, err := uc.repo.TransitionStatus(ctx, id, m.Status, target, resolvedAt)
	if err != nil {
		return nil, err
	}
	if !changed {
		return nil, &domain.StateError{Resource: "avería", Current: m.Status.String(), Reason: "el estado cambió mientras se actualizaba"}
	}

	uc.log.Info().
		Str("malfunction_id", id).
		Str("from", m.Status.String()).
		Str("to", target.String()).
		Str("employee_id", employeeID).
		Msg("avería actualizada")
	m.Status = target
	m.ResolvedAt = resolvedAt
	out := ToMalfunctionDTO(m)
	return &out, nil
}

// Places lugares del formulario con su etiqueta.
func (uc *MalfunctionUseCase) Places() []dto.PlaceDTO {
	out := make([]dto.PlaceDTO, 0, len(entity.MalfunctionPlaces))
	for _, p := range entity.MalfunctionPlaces {
		out = append(out, dto.PlaceDTO{Code: p, Label: entity.PlaceLabel(p)})
	}
	return out
}

// ToMalfunctionDTO mapea la avería a su representación HTTP.
func ToMalfunctionDTO(m *entity.Malfunction) dto.MalfunctionDTO {
	return dto.MalfunctionDTO{
		ID:           m.ID,
		Place:        m.Place,
		PlaceLabel:   entity.PlaceLabel(m.Place),
		Description:  m.Description,
		Status:       m.Status.String(),
		EmployeeID:   m.EmployeeID,
		EmployeeName: m.EmployeeName,
		CreatedAt:    m.CreatedAt,
		ResolvedAt:   m.ResolvedAt,
	}
}
