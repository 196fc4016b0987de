package repository

import (
	"context"
	"time"

	"github.com/jhoicas/zoo-api/internal/domain/entity"
)

// MalfunctionRepository puerto de persistencia de averías.
type MalfunctionRepository interface {
	Create(ctx context.Context, m *entity.Malfunction) error
	// GetByID nil, nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.Malfunction, error)
	// TransitionStatus cambia el estado solo si sigue en from; false si la avería no existe
	// o su estado ya no es from.
	TransitionStatus(ctx context.Context, id string, from, to entity.MalfunctionStatus, resolvedAt *time.Time) (bool, error)
	// List más recientes primero, con el nombre del empleado resuelto.
	List(ctx context.Context, filter MalfunctionFilter) ([]*entity.Malfunction, error)
}

// MalfunctionFilter filtros del listado. From/To acotan created_at (inclusivos, nil = sin límite).
type MalfunctionFilter struct {
	Place  string                   // vacío = todos
	Status entity.MalfunctionStatus // vacío = todos
	From   *time.Time
	To     *time.Time
	Limit  int // 0 = sin límite
	Offset int
}
