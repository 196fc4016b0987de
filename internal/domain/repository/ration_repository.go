package repository

import (
	"context"

	"github.com/jhoicas/zoo-api/internal/domain/entity"
)

// RationRepository catálogo de raciones por especie.
type RationRepository interface {
	// GetBySpecies devuelve nil, nil si la especie no tiene ración.
	GetBySpecies(ctx context.Context, species string) (*entity.Ration, error)
	// Upsert crea o reemplaza la ración de la especie.
	Upsert(ctx context.Context, ration *entity.Ration) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*entity.Ration, error)
}
