package repository

import (
	"context"

	"github.com/jhoicas/zoo-api/internal/domain/entity"
)

// AnimalRepository lectura de animales para el motor de alimentación.
type AnimalRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Animal, error)
}
