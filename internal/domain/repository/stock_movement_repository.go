package repository

import (
	"context"

	"github.com/jhoicas/zoo-api/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia para los movimientos de existencias.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	ListByReference(ctx context.Context, referenceType, referenceID string) ([]*entity.StockMovement, error)
	ListByFeed(ctx context.Context, feedID string, limit, offset int) ([]*entity.StockMovement, error)
}
