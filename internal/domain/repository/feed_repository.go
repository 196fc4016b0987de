package repository

import (
	"context"

	"github.com/jhoicas/zoo-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// FeedRepository define el puerto de persistencia para Feed.
// Las escrituras de Quantity solo las hace el StockLedger dentro de una transacción.
type FeedRepository interface {
	Create(ctx context.Context, feed *entity.Feed) error
	GetByID(ctx context.Context, id string) (*entity.Feed, error)
	// GetForUpdate bloquea la fila del alimento hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Feed, error)
	// AddQuantity suma delta (positivo) en un solo statement y devuelve la existencia resultante.
	AddQuantity(ctx context.Context, id string, delta decimal.Decimal) (decimal.Decimal, error)
	// SetQuantity fija la existencia; se usa tras GetForUpdate.
	SetQuantity(ctx context.Context, id string, quantity decimal.Decimal) error
	List(ctx context.Context, filter FeedFilter) ([]*entity.Feed, error)
}

// FeedFilter filtros del listado de alimentos.
type FeedFilter struct {
	Type string // vacío = todos
}
