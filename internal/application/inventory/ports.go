package inventory

import (
	"context"

	"github.com/jhoicas/zoo-api/internal/domain/entity"
	"github.com/jhoicas/zoo-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// Repos repositorios atados a una misma transacción.
type Repos struct {
	Feeds       repository.FeedRepository
	Rations     repository.RationRepository
	Animals     repository.AnimalRepository
	Orders      repository.PurchaseOrderRepository
	Feedings    repository.FeedingRepository
	Consumption repository.ConsumptionRepository
	Movements   repository.StockMovementRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback de todo lo escrito; si no, Commit.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos Repos) error) error
}

// Metrics contadores de negocio. Se registran solo después del Commit.
type Metrics interface {
	StockCredited(feedID string, quantity decimal.Decimal)
	StockDebited(feedID string, quantity decimal.Decimal)
	InsufficientStock(feedID string)
	OrderTransitioned(from, to entity.PurchaseStatus)
	FeedingRecorded(species string)
}

// NopMetrics implementación vacía de Metrics.
type NopMetrics struct{}

func (NopMetrics) StockCredited(string, decimal.Decimal)                          {}
func (NopMetrics) StockDebited(string, decimal.Decimal)                           {}
func (NopMetrics) InsufficientStock(string)                                       {}
func (NopMetrics) OrderTransitioned(entity.PurchaseStatus, entity.PurchaseStatus) {}
func (NopMetrics) FeedingRecorded(string)                                         {}
