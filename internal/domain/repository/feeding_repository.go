package repository

import (
	"context"
	"time"

	"github.com/jhoicas/zoo-api/internal/domain/entity"
)

// FeedingRepository registro (solo inserción) de alimentaciones.
type FeedingRepository interface {
	Create(ctx context.Context, event *entity.FeedingEvent) error
	List(ctx context.Context, limit, offset int) ([]*entity.FeedingEvent, error)
}

// ConsumptionRepository registro (solo inserción) de gastos de alimento.
type ConsumptionRepository interface {
	Create(ctx context.Context, record *entity.ConsumptionRecord) error
	// List filtra por empleado (vacío = todos) y rango de fechas opcional, más recientes primero.
	List(ctx context.Context, employeeID string, from, to *time.Time) ([]*entity.ConsumptionRecord, error)
}
