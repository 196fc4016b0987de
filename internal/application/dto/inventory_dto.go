package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateFeedRequest body para POST /api/feeds.
type CreateFeedRequest struct {
	Name string `json:"name" validate:"required,max=200"`
	Type string `json:"type" validate:"required"` // DRY | WET | COMPOUND (se aceptan etiquetas históricas)
	Unit string `json:"unit,omitempty"`
}

// FeedDTO alimento con su existencia y la marca de existencias bajas.
type FeedDTO struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Type          string          `json:"type"`
	Unit          string          `json:"unit"`
	Quantity      decimal.Decimal `json:"quantity"`
	AverageRation decimal.Decimal `json:"average_ration"` // promedio de las raciones que lo usan
	IsLow         bool            `json:"is_low"`         // Quantity < AverageRation
}

// StockAdjustmentRequest body para POST /api/feeds/:id/adjustments.
// Delta positivo = entrada, negativo = salida.
type StockAdjustmentRequest struct {
	Delta decimal.Decimal `json:"delta"`
}

// StockMovementDTO movimiento del libro de existencias.
type StockMovementDTO struct {
	ID            string          `json:"id"`
	FeedID        string          `json:"feed_id"`
	Type          string          `json:"type"`
	Quantity      decimal.Decimal `json:"quantity"`
	Balance       decimal.Decimal `json:"balance"`
	ReferenceType string          `json:"reference_type"`
	ReferenceID   string          `json:"reference_id,omitempty"`
	CreatedBy     string          `json:"created_by"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ReplenishmentSuggestionDTO sugerencia de compra para un alimento con existencias bajas.
type ReplenishmentSuggestionDTO struct {
	FeedID            string          `json:"feed_id"`
	FeedName          string          `json:"feed_name"`
	Unit              string          `json:"unit"`
	CurrentStock      decimal.Decimal `json:"current_stock"`
	AverageRation     decimal.Decimal `json:"average_ration"`
	IdealStock        decimal.Decimal `json:"ideal_stock"`         // AverageRation * 1.5
	SuggestedOrderQty decimal.Decimal `json:"suggested_order_qty"` // IdealStock - CurrentStock
	Priority          int             `json:"priority"`            // 1 = más urgente
}

// RationRequest body para PUT /api/rations (crea o reemplaza la ración de la especie).
type RationRequest struct {
	Species   string          `json:"species" validate:"required"`
	FeedID    string          `json:"feed_id" validate:"required,uuid"`
	Amount    decimal.Decimal `json:"amount"`
	Frequency string          `json:"frequency,omitempty"`
}

// RationDTO ración de una especie.
type RationDTO struct {
	ID        string          `json:"id"`
	Species   string          `json:"species"`
	FeedID    string          `json:"feed_id"`
	Amount    decimal.Decimal `json:"amount"`
	Frequency string          `json:"frequency"`
	CreatedAt time.Time       `json:"created_at"`
}

// RecordFeedingRequest body para POST /api/feedings. El empleado sale del token.
type RecordFeedingRequest struct {
	AnimalID string `json:"animal_id" validate:"required"`
}

// FeedingDTO alimentación registrada.
type FeedingDTO struct {
	ID         string          `json:"id"`
	AnimalID   string          `json:"animal_id"`
	EmployeeID string          `json:"employee_id"`
	FeedID     string          `json:"feed_id"`
	Amount     decimal.Decimal `json:"amount"`
	FedAt      time.Time       `json:"fed_at"`
}
