package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// FeedingEvent registro (solo inserción) de una alimentación realizada.
type FeedingEvent struct {
	ID         string
	AnimalID   string
	EmployeeID string
	FeedID     string
	Amount     decimal.Decimal
	FedAt      time.Time
}

// ConsumptionRecord gasto de alimento derivado de una alimentación, usado en reportes de consumo.
type ConsumptionRecord struct {
	ID             string
	FeedingEventID string
	FeedID         string
	EmployeeID     string
	Quantity       decimal.Decimal
	Date           time.Time
}
