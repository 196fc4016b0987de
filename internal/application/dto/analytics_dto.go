package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatusCountDTO pedidos en un estado.
type StatusCountDTO struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// PurchasesByStatusDTO respuesta de GET /api/analytics/purchases-status.
// Siempre incluye los cuatro estados, en orden de flujo, aunque el conteo sea cero.
type PurchasesByStatusDTO struct {
	Month    string           `json:"month,omitempty"` // YYYY-MM; vacío = histórico completo
	Total    int              `json:"total"`
	Statuses []StatusCountDTO `json:"statuses"`
}

// ConsumptionTotalDTO total consumido por un empleado o un alimento.
type ConsumptionTotalDTO struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Unit  string          `json:"unit,omitempty"`
	Total decimal.Decimal `json:"total"`
}

// ConsumptionReportDTO respuesta de GET /api/analytics/consumption.
type ConsumptionReportDTO struct {
	Period     string                `json:"period"` // day | month | all
	From       *time.Time            `json:"from,omitempty"`
	To         *time.Time            `json:"to,omitempty"`
	ByEmployee []ConsumptionTotalDTO `json:"by_employee"`
	ByFeed     []ConsumptionTotalDTO `json:"by_feed"`
}

// ConsumptionLineDTO fila del detalle de gastos (GET /api/expenses, /api/expenses/my).
type ConsumptionLineDTO struct {
	ID           string          `json:"id"`
	Date         time.Time       `json:"date"`
	EmployeeName string          `json:"employee_name"`
	FeedName     string          `json:"feed_name"`
	Unit         string          `json:"unit"`
	Quantity     decimal.Decimal `json:"quantity"`
}
