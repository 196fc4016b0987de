package repository

import (
	"context"
	"time"

	"github.com/jhoicas/zoo-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// StatusCount cantidad de pedidos en un estado.
type StatusCount struct {
	Status entity.PurchaseStatus
	Count  int
}

// ConsumptionTotal total consumido agrupado por una clave (empleado o alimento).
type ConsumptionTotal struct {
	Key   string // ID del empleado o del alimento
	Label string // nombre legible
	Unit  string
	Total decimal.Decimal
}

// ConsumptionLine fila del detalle de consumo con nombres resueltos.
type ConsumptionLine struct {
	ID           string
	Date         time.Time
	EmployeeName string
	FeedName     string
	Unit         string
	Quantity     decimal.Decimal
}

// FeedDemand consumo de referencia de un alimento según las raciones que lo usan.
type FeedDemand struct {
	FeedID        string
	AverageAmount decimal.Decimal // promedio de las raciones que usan el alimento
	RationCount   int
}

// FaultStatusCount averías en un estado.
type FaultStatusCount struct {
	Status entity.MalfunctionStatus
	Count  int
}

// AnalyticsRepository consultas de solo lectura para reportes.
type AnalyticsRepository interface {
	// PurchasesByStatus cuenta pedidos por estado; month (YYYY-MM) vacío = todos.
	PurchasesByStatus(ctx context.Context, month string) ([]StatusCount, error)
	ConsumptionByEmployee(ctx context.Context, from, to *time.Time) ([]ConsumptionTotal, error)
	ConsumptionByFeed(ctx context.Context, from, to *time.Time) ([]ConsumptionTotal, error)
	ConsumptionDetail(ctx context.Context, employeeID string, from, to *time.Time) ([]ConsumptionLine, error)
	// FeedDemand promedio de ración por alimento (base para detectar existencias bajas).
	FeedDemand(ctx context.Context) ([]FeedDemand, error)
	// FaultsByStatus cuenta averías del lugar por estado; from/to acotan created_at.
	FaultsByStatus(ctx context.Context, place string, from, to *time.Time) ([]FaultStatusCount, error)
}
