package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del libro de existencias.
const (
	MovementTypeCredit = "CREDIT" // entrada
	MovementTypeDebit  = "DEBIT"  // salida
)

// Origen del movimiento.
const (
	MovementRefPurchaseOrder = "PURCHASE_ORDER"
	MovementRefFeeding       = "FEEDING"
	MovementRefAdjustment    = "ADJUSTMENT"
)

// StockMovement auditoría de cada cambio de existencias (entrada o salida) de un alimento.
type StockMovement struct {
	ID            string
	FeedID        string
	Type          string
	Quantity      decimal.Decimal // positivo en CREDIT, negativo en DEBIT
	Balance       decimal.Decimal // existencia resultante
	ReferenceType string
	ReferenceID   string
	CreatedBy     string
	CreatedAt     time.Time
}
