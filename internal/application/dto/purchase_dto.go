package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePurchaseRequest body para POST /api/purchases (abre o reutiliza el pedido SUBMITTED del proveedor).
type CreatePurchaseRequest struct {
	Supplier string `json:"supplier" validate:"required"`
}

// AddLineItemRequest body para POST /api/purchases/items y POST /api/purchases/:id/items.
// Supplier solo se usa cuando no viene el id del pedido en la ruta.
type AddLineItemRequest struct {
	Supplier string          `json:"supplier,omitempty"`
	FeedID   string          `json:"feed_id" validate:"required"`
	Quantity decimal.Decimal `json:"quantity"`
}

// AddLineItemResponse resultado de agregar una línea.
type AddLineItemResponse struct {
	OrderID string              `json:"order_id"`
	Item    PurchaseLineItemDTO `json:"item"`
}

// TransitionStatusRequest body para POST /api/purchases/:id/status.
type TransitionStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// PurchaseLineItemDTO línea de pedido.
type PurchaseLineItemDTO struct {
	ID       string          `json:"id"`
	FeedID   string          `json:"feed_id"`
	FeedName string          `json:"feed_name,omitempty"`
	Unit     string          `json:"unit,omitempty"`
	Quantity decimal.Decimal `json:"quantity"`
}

// PurchaseOrderDTO pedido de compra con sus líneas.
type PurchaseOrderDTO struct {
	ID            string                `json:"id"`
	EmployeeID    string                `json:"employee_id"`
	Supplier      string                `json:"supplier"`
	Status        string                `json:"status"`
	RequestDate   time.Time             `json:"request_date"`
	DeliveredAt   *time.Time            `json:"delivered_at,omitempty"`
	TotalQuantity decimal.Decimal       `json:"total_quantity"`
	Items         []PurchaseLineItemDTO `json:"items"`
}
