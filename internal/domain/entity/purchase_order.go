package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseOrder pedido de alimento dirigido a un proveedor, solicitado por un empleado.
// Status solo avanza por el motor de flujo (TransitionStatus).
type PurchaseOrder struct {
	ID          string
	EmployeeID  string
	Supplier    string
	Status      PurchaseStatus
	RequestDate time.Time
	DeliveredAt *time.Time
	UpdatedAt   time.Time
	Items       []PurchaseLineItem
}

// PurchaseLineItem línea de un pedido. (OrderID, FeedID) es único: re-agregar acumula cantidad.
type PurchaseLineItem struct {
	ID       string
	OrderID  string
	FeedID   string
	FeedName string // solo lectura, para listados y PDF
	Unit     string // solo lectura
	Quantity decimal.Decimal
}

// IsEditable indica si todavía se pueden agregar líneas al pedido.
func (o *PurchaseOrder) IsEditable() bool {
	return o.Status.IsEditable()
}

// TotalQuantity suma las cantidades de todas las líneas.
func (o *PurchaseOrder) TotalQuantity() decimal.Decimal {
	total := decimal.Zero
	for _, it := range o.Items {
		total = total.Add(it.Quantity)
	}
	return total
}
