package repository

import (
	"context"
	"time"

	"github.com/jhoicas/zoo-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// PurchaseOrderRepository define el puerto de persistencia para pedidos de compra y sus líneas.
type PurchaseOrderRepository interface {
	Create(ctx context.Context, order *entity.PurchaseOrder) error
	// GetByID devuelve el pedido con sus líneas; nil, nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error)
	// GetForUpdate bloquea la fila del pedido (sin líneas); nil, nil si no existe.
	GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error)
	// FindOpenForUpdate serializa sobre (supplier, employee) y devuelve el pedido SUBMITTED más reciente,
	// o nil si no hay ninguno. Debe llamarse dentro de una transacción.
	FindOpenForUpdate(ctx context.Context, supplier, employeeID string) (*entity.PurchaseOrder, error)
	// UpsertLineItem inserta la línea o acumula la cantidad si (order, feed) ya existe.
	UpsertLineItem(ctx context.Context, orderID, feedID string, quantity decimal.Decimal) (*entity.PurchaseLineItem, error)
	ListItems(ctx context.Context, orderID string) ([]entity.PurchaseLineItem, error)
	UpdateStatus(ctx context.Context, id string, status entity.PurchaseStatus, deliveredAt *time.Time) error
	List(ctx context.Context, filter PurchaseOrderFilter) ([]*entity.PurchaseOrder, error)
}

// PurchaseOrderFilter filtros del listado de pedidos.
type PurchaseOrderFilter struct {
	Status entity.PurchaseStatus // vacío = todos
	Limit  int
	Offset int
}
