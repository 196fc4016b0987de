package purchasing

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/zoo-api/internal/application/inventory"
	"github.com/jhoicas/zoo-api/internal/domain"
	"github.com/jhoicas/zoo-api/internal/domain/entity"
	"github.com/jhoicas/zoo-api/internal/domain/repository"
	"github.com/jhoicas/zoo-api/pkg/logger"
	"github.com/shopspring/decimal"
)

// OrderUseCase armado de pedidos: apertura, agregado de líneas y consultas.
type OrderUseCase struct {
	txRunner inventory.TxRunner
	orders   repository.PurchaseOrderRepository
	log      *logger.Logger
}

// NewOrderUseCase construye el caso de uso. orders se usa para lecturas fuera de tx.
func NewOrderUseCase(txRunner inventory.TxRunner, orders repository.PurchaseOrderRepository, log *logger.Logger) *OrderUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &OrderUseCase{txRunner: txRunner, orders: orders, log: log.Component("purchasing")}
}

// AddLineItemInput agrega Quantity de FeedID a un pedido. Si OrderID viene vacío se usa
// (o se abre) el pedido SUBMITTED más reciente de Supplier para EmployeeID.
type AddLineItemInput struct {
	OrderID    string
	Supplier   string
	EmployeeID string
	FeedID     string
	Quantity   decimal.Decimal
}

// AddLineItemResult pedido afectado y línea resultante (con la cantidad acumulada).
type AddLineItemResult struct {
	OrderID string
	Item    *entity.PurchaseLineItem
}

// AddLineItem agrega una línea; si el alimento ya estaba en el pedido suma la cantidad.
// Solo pedidos SUBMITTED aceptan líneas.
func (uc *OrderUseCase) AddLineItem(ctx context.Context, in AddLineItemInput) (*AddLineItemResult, error) {
	in.OrderID = strings.TrimSpace(in.OrderID)
	in.Supplier = strings.TrimSpace(in.Supplier)
	in.FeedID = strings.TrimSpace(in.FeedID)
	if in.FeedID == "" || !in.Quantity.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	if in.OrderID == "" && (in.Supplier == "" || in.EmployeeID == "") {
		return nil, domain.ErrInvalidInput
	}

	var res AddLineItemResult
	err := uc.txRunner.Run(ctx, func(repos inventory.Repos) error {
		order, err := uc.resolveOrder(ctx, repos, in)
		if err != nil {
			return err
		}
		feed, err := repos.Feeds.GetByID(ctx, in.FeedID)
		if err != nil {
			return err
		}
		if feed == nil {
			return domain.ErrNotFound
		}
		item, err := repos.Orders.UpsertLineItem(ctx, order.ID, feed.ID, in.Quantity)
		if err != nil {
			return err
		}
		item.FeedName = feed.Name
		item.Unit = feed.Unit
		res = AddLineItemResult{OrderID: order.ID, Item: item}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("order_id", res.OrderID).
		Str("feed_id", in.FeedID).
		Str("quantity", in.Quantity.String()).
		Str("line_total", res.Item.Quantity.String()).
		Msg("línea de pedido agregada")
	return &res, nil
}

// CreateOrder abre un pedido para el proveedor o devuelve el SUBMITTED ya abierto por el mismo empleado.
func (uc *OrderUseCase) CreateOrder(ctx context.Context, supplier, employeeID string) (*entity.PurchaseOrder, error) {
	supplier = strings.TrimSpace(supplier)
	if supplier == "" || employeeID == "" {
		return nil, domain.ErrInvalidInput
	}
	var order *entity.PurchaseOrder
	err := uc.txRunner.Run(ctx, func(repos inventory.Repos) error {
		var err error
		order, err = findOrCreateOpen(ctx, repos, supplier, employeeID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// GetByID devuelve el pedido con sus líneas; domain.ErrNotFound si no existe.
func (uc *OrderUseCase) GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	order, err := uc.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return order, nil
}

// List lista pedidos, más recientes primero. status vacío = todos.
func (uc *OrderUseCase) List(ctx context.Context, status string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	filter := repository.PurchaseOrderFilter{Limit: limit, Offset: offset}
	if status != "" {
		st, ok := entity.ParsePurchaseStatus(status)
		if !ok {
			return nil, domain.ErrInvalidInput
		}
		filter.Status = st
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return uc.orders.List(ctx, filter)
}

func (uc *OrderUseCase) resolveOrder(ctx context.Context, repos inventory.Repos, in AddLineItemInput) (*entity.PurchaseOrder, error) {
	if in.OrderID == "" {
		return findOrCreateOpen(ctx, repos, in.Supplier, in.EmployeeID)
	}
	order, err := repos.Orders.GetForUpdate(ctx, in.OrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if !order.IsEditable() {
		return nil, &domain.StateError{
			Resource: "pedido",
			Current:  order.Status.String(),
			Reason:   "el pedido ya fue aceptado para su procesamiento",
		}
	}
	return order, nil
}

func findOrCreateOpen(ctx context.Context, repos inventory.Repos, supplier, employeeID string) (*entity.PurchaseOrder, error) {
	order, err := repos.Orders.FindOpenForUpdate(ctx, supplier, employeeID)
	if err != nil {
		return nil, err
	}
	if order != nil {
		return order, nil
	}
	now := time.Now().UTC()
	order = &entity.PurchaseOrder{
		ID:          uuid.New().String(),
		EmployeeID:  employeeID,
		Supplier:    supplier,
		Status:      entity.PurchaseStatusSubmitted,
		RequestDate: now,
		UpdatedAt:   now,
	}
	if err := repos.Orders.Create(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}
