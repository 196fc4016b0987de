package purchasing

import (
	"context"
	"time"

	"github.com/jhoicas/zoo-api/internal/application/inventory"
	"github.com/jhoicas/zoo-api/internal/domain"
	"github.com/jhoicas/zoo-api/internal/domain/entity"
	"github.com/jhoicas/zoo-api/pkg/logger"
)

// WorkflowUseCase motor de estados del pedido. Al llegar a DELIVERED acredita
// cada línea en el libro de existencias, una sola vez por pedido.
type WorkflowUseCase struct {
	txRunner inventory.TxRunner
	metrics  inventory.Metrics
	log      *logger.Logger
	now      func() time.Time
}

// NewWorkflowUseCase construye el motor.
func NewWorkflowUseCase(txRunner inventory.TxRunner, metrics inventory.Metrics, log *logger.Logger) *WorkflowUseCase {
	if metrics == nil {
		metrics = inventory.NopMetrics{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &WorkflowUseCase{txRunner: txRunner, metrics: metrics, log: log.Component("workflow"), now: time.Now}
}

// TransitionStatus mueve el pedido al estado target (nombre canónico o etiqueta histórica).
// DELIVERED -> DELIVERED es un no-op; cualquier otra transición fuera de la tabla
// devuelve *domain.StateError sin modificar nada. Si un crédito falla se revierte todo.
func (uc *WorkflowUseCase) TransitionStatus(ctx context.Context, orderID, target, actorID string) (*entity.PurchaseOrder, error) {
	next, ok := entity.ParsePurchaseStatus(target)
	if orderID == "" || !ok {
		return nil, domain.ErrInvalidInput
	}

	var (
		order    *entity.PurchaseOrder
		old      entity.PurchaseStatus
		noop     bool
		credited []entity.PurchaseLineItem
	)
	err := uc.txRunner.Run(ctx, func(repos inventory.Repos) error {
		locked, err := repos.Orders.GetForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.ErrNotFound
		}
		old = locked.Status

		switch {
		case old == entity.PurchaseStatusDelivered && next == entity.PurchaseStatusDelivered:
			noop = true
		case !old.CanTransitionTo(next):
			return &domain.StateError{
				Resource: "pedido",
				Current:  old.String(),
				Reason:   "transición a " + next.String() + " no permitida",
			}
		default:
			var deliveredAt *time.Time
			if next == entity.PurchaseStatusDelivered {
				t := uc.now().UTC()
				deliveredAt = &t
			}
			if err := repos.Orders.UpdateStatus(ctx, orderID, next, deliveredAt); err != nil {
				return err
			}
			if old != entity.PurchaseStatusDelivered && next == entity.PurchaseStatusDelivered {
				credited, err = creditItems(ctx, repos, orderID, actorID)
				if err != nil {
					return err
				}
			}
		}

		order, err = repos.Orders.GetByID(ctx, orderID)
		return err
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("order_id", orderID).Str("target", next.String()).Msg("transición rechazada")
		return nil, err
	}
	if noop {
		return order, nil
	}

	uc.metrics.OrderTransitioned(old, next)
	for _, it := range credited {
		uc.metrics.StockCredited(it.FeedID, it.Quantity)
	}
	uc.log.Info().
		Str("order_id", orderID).
		Str("from", old.String()).
		Str("to", next.String()).
		Int("credited_items", len(credited)).
		Msg("pedido actualizado")
	return order, nil
}

func creditItems(ctx context.Context, repos inventory.Repos, orderID, actorID string) ([]entity.PurchaseLineItem, error) {
	items, err := repos.Orders.ListItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	ledger := inventory.NewStockLedger(repos)
	ref := inventory.Reference{Type: entity.MovementRefPurchaseOrder, ID: orderID, CreatedBy: actorID}
	for _, it := range items {
		if _, err := ledger.Credit(ctx, it.FeedID, it.Quantity, ref); err != nil {
			return nil, err
		}
	}
	return items, nil
}
