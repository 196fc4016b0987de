package inventory

import (
	"context"
	"strings"

	"github.com/jhoicas/zoo-api/internal/domain"
	"github.com/jhoicas/zoo-api/internal/domain/entity"
	"github.com/jhoicas/zoo-api/pkg/logger"
	"github.com/shopspring/decimal"
)

// AdjustStockUseCase corrige existencias tras un conteo físico (entrada o salida manual),
// siempre a través del StockLedger y dentro de una transacción.
type AdjustStockUseCase struct {
	txRunner TxRunner
	metrics  Metrics
	log      *logger.Logger
}

// NewAdjustStockUseCase construye el caso de uso.
func NewAdjustStockUseCase(txRunner TxRunner, metrics Metrics, log *logger.Logger) *AdjustStockUseCase {
	if metrics == nil {
		metrics = NopMetrics{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &AdjustStockUseCase{txRunner: txRunner, metrics: metrics, log: log.Component("stock")}
}

// AdjustmentInput entrada de un ajuste. Delta positivo = entrada, negativo = salida.
type AdjustmentInput struct {
	FeedID     string
	EmployeeID string
	Delta      decimal.Decimal
}

// AdjustStock aplica el ajuste y devuelve el movimiento registrado.
// Una salida mayor que la existencia falla con *domain.InsufficientStockError.
func (uc *AdjustStockUseCase) AdjustStock(ctx context.Context, in AdjustmentInput) (*entity.StockMovement, error) {
	in.FeedID = strings.TrimSpace(in.FeedID)
	if in.FeedID == "" || in.EmployeeID == "" || in.Delta.IsZero() {
		return nil, domain.ErrInvalidInput
	}

	var mov *entity.StockMovement
	err := uc.txRunner.Run(ctx, func(repos Repos) error {
		ledger := NewStockLedger(repos)
		ref := Reference{Type: entity.MovementRefAdjustment, CreatedBy: in.EmployeeID}
		var err error
		if in.Delta.IsPositive() {
			mov, err = ledger.Credit(ctx, in.FeedID, in.Delta, ref)
		} else {
			mov, err = ledger.Debit(ctx, in.FeedID, in.Delta.Neg(), ref)
		}
		return err
	})
	if err != nil {
		if isInsufficient(err) {
			uc.metrics.InsufficientStock(in.FeedID)
		}
		return nil, err
	}

	if mov.Type == entity.MovementTypeCredit {
		uc.metrics.StockCredited(in.FeedID, mov.Quantity)
	} else {
		uc.metrics.StockDebited(in.FeedID, mov.Quantity.Neg())
	}
	uc.log.Info().
		Str("feed_id", in.FeedID).
		Str("employee_id", in.EmployeeID).
		Str("delta", in.Delta.String()).
		Str("balance", mov.Balance.String()).
		Msg("ajuste de existencias")
	return mov, nil
}
