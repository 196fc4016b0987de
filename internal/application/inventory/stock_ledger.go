package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/zoo-api/internal/domain"
	"github.com/jhoicas/zoo-api/internal/domain/entity"
	"github.com/jhoicas/zoo-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// Reference origen de un movimiento de existencias.
type Reference struct {
	Type      string // entity.MovementRef*
	ID        string
	CreatedBy string
}

// StockLedger única vía para modificar Feed.Quantity. Opera sobre repositorios de una transacción
// abierta: el bloqueo de fila y la escritura quedan dentro de la misma unidad atómica.
type StockLedger struct {
	feeds     repository.FeedRepository
	movements repository.StockMovementRepository
}

// NewStockLedger construye el libro sobre los repositorios de la transacción en curso.
func NewStockLedger(repos Repos) *StockLedger {
	return &StockLedger{feeds: repos.Feeds, movements: repos.Movements}
}

// Credit suma amount a la existencia del alimento (sin tope) y registra el movimiento.
func (l *StockLedger) Credit(ctx context.Context, feedID string, amount decimal.Decimal, ref Reference) (*entity.StockMovement, error) {
	if feedID == "" || !amount.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	// Un solo UPDATE ... SET quantity = quantity + $n: atómico frente a débitos concurrentes.
	balance, err := l.feeds.AddQuantity(ctx, feedID, amount)
	if err != nil {
		return nil, err
	}
	mov := &entity.StockMovement{
		ID:            uuid.New().String(),
		FeedID:        feedID,
		Type:          entity.MovementTypeCredit,
		Quantity:      amount,
		Balance:       balance,
		ReferenceType: ref.Type,
		ReferenceID:   ref.ID,
		CreatedBy:     ref.CreatedBy,
		CreatedAt:     time.Now(),
	}
	if err := l.movements.Create(ctx, mov); err != nil {
		return nil, err
	}
	return mov, nil
}

// Debit resta amount de la existencia. Bloquea la fila (SELECT FOR UPDATE), verifica
// existencia >= amount y escribe; si no alcanza devuelve *domain.InsufficientStockError sin modificar nada.
func (l *StockLedger) Debit(ctx context.Context, feedID string, amount decimal.Decimal, ref Reference) (*entity.StockMovement, error) {
	if feedID == "" || !amount.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	feed, err := l.feeds.GetForUpdate(ctx, feedID)
	if err != nil {
		return nil, err
	}
	if feed == nil {
		return nil, domain.ErrNotFound
	}
	if feed.Quantity.LessThan(amount) {
		return nil, &domain.InsufficientStockError{FeedID: feedID, Needed: amount, Available: feed.Quantity}
	}
	balance := feed.Quantity.Sub(amount)
	if err := l.feeds.SetQuantity(ctx, feedID, balance); err != nil {
		return nil, err
	}
	mov := &entity.StockMovement{
		ID:            uuid.New().String(),
		FeedID:        feedID,
		Type:          entity.MovementTypeDebit,
		Quantity:      amount.Neg(),
		Balance:       balance,
		ReferenceType: ref.Type,
		ReferenceID:   ref.ID,
		CreatedBy:     ref.CreatedBy,
		CreatedAt:     time.Now(),
	}
	if err := l.movements.Create(ctx, mov); err != nil {
		return nil, err
	}
	return mov, nil
}
