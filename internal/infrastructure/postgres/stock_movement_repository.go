package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/zoo-api/internal/domain"
	"github.com/jhoicas/zoo-api/internal/domain/entity"
	"github.com/jhoicas/zoo-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo libro de movimientos de existencias (solo inserción).
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

const movementColumns = `id, feed_id, type, quantity, balance, reference_type,
	COALESCE(reference_id::text, ''), COALESCE(created_by::text, ''), created_at`

// Create registra el movimiento.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, feed_id, type, quantity, balance, reference_type, reference_id, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.FeedID, m.Type, m.Quantity, m.Balance, m.ReferenceType,
		nullIfEmpty(m.ReferenceID), nullIfEmpty(m.CreatedBy), m.CreatedAt,
	)
	if err != nil {
		return domain.StorageErr("insert stock movement", err)
	}
	return nil
}

// ListByReference movimientos generados por un pedido, alimentación o ajuste.
func (r *StockMovementRepo) ListByReference(ctx context.Context, referenceType, referenceID string) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+movementColumns+` FROM stock_movements
		WHERE reference_type = $1 AND reference_id = $2
		ORDER BY created_at, id`, referenceType, referenceID)
	if err != nil {
		return nil, domain.StorageErr("list stock movements by reference", err)
	}
	return collectMovements(rows)
}

// ListByFeed historial del alimento, más reciente primero.
func (r *StockMovementRepo) ListByFeed(ctx context.Context, feedID string, limit, offset int) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+movementColumns+` FROM stock_movements
		WHERE feed_id = $1
		ORDER BY created_at DESC, id
		LIMIT $2 OFFSET $3`, feedID, limit, offset)
	if err != nil {
		return nil, domain.StorageErr("list stock movements by feed", err)
	}
	return collectMovements(rows)
}

func collectMovements(rows pgx.Rows) ([]*entity.StockMovement, error) {
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(
			&m.ID, &m.FeedID, &m.Type, &m.Quantity, &m.Balance,
			&m.ReferenceType, &m.ReferenceID, &m.CreatedBy, &m.CreatedAt,
		); err != nil {
			return nil, domain.StorageErr("scan stock movement", err)
		}
		list = append(list, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.StorageErr("list stock movements", err)
	}
	return list, nil
}
