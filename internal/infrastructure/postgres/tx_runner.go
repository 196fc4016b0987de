package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/zoo-api/internal/application/inventory"
	"github.com/jhoicas/zoo-api/internal/domain"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner una transacción READ COMMITTED por operación. La serialización la dan los
// SELECT ... FOR UPDATE sobre feeds y purchase_orders.
type TxRunner struct {
	pool        *pgxpool.Pool
	lockTimeout time.Duration
}

// NewTxRunner lockTimeout > 0 acota la espera por un bloqueo de fila; al vencer la
// operación falla con ErrStorage en lugar de quedar colgada.
func NewTxRunner(pool *pgxpool.Pool, lockTimeout time.Duration) *TxRunner {
	return &TxRunner{pool: pool, lockTimeout: lockTimeout}
}

// Run ejecuta fn con repositorios atados a la tx. Commit solo si fn no devuelve error.
func (r *TxRunner) Run(ctx context.Context, fn func(repos inventory.Repos) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return domain.StorageErr("begin transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if r.lockTimeout > 0 {
		stmt := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", r.lockTimeout.Milliseconds())
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return domain.StorageErr("set lock_timeout", err)
		}
	}

	if err := fn(NewRepos(tx)); err != nil {
		if isLockTimeout(err) {
			return domain.StorageErr("esperando bloqueo", err)
		}
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return domain.StorageErr("commit transaction", err)
	}
	return nil
}

// NewRepos juego completo de repositorios sobre q (pool o tx).
func NewRepos(q Querier) inventory.Repos {
	return inventory.Repos{
		Feeds:       NewFeedRepository(q),
		Rations:     NewRationRepository(q),
		Animals:     NewAnimalRepository(q),
		Orders:      NewPurchaseOrderRepository(q),
		Feedings:    NewFeedingRepository(q),
		Consumption: NewConsumptionRepository(q),
		Movements:   NewStockMovementRepository(q),
	}
}
