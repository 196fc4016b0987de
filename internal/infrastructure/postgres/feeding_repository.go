package postgres

import (
	"context"
	"time"

	"github.com/jhoicas/zoo-api/internal/domain"
	"github.com/jhoicas/zoo-api/internal/domain/entity"
	"github.com/jhoicas/zoo-api/internal/domain/repository"
)

var (
	_ repository.FeedingRepository     = (*FeedingRepo)(nil)
	_ repository.ConsumptionRepository = (*ConsumptionRepo)(nil)
)

// FeedingRepo registro de alimentaciones (solo inserción).
type FeedingRepo struct {
	q Querier
}

// NewFeedingRepository construye el adaptador. Pasar pool o tx (Querier).
func NewFeedingRepository(q Querier) *FeedingRepo {
	return &FeedingRepo{q: q}
}

// Create inserta la alimentación.
func (r *FeedingRepo) Create(ctx context.Context, e *entity.FeedingEvent) error {
	query := `
		INSERT INTO feeding_events (id, animal_id, employee_id, feed_id, amount, fed_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := r.q.Exec(ctx, query, e.ID, e.AnimalID, e.EmployeeID, e.FeedID, e.Amount, e.FedAt); err != nil {
		if isForeignKeyViolation(err) || isInvalidText(err) {
			return domain.ErrNotFound
		}
		return domain.StorageErr("insert feeding event", err)
	}
	return nil
}

// List alimentaciones más recientes primero.
func (r *FeedingRepo) List(ctx context.Context, limit, offset int) ([]*entity.FeedingEvent, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, animal_id, employee_id, feed_id, amount, fed_at
		FROM feeding_events
		ORDER BY fed_at DESC, id
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, domain.StorageErr("list feeding events", err)
	}
	defer rows.Close()
	var list []*entity.FeedingEvent
	for rows.Next() {
		var e entity.FeedingEvent
		if err := rows.Scan(&e.ID, &e.AnimalID, &e.EmployeeID, &e.FeedID, &e.Amount, &e.FedAt); err != nil {
			return nil, domain.StorageErr("scan feeding event", err)
		}
		list = append(list, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.StorageErr("list feeding events", err)
	}
	return list, nil
}

// ConsumptionRepo gastos de alimento (solo inserción).
type ConsumptionRepo struct {
	q Querier
}

// NewConsumptionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewConsumptionRepository(q Querier) *ConsumptionRepo {
	return &ConsumptionRepo{q: q}
}

// Create inserta el gasto.
func (r *ConsumptionRepo) Create(ctx context.Context, c *entity.ConsumptionRecord) error {
	query := `
		INSERT INTO consumption_records (id, feeding_event_id, feed_id, employee_id, quantity, date)
		VALUES ($1, $2, $3, $4, $5, $6::date)`
	if _, err := r.q.Exec(ctx, query, c.ID, c.FeedingEventID, c.FeedID, c.EmployeeID, c.Quantity, c.Date.UTC().Format(dateLayout)); err != nil {
		return domain.StorageErr("insert consumption record", err)
	}
	return nil
}

// List gastos filtrados por empleado (vacío = todos) y fechas inclusivas, más recientes primero.
func (r *ConsumptionRepo) List(ctx context.Context, employeeID string, from, to *time.Time) ([]*entity.ConsumptionRecord, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, feeding_event_id, feed_id, employee_id, quantity, date
		FROM consumption_records
		WHERE ($1 = '' OR employee_id::text = $1)
		  AND ($2::date IS NULL OR date >= $2::date)
		  AND ($3::date IS NULL OR date <= $3::date)
		ORDER BY date DESC, id`, employeeID, dateArg(from), dateArg(to))
	if err != nil {
		return nil, domain.StorageErr("list consumption records", err)
	}
	defer rows.Close()
	var list []*entity.ConsumptionRecord
	for rows.Next() {
		var c entity.ConsumptionRecord
		if err := rows.Scan(&c.ID, &c.FeedingEventID, &c.FeedID, &c.EmployeeID, &c.Quantity, &c.Date); err != nil {
			return nil, domain.StorageErr("scan consumption record", err)
		}
		list = append(list, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.StorageErr("list consumption records", err)
	}
	return list, nil
}
