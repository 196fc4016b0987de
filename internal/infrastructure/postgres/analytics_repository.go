package postgres

import (
	"context"
	"time"

	"github.com/jhoicas/zoo-api/internal/domain"
	"github.com/jhoicas/zoo-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para reportes de pedidos y consumo.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// PurchasesByStatus cuenta pedidos por estado; month (YYYY-MM) filtra por fecha de solicitud.
func (r *AnalyticsRepo) PurchasesByStatus(ctx context.Context, month string) ([]repository.StatusCount, error) {
	const query = `
	SELECT status, COUNT(*)
	FROM purchase_orders
	WHERE ($1 = '' OR to_char(request_date, 'YYYY-MM') = $1)
	GROUP BY status`

	rows, err := r.q.Query(ctx, query, month)
	if err != nil {
		return nil, domain.StorageErr("analytics.PurchasesByStatus", err)
	}
	defer rows.Close()

	var results []repository.StatusCount
	for rows.Next() {
		var row repository.StatusCount
		if err := rows.Scan(&row.Status, &row.Count); err != nil {
			return nil, domain.StorageErr("analytics.PurchasesByStatus scan", err)
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.StorageErr("analytics.PurchasesByStatus", err)
	}
	return results, nil
}

// ConsumptionByEmployee total gastado por empleado en el rango (fechas inclusivas, nil = sin límite).
// Se mezclan unidades: el total es orientativo y la unidad queda vacía.
func (r *AnalyticsRepo) ConsumptionByEmployee(ctx context.Context, from, to *time.Time) ([]repository.ConsumptionTotal, error) {
	const query = `
	SELECT
	    c.employee_id::text                         AS key,
	    COALESCE(e.full_name, c.employee_id::text)  AS label,
	    ''                                          AS unit,
	    SUM(c.quantity)                             AS total
	FROM consumption_records c
	LEFT JOIN employees e ON e.id = c.employee_id
	WHERE ($1::date IS NULL OR c.date >= $1::date)
	  AND ($2::date IS NULL OR c.date <= $2::date)
	GROUP BY c.employee_id, e.full_name
	ORDER BY total DESC, label`
	return r.totals(ctx, "analytics.ConsumptionByEmployee", query, from, to)
}

// ConsumptionByFeed total gastado por alimento en el rango.
func (r *AnalyticsRepo) ConsumptionByFeed(ctx context.Context, from, to *time.Time) ([]repository.ConsumptionTotal, error) {
	const query = `
	SELECT
	    f.id::text       AS key,
	    f.name           AS label,
	    f.unit           AS unit,
	    SUM(c.quantity)  AS total
	FROM consumption_records c
	JOIN feeds f ON f.id = c.feed_id
	WHERE ($1::date IS NULL OR c.date >= $1::date)
	  AND ($2::date IS NULL OR c.date <= $2::date)
	GROUP BY f.id, f.name, f.unit
	ORDER BY total DESC, label`
	return r.totals(ctx, "analytics.ConsumptionByFeed", query, from, to)
}

func (r *AnalyticsRepo) totals(ctx context.Context, op, query string, from, to *time.Time) ([]repository.ConsumptionTotal, error) {
	rows, err := r.q.Query(ctx, query, dateArg(from), dateArg(to))
	if err != nil {
		return nil, domain.StorageErr(op, err)
	}
	defer rows.Close()

	var results []repository.ConsumptionTotal
	for rows.Next() {
		var row repository.ConsumptionTotal
		if err := rows.Scan(&row.Key, &row.Label, &row.Unit, &row.Total); err != nil {
			return nil, domain.StorageErr(op+" scan", err)
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.StorageErr(op, err)
	}
	return results, nil
}

// ConsumptionDetail filas de gasto con nombres resueltos. employeeID vacío = todos.
func (r *AnalyticsRepo) ConsumptionDetail(ctx context.Context, employeeID string, from, to *time.Time) ([]repository.ConsumptionLine, error) {
	const query = `
	SELECT c.id::text, c.date, COALESCE(e.full_name, ''), f.name, f.unit, c.quantity
	FROM consumption_records c
	JOIN feeds f ON f.id = c.feed_id
	LEFT JOIN employees e ON e.id = c.employee_id
	WHERE ($1 = '' OR c.employee_id::text = $1)
	  AND ($2::date IS NULL OR c.date >= $2::date)
	  AND ($3::date IS NULL OR c.date <= $3::date)
	ORDER BY c.date DESC, c.id`

	rows, err := r.q.Query(ctx, query, employeeID, dateArg(from), dateArg(to))
	if err != nil {
		return nil, domain.StorageErr("analytics.ConsumptionDetail", err)
	}
	defer rows.Close()

	var results []repository.ConsumptionLine
	for rows.Next() {
		var row repository.ConsumptionLine
		if err := rows.Scan(&row.ID, &row.Date, &row.EmployeeName, &row.FeedName, &row.Unit, &row.Quantity); err != nil {
			return nil, domain.StorageErr("analytics.ConsumptionDetail scan", err)
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.StorageErr("analytics.ConsumptionDetail", err)
	}
	return results, nil
}

// FeedDemand promedio de ración por alimento.
func (r *AnalyticsRepo) FeedDemand(ctx context.Context) ([]repository.FeedDemand, error) {
	const query = `
	SELECT feed_id::text, AVG(amount), COUNT(*)
	FROM rations
	GROUP BY feed_id
	ORDER BY feed_id`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, domain.StorageErr("analytics.FeedDemand", err)
	}
	defer rows.Close()

	var results []repository.FeedDemand
	for rows.Next() {
		var row repository.FeedDemand
		if err := rows.Scan(&row.FeedID, &row.AverageAmount, &row.RationCount); err != nil {
			return nil, domain.StorageErr("analytics.FeedDemand scan", err)
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.StorageErr("analytics.FeedDemand", err)
	}
	return results, nil
}

// FaultsByStatus averías del lugar por estado; from/to acotan created_at (instantes, inclusivos).
func (r *AnalyticsRepo) FaultsByStatus(ctx context.Context, place string, from, to *time.Time) ([]repository.FaultStatusCount, error) {
	const query = `
	SELECT status, COUNT(*)
	FROM malfunctions
	WHERE place = $1
	  AND ($2::timestamptz IS NULL OR created_at >= $2)
	  AND ($3::timestamptz IS NULL OR created_at <= $3)
	GROUP BY status`

	rows, err := r.q.Query(ctx, query, place, from, to)
	if err != nil {
		return nil, domain.StorageErr("analytics.FaultsByStatus", err)
	}
	defer rows.Close()

	var results []repository.FaultStatusCount
	for rows.Next() {
		var row repository.FaultStatusCount
		if err := rows.Scan(&row.Status, &row.Count); err != nil {
			return nil, domain.StorageErr("analytics.FaultsByStatus scan", err)
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.StorageErr("analytics.FaultsByStatus", err)
	}
	return results, nil
}
