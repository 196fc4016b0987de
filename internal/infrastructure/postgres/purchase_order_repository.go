package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/zoo-api/internal/domain"
	"github.com/jhoicas/zoo-api/internal/domain/entity"
	"github.com/jhoicas/zoo-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo pedidos de compra y sus líneas sobre PostgreSQL (usable con pool o tx).
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

const orderColumns = `id, employee_id, supplier, status, request_date, delivered_at, updated_at`

func scanOrder(row pgx.Row) (*entity.PurchaseOrder, error) {
	var o entity.PurchaseOrder
	if err := row.Scan(&o.ID, &o.EmployeeID, &o.Supplier, &o.Status, &o.RequestDate, &o.DeliveredAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	return &o, nil
}

// Create persiste la cabecera del pedido.
func (r *PurchaseOrderRepo) Create(ctx context.Context, o *entity.PurchaseOrder) error {
	query := `
		INSERT INTO purchase_orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, o.ID, o.EmployeeID, o.Supplier, o.Status, o.RequestDate, o.DeliveredAt, o.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return domain.StorageErr("insert purchase order", err)
	}
	return nil
}

// GetByID pedido con sus líneas; nil, nil si no existe.
func (r *PurchaseOrderRepo) GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, `SELECT `+orderColumns+` FROM purchase_orders WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, domain.StorageErr("get purchase order", err)
	}
	if o.Items, err = r.ListItems(ctx, id); err != nil {
		return nil, err
	}
	return o, nil
}

// GetForUpdate bloquea la fila del pedido; nil, nil si no existe.
func (r *PurchaseOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, `SELECT `+orderColumns+` FROM purchase_orders WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, domain.StorageErr("get purchase order for update", err)
	}
	return o, nil
}

// FindOpenForUpdate toma un advisory lock de transacción sobre (supplier, employee) para que dos
// altas concurrentes no abran dos pedidos, y devuelve el SUBMITTED más reciente bloqueado.
func (r *PurchaseOrderRepo) FindOpenForUpdate(ctx context.Context, supplier, employeeID string) (*entity.PurchaseOrder, error) {
	if _, err := r.q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1::text || ':' || $2::text))`, supplier, employeeID); err != nil {
		return nil, domain.StorageErr("lock open purchase order", err)
	}
	query := `
		SELECT ` + orderColumns + ` FROM purchase_orders
		WHERE supplier = $1 AND employee_id = $2 AND status = $3
		ORDER BY request_date DESC
		LIMIT 1
		FOR UPDATE`
	o, err := scanOrder(r.q.QueryRow(ctx, query, supplier, employeeID, entity.PurchaseStatusSubmitted))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, domain.StorageErr("find open purchase order", err)
	}
	return o, nil
}

// UpsertLineItem inserta la línea o acumula la cantidad si (order_id, feed_id) ya existe.
func (r *PurchaseOrderRepo) UpsertLineItem(ctx context.Context, orderID, feedID string, quantity decimal.Decimal) (*entity.PurchaseLineItem, error) {
	query := `
		INSERT INTO purchase_line_items (id, order_id, feed_id, quantity)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (order_id, feed_id)
		DO UPDATE SET quantity = purchase_line_items.quantity + EXCLUDED.quantity
		RETURNING id, order_id, feed_id, quantity`
	var it entity.PurchaseLineItem
	err := r.q.QueryRow(ctx, query, uuid.New().String(), orderID, feedID, quantity).
		Scan(&it.ID, &it.OrderID, &it.FeedID, &it.Quantity)
	if err != nil {
		if isForeignKeyViolation(err) || isInvalidText(err) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.StorageErr("upsert purchase line item", err)
	}
	return &it, nil
}

// ListItems líneas del pedido en orden de alta, con nombre y unidad del alimento.
func (r *PurchaseOrderRepo) ListItems(ctx context.Context, orderID string) ([]entity.PurchaseLineItem, error) {
	byOrder, err := r.itemsFor(ctx, []string{orderID})
	if err != nil {
		return nil, err
	}
	return byOrder[orderID], nil
}

// UpdateStatus cambia el estado; deliveredAt nil conserva el valor previo.
func (r *PurchaseOrderRepo) UpdateStatus(ctx context.Context, id string, status entity.PurchaseStatus, deliveredAt *time.Time) error {
	query := `
		UPDATE purchase_orders
		SET status = $2, delivered_at = COALESCE($3, delivered_at), updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, status, deliveredAt)
	if err != nil {
		if isInvalidText(err) {
			return domain.ErrNotFound
		}
		return domain.StorageErr("update purchase order status", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List pedidos más recientes primero, con sus líneas (una consulta extra para todas).
func (r *PurchaseOrderRepo) List(ctx context.Context, filter repository.PurchaseOrderFilter) ([]*entity.PurchaseOrder, error) {
	query := `
		SELECT ` + orderColumns + ` FROM purchase_orders
		WHERE ($1 = '' OR status = $1)
		ORDER BY request_date DESC, id
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, string(filter.Status), filter.Limit, filter.Offset)
	if err != nil {
		return nil, domain.StorageErr("list purchase orders", err)
	}
	defer rows.Close()

	var list []*entity.PurchaseOrder
	var ids []string
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, domain.StorageErr("scan purchase order", err)
		}
		list = append(list, o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.StorageErr("list purchase orders", err)
	}
	if len(ids) == 0 {
		return list, nil
	}

	byOrder, err := r.itemsFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, o := range list {
		o.Items = byOrder[o.ID]
	}
	return list, nil
}

func (r *PurchaseOrderRepo) itemsFor(ctx context.Context, orderIDs []string) (map[string][]entity.PurchaseLineItem, error) {
	query := `
		SELECT li.id, li.order_id, li.feed_id, f.name, f.unit, li.quantity
		FROM purchase_line_items li
		JOIN feeds f ON f.id = li.feed_id
		WHERE li.order_id = ANY($1::uuid[])
		ORDER BY li.created_at, li.id`
	rows, err := r.q.Query(ctx, query, orderIDs)
	if err != nil {
		return nil, domain.StorageErr("list purchase line items", err)
	}
	defer rows.Close()

	out := make(map[string][]entity.PurchaseLineItem, len(orderIDs))
	for rows.Next() {
		var it entity.PurchaseLineItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.FeedID, &it.FeedName, &it.Unit, &it.Quantity); err != nil {
			return nil, domain.StorageErr("scan purchase line item", err)
		}
		out[it.OrderID] = append(out[it.OrderID], it)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.StorageErr("list purchase line items", err)
	}
	return out, nil
}
