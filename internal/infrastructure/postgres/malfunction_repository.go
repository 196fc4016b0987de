package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/zoo-api/internal/domain"
	"github.com/jhoicas/zoo-api/internal/domain/entity"
	"github.com/jhoicas/zoo-api/internal/domain/repository"
)

var _ repository.MalfunctionRepository = (*MalfunctionRepo)(nil)

// MalfunctionRepo averías de instalaciones sobre PostgreSQL.
type MalfunctionRepo struct {
	q Querier
}

// NewMalfunctionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMalfunctionRepository(q Querier) *MalfunctionRepo {
	return &MalfunctionRepo{q: q}
}

const malfunctionSelect = `
	SELECT m.id::text, m.employee_id::text, COALESCE(e.full_name, ''), m.place, m.description,
	       m.status, m.created_at, m.resolved_at
	FROM malfunctions m
	LEFT JOIN employees e ON e.id = m.employee_id`

func scanMalfunction(row pgx.Row) (*entity.Malfunction, error) {
	var m entity.Malfunction
	if err := row.Scan(&m.ID, &m.EmployeeID, &m.EmployeeName, &m.Place, &m.Description,
		&m.Status, &m.CreatedAt, &m.ResolvedAt); err != nil {
		return nil, err
	}
	return &m, nil
}

// Create inserta la avería; domain.ErrNotFound si el empleado no existe.
func (r *MalfunctionRepo) Create(ctx context.Context, m *entity.Malfunction) error {
	query := `
		INSERT INTO malfunctions (id, employee_id, place, description, status, created_at, resolved_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, m.ID, m.EmployeeID, m.Place, m.Description, string(m.Status), m.CreatedAt, m.ResolvedAt)
	if err != nil {
		if isForeignKeyViolation(err) || isInvalidText(err) {
			return domain.ErrNotFound
		}
		return domain.StorageErr("insert malfunction", err)
	}
	return nil
}

// GetByID nil, nil si no existe.
func (r *MalfunctionRepo) GetByID(ctx context.Context, id string) (*entity.Malfunction, error) {
	m, err := scanMalfunction(r.q.QueryRow(ctx, malfunctionSelect+` WHERE m.id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, domain.StorageErr("get malfunction", err)
	}
	return m, nil
}

// TransitionStatus UPDATE condicional al estado previo; false si ninguna fila coincide.
func (r *MalfunctionRepo) TransitionStatus(ctx context.Context, id string, from, to entity.MalfunctionStatus, resolvedAt *time.Time) (bool, error) {
	query := `
		UPDATE malfunctions
		SET status = $3, resolved_at = COALESCE($4, resolved_at)
		WHERE id = $1 AND status = $2`
	tag, err := r.q.Exec(ctx, query, id, string(from), string(to), resolvedAt)
	if err != nil {
		if isInvalidText(err) {
			return false, nil
		}
		return false, domain.StorageErr("update malfunction status", err)
	}
	return tag.RowsAffected() == 1, nil
}

// List más recientes primero. Limit 0 = sin límite.
func (r *MalfunctionRepo) List(ctx context.Context, filter repository.MalfunctionFilter) ([]*entity.Malfunction, error) {
	query := malfunctionSelect + `
		WHERE ($1 = '' OR m.place = $1)
		  AND ($2 = '' OR m.status = $2)
		  AND ($3::timestamptz IS NULL OR m.created_at >= $3)
		  AND ($4::timestamptz IS NULL OR m.created_at <= $4)
		ORDER BY m.created_at DESC, m.id DESC
		LIMIT NULLIF($5, 0) OFFSET $6`
	rows, err := r.q.Query(ctx, query, filter.Place, string(filter.Status), filter.From, filter.To, filter.Limit, filter.Offset)
	if err != nil {
		return nil, domain.StorageErr("list malfunctions", err)
	}
	defer rows.Close()

	var list []*entity.Malfunction
	for rows.Next() {
		m, err := scanMalfunction(rows)
		if err != nil {
			return nil, domain.StorageErr("scan malfunction", err)
		}
		list = append(list, m)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.StorageErr("list malfunctions", err)
	}
	return list, nil
}
