package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/zoo-api/internal/domain"
	"github.com/jhoicas/zoo-api/internal/domain/entity"
	"github.com/jhoicas/zoo-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.FeedRepository = (*FeedRepo)(nil)

// FeedRepo implementación de FeedRepository sobre PostgreSQL (usable con pool o tx).
type FeedRepo struct {
	q Querier
}

// NewFeedRepository construye el adaptador de alimentos. Pasar pool o tx (Querier).
func NewFeedRepository(q Querier) *FeedRepo {
	return &FeedRepo{q: q}
}

const feedColumns = `id, name, type, unit, quantity, created_at, updated_at`

func scanFeed(row pgx.Row) (*entity.Feed, error) {
	var f entity.Feed
	if err := row.Scan(&f.ID, &f.Name, &f.Type, &f.Unit, &f.Quantity, &f.CreatedAt, &f.UpdatedAt); err != nil {
		return nil, err
	}
	return &f, nil
}

// Create persiste un alimento nuevo.
func (r *FeedRepo) Create(ctx context.Context, feed *entity.Feed) error {
	query := `
		INSERT INTO feeds (id, name, type, unit, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, feed.ID, feed.Name, feed.Type, feed.Unit, feed.Quantity, feed.CreatedAt, feed.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return domain.StorageErr("insert feed", err)
	}
	return nil
}

// GetByID obtiene un alimento; nil, nil si no existe.
func (r *FeedRepo) GetByID(ctx context.Context, id string) (*entity.Feed, error) {
	f, err := scanFeed(r.q.QueryRow(ctx, `SELECT `+feedColumns+` FROM feeds WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, domain.StorageErr("get feed", err)
	}
	return f, nil
}

// GetForUpdate obtiene el alimento y bloquea la fila hasta el fin de la tx (SELECT FOR UPDATE).
func (r *FeedRepo) GetForUpdate(ctx context.Context, id string) (*entity.Feed, error) {
	f, err := scanFeed(r.q.QueryRow(ctx, `SELECT `+feedColumns+` FROM feeds WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, domain.StorageErr("get feed for update", err)
	}
	return f, nil
}

// AddQuantity suma delta en un solo UPDATE y devuelve la existencia resultante.
func (r *FeedRepo) AddQuantity(ctx context.Context, id string, delta decimal.Decimal) (decimal.Decimal, error) {
	query := `
		UPDATE feeds SET quantity = quantity + $2, updated_at = now()
		WHERE id = $1
		RETURNING quantity`
	var balance decimal.Decimal
	if err := r.q.QueryRow(ctx, query, id, delta).Scan(&balance); err != nil {
		if isNoRows(err) {
			return decimal.Zero, domain.ErrNotFound
		}
		return decimal.Zero, domain.StorageErr("add feed quantity", err)
	}
	return balance, nil
}

// SetQuantity fija la existencia. El CHECK (quantity >= 0) de la tabla es la última barrera.
func (r *FeedRepo) SetQuantity(ctx context.Context, id string, quantity decimal.Decimal) error {
	tag, err := r.q.Exec(ctx, `UPDATE feeds SET quantity = $2, updated_at = now() WHERE id = $1`, id, quantity)
	if err != nil {
		if isInvalidText(err) {
			return domain.ErrNotFound
		}
		return domain.StorageErr("set feed quantity", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista alimentos por nombre, opcionalmente filtrados por tipo.
func (r *FeedRepo) List(ctx context.Context, filter repository.FeedFilter) ([]*entity.Feed, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+feedColumns+` FROM feeds
		WHERE ($1 = '' OR type = $1)
		ORDER BY name`, filter.Type)
	if err != nil {
		return nil, domain.StorageErr("list feeds", err)
	}
	defer rows.Close()

	var list []*entity.Feed
	for rows.Next() {
		f, err := scanFeed(rows)
		if err != nil {
			return nil, domain.StorageErr("scan feed", err)
		}
		list = append(list, f)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.StorageErr("list feeds", err)
	}
	return list, nil
}
