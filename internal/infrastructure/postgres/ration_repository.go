package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/zoo-api/internal/domain"
	"github.com/jhoicas/zoo-api/internal/domain/entity"
	"github.com/jhoicas/zoo-api/internal/domain/repository"
)

var (
	_ repository.RationRepository = (*RationRepo)(nil)
	_ repository.AnimalRepository = (*AnimalRepo)(nil)
)

// RationRepo catálogo de raciones (una por especie, índice único rations_species_uidx).
type RationRepo struct {
	q Querier
}

// NewRationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRationRepository(q Querier) *RationRepo {
	return &RationRepo{q: q}
}

const rationColumns = `id, feed_id, species, amount, frequency, created_at`

func scanRation(row pgx.Row) (*entity.Ration, error) {
	var ra entity.Ration
	if err := row.Scan(&ra.ID, &ra.FeedID, &ra.Species, &ra.Amount, &ra.Frequency, &ra.CreatedAt); err != nil {
		return nil, err
	}
	return &ra, nil
}

// GetBySpecies nil, nil si la especie no tiene ración.
func (r *RationRepo) GetBySpecies(ctx context.Context, species string) (*entity.Ration, error) {
	ra, err := scanRation(r.q.QueryRow(ctx, `SELECT `+rationColumns+` FROM rations WHERE species = $1`, species))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, domain.StorageErr("get ration", err)
	}
	return ra, nil
}

// Upsert crea la ración o reemplaza alimento, cantidad y frecuencia de la especie.
func (r *RationRepo) Upsert(ctx context.Context, ration *entity.Ration) error {
	query := `
		INSERT INTO rations (id, feed_id, species, amount, frequency, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (species)
		DO UPDATE SET feed_id = EXCLUDED.feed_id, amount = EXCLUDED.amount, frequency = EXCLUDED.frequency`
	_, err := r.q.Exec(ctx, query, ration.ID, ration.FeedID, ration.Species, ration.Amount, ration.Frequency, ration.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) || isInvalidText(err) {
			return domain.ErrNotFound
		}
		return domain.StorageErr("upsert ration", err)
	}
	return nil
}

// Delete elimina la ración; domain.ErrNotFound si no existe.
func (r *RationRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM rations WHERE id = $1`, id)
	if err != nil {
		if isInvalidText(err) {
			return domain.ErrNotFound
		}
		return domain.StorageErr("delete ration", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List raciones ordenadas por especie.
func (r *RationRepo) List(ctx context.Context) ([]*entity.Ration, error) {
	rows, err := r.q.Query(ctx, `SELECT `+rationColumns+` FROM rations ORDER BY species`)
	if err != nil {
		return nil, domain.StorageErr("list rations", err)
	}
	defer rows.Close()
	var list []*entity.Ration
	for rows.Next() {
		ra, err := scanRation(rows)
		if err != nil {
			return nil, domain.StorageErr("scan ration", err)
		}
		list = append(list, ra)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.StorageErr("list rations", err)
	}
	return list, nil
}

// AnimalRepo lectura de animales; el alta vive en otro sistema.
type AnimalRepo struct {
	q Querier
}

// NewAnimalRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAnimalRepository(q Querier) *AnimalRepo {
	return &AnimalRepo{q: q}
}

// GetByID nil, nil si no existe.
func (r *AnimalRepo) GetByID(ctx context.Context, id string) (*entity.Animal, error) {
	var a entity.Animal
	err := r.q.QueryRow(ctx, `SELECT id, name, species, status FROM animals WHERE id = $1`, id).
		Scan(&a.ID, &a.Name, &a.Species, &a.Status)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, domain.StorageErr("get animal", err)
	}
	return &a, nil
}
