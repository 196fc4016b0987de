package postgres

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier operaciones comunes a *pgxpool.Pool y pgx.Tx: los repos funcionan igual dentro y fuera de una tx.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

//go:embed schema.sql
var schemaSQL string

// Migrate aplica schema.sql (idempotente).
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("aplicar schema: %w", err)
	}
	return nil
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	return hasCode(err, "23505")
}

// isForeignKeyViolation la fila referenciada no existe (23503).
func isForeignKeyViolation(err error) bool {
	return hasCode(err, "23503")
}

// isLockTimeout venció lock_timeout esperando un FOR UPDATE (55P03).
func isLockTimeout(err error) bool {
	return hasCode(err, "55P03")
}

// isInvalidText el valor no se pudo convertir al tipo de la columna (22P02), p. ej. un id que no es UUID.
func isInvalidText(err error) bool {
	return hasCode(err, "22P02")
}

// isNoRows la búsqueda por id no encontró fila; un id mal formado cuenta como inexistente.
func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows) || isInvalidText(err)
}

func hasCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	return strings.Contains(err.Error(), code)
}

// nullIfEmpty convierte "" en NULL para columnas UUID opcionales.
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

const dateLayout = "2006-01-02"

// dateArg envía el día calendario UTC como texto; un time.Time pasaría como timestamptz
// y el cast ::date dependería de la zona horaria de la sesión.
func dateArg(t *time.Time) *string {
	if t == nil {
		return nil
	}
	d := t.UTC().Format(dateLayout)
	return &d
}
