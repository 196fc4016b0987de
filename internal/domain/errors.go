package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio. Cada uno identifica un tipo de fallo que el caller puede distinguir con errors.Is.
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrInvalidState      = errors.New("operación no permitida en el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrNoRation          = errors.New("no hay ración definida")
	ErrStorage           = errors.New("error de almacenamiento")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
)

// InsufficientStockError detalla el faltante de un débito rechazado.
type InsufficientStockError struct {
	FeedID    string
	Needed    decimal.Decimal
	Available decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para el alimento %s: se necesitan %s, disponibles %s",
		e.FeedID, e.Needed.String(), e.Available.String())
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// Shortfall devuelve cuánto falta para cubrir el débito.
func (e *InsufficientStockError) Shortfall() decimal.Decimal {
	return e.Needed.Sub(e.Available)
}

// ConfigurationError indica datos de catálogo ausentes (p. ej. especie sin ración).
type ConfigurationError struct {
	Species string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("no hay ración definida para la especie %q", e.Species)
}

func (e *ConfigurationError) Unwrap() error { return ErrNoRation }

// StateError indica que la operación no procede en el estado actual del recurso.
type StateError struct {
	Resource string
	Current  string
	Reason   string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%s en estado %s: %s", e.Resource, e.Current, e.Reason)
}

func (e *StateError) Unwrap() error { return ErrInvalidState }

// StorageErr envuelve un fallo del driver conservando ErrStorage y la causa original.
func StorageErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStorage, err)
}
