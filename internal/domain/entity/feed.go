package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de alimento.
const (
	FeedTypeDry      = "DRY"      // seco
	FeedTypeWet      = "WET"      // húmedo
	FeedTypeCompound = "COMPOUND" // balanceado / compuesto
)

// DefaultFeedUnit unidad con la que se crean los alimentos si no se indica otra.
const DefaultFeedUnit = "kg"

// Feed representa un tipo de alimento y su existencia en bodega.
// Quantity solo la modifica el StockLedger y nunca baja de cero.
type Feed struct {
	ID        string
	Name      string
	Type      string
	Unit      string
	Quantity  decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// feedTypeAliases etiquetas históricas (formularios anteriores) aceptadas al crear alimentos.
var feedTypeAliases = map[string]string{
	"dry":       FeedTypeDry,
	"wet":       FeedTypeWet,
	"compound":  FeedTypeCompound,
	"сухой":     FeedTypeDry,
	"влажный":   FeedTypeWet,
	"комбикорм": FeedTypeCompound,
}

// ParseFeedType normaliza un tipo de alimento; ok=false si no es reconocido.
func ParseFeedType(s string) (string, bool) {
	t, ok := feedTypeAliases[strings.ToLower(strings.TrimSpace(s))]
	return t, ok
}
