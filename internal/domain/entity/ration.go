package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultRationFrequency frecuencia asignada cuando el formulario no la informa.
const DefaultRationFrequency = "2 times a day"

// Ration requerimiento de alimentación por especie: qué alimento, cuánto por toma y con qué frecuencia.
// Solo se edita por acción explícita de administración.
type Ration struct {
	ID        string
	FeedID    string
	Species   string
	Amount    decimal.Decimal
	Frequency string
	CreatedAt time.Time
}
