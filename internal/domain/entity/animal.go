package entity

// Estados de un animal.
const (
	AnimalStatusActive   = "ACTIVE"
	AnimalStatusInactive = "INACTIVE"
)

// Animal datos mínimos que consume el motor de alimentación. El CRUD completo vive fuera del núcleo.
type Animal struct {
	ID      string
	Name    string
	Species string
	Status  string
}

// IsActive indica si el animal puede recibir alimentación.
func (a *Animal) IsActive() bool {
	return a.Status == AnimalStatusActive
}
