package entity

import "time"

// Roles válidos para Employee.
const (
	RoleAdmin         = "admin"
	RoleDirector      = "director"
	RoleManager       = "manager"
	RoleZootechnician = "zootechnician"
)

// Estados de un empleado.
const (
	EmployeeStatusActive   = "active"
	EmployeeStatusInactive = "inactive"
)

// Employee representa a un empleado con acceso al sistema.
type Employee struct {
	ID           string
	FullName     string
	Username     string
	PasswordHash string // bcrypt hash
	Phone        string
	Role         string
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsValidRole indica si role es uno de los roles conocidos.
func IsValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleDirector, RoleManager, RoleZootechnician:
		return true
	}
	return false
}
