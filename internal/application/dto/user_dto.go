package dto

import "time"

// RegisterEmployeeRequest entrada para registrar un empleado (password en texto, se hashea en use case).
type RegisterEmployeeRequest struct {
	FullName string `json:"full_name" validate:"required,max=200"`
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
	Phone    string `json:"phone,omitempty"`
	Role     string `json:"role" validate:"required,oneof=admin director manager zootechnician"`
}

// EmployeeResponse salida de un empleado (sin password).
type EmployeeResponse struct {
	ID        string    `json:"id"`
	FullName  string    `json:"full_name"`
	Username  string    `json:"username"`
	Phone     string    `json:"phone,omitempty"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token y datos del empleado autenticado.
type LoginResponse struct {
	Token    string           `json:"token"`
	Employee EmployeeResponse `json:"employee"`
}
