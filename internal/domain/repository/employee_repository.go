package repository

import (
	"context"

	"github.com/jhoicas/zoo-api/internal/domain/entity"
)

// EmployeeRepository define el puerto de persistencia para Employee.
type EmployeeRepository interface {
	Create(ctx context.Context, employee *entity.Employee) error
	GetByID(ctx context.Context, id string) (*entity.Employee, error)
	FindByUsername(ctx context.Context, username string) (*entity.Employee, error)
}
