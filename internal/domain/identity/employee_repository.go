package identity

import (
	"context"

	"github.com/google/uuid"
)

// EmployeeRepository defines the persistence operations for employees
type EmployeeRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Employee, error)
	FindByCode(ctx context.Context, code string) (*Employee, error)
	FindAll(ctx context.Context) ([]Employee, error)
	Save(ctx context.Context, employee *Employee) error
}
