package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hrs/backend/internal/domain/identity"
	"github.com/hrs/backend/internal/domain/shared"
	"github.com/hrs/backend/internal/infrastructure/persistence/models"
)

// GormEmployeeRepository implements identity.EmployeeRepository using GORM
type GormEmployeeRepository struct {
	db *gorm.DB
}

// NewGormEmployeeRepository creates a new GormEmployeeRepository
func NewGormEmployeeRepository(db *gorm.DB) *GormEmployeeRepository {
	return &GormEmployeeRepository{db: db}
}

// FindByID finds an employee by ID
func (r *GormEmployeeRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Employee, error) {
	var model models.EmployeeModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCode finds an employee by employee code
func (r *GormEmployeeRepository) FindByCode(ctx context.Context, code string) (*identity.Employee, error) {
	var model models.EmployeeModel
	if err := r.db.WithContext(ctx).First(&model, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll lists all employees ordered by code
func (r *GormEmployeeRepository) FindAll(ctx context.Context) ([]identity.Employee, error) {
	var employeeModels []models.EmployeeModel
	if err := r.db.WithContext(ctx).Order("code ASC").Find(&employeeModels).Error; err != nil {
		return nil, err
	}
	employees := make([]identity.Employee, len(employeeModels))
	for i, model := range employeeModels {
		employees[i] = *model.ToDomain()
	}
	return employees, nil
}

// Save creates or updates an employee
func (r *GormEmployeeRepository) Save(ctx context.Context, employee *identity.Employee) error {
	var model models.EmployeeModel
	model.FromDomain(employee)
	return r.db.WithContext(ctx).Save(&model).Error
}
