package identity

import (
	"strings"

	"github.com/hrs/backend/internal/domain/shared"
)

// Role represents the workflow role of an employee account
type Role string

const (
	RoleEmployee Role = "EMPLOYEE"
	RoleManager  Role = "MANAGER"
	RoleAgent    Role = "AGENT"
	RoleFinance  Role = "FINANCE"
	RoleAdmin    Role = "ADMIN"
)

// IsValid checks if the role is one of the known workflow roles
func (r Role) IsValid() bool {
	switch r {
	case RoleEmployee, RoleManager, RoleAgent, RoleFinance, RoleAdmin:
		return true
	}
	return false
}

// String returns the string representation
func (r Role) String() string {
	return string(r)
}

// Employee represents a staff member who can file or process accommodation requests
type Employee struct {
	shared.BaseEntity
	Code        string // personnel number, unique
	FirstName   string
	LastName    string
	DisplayName string
	Email       string
	RegionCode  string // acronym of the organizational region, e.g. "DRGB"
	RegionName  string
	OrgUnit     string // cost imputation unit
	Department  string
	Role        Role
	Active      bool
}

// NewEmployee creates a new employee record
func NewEmployee(code, firstName, lastName, email, regionCode string, role Role) (*Employee, error) {
	if strings.TrimSpace(code) == "" {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Employee code is required")
	}
	if strings.TrimSpace(firstName) == "" && strings.TrimSpace(lastName) == "" {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Employee name is required")
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Invalid employee role")
	}

	e := &Employee{
		BaseEntity: shared.NewBaseEntity(),
		Code:       strings.TrimSpace(code),
		FirstName:  strings.TrimSpace(firstName),
		LastName:   strings.TrimSpace(lastName),
		Email:      strings.TrimSpace(email),
		RegionCode: strings.TrimSpace(regionCode),
		Role:       role,
		Active:     true,
	}
	e.DisplayName = e.FullName()
	return e, nil
}

// FullName returns the display name, derived from first and last name when unset
func (e *Employee) FullName() string {
	if e.DisplayName != "" {
		return e.DisplayName
	}
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

// AssignRegion attaches the employee to an organizational region
func (e *Employee) AssignRegion(code, name string) {
	e.RegionCode = code
	e.RegionName = name
}

// Deactivate marks the employee account as inactive
func (e *Employee) Deactivate() {
	e.Active = false
}
