package models

import (
	"github.com/hrs/backend/internal/domain/identity"
)

// EmployeeModel is the persistence model for employees
type EmployeeModel struct {
	BaseModel
	Code        string `gorm:"size:32;not null;uniqueIndex"`
	FirstName   string `gorm:"size:128"`
	LastName    string `gorm:"size:128"`
	DisplayName string `gorm:"size:255"`
	Email       string `gorm:"size:255;index"`
	RegionCode  string `gorm:"size:16;index"`
	RegionName  string `gorm:"size:255"`
	OrgUnit     string `gorm:"size:64"`
	Department  string `gorm:"size:128"`
	Role        string `gorm:"size:32;not null"`
	Active      bool   `gorm:"not null;default:true"`
}

// TableName specifies the table name
func (EmployeeModel) TableName() string {
	return "employees"
}

// ToDomain converts the persistence model to the domain entity
func (m *EmployeeModel) ToDomain() *identity.Employee {
	e := &identity.Employee{
		Code:        m.Code,
		FirstName:   m.FirstName,
		LastName:    m.LastName,
		DisplayName: m.DisplayName,
		Email:       m.Email,
		RegionCode:  m.RegionCode,
		RegionName:  m.RegionName,
		OrgUnit:     m.OrgUnit,
		Department:  m.Department,
		Role:        identity.Role(m.Role),
		Active:      m.Active,
	}
	e.BaseEntity = m.BaseModel.ToDomain()
	return e
}

// FromDomain populates the persistence model from the domain entity
func (m *EmployeeModel) FromDomain(e *identity.Employee) {
	m.FromDomainBaseEntity(e.BaseEntity)
	m.Code = e.Code
	m.FirstName = e.FirstName
	m.LastName = e.LastName
	m.DisplayName = e.DisplayName
	m.Email = e.Email
	m.RegionCode = e.RegionCode
	m.RegionName = e.RegionName
	m.OrgUnit = e.OrgUnit
	m.Department = e.Department
	m.Role = e.Role.String()
	m.Active = e.Active
}
