package request

import (
	"github.com/hrs/backend/internal/domain/identity"
)

// BuildEmployeeSnapshot freezes the employee identity for an issued
// purchase order
func BuildEmployeeSnapshot(e *identity.Employee) EmployeeSnapshot {
	return EmployeeSnapshot{
		Code:       e.Code,
		Name:       e.FullName(),
		RegionCode: e.RegionCode,
		RegionName: e.RegionName,
		OrgUnit:    e.OrgUnit,
		Department: e.Department,
	}
}
