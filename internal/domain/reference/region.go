package reference

import (
	"strings"

	"github.com/hrs/backend/internal/domain/shared"
)

// RegionKind distinguishes head office from regional structures
type RegionKind string

const (
	RegionHeadOffice RegionKind = "HEAD_OFFICE"
	RegionRegional   RegionKind = "REGIONAL_DIRECTORATE"
	RegionDirectorate RegionKind = "DIRECTORATE"
)

// IsValid checks if the kind is known
func (k RegionKind) IsValid() bool {
	switch k {
	case RegionHeadOffice, RegionRegional, RegionDirectorate:
		return true
	}
	return false
}

// Region represents an organizational region used to scope approvals
type Region struct {
	shared.BaseEntity
	Code string // acronym, unique, e.g. "DRGB"
	Name string
	Kind RegionKind
}

// NewRegion creates a new region record
func NewRegion(code, name string, kind RegionKind) (*Region, error) {
	if strings.TrimSpace(code) == "" {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Region code is required")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Region name is required")
	}
	if !kind.IsValid() {
		kind = RegionDirectorate
	}
	return &Region{
		BaseEntity: shared.NewBaseEntity(),
		Code:       strings.ToUpper(strings.TrimSpace(code)),
		Name:       strings.TrimSpace(name),
		Kind:       kind,
	}, nil
}
