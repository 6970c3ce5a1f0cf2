package request

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Filter narrows request listings
type Filter struct {
	Status     *Status
	RegionCode string
	EmployeeID *uuid.UUID
	Search     string
	Page       int
	PageSize   int
}

// ExportFilter narrows the purchase order export
type ExportFilter struct {
	PaymentStatus *PaymentStatus
	RegionCode    string
	From          *time.Time
	To            *time.Time
}

// Repository defines the persistence operations for requests
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Request, error)
	FindAll(ctx context.Context, filter Filter) ([]Request, error)
	Count(ctx context.Context, filter Filter) (int64, error)
	// FindReserved returns reserved requests carrying an issued purchase
	// order, for finance listings and exports
	FindReserved(ctx context.Context, filter ExportFilter) ([]Request, error)
	Save(ctx context.Context, r *Request) error
	// SaveWithLock persists with an optimistic version check. A stale
	// version yields CONCURRENCY_CONFLICT; a purchase order number
	// collision yields DUPLICATE_NUMBER.
	SaveWithLock(ctx context.Context, r *Request) error
	// NextPONumber allocates the next purchase order number for the
	// given year, in the form PO-YYYY-NNNNN
	NextPONumber(ctx context.Context, year int) (string, error)
}
