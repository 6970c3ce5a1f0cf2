package request

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is the currency all purchase orders are priced in
const DefaultCurrency = "DZD"

// PaymentStatus tracks finance reconciliation of a purchase order
type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "UNPAID"
	PaymentPaid   PaymentStatus = "PAID"
)

// IsValid checks if the payment status is known
func (p PaymentStatus) IsValid() bool {
	return p == PaymentUnpaid || p == PaymentPaid
}

// String returns the string representation
func (p PaymentStatus) String() string {
	return string(p)
}

// EmployeeSnapshot is an immutable copy of the employee identity taken at
// purchase order generation time. Later edits to the employee record must
// not alter issued purchase orders.
type EmployeeSnapshot struct {
	Code       string
	Name       string
	RegionCode string
	RegionName string
	OrgUnit    string
	Department string
}

// Finance is the priced purchase order block of a reserved request
type Finance struct {
	Nights           int
	PricePerNight    decimal.Decimal
	Total            decimal.Decimal
	Currency         string
	PONumber         string
	DocumentID       *uuid.UUID
	GeneratedAt      time.Time
	PaymentStatus    PaymentStatus
	PaymentDate      *time.Time
	PaymentReference string
	PaymentNote      string
	EmployeeSnapshot EmployeeSnapshot
	ParticipantCount int
}

// IsPaid reports whether the purchase order has been reconciled as paid
func (f *Finance) IsPaid() bool {
	return f.PaymentStatus == PaymentPaid
}
