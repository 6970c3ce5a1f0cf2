package workflow

import (
	"time"

	"github.com/google/uuid"

	"github.com/hrs/backend/internal/domain/request"
)

// Actor identifies who is performing a workflow operation
type Actor struct {
	ID     uuid.UUID
	Region string
	Role   string
}

// SuggestedHotelInput is the employee's accommodation wish
type SuggestedHotelInput struct {
	Name  string `json:"name"`
	City  string `json:"city"`
	Notes string `json:"notes"`
}

// CreateRequestInput carries a new accommodation request
type CreateRequestInput struct {
	EmployeeID    uuid.UUID            `json:"employee_id"`
	Destination   string               `json:"destination"`
	City          string               `json:"city"`
	Country       string               `json:"country"`
	StartDate     time.Time            `json:"start_date"`
	EndDate       time.Time            `json:"end_date"`
	Motive        string               `json:"motive"`
	ExtraRequests string               `json:"extra_requests"`
	Suggested     *SuggestedHotelInput `json:"suggested_hotel"`
	Participants  []uuid.UUID          `json:"participants"`
	Attachments   []string             `json:"attachments"`
}

// DecisionInput carries a line manager verdict
type DecisionInput struct {
	Approved bool   `json:"approved"`
	Comment  string `json:"comment"`
}

// ReservationInput carries the booking confirmed by the logistics agent.
// Final dates default to the requested stay dates when omitted.
type ReservationInput struct {
	HotelID   uuid.UUID                  `json:"hotel_id"`
	Formula   string                     `json:"formula"`
	RoomType  string                     `json:"room_type"`
	StartDate *time.Time                 `json:"start_date"`
	EndDate   *time.Time                 `json:"end_date"`
	Comment   string                     `json:"comment"`
	Options   request.ReservationOptions `json:"options"`
}

// PaymentInput carries a finance reconciliation update
type PaymentInput struct {
	Status      string     `json:"status"`
	PaymentDate *time.Time `json:"payment_date"`
	Reference   string     `json:"reference"`
	Note        string     `json:"note"`
}

// ListFilter narrows request listings
type ListFilter struct {
	Status     string
	RegionCode string
	EmployeeID *uuid.UUID
	Search     string
	Page       int
	PageSize   int
}
