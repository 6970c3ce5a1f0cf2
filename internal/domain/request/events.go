package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hrs/backend/internal/domain/shared"
)

// Event types for the request aggregate
const (
	EventRequestCreated      = "request.created"
	EventManagerApproved     = "request.manager_approved"
	EventManagerRejected     = "request.manager_rejected"
	EventReservationAssigned = "request.reservation_assigned"
	EventPaymentRecorded     = "request.payment_recorded"
)

const aggregateType = "Request"

// RequestCreatedEvent is raised when an employee files a request
type RequestCreatedEvent struct {
	shared.BaseDomainEvent
	ActorID     uuid.UUID `json:"actor_id"`
	EmployeeID  uuid.UUID `json:"employee_id"`
	RegionCode  string    `json:"region_code"`
	Destination string    `json:"destination"`
}

// NewRequestCreatedEvent creates a new request created event. The filing
// employee is the actor.
func NewRequestCreatedEvent(r *Request) *RequestCreatedEvent {
	return &RequestCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventRequestCreated, aggregateType, r.ID),
		ActorID:         r.EmployeeID,
		EmployeeID:      r.EmployeeID,
		RegionCode:      r.RegionCode,
		Destination:     r.Destination,
	}
}

// ManagerDecisionEvent is raised when a line manager approves or rejects
type ManagerDecisionEvent struct {
	shared.BaseDomainEvent
	ActorID  uuid.UUID `json:"actor_id"`
	Approved bool      `json:"approved"`
	Comment  string    `json:"comment,omitempty"`
}

// NewManagerDecisionEvent creates a new manager decision event
func NewManagerDecisionEvent(r *Request, approved bool) *ManagerDecisionEvent {
	eventType := EventManagerRejected
	if approved {
		eventType = EventManagerApproved
	}
	e := &ManagerDecisionEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, aggregateType, r.ID),
		Approved:        approved,
	}
	if r.Decision != nil {
		e.ActorID = r.Decision.DecidedBy
		e.Comment = r.Decision.Comment
	}
	return e
}

// ReservationAssignedEvent is raised when the agent confirms a booking
// and the purchase order is issued
type ReservationAssignedEvent struct {
	shared.BaseDomainEvent
	ActorID  uuid.UUID       `json:"actor_id"`
	HotelID  uuid.UUID       `json:"hotel_id"`
	PONumber string          `json:"po_number"`
	Total    decimal.Decimal `json:"total"`
	Formula  string          `json:"formula"`
}

// NewReservationAssignedEvent creates a new reservation assigned event
func NewReservationAssignedEvent(r *Request) *ReservationAssignedEvent {
	e := &ReservationAssignedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventReservationAssigned, aggregateType, r.ID),
	}
	if r.Reservation != nil {
		e.ActorID = r.Reservation.ReservedBy
		e.HotelID = r.Reservation.HotelID
		e.Formula = r.Reservation.Formula.String()
	}
	if r.Finance != nil {
		e.PONumber = r.Finance.PONumber
		e.Total = r.Finance.Total
	}
	return e
}

// PaymentRecordedEvent is raised when finance reconciles a purchase order
type PaymentRecordedEvent struct {
	shared.BaseDomainEvent
	ActorID       uuid.UUID `json:"actor_id"`
	PONumber      string    `json:"po_number"`
	PaymentStatus string    `json:"payment_status"`
}

// NewPaymentRecordedEvent creates a new payment recorded event
func NewPaymentRecordedEvent(r *Request, recordedBy uuid.UUID) *PaymentRecordedEvent {
	e := &PaymentRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventPaymentRecorded, aggregateType, r.ID),
		ActorID:         recordedBy,
	}
	if r.Finance != nil {
		e.PONumber = r.Finance.PONumber
		e.PaymentStatus = r.Finance.PaymentStatus.String()
	}
	return e
}
