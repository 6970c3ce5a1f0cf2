package request

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hrs/backend/internal/domain/reference"
	"github.com/hrs/backend/internal/domain/shared"
)

// SuggestedHotel carries the accommodation the employee asked for.
// It is a free-text wish, not a reference to the hotel catalog.
type SuggestedHotel struct {
	Name  string
	City  string
	Notes string
}

// ManagerDecision records the line manager's verdict on a request
type ManagerDecision struct {
	Approved  bool
	Comment   string
	DecidedBy uuid.UUID
	DecidedAt time.Time
}

// ReservationOptions are the booking conditions granted by the agent
type ReservationOptions struct {
	AllowCancellation bool
	AllowHotelChange  bool
	LateReservation   bool
	PostStayEntry     bool
}

// Reservation is the booking the logistics agent confirmed against the
// hotel catalog
type Reservation struct {
	HotelID    uuid.UUID
	Formula    reference.Formula
	RoomType   string
	StartDate  time.Time
	EndDate    time.Time
	Comment    string
	Options    ReservationOptions
	ReservedBy uuid.UUID
	ReservedAt time.Time
}

// Request is the aggregate root of the accommodation approval workflow
type Request struct {
	shared.BaseAggregateRoot
	EmployeeID    uuid.UUID
	RegionCode    string
	Participants  []uuid.UUID
	Suggested     SuggestedHotel
	Destination   string
	City          string
	Country       string
	StartDate     time.Time
	EndDate       time.Time
	Motive        string
	ExtraRequests string
	Attachments   []string
	Status        Status
	Decision      *ManagerDecision
	Reservation   *Reservation
	Finance       *Finance
}

// NewRequest files a new accommodation request on behalf of an employee.
// The region code is inherited from the employee record and pins the
// request to that approval chain.
func NewRequest(employeeID uuid.UUID, regionCode, destination, city, country string, startDate, endDate time.Time, motive string) (*Request, error) {
	if employeeID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Employee is required")
	}
	if len(strings.TrimSpace(destination)) < 2 {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Destination must be at least 2 characters")
	}
	if endDate.Before(startDate) {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "End date cannot be before start date")
	}
	if country == "" {
		country = "Algérie"
	}

	r := &Request{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		EmployeeID:        employeeID,
		RegionCode:        regionCode,
		Destination:       strings.TrimSpace(destination),
		City:              strings.TrimSpace(city),
		Country:           country,
		StartDate:         startDate,
		EndDate:           endDate,
		Motive:            strings.TrimSpace(motive),
		Status:            StatusAwaitingManager,
	}

	r.AddDomainEvent(NewRequestCreatedEvent(r))
	return r, nil
}

// SetSuggestedHotel records the employee's accommodation wish
func (r *Request) SetSuggestedHotel(s SuggestedHotel) {
	r.Suggested = s
}

// SetParticipants records accompanying employees. The filing employee is
// never part of this list.
func (r *Request) SetParticipants(ids []uuid.UUID) {
	r.Participants = ids
}

// AddAttachment registers a supporting document reference
func (r *Request) AddAttachment(ref string) {
	if strings.TrimSpace(ref) == "" {
		return
	}
	r.Attachments = append(r.Attachments, ref)
}

// ParticipantCount returns the number of travellers including the filing
// employee
func (r *Request) ParticipantCount() int {
	return len(r.Participants) + 1
}

// Decide applies the line manager's verdict. The manager must belong to
// the same region as the request.
func (r *Request) Decide(approved bool, comment string, managerID uuid.UUID, managerRegion string) error {
	if !strings.EqualFold(r.RegionCode, managerRegion) {
		return shared.ErrRegionMismatch
	}

	target := StatusRejected
	if approved {
		target = StatusAwaitingReservation
	}
	if !r.Status.CanTransitionTo(target) {
		return transitionError(r.Status, target)
	}

	r.Decision = &ManagerDecision{
		Approved:  approved,
		Comment:   strings.TrimSpace(comment),
		DecidedBy: managerID,
		DecidedAt: time.Now(),
	}
	r.Status = target
	r.IncrementVersion()
	r.AddDomainEvent(NewManagerDecisionEvent(r, approved))
	return nil
}

// ApplyReservation attaches a confirmed booking together with its priced
// finance block. Re-applying on a RESERVED request replaces the booking
// and re-prices it while keeping the payment reconciliation fields.
func (r *Request) ApplyReservation(res Reservation, quote Quote, poNumber string, snapshot EmployeeSnapshot) error {
	if !r.Status.CanTransitionTo(StatusReserved) {
		return transitionError(r.Status, StatusReserved)
	}
	if res.HotelID == uuid.Nil {
		return shared.ErrInvalidHotel
	}
	if res.EndDate.Before(res.StartDate) {
		return shared.NewDomainError(shared.CodeInvalidInput, "Reservation end date cannot be before start date")
	}

	fin := &Finance{
		Nights:           quote.Nights,
		PricePerNight:    quote.PricePerNight,
		Total:            quote.Total,
		Currency:         DefaultCurrency,
		PONumber:         poNumber,
		GeneratedAt:      time.Now(),
		PaymentStatus:    PaymentUnpaid,
		EmployeeSnapshot: snapshot,
		ParticipantCount: r.ParticipantCount(),
	}
	if r.Finance != nil {
		fin.PaymentStatus = r.Finance.PaymentStatus
		fin.PaymentDate = r.Finance.PaymentDate
		fin.PaymentReference = r.Finance.PaymentReference
		fin.PaymentNote = r.Finance.PaymentNote
	}

	r.Reservation = &res
	r.Finance = fin
	r.Status = StatusReserved
	r.IncrementVersion()
	r.AddDomainEvent(NewReservationAssignedEvent(r))
	return nil
}

// AttachDocument links the stored purchase order document to the finance
// block. The document is generated after pricing, so finance must exist.
func (r *Request) AttachDocument(documentID uuid.UUID) error {
	if r.Finance == nil {
		return shared.ErrMissingFinanceData
	}
	r.Finance.DocumentID = &documentID
	return nil
}

// RecordPayment reconciles the purchase order payment state. Only
// reserved requests with an issued purchase order can be reconciled.
// The recording finance user is carried on the emitted event.
func (r *Request) RecordPayment(status PaymentStatus, paymentDate *time.Time, reference, note string, recordedBy uuid.UUID) error {
	if r.Status != StatusReserved {
		return transitionError(r.Status, StatusReserved)
	}
	if r.Finance == nil || r.Finance.PONumber == "" {
		return shared.ErrMissingFinanceData
	}
	if !status.IsValid() {
		return shared.NewDomainError(shared.CodeInvalidInput, "Invalid payment status")
	}

	r.Finance.PaymentStatus = status
	r.Finance.PaymentReference = strings.TrimSpace(reference)
	r.Finance.PaymentNote = strings.TrimSpace(note)
	switch status {
	case PaymentPaid:
		if paymentDate != nil {
			r.Finance.PaymentDate = paymentDate
		} else if r.Finance.PaymentDate == nil {
			now := time.Now()
			r.Finance.PaymentDate = &now
		}
	case PaymentUnpaid:
		r.Finance.PaymentDate = paymentDate
	}
	r.IncrementVersion()
	r.AddDomainEvent(NewPaymentRecordedEvent(r, recordedBy))
	return nil
}

// StayStart returns the effective stay start, preferring the confirmed
// booking dates over the requested ones
func (r *Request) StayStart() time.Time {
	if r.Reservation != nil && !r.Reservation.StartDate.IsZero() {
		return r.Reservation.StartDate
	}
	return r.StartDate
}

// StayEnd returns the effective stay end
func (r *Request) StayEnd() time.Time {
	if r.Reservation != nil && !r.Reservation.EndDate.IsZero() {
		return r.Reservation.EndDate
	}
	return r.EndDate
}

func transitionError(from, to Status) error {
	return shared.NewDomainError(shared.CodeInvalidTransition,
		fmt.Sprintf("Cannot transition request from %s to %s", from, to))
}
