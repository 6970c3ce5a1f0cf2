package handler

import (
	"time"

	"github.com/google/uuid"

	"github.com/hrs/backend/internal/domain/request"
)

// SuggestedHotelResponse is the employee's accommodation wish
type SuggestedHotelResponse struct {
	Name  string `json:"name,omitempty"`
	City  string `json:"city,omitempty"`
	Notes string `json:"notes,omitempty"`
}

// DecisionResponse is the line manager verdict
type DecisionResponse struct {
	Approved  bool      `json:"approved"`
	Comment   string    `json:"comment,omitempty"`
	DecidedBy uuid.UUID `json:"decided_by"`
	DecidedAt time.Time `json:"decided_at"`
}

// ReservationResponse is the confirmed booking
type ReservationResponse struct {
	HotelID    uuid.UUID                  `json:"hotel_id"`
	Formula    string                     `json:"formula"`
	RoomType   string                     `json:"room_type,omitempty"`
	StartDate  time.Time                  `json:"start_date"`
	EndDate    time.Time                  `json:"end_date"`
	Comment    string                     `json:"comment,omitempty"`
	Options    request.ReservationOptions `json:"options"`
	ReservedBy uuid.UUID                  `json:"reserved_by"`
	ReservedAt time.Time                  `json:"reserved_at"`
}

// EmployeeSnapshotResponse is the identity copy frozen into the purchase order
type EmployeeSnapshotResponse struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	RegionCode string `json:"region_code,omitempty"`
	RegionName string `json:"region_name,omitempty"`
	OrgUnit    string `json:"org_unit,omitempty"`
	Department string `json:"department,omitempty"`
}

// FinanceResponse is the priced purchase order block
type FinanceResponse struct {
	Nights           int                      `json:"nights"`
	PricePerNight    string                   `json:"price_per_night"`
	Total            string                   `json:"total"`
	Currency         string                   `json:"currency"`
	PONumber         string                   `json:"po_number"`
	DocumentID       *uuid.UUID               `json:"document_id,omitempty"`
	GeneratedAt      time.Time                `json:"generated_at"`
	PaymentStatus    string                   `json:"payment_status"`
	PaymentDate      *time.Time               `json:"payment_date,omitempty"`
	PaymentReference string                   `json:"payment_reference,omitempty"`
	PaymentNote      string                   `json:"payment_note,omitempty"`
	EmployeeSnapshot EmployeeSnapshotResponse `json:"employee_snapshot"`
	ParticipantCount int                      `json:"participant_count"`
}

// RequestResponse is the full accommodation request representation
type RequestResponse struct {
	ID            uuid.UUID               `json:"id"`
	EmployeeID    uuid.UUID               `json:"employee_id"`
	RegionCode    string                  `json:"region_code"`
	Participants  []uuid.UUID             `json:"participants,omitempty"`
	Suggested     *SuggestedHotelResponse `json:"suggested_hotel,omitempty"`
	Destination   string                  `json:"destination"`
	City          string                  `json:"city,omitempty"`
	Country       string                  `json:"country"`
	StartDate     time.Time               `json:"start_date"`
	EndDate       time.Time               `json:"end_date"`
	Motive        string                  `json:"motive,omitempty"`
	ExtraRequests string                  `json:"extra_requests,omitempty"`
	Attachments   []string                `json:"attachments,omitempty"`
	Status        string                  `json:"status"`
	Decision      *DecisionResponse       `json:"decision,omitempty"`
	Reservation   *ReservationResponse    `json:"reservation,omitempty"`
	Finance       *FinanceResponse        `json:"finance,omitempty"`
	Version       int                     `json:"version"`
	CreatedAt     time.Time               `json:"created_at"`
	UpdatedAt     time.Time               `json:"updated_at"`
}

// toRequestResponse maps the aggregate to its API representation
func toRequestResponse(r *request.Request) RequestResponse {
	resp := RequestResponse{
		ID:            r.ID,
		EmployeeID:    r.EmployeeID,
		RegionCode:    r.RegionCode,
		Participants:  r.Participants,
		Destination:   r.Destination,
		City:          r.City,
		Country:       r.Country,
		StartDate:     r.StartDate,
		EndDate:       r.EndDate,
		Motive:        r.Motive,
		ExtraRequests: r.ExtraRequests,
		Attachments:   r.Attachments,
		Status:        r.Status.String(),
		Version:       r.Version,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}

	if r.Suggested.Name != "" || r.Suggested.City != "" || r.Suggested.Notes != "" {
		resp.Suggested = &SuggestedHotelResponse{
			Name:  r.Suggested.Name,
			City:  r.Suggested.City,
			Notes: r.Suggested.Notes,
		}
	}

	if r.Decision != nil {
		resp.Decision = &DecisionResponse{
			Approved:  r.Decision.Approved,
			Comment:   r.Decision.Comment,
			DecidedBy: r.Decision.DecidedBy,
			DecidedAt: r.Decision.DecidedAt,
		}
	}

	if r.Reservation != nil {
		resp.Reservation = &ReservationResponse{
			HotelID:    r.Reservation.HotelID,
			Formula:    r.Reservation.Formula.String(),
			RoomType:   r.Reservation.RoomType,
			StartDate:  r.Reservation.StartDate,
			EndDate:    r.Reservation.EndDate,
			Comment:    r.Reservation.Comment,
			Options:    r.Reservation.Options,
			ReservedBy: r.Reservation.ReservedBy,
			ReservedAt: r.Reservation.ReservedAt,
		}
	}

	if r.Finance != nil {
		resp.Finance = &FinanceResponse{
			Nights:           r.Finance.Nights,
			PricePerNight:    r.Finance.PricePerNight.String(),
			Total:            r.Finance.Total.String(),
			Currency:         r.Finance.Currency,
			PONumber:         r.Finance.PONumber,
			DocumentID:       r.Finance.DocumentID,
			GeneratedAt:      r.Finance.GeneratedAt,
			PaymentStatus:    r.Finance.PaymentStatus.String(),
			PaymentDate:      r.Finance.PaymentDate,
			PaymentReference: r.Finance.PaymentReference,
			PaymentNote:      r.Finance.PaymentNote,
			EmployeeSnapshot: EmployeeSnapshotResponse{
				Code:       r.Finance.EmployeeSnapshot.Code,
				Name:       r.Finance.EmployeeSnapshot.Name,
				RegionCode: r.Finance.EmployeeSnapshot.RegionCode,
				RegionName: r.Finance.EmployeeSnapshot.RegionName,
				OrgUnit:    r.Finance.EmployeeSnapshot.OrgUnit,
				Department: r.Finance.EmployeeSnapshot.Department,
			},
			ParticipantCount: r.Finance.ParticipantCount,
		}
	}

	return resp
}

// toRequestResponses maps a request slice to API representations
func toRequestResponses(reqs []request.Request) []RequestResponse {
	out := make([]RequestResponse, len(reqs))
	for i := range reqs {
		out[i] = toRequestResponse(&reqs[i])
	}
	return out
}
