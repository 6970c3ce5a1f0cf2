package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hrs/backend/internal/domain/reference"
	"github.com/hrs/backend/internal/domain/request"
)

// RequestModel is the persistence model for accommodation requests.
// The manager, reservation and finance blocks are flattened into
// nullable column groups; presence of the block is tracked by its
// timestamp column.
type RequestModel struct {
	AggregateModel
	EmployeeID       uuid.UUID `gorm:"type:uuid;not null;index"`
	RegionCode       string    `gorm:"size:16;not null;index"`
	ParticipantsJSON string    `gorm:"column:participants;type:jsonb;default:'[]'"`
	SuggestedName    string    `gorm:"size:255"`
	SuggestedCity    string    `gorm:"size:128"`
	SuggestedNotes   string    `gorm:"type:text"`
	Destination      string    `gorm:"size:255;not null"`
	City             string    `gorm:"size:128"`
	Country          string    `gorm:"size:128;not null"`
	StartDate        time.Time `gorm:"not null"`
	EndDate          time.Time `gorm:"not null"`
	Motive           string    `gorm:"type:text"`
	ExtraRequests    string    `gorm:"type:text"`
	AttachmentsJSON  string    `gorm:"column:attachments;type:jsonb;default:'[]'"`
	Status           string    `gorm:"size:32;not null;index"`

	ManagerApproved  *bool
	ManagerComment   string `gorm:"type:text"`
	ManagerDecidedBy *uuid.UUID `gorm:"type:uuid"`
	ManagerDecidedAt *time.Time

	ResvHotelID           *uuid.UUID `gorm:"type:uuid;index"`
	ResvFormula           string     `gorm:"size:32"`
	ResvRoomType          string     `gorm:"size:64"`
	ResvStartDate         *time.Time
	ResvEndDate           *time.Time
	ResvComment           string `gorm:"type:text"`
	ResvAllowCancellation bool
	ResvAllowHotelChange  bool
	ResvLateReservation   bool
	ResvPostStayEntry     bool
	ResvReservedBy        *uuid.UUID `gorm:"type:uuid"`
	ResvReservedAt        *time.Time

	FinNights           int
	FinPricePerNight    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	FinTotal            decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0;index"`
	FinCurrency         string          `gorm:"size:8"`
	FinPONumber         *string         `gorm:"column:fin_po_number;size:16;uniqueIndex:idx_requests_po_number"`
	FinDocumentID       *uuid.UUID      `gorm:"type:uuid"`
	FinGeneratedAt      *time.Time
	FinPaymentStatus    string `gorm:"size:16;index"`
	FinPaymentDate      *time.Time
	FinPaymentReference string `gorm:"size:128"`
	FinPaymentNote      string `gorm:"type:text"`
	FinSnapshotJSON     string `gorm:"column:fin_snapshot;type:jsonb;default:'{}'"`
	FinParticipantCount int
}

// TableName specifies the table name
func (RequestModel) TableName() string {
	return "requests"
}

type snapshotPayload struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	RegionCode string `json:"region_code"`
	RegionName string `json:"region_name"`
	OrgUnit    string `json:"org_unit"`
	Department string `json:"department"`
}

// ToDomain converts the persistence model to the domain aggregate
func (m *RequestModel) ToDomain() (*request.Request, error) {
	r := &request.Request{
		EmployeeID: m.EmployeeID,
		RegionCode: m.RegionCode,
		Suggested: request.SuggestedHotel{
			Name:  m.SuggestedName,
			City:  m.SuggestedCity,
			Notes: m.SuggestedNotes,
		},
		Destination:   m.Destination,
		City:          m.City,
		Country:       m.Country,
		StartDate:     m.StartDate,
		EndDate:       m.EndDate,
		Motive:        m.Motive,
		ExtraRequests: m.ExtraRequests,
		Status:        request.Status(m.Status),
	}
	r.BaseEntity = m.BaseModel.ToDomain()
	r.Version = m.Version

	if m.ParticipantsJSON != "" {
		if err := json.Unmarshal([]byte(m.ParticipantsJSON), &r.Participants); err != nil {
			return nil, err
		}
	}
	if m.AttachmentsJSON != "" {
		if err := json.Unmarshal([]byte(m.AttachmentsJSON), &r.Attachments); err != nil {
			return nil, err
		}
	}

	if m.ManagerDecidedAt != nil {
		d := &request.ManagerDecision{
			Comment:   m.ManagerComment,
			DecidedAt: *m.ManagerDecidedAt,
		}
		if m.ManagerApproved != nil {
			d.Approved = *m.ManagerApproved
		}
		if m.ManagerDecidedBy != nil {
			d.DecidedBy = *m.ManagerDecidedBy
		}
		r.Decision = d
	}

	if m.ResvHotelID != nil {
		res := &request.Reservation{
			HotelID:  *m.ResvHotelID,
			Formula:  reference.Formula(m.ResvFormula),
			RoomType: m.ResvRoomType,
			Comment:  m.ResvComment,
			Options: request.ReservationOptions{
				AllowCancellation: m.ResvAllowCancellation,
				AllowHotelChange:  m.ResvAllowHotelChange,
				LateReservation:   m.ResvLateReservation,
				PostStayEntry:     m.ResvPostStayEntry,
			},
		}
		if m.ResvStartDate != nil {
			res.StartDate = *m.ResvStartDate
		}
		if m.ResvEndDate != nil {
			res.EndDate = *m.ResvEndDate
		}
		if m.ResvReservedBy != nil {
			res.ReservedBy = *m.ResvReservedBy
		}
		if m.ResvReservedAt != nil {
			res.ReservedAt = *m.ResvReservedAt
		}
		r.Reservation = res
	}

	if m.FinGeneratedAt != nil {
		fin := &request.Finance{
			Nights:           m.FinNights,
			PricePerNight:    m.FinPricePerNight,
			Total:            m.FinTotal,
			Currency:         m.FinCurrency,
			DocumentID:       m.FinDocumentID,
			GeneratedAt:      *m.FinGeneratedAt,
			PaymentStatus:    request.PaymentStatus(m.FinPaymentStatus),
			PaymentDate:      m.FinPaymentDate,
			PaymentReference: m.FinPaymentReference,
			PaymentNote:      m.FinPaymentNote,
			ParticipantCount: m.FinParticipantCount,
		}
		if m.FinPONumber != nil {
			fin.PONumber = *m.FinPONumber
		}
		if m.FinSnapshotJSON != "" {
			var snap snapshotPayload
			if err := json.Unmarshal([]byte(m.FinSnapshotJSON), &snap); err != nil {
				return nil, err
			}
			fin.EmployeeSnapshot = request.EmployeeSnapshot{
				Code:       snap.Code,
				Name:       snap.Name,
				RegionCode: snap.RegionCode,
				RegionName: snap.RegionName,
				OrgUnit:    snap.OrgUnit,
				Department: snap.Department,
			}
		}
		r.Finance = fin
	}

	return r, nil
}

// FromDomain populates the persistence model from the domain aggregate
func (m *RequestModel) FromDomain(r *request.Request) error {
	m.FromDomainAggregateRoot(r.BaseAggregateRoot)
	m.EmployeeID = r.EmployeeID
	m.RegionCode = r.RegionCode
	m.SuggestedName = r.Suggested.Name
	m.SuggestedCity = r.Suggested.City
	m.SuggestedNotes = r.Suggested.Notes
	m.Destination = r.Destination
	m.City = r.City
	m.Country = r.Country
	m.StartDate = r.StartDate
	m.EndDate = r.EndDate
	m.Motive = r.Motive
	m.ExtraRequests = r.ExtraRequests
	m.Status = r.Status.String()

	participants := r.Participants
	if participants == nil {
		participants = []uuid.UUID{}
	}
	rawParticipants, err := json.Marshal(participants)
	if err != nil {
		return err
	}
	m.ParticipantsJSON = string(rawParticipants)

	attachments := r.Attachments
	if attachments == nil {
		attachments = []string{}
	}
	rawAttachments, err := json.Marshal(attachments)
	if err != nil {
		return err
	}
	m.AttachmentsJSON = string(rawAttachments)

	m.ManagerApproved = nil
	m.ManagerComment = ""
	m.ManagerDecidedBy = nil
	m.ManagerDecidedAt = nil
	if r.Decision != nil {
		approved := r.Decision.Approved
		decidedBy := r.Decision.DecidedBy
		decidedAt := r.Decision.DecidedAt
		m.ManagerApproved = &approved
		m.ManagerComment = r.Decision.Comment
		m.ManagerDecidedBy = &decidedBy
		m.ManagerDecidedAt = &decidedAt
	}

	m.ResvHotelID = nil
	m.ResvFormula = ""
	m.ResvRoomType = ""
	m.ResvStartDate = nil
	m.ResvEndDate = nil
	m.ResvComment = ""
	m.ResvAllowCancellation = false
	m.ResvAllowHotelChange = false
	m.ResvLateReservation = false
	m.ResvPostStayEntry = false
	m.ResvReservedBy = nil
	m.ResvReservedAt = nil
	if r.Reservation != nil {
		res := r.Reservation
		hotelID := res.HotelID
		start := res.StartDate
		end := res.EndDate
		reservedBy := res.ReservedBy
		reservedAt := res.ReservedAt
		m.ResvHotelID = &hotelID
		m.ResvFormula = res.Formula.String()
		m.ResvRoomType = res.RoomType
		m.ResvStartDate = &start
		m.ResvEndDate = &end
		m.ResvComment = res.Comment
		m.ResvAllowCancellation = res.Options.AllowCancellation
		m.ResvAllowHotelChange = res.Options.AllowHotelChange
		m.ResvLateReservation = res.Options.LateReservation
		m.ResvPostStayEntry = res.Options.PostStayEntry
		m.ResvReservedBy = &reservedBy
		m.ResvReservedAt = &reservedAt
	}

	m.FinNights = 0
	m.FinPricePerNight = decimal.Zero
	m.FinTotal = decimal.Zero
	m.FinCurrency = ""
	m.FinPONumber = nil
	m.FinDocumentID = nil
	m.FinGeneratedAt = nil
	m.FinPaymentStatus = ""
	m.FinPaymentDate = nil
	m.FinPaymentReference = ""
	m.FinPaymentNote = ""
	m.FinSnapshotJSON = "{}"
	m.FinParticipantCount = 0
	if r.Finance != nil {
		fin := r.Finance
		generatedAt := fin.GeneratedAt
		m.FinNights = fin.Nights
		m.FinPricePerNight = fin.PricePerNight
		m.FinTotal = fin.Total
		m.FinCurrency = fin.Currency
		if fin.PONumber != "" {
			poNumber := fin.PONumber
			m.FinPONumber = &poNumber
		}
		m.FinDocumentID = fin.DocumentID
		m.FinGeneratedAt = &generatedAt
		m.FinPaymentStatus = fin.PaymentStatus.String()
		m.FinPaymentDate = fin.PaymentDate
		m.FinPaymentReference = fin.PaymentReference
		m.FinPaymentNote = fin.PaymentNote
		m.FinParticipantCount = fin.ParticipantCount

		rawSnapshot, err := json.Marshal(snapshotPayload{
			Code:       fin.EmployeeSnapshot.Code,
			Name:       fin.EmployeeSnapshot.Name,
			RegionCode: fin.EmployeeSnapshot.RegionCode,
			RegionName: fin.EmployeeSnapshot.RegionName,
			OrgUnit:    fin.EmployeeSnapshot.OrgUnit,
			Department: fin.EmployeeSnapshot.Department,
		})
		if err != nil {
			return err
		}
		m.FinSnapshotJSON = string(rawSnapshot)
	}

	return nil
}
