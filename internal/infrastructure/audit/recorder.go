package audit

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hrs/backend/internal/domain/audit"
	"github.com/hrs/backend/internal/domain/request"
	"github.com/hrs/backend/internal/domain/shared"
)

// Recorder subscribes to workflow events and appends audit trail entries.
// Recording failures are logged and swallowed: the audit trail must never
// fail a workflow operation.
type Recorder struct {
	entries audit.Repository
	logger  *zap.Logger
}

// NewRecorder creates a new audit recorder
func NewRecorder(entries audit.Repository, logger *zap.Logger) *Recorder {
	return &Recorder{entries: entries, logger: logger}
}

// EventTypes returns the workflow events the recorder listens to
func (r *Recorder) EventTypes() []string {
	return []string{
		request.EventRequestCreated,
		request.EventManagerApproved,
		request.EventManagerRejected,
		request.EventReservationAssigned,
		request.EventPaymentRecorded,
	}
}

// Handle appends one audit entry per received event
func (r *Recorder) Handle(ctx context.Context, event shared.DomainEvent) error {
	entry := audit.NewEntry(
		actionFor(event.EventType()),
		event.AggregateType(),
		event.AggregateID().String(),
		actorFor(event),
		metadataFor(event),
	)

	if err := r.entries.Append(ctx, entry); err != nil {
		r.logger.Warn("failed to append audit entry",
			zap.String("action", entry.Action),
			zap.String("entity_id", entry.EntityID),
			zap.Error(err))
	}
	return nil
}

func actionFor(eventType string) string {
	switch eventType {
	case request.EventRequestCreated:
		return "REQUEST_CREATED"
	case request.EventManagerApproved:
		return "MANAGER_APPROVED"
	case request.EventManagerRejected:
		return "MANAGER_REJECTED"
	case request.EventReservationAssigned:
		return "RESERVATION_ASSIGNED"
	case request.EventPaymentRecorded:
		return "PAYMENT_RECORDED"
	default:
		return eventType
	}
}

// actorFor extracts who performed the action from the workflow event.
// Events predating the actor field carry uuid.Nil, recorded as no actor.
func actorFor(event shared.DomainEvent) *uuid.UUID {
	var id uuid.UUID
	switch e := event.(type) {
	case *request.RequestCreatedEvent:
		id = e.ActorID
	case *request.ManagerDecisionEvent:
		id = e.ActorID
	case *request.ReservationAssignedEvent:
		id = e.ActorID
	case *request.PaymentRecordedEvent:
		id = e.ActorID
	}
	if id == uuid.Nil {
		return nil
	}
	return &id
}

func metadataFor(event shared.DomainEvent) map[string]interface{} {
	meta := map[string]interface{}{
		"event_id": event.EventID().String(),
	}
	switch e := event.(type) {
	case *request.RequestCreatedEvent:
		meta["region"] = e.RegionCode
		meta["destination"] = e.Destination
	case *request.ManagerDecisionEvent:
		meta["approved"] = e.Approved
		if e.Comment != "" {
			meta["comment"] = e.Comment
		}
	case *request.ReservationAssignedEvent:
		meta["po_number"] = e.PONumber
		meta["hotel_id"] = e.HotelID.String()
		meta["total"] = e.Total.String()
		meta["formula"] = e.Formula
	case *request.PaymentRecordedEvent:
		meta["po_number"] = e.PONumber
		meta["payment_status"] = e.PaymentStatus
	}
	return meta
}

var _ shared.EventHandler = (*Recorder)(nil)
