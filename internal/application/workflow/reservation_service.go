package workflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hrs/backend/internal/application/document"
	"github.com/hrs/backend/internal/domain/identity"
	"github.com/hrs/backend/internal/domain/reference"
	"github.com/hrs/backend/internal/domain/request"
	"github.com/hrs/backend/internal/domain/shared"
)

// ReservationService runs the reservation pipeline: booking, pricing,
// purchase order numbering, employee snapshot and document generation
type ReservationService struct {
	requests  request.Repository
	hotels    reference.HotelRepository
	employees identity.EmployeeRepository
	renderer  document.Renderer
	store     document.Store
	publisher shared.EventPublisher
	logger    *zap.Logger
}

// NewReservationService creates a new reservation service
func NewReservationService(
	requests request.Repository,
	hotels reference.HotelRepository,
	employees identity.EmployeeRepository,
	renderer document.Renderer,
	store document.Store,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *ReservationService {
	return &ReservationService{
		requests:  requests,
		hotels:    hotels,
		employees: employees,
		renderer:  renderer,
		store:     store,
		publisher: publisher,
		logger:    logger,
	}
}

// Assign books an approved request into a hotel and issues the purchase
// order. Re-invoking on a reserved request replaces the booking and
// issues a fresh purchase order.
//
// Document rendering and storage are soft steps: their failure leaves
// the reservation committed without a stored document and the purchase
// order is regenerated on demand later.
func (s *ReservationService) Assign(ctx context.Context, requestID uuid.UUID, actor Actor, input ReservationInput) (*request.Request, error) {
	r, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	hotel, err := s.hotels.FindByID(ctx, input.HotelID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrInvalidHotel
		}
		return nil, err
	}

	employee, err := s.employees.FindByID(ctx, r.EmployeeID)
	if err != nil {
		return nil, err
	}

	start := r.StartDate
	if input.StartDate != nil {
		start = *input.StartDate
	}
	end := r.EndDate
	if input.EndDate != nil {
		end = *input.EndDate
	}

	formula := reference.ParseFormula(input.Formula)
	quote := request.ComputeQuote(hotel, formula, start, end)

	poNumber, err := s.requests.NextPONumber(ctx, time.Now().Year())
	if err != nil {
		return nil, err
	}

	res := request.Reservation{
		HotelID:    hotel.ID,
		Formula:    formula,
		RoomType:   input.RoomType,
		StartDate:  start,
		EndDate:    end,
		Comment:    input.Comment,
		Options:    input.Options,
		ReservedBy: actor.ID,
		ReservedAt: time.Now(),
	}
	snapshot := request.BuildEmployeeSnapshot(employee)

	if err := r.ApplyReservation(res, quote, poNumber, snapshot); err != nil {
		return nil, err
	}

	s.generateDocument(ctx, r, hotel, employee)

	if err := s.requests.SaveWithLock(ctx, r); err != nil {
		return nil, err
	}

	events := r.GetDomainEvents()
	if len(events) > 0 {
		if err := s.publisher.Publish(ctx, events...); err != nil {
			s.logger.Warn("failed to publish domain events",
				zap.String("request_id", r.ID.String()),
				zap.Error(err))
		}
		r.ClearDomainEvents()
	}

	s.logger.Info("reservation assigned",
		zap.String("request_id", r.ID.String()),
		zap.String("po_number", poNumber),
		zap.String("hotel", hotel.Name),
		zap.String("total", quote.Total.String()))
	return r, nil
}

// generateDocument renders and stores the purchase order PDF. Failures
// degrade to a warning: the workflow result must not depend on the
// document pipeline.
func (s *ReservationService) generateDocument(ctx context.Context, r *request.Request, hotel *reference.Hotel, employee *identity.Employee) {
	data, err := s.renderer.RenderPurchaseOrder(ctx, r, hotel, employee)
	if err != nil {
		s.logger.Warn("purchase order rendering failed, continuing without document",
			zap.String("request_id", r.ID.String()),
			zap.Error(err))
		return
	}

	filename := fmt.Sprintf("%s.pdf", r.Finance.PONumber)
	docID, err := s.store.Store(ctx, data, filename, "application/pdf", map[string]string{
		"request_id": r.ID.String(),
		"po_number":  r.Finance.PONumber,
	})
	if err != nil {
		s.logger.Warn("purchase order storage failed, continuing without document",
			zap.String("request_id", r.ID.String()),
			zap.Error(err))
		return
	}

	if err := r.AttachDocument(docID); err != nil {
		s.logger.Warn("could not attach document to finance block",
			zap.String("request_id", r.ID.String()),
			zap.Error(err))
	}
}
