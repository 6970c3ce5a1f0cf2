package workflow

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hrs/backend/internal/domain/request"
	"github.com/hrs/backend/internal/domain/shared"
)

// FinanceService handles payment reconciliation of purchase orders
type FinanceService struct {
	requests  request.Repository
	publisher shared.EventPublisher
	logger    *zap.Logger
}

// NewFinanceService creates a new finance service
func NewFinanceService(requests request.Repository, publisher shared.EventPublisher, logger *zap.Logger) *FinanceService {
	return &FinanceService{
		requests:  requests,
		publisher: publisher,
		logger:    logger,
	}
}

// RecordPayment updates the payment reconciliation state of a reserved
// request's purchase order
func (s *FinanceService) RecordPayment(ctx context.Context, requestID uuid.UUID, actor Actor, input PaymentInput) (*request.Request, error) {
	status := request.PaymentStatus(input.Status)
	if !status.IsValid() {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Payment status must be PAID or UNPAID")
	}

	r, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if err := r.RecordPayment(status, input.PaymentDate, input.Reference, input.Note, actor.ID); err != nil {
		return nil, err
	}

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

	s.logger.Info("payment recorded",
		zap.String("request_id", r.ID.String()),
		zap.String("po_number", r.Finance.PONumber),
		zap.String("payment_status", status.String()),
		zap.String("actor_id", actor.ID.String()))
	return r, nil
}

// ListReserved returns reserved requests carrying a purchase order, for
// finance review
func (s *FinanceService) ListReserved(ctx context.Context, filter request.ExportFilter) ([]request.Request, error) {
	return s.requests.FindReserved(ctx, filter)
}
