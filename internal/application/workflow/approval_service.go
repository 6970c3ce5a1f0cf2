package workflow

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hrs/backend/internal/domain/request"
	"github.com/hrs/backend/internal/domain/shared"
)

// ApprovalService handles line manager decisions
type ApprovalService struct {
	requests  request.Repository
	publisher shared.EventPublisher
	logger    *zap.Logger
}

// NewApprovalService creates a new approval service
func NewApprovalService(requests request.Repository, publisher shared.EventPublisher, logger *zap.Logger) *ApprovalService {
	return &ApprovalService{
		requests:  requests,
		publisher: publisher,
		logger:    logger,
	}
}

// SubmitDecision applies the manager verdict to a pending request
func (s *ApprovalService) SubmitDecision(ctx context.Context, requestID uuid.UUID, actor Actor, input DecisionInput) (*request.Request, error) {
	r, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if err := r.Decide(input.Approved, input.Comment, actor.ID, actor.Region); err != nil {
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

	s.logger.Info("manager decision recorded",
		zap.String("request_id", r.ID.String()),
		zap.Bool("approved", input.Approved),
		zap.String("region", r.RegionCode))
	return r, nil
}
