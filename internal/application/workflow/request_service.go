package workflow

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hrs/backend/internal/domain/identity"
	"github.com/hrs/backend/internal/domain/request"
	"github.com/hrs/backend/internal/domain/shared"
)

// RequestService handles filing and browsing accommodation requests
type RequestService struct {
	requests  request.Repository
	employees identity.EmployeeRepository
	publisher shared.EventPublisher
	logger    *zap.Logger
}

// NewRequestService creates a new request service
func NewRequestService(
	requests request.Repository,
	employees identity.EmployeeRepository,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *RequestService {
	return &RequestService{
		requests:  requests,
		employees: employees,
		publisher: publisher,
		logger:    logger,
	}
}

// Create files a new accommodation request. The approval region is
// inherited from the employee record.
func (s *RequestService) Create(ctx context.Context, input CreateRequestInput) (*request.Request, error) {
	employee, err := s.employees.FindByID(ctx, input.EmployeeID)
	if err != nil {
		return nil, err
	}

	r, err := request.NewRequest(
		employee.ID,
		employee.RegionCode,
		input.Destination,
		input.City,
		input.Country,
		input.StartDate,
		input.EndDate,
		input.Motive,
	)
	if err != nil {
		return nil, err
	}
	r.ExtraRequests = input.ExtraRequests
	if input.Suggested != nil {
		r.SetSuggestedHotel(request.SuggestedHotel{
			Name:  input.Suggested.Name,
			City:  input.Suggested.City,
			Notes: input.Suggested.Notes,
		})
	}
	if len(input.Participants) > 0 {
		r.SetParticipants(input.Participants)
	}
	for _, ref := range input.Attachments {
		r.AddAttachment(ref)
	}

	if err := s.requests.Save(ctx, r); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, r)

	s.logger.Info("accommodation request filed",
		zap.String("request_id", r.ID.String()),
		zap.String("employee", employee.Code),
		zap.String("region", r.RegionCode))
	return r, nil
}

// Get returns a single request by ID
func (s *RequestService) Get(ctx context.Context, id uuid.UUID) (*request.Request, error) {
	return s.requests.FindByID(ctx, id)
}

// List returns requests matching the filter with the total count
func (s *RequestService) List(ctx context.Context, filter ListFilter) ([]request.Request, int64, error) {
	f := request.Filter{
		RegionCode: filter.RegionCode,
		EmployeeID: filter.EmployeeID,
		Search:     filter.Search,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
	}
	if filter.Status != "" {
		status := request.Status(filter.Status)
		if !status.IsValid() {
			return nil, 0, shared.NewDomainError(shared.CodeInvalidInput, "Unknown request status")
		}
		f.Status = &status
	}
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 || f.PageSize > 100 {
		f.PageSize = 20
	}

	items, err := s.requests.FindAll(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.requests.Count(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *RequestService) publishEvents(ctx context.Context, r *request.Request) {
	events := r.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.publisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("failed to publish domain events",
			zap.String("request_id", r.ID.String()),
			zap.Error(err))
	}
	r.ClearDomainEvents()
}
