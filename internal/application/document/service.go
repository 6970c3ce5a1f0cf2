package document

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hrs/backend/internal/domain/identity"
	"github.com/hrs/backend/internal/domain/reference"
	"github.com/hrs/backend/internal/domain/request"
	"github.com/hrs/backend/internal/domain/shared"
)

// Result is a document ready to be served to the caller
type Result struct {
	Data        []byte
	Filename    string
	ContentType string
}

// Service serves purchase order documents and exports
type Service struct {
	requests  request.Repository
	hotels    reference.HotelRepository
	employees identity.EmployeeRepository
	renderer  Renderer
	store     Store
	logger    *zap.Logger
}

// NewService creates a new document service
func NewService(
	requests request.Repository,
	hotels reference.HotelRepository,
	employees identity.EmployeeRepository,
	renderer Renderer,
	store Store,
	logger *zap.Logger,
) *Service {
	return &Service{
		requests:  requests,
		hotels:    hotels,
		employees: employees,
		renderer:  renderer,
		store:     store,
		logger:    logger,
	}
}

// FetchPurchaseOrder returns the purchase order PDF for a request.
// The stored copy is served when available; a missing or unreadable blob
// falls back to regenerating the document from current data.
func (s *Service) FetchPurchaseOrder(ctx context.Context, requestID uuid.UUID) (*Result, error) {
	req, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.Finance == nil || req.Finance.PONumber == "" {
		return nil, shared.ErrNoDocumentGenerated
	}

	filename := fmt.Sprintf("%s.pdf", req.Finance.PONumber)

	if req.Finance.DocumentID != nil {
		doc, err := s.store.Retrieve(ctx, *req.Finance.DocumentID)
		if err == nil {
			return &Result{Data: doc.Data, Filename: filename, ContentType: "application/pdf"}, nil
		}
		s.logger.Warn("stored purchase order unavailable, regenerating",
			zap.String("request_id", requestID.String()),
			zap.String("document_id", req.Finance.DocumentID.String()),
			zap.Error(err))
	}

	data, err := s.regenerate(ctx, req)
	if err != nil {
		return nil, err
	}
	return &Result{Data: data, Filename: filename, ContentType: "application/pdf"}, nil
}

func (s *Service) regenerate(ctx context.Context, req *request.Request) ([]byte, error) {
	if req.Reservation == nil {
		return nil, shared.ErrNoDocumentGenerated
	}
	hotel, err := s.hotels.FindByID(ctx, req.Reservation.HotelID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrNoDocumentGenerated
		}
		return nil, err
	}
	employee, err := s.employees.FindByID(ctx, req.EmployeeID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	data, err := s.renderer.RenderPurchaseOrder(ctx, req, hotel, employee)
	if err != nil {
		s.logger.Error("purchase order regeneration failed",
			zap.String("request_id", req.ID.String()),
			zap.Error(err))
		return nil, shared.ErrNoDocumentGenerated
	}
	return data, nil
}

// Export renders the purchase order recap for reserved requests matching
// the filter
func (s *Service) Export(ctx context.Context, filter request.ExportFilter) (*Result, error) {
	reqs, err := s.requests.FindReserved(ctx, filter)
	if err != nil {
		return nil, err
	}

	hotels := make(map[uuid.UUID]*reference.Hotel)
	for i := range reqs {
		res := reqs[i].Reservation
		if res == nil {
			continue
		}
		if _, ok := hotels[res.HotelID]; ok {
			continue
		}
		hotel, err := s.hotels.FindByID(ctx, res.HotelID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				continue
			}
			return nil, err
		}
		hotels[res.HotelID] = hotel
	}

	data, err := s.renderer.RenderExport(ctx, reqs, hotels, filter)
	if err != nil {
		return nil, err
	}

	filename := fmt.Sprintf("bons-de-commande-%s.pdf", time.Now().Format("2006-01-02"))
	return &Result{Data: data, Filename: filename, ContentType: "application/pdf"}, nil
}
