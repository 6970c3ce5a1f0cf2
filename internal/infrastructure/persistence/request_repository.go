package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hrs/backend/internal/domain/request"
	"github.com/hrs/backend/internal/domain/shared"
	"github.com/hrs/backend/internal/infrastructure/persistence/models"
)

// GormRequestRepository implements request.Repository using GORM
type GormRequestRepository struct {
	db *gorm.DB
}

// NewGormRequestRepository creates a new GormRequestRepository
func NewGormRequestRepository(db *gorm.DB) *GormRequestRepository {
	return &GormRequestRepository{db: db}
}

// FindByID finds a request by its ID
func (r *GormRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*request.Request, error) {
	var model models.RequestModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// FindAll finds requests matching the filter, newest first
func (r *GormRequestRepository) FindAll(ctx context.Context, filter request.Filter) ([]request.Request, error) {
	var requestModels []models.RequestModel

	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.RequestModel{}), filter)
	query = query.Order("created_at DESC")

	if filter.PageSize > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		query = query.Offset((page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	if err := query.Find(&requestModels).Error; err != nil {
		return nil, err
	}
	requests := make([]request.Request, len(requestModels))
	for i, model := range requestModels {
		req, err := model.ToDomain()
		if err != nil {
			return nil, err
		}
		requests[i] = *req
	}
	return requests, nil
}

// Count counts requests matching the filter
func (r *GormRequestRepository) Count(ctx context.Context, filter request.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.RequestModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindReserved finds reserved requests carrying an issued purchase order
func (r *GormRequestRepository) FindReserved(ctx context.Context, filter request.ExportFilter) ([]request.Request, error) {
	var requestModels []models.RequestModel

	query := r.db.WithContext(ctx).Model(&models.RequestModel{}).
		Where("status = ? AND fin_po_number IS NOT NULL", request.StatusReserved.String())

	if filter.PaymentStatus != nil {
		query = query.Where("fin_payment_status = ?", filter.PaymentStatus.String())
	}
	if filter.RegionCode != "" {
		query = query.Where("region_code = ?", filter.RegionCode)
	}
	if filter.From != nil {
		query = query.Where("start_date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("end_date <= ?", *filter.To)
	}

	if err := query.Order("fin_po_number ASC").Find(&requestModels).Error; err != nil {
		return nil, err
	}
	requests := make([]request.Request, len(requestModels))
	for i, model := range requestModels {
		req, err := model.ToDomain()
		if err != nil {
			return nil, err
		}
		requests[i] = *req
	}
	return requests, nil
}

// Save creates or updates a request
func (r *GormRequestRepository) Save(ctx context.Context, req *request.Request) error {
	var model models.RequestModel
	if err := model.FromDomain(req); err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Save(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrDuplicateNumber
		}
		return err
	}
	return nil
}

// SaveWithLock saves with optimistic locking (version check)
func (r *GormRequestRepository) SaveWithLock(ctx context.Context, req *request.Request) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Scan reports zero rows through RowsAffected, not ErrRecordNotFound
		var currentVersion int
		read := tx.Model(&models.RequestModel{}).
			Where("id = ?", req.ID).
			Select("version").
			Scan(&currentVersion)
		if read.Error != nil {
			return read.Error
		}
		if read.RowsAffected == 0 {
			return shared.ErrNotFound
		}

		if currentVersion != req.Version {
			return shared.ErrConcurrencyConflict
		}

		req.Version++
		req.UpdatedAt = time.Now()

		var model models.RequestModel
		if err := model.FromDomain(req); err != nil {
			return err
		}

		result := tx.Model(&models.RequestModel{}).
			Where("id = ? AND version = ?", req.ID, currentVersion).
			Updates(r.updateColumns(&model))
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
				return shared.ErrDuplicateNumber
			}
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrConcurrencyConflict
		}
		return nil
	})
}

// updateColumns lists every mutable column so nil pointers clear their
// group instead of being skipped by gorm's zero-value handling
func (r *GormRequestRepository) updateColumns(m *models.RequestModel) map[string]interface{} {
	return map[string]interface{}{
		"employee_id":             m.EmployeeID,
		"region_code":             m.RegionCode,
		"participants":            m.ParticipantsJSON,
		"suggested_name":          m.SuggestedName,
		"suggested_city":          m.SuggestedCity,
		"suggested_notes":         m.SuggestedNotes,
		"destination":             m.Destination,
		"city":                    m.City,
		"country":                 m.Country,
		"start_date":              m.StartDate,
		"end_date":                m.EndDate,
		"motive":                  m.Motive,
		"extra_requests":          m.ExtraRequests,
		"attachments":             m.AttachmentsJSON,
		"status":                  m.Status,
		"manager_approved":        m.ManagerApproved,
		"manager_comment":         m.ManagerComment,
		"manager_decided_by":      m.ManagerDecidedBy,
		"manager_decided_at":      m.ManagerDecidedAt,
		"resv_hotel_id":           m.ResvHotelID,
		"resv_formula":            m.ResvFormula,
		"resv_room_type":          m.ResvRoomType,
		"resv_start_date":         m.ResvStartDate,
		"resv_end_date":           m.ResvEndDate,
		"resv_comment":            m.ResvComment,
		"resv_allow_cancellation": m.ResvAllowCancellation,
		"resv_allow_hotel_change": m.ResvAllowHotelChange,
		"resv_late_reservation":   m.ResvLateReservation,
		"resv_post_stay_entry":    m.ResvPostStayEntry,
		"resv_reserved_by":        m.ResvReservedBy,
		"resv_reserved_at":        m.ResvReservedAt,
		"fin_nights":              m.FinNights,
		"fin_price_per_night":     m.FinPricePerNight,
		"fin_total":               m.FinTotal,
		"fin_currency":            m.FinCurrency,
		"fin_po_number":           m.FinPONumber,
		"fin_document_id":         m.FinDocumentID,
		"fin_generated_at":        m.FinGeneratedAt,
		"fin_payment_status":      m.FinPaymentStatus,
		"fin_payment_date":        m.FinPaymentDate,
		"fin_payment_reference":   m.FinPaymentReference,
		"fin_payment_note":        m.FinPaymentNote,
		"fin_snapshot":            m.FinSnapshotJSON,
		"fin_participant_count":   m.FinParticipantCount,
		"version":                 m.Version,
		"updated_at":              m.UpdatedAt,
	}
}

// NextPONumber allocates the next purchase order number for the year.
// Format: PO-YYYY-NNNNN (e.g., PO-2026-00001)
func (r *GormRequestRepository) NextPONumber(ctx context.Context, year int) (string, error) {
	prefix := fmt.Sprintf("PO-%d-", year)

	// Get the highest issued number for this year
	var last models.RequestModel
	err := r.db.WithContext(ctx).
		Model(&models.RequestModel{}).
		Where("fin_po_number LIKE ?", prefix+"%").
		Order("fin_po_number DESC").
		First(&last).Error

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	var nextNum int64 = 1
	if err == nil && last.FinPONumber != nil {
		parts := strings.Split(*last.FinPONumber, "-")
		if len(parts) == 3 {
			var num int64
			if _, parseErr := fmt.Sscanf(parts[2], "%d", &num); parseErr == nil {
				nextNum = num + 1
			}
		}
	}

	return fmt.Sprintf("%s%05d", prefix, nextNum), nil
}

// applyFilter applies listing filters to the query
func (r *GormRequestRepository) applyFilter(query *gorm.DB, filter request.Filter) *gorm.DB {
	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}
	if filter.RegionCode != "" {
		query = query.Where("region_code = ?", filter.RegionCode)
	}
	if filter.EmployeeID != nil {
		query = query.Where("employee_id = ?", *filter.EmployeeID)
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where(
			"LOWER(destination) LIKE ? OR LOWER(city) LIKE ? OR LOWER(motive) LIKE ?",
			pattern, pattern, pattern,
		)
	}
	return query
}
