package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hrs/backend/internal/domain/reference"
	"github.com/hrs/backend/internal/domain/shared"
	"github.com/hrs/backend/internal/infrastructure/persistence/models"
)

// GormHotelRepository implements reference.HotelRepository using GORM
type GormHotelRepository struct {
	db *gorm.DB
}

// NewGormHotelRepository creates a new GormHotelRepository
func NewGormHotelRepository(db *gorm.DB) *GormHotelRepository {
	return &GormHotelRepository{db: db}
}

// FindByID finds a hotel by its ID
func (r *GormHotelRepository) FindByID(ctx context.Context, id uuid.UUID) (*reference.Hotel, error) {
	var model models.HotelModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// FindAll lists all hotels ordered by name
func (r *GormHotelRepository) FindAll(ctx context.Context) ([]reference.Hotel, error) {
	var hotelModels []models.HotelModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&hotelModels).Error; err != nil {
		return nil, err
	}
	hotels := make([]reference.Hotel, len(hotelModels))
	for i, model := range hotelModels {
		hotel, err := model.ToDomain()
		if err != nil {
			return nil, err
		}
		hotels[i] = *hotel
	}
	return hotels, nil
}

// Save creates or updates a hotel
func (r *GormHotelRepository) Save(ctx context.Context, hotel *reference.Hotel) error {
	var model models.HotelModel
	if err := model.FromDomain(hotel); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Save(&model).Error
}

// GormRegionRepository implements reference.RegionRepository using GORM
type GormRegionRepository struct {
	db *gorm.DB
}

// NewGormRegionRepository creates a new GormRegionRepository
func NewGormRegionRepository(db *gorm.DB) *GormRegionRepository {
	return &GormRegionRepository{db: db}
}

// FindByCode finds a region by its code
func (r *GormRegionRepository) FindByCode(ctx context.Context, code string) (*reference.Region, error) {
	var model models.RegionModel
	if err := r.db.WithContext(ctx).First(&model, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll lists all regions ordered by code
func (r *GormRegionRepository) FindAll(ctx context.Context) ([]reference.Region, error) {
	var regionModels []models.RegionModel
	if err := r.db.WithContext(ctx).Order("code ASC").Find(&regionModels).Error; err != nil {
		return nil, err
	}
	regions := make([]reference.Region, len(regionModels))
	for i, model := range regionModels {
		regions[i] = *model.ToDomain()
	}
	return regions, nil
}

// Save creates or updates a region
func (r *GormRegionRepository) Save(ctx context.Context, region *reference.Region) error {
	var model models.RegionModel
	model.FromDomain(region)
	return r.db.WithContext(ctx).Save(&model).Error
}
