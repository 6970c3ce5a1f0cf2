package reference

import (
	"context"

	"github.com/google/uuid"
)

// HotelRepository defines the persistence operations for hotels
type HotelRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Hotel, error)
	FindAll(ctx context.Context) ([]Hotel, error)
	Save(ctx context.Context, hotel *Hotel) error
}

// RegionRepository defines the persistence operations for regions
type RegionRepository interface {
	FindByCode(ctx context.Context, code string) (*Region, error)
	FindAll(ctx context.Context) ([]Region, error)
	Save(ctx context.Context, region *Region) error
}
