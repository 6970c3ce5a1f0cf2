package reference

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/hrs/backend/internal/domain/shared"
)

// RateTable holds the negotiated nightly rates per board formula.
// A zero rate means the hotel has not quoted that formula.
type RateTable struct {
	PlainStay decimal.Decimal
	MealPlan  decimal.Decimal
	HalfBoard decimal.Decimal
	FullBoard decimal.Decimal
}

// RateFor returns the nightly rate for the given formula.
// An unrecognized formula falls back to the plain-stay rate.
func (t RateTable) RateFor(f Formula) decimal.Decimal {
	switch f {
	case FormulaMealPlan:
		return t.MealPlan
	case FormulaHalfBoard:
		return t.HalfBoard
	case FormulaFullBoard:
		return t.FullBoard
	default:
		return t.PlainStay
	}
}

// RoomType describes a bookable room category of a hotel
type RoomType struct {
	Code  string
	Label string
}

// Hotel represents a contracted accommodation provider
type Hotel struct {
	shared.BaseEntity
	Name      string
	City      string
	Country   string
	Address   string
	Phone     string
	Rates     RateTable
	RoomTypes []RoomType
	Notes     string
	Active    bool
}

// NewHotel creates a new hotel record
func NewHotel(name, city, country string, rates RateTable) (*Hotel, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Hotel name is required")
	}
	if strings.TrimSpace(city) == "" {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Hotel city is required")
	}
	if country == "" {
		country = "Algérie"
	}
	return &Hotel{
		BaseEntity: shared.NewBaseEntity(),
		Name:       strings.TrimSpace(name),
		City:       strings.TrimSpace(city),
		Country:    country,
		Rates:      rates,
		Active:     true,
	}, nil
}

// RateFor returns the nightly rate this hotel quotes for the formula
func (h *Hotel) RateFor(f Formula) decimal.Decimal {
	return h.Rates.RateFor(f)
}

// AddRoomType registers a bookable room category
func (h *Hotel) AddRoomType(code, label string) {
	h.RoomTypes = append(h.RoomTypes, RoomType{Code: code, Label: label})
}

// Deactivate removes the hotel from the bookable pool
func (h *Hotel) Deactivate() {
	h.Active = false
}
