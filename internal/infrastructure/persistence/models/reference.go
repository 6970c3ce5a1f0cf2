package models

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/hrs/backend/internal/domain/reference"
)

// HotelModel is the persistence model for contracted hotels
type HotelModel struct {
	BaseModel
	Name          string          `gorm:"size:255;not null;index"`
	City          string          `gorm:"size:128;not null;index"`
	Country       string          `gorm:"size:128;not null"`
	Address       string          `gorm:"size:255"`
	Phone         string          `gorm:"size:32"`
	RatePlainStay decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	RateMealPlan  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	RateHalfBoard decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	RateFullBoard decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	RoomTypesJSON string          `gorm:"column:room_types;type:jsonb;default:'[]'"`
	Notes         string          `gorm:"type:text"`
	Active        bool            `gorm:"not null;default:true"`
}

// TableName specifies the table name
func (HotelModel) TableName() string {
	return "hotels"
}

type roomTypePayload struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

// ToDomain converts the persistence model to the domain entity
func (m *HotelModel) ToDomain() (*reference.Hotel, error) {
	h := &reference.Hotel{
		Name:    m.Name,
		City:    m.City,
		Country: m.Country,
		Address: m.Address,
		Phone:   m.Phone,
		Rates: reference.RateTable{
			PlainStay: m.RatePlainStay,
			MealPlan:  m.RateMealPlan,
			HalfBoard: m.RateHalfBoard,
			FullBoard: m.RateFullBoard,
		},
		Notes:  m.Notes,
		Active: m.Active,
	}
	h.BaseEntity = m.BaseModel.ToDomain()

	if m.RoomTypesJSON != "" {
		var payload []roomTypePayload
		if err := json.Unmarshal([]byte(m.RoomTypesJSON), &payload); err != nil {
			return nil, err
		}
		for _, rt := range payload {
			h.RoomTypes = append(h.RoomTypes, reference.RoomType{Code: rt.Code, Label: rt.Label})
		}
	}
	return h, nil
}

// FromDomain populates the persistence model from the domain entity
func (m *HotelModel) FromDomain(h *reference.Hotel) error {
	m.FromDomainBaseEntity(h.BaseEntity)
	m.Name = h.Name
	m.City = h.City
	m.Country = h.Country
	m.Address = h.Address
	m.Phone = h.Phone
	m.RatePlainStay = h.Rates.PlainStay
	m.RateMealPlan = h.Rates.MealPlan
	m.RateHalfBoard = h.Rates.HalfBoard
	m.RateFullBoard = h.Rates.FullBoard
	m.Notes = h.Notes
	m.Active = h.Active

	payload := make([]roomTypePayload, 0, len(h.RoomTypes))
	for _, rt := range h.RoomTypes {
		payload = append(payload, roomTypePayload{Code: rt.Code, Label: rt.Label})
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	m.RoomTypesJSON = string(raw)
	return nil
}

// RegionModel is the persistence model for organizational regions
type RegionModel struct {
	BaseModel
	Code string `gorm:"size:16;not null;uniqueIndex"`
	Name string `gorm:"size:255;not null"`
	Kind string `gorm:"size:32;not null"`
}

// TableName specifies the table name
func (RegionModel) TableName() string {
	return "regions"
}

// ToDomain converts the persistence model to the domain entity
func (m *RegionModel) ToDomain() *reference.Region {
	r := &reference.Region{
		Code: m.Code,
		Name: m.Name,
		Kind: reference.RegionKind(m.Kind),
	}
	r.BaseEntity = m.BaseModel.ToDomain()
	return r
}

// FromDomain populates the persistence model from the domain entity
func (m *RegionModel) FromDomain(r *reference.Region) {
	m.FromDomainBaseEntity(r.BaseEntity)
	m.Code = r.Code
	m.Name = r.Name
	m.Kind = string(r.Kind)
}
