package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hrs/backend/internal/domain/identity"
	"github.com/hrs/backend/internal/domain/reference"
)

// ReferenceHandler manages the hotel catalog and region directory
type ReferenceHandler struct {
	BaseHandler
	hotels  reference.HotelRepository
	regions reference.RegionRepository
}

// NewReferenceHandler creates a new ReferenceHandler
func NewReferenceHandler(hotels reference.HotelRepository, regions reference.RegionRepository) *ReferenceHandler {
	return &ReferenceHandler{
		hotels:  hotels,
		regions: regions,
	}
}

// RegisterRoutes registers the reference data routes
func (h *ReferenceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	hotels := rg.Group("/hotels")
	{
		hotels.GET("", h.ListHotels)
		hotels.GET("/:id", h.GetHotel)
		hotels.POST("", h.CreateHotel)
	}
	regions := rg.Group("/regions")
	{
		regions.GET("", h.ListRegions)
		regions.POST("", h.CreateRegion)
	}
}

// RateTableBody holds the negotiated nightly rates per board formula
type RateTableBody struct {
	PlainStay string `json:"plain_stay"`
	MealPlan  string `json:"meal_plan"`
	HalfBoard string `json:"half_board"`
	FullBoard string `json:"full_board"`
}

// RoomTypeBody is one bookable room category
type RoomTypeBody struct {
	Code  string `json:"code" binding:"required"`
	Label string `json:"label" binding:"required"`
}

// CreateHotelBody is the payload for registering a hotel
type CreateHotelBody struct {
	Name      string         `json:"name" binding:"required"`
	City      string         `json:"city" binding:"required"`
	Country   string         `json:"country"`
	Address   string         `json:"address"`
	Phone     string         `json:"phone"`
	Rates     RateTableBody  `json:"rates"`
	RoomTypes []RoomTypeBody `json:"room_types"`
	Notes     string         `json:"notes"`
}

// RateTableResponse mirrors the hotel rate table
type RateTableResponse struct {
	PlainStay string `json:"plain_stay"`
	MealPlan  string `json:"meal_plan"`
	HalfBoard string `json:"half_board"`
	FullBoard string `json:"full_board"`
}

// HotelResponse is the hotel catalog representation
type HotelResponse struct {
	ID        uuid.UUID            `json:"id"`
	Name      string               `json:"name"`
	City      string               `json:"city"`
	Country   string               `json:"country"`
	Address   string               `json:"address,omitempty"`
	Phone     string               `json:"phone,omitempty"`
	Rates     RateTableResponse    `json:"rates"`
	RoomTypes []reference.RoomType `json:"room_types,omitempty"`
	Notes     string               `json:"notes,omitempty"`
	Active    bool                 `json:"active"`
	CreatedAt time.Time            `json:"created_at"`
}

func toHotelResponse(hotel *reference.Hotel) HotelResponse {
	return HotelResponse{
		ID:      hotel.ID,
		Name:    hotel.Name,
		City:    hotel.City,
		Country: hotel.Country,
		Address: hotel.Address,
		Phone:   hotel.Phone,
		Rates: RateTableResponse{
			PlainStay: hotel.Rates.PlainStay.String(),
			MealPlan:  hotel.Rates.MealPlan.String(),
			HalfBoard: hotel.Rates.HalfBoard.String(),
			FullBoard: hotel.Rates.FullBoard.String(),
		},
		RoomTypes: hotel.RoomTypes,
		Notes:     hotel.Notes,
		Active:    hotel.Active,
		CreatedAt: hotel.CreatedAt,
	}
}

// ListHotels returns the hotel catalog
// @Summary List hotels
// @Tags reference
// @Router /hotels [get]
func (h *ReferenceHandler) ListHotels(c *gin.Context) {
	hotels, err := h.hotels.FindAll(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	out := make([]HotelResponse, len(hotels))
	for i := range hotels {
		out[i] = toHotelResponse(&hotels[i])
	}
	h.Success(c, out)
}

// GetHotel returns a single hotel
// @Summary Get a hotel
// @Tags reference
// @Router /hotels/{id} [get]
func (h *ReferenceHandler) GetHotel(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	hotel, err := h.hotels.FindByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toHotelResponse(hotel))
}

// CreateHotel registers a contracted hotel
// @Summary Register a hotel
// @Tags reference
// @Router /hotels [post]
func (h *ReferenceHandler) CreateHotel(c *gin.Context) {
	if _, ok := h.requireActor(c, identity.RoleAgent, identity.RoleAdmin); !ok {
		return
	}

	var body CreateHotelBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	rates, err := parseRateTable(body.Rates)
	if err != nil {
		h.BadRequest(c, "Invalid rate: "+err.Error())
		return
	}

	hotel, err := reference.NewHotel(body.Name, body.City, body.Country, rates)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	hotel.Address = body.Address
	hotel.Phone = body.Phone
	hotel.Notes = body.Notes
	for _, rt := range body.RoomTypes {
		hotel.AddRoomType(rt.Code, rt.Label)
	}

	if err := h.hotels.Save(c.Request.Context(), hotel); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toHotelResponse(hotel))
}

func parseRateTable(body RateTableBody) (reference.RateTable, error) {
	var rates reference.RateTable
	var err error
	if rates.PlainStay, err = parseRate(body.PlainStay); err != nil {
		return rates, err
	}
	if rates.MealPlan, err = parseRate(body.MealPlan); err != nil {
		return rates, err
	}
	if rates.HalfBoard, err = parseRate(body.HalfBoard); err != nil {
		return rates, err
	}
	if rates.FullBoard, err = parseRate(body.FullBoard); err != nil {
		return rates, err
	}
	return rates, nil
}

func parseRate(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(raw)
}

// CreateRegionBody is the payload for registering a region
type CreateRegionBody struct {
	Code string `json:"code" binding:"required"`
	Name string `json:"name" binding:"required"`
	Kind string `json:"kind"`
}

// RegionResponse is the region directory representation
type RegionResponse struct {
	ID   uuid.UUID `json:"id"`
	Code string    `json:"code"`
	Name string    `json:"name"`
	Kind string    `json:"kind"`
}

func toRegionResponse(region *reference.Region) RegionResponse {
	return RegionResponse{
		ID:   region.ID,
		Code: region.Code,
		Name: region.Name,
		Kind: string(region.Kind),
	}
}

// ListRegions returns the region directory
// @Summary List regions
// @Tags reference
// @Router /regions [get]
func (h *ReferenceHandler) ListRegions(c *gin.Context) {
	regions, err := h.regions.FindAll(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	out := make([]RegionResponse, len(regions))
	for i := range regions {
		out[i] = toRegionResponse(&regions[i])
	}
	h.Success(c, out)
}

// CreateRegion registers an organizational region
// @Summary Register a region
// @Tags reference
// @Router /regions [post]
func (h *ReferenceHandler) CreateRegion(c *gin.Context) {
	if _, ok := h.requireActor(c, identity.RoleAdmin); !ok {
		return
	}

	var body CreateRegionBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	region, err := reference.NewRegion(body.Code, body.Name, reference.RegionKind(body.Kind))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if err := h.regions.Save(c.Request.Context(), region); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toRegionResponse(region))
}
