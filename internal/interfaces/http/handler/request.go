package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hrs/backend/internal/application/workflow"
	"github.com/hrs/backend/internal/domain/audit"
	"github.com/hrs/backend/internal/domain/identity"
	"github.com/hrs/backend/internal/domain/request"
)

// RequestHandler handles the accommodation request workflow endpoints
type RequestHandler struct {
	BaseHandler
	requests     *workflow.RequestService
	approvals    *workflow.ApprovalService
	reservations *workflow.ReservationService
	finance      *workflow.FinanceService
	trail        audit.Repository
}

// NewRequestHandler creates a new RequestHandler
func NewRequestHandler(
	requests *workflow.RequestService,
	approvals *workflow.ApprovalService,
	reservations *workflow.ReservationService,
	finance *workflow.FinanceService,
	trail audit.Repository,
) *RequestHandler {
	return &RequestHandler{
		requests:     requests,
		approvals:    approvals,
		reservations: reservations,
		finance:      finance,
		trail:        trail,
	}
}

// RegisterRoutes registers the request workflow routes
func (h *RequestHandler) RegisterRoutes(rg *gin.RouterGroup) {
	requests := rg.Group("/requests")
	{
		requests.POST("", h.Create)
		requests.GET("", h.List)
		requests.GET("/:id", h.Get)
		requests.GET("/:id/history", h.History)
		requests.PATCH("/:id/decision", h.Decide)
		requests.PATCH("/:id/reservation", h.Reserve)
		requests.PATCH("/:id/payment", h.RecordPayment)
	}
}

// CreateRequestBody is the payload for filing a new request
type CreateRequestBody struct {
	EmployeeID    string                       `json:"employee_id" binding:"required,uuid"`
	Destination   string                       `json:"destination" binding:"required,min=2"`
	City          string                       `json:"city"`
	Country       string                       `json:"country"`
	StartDate     time.Time                    `json:"start_date" binding:"required"`
	EndDate       time.Time                    `json:"end_date" binding:"required"`
	Motive        string                       `json:"motive"`
	ExtraRequests string                       `json:"extra_requests"`
	Suggested     *workflow.SuggestedHotelInput `json:"suggested_hotel"`
	Participants  []string                     `json:"participants" binding:"omitempty,dive,uuid"`
	Attachments   []string                     `json:"attachments"`
}

// Create files a new accommodation request
// @Summary File an accommodation request
// @Tags requests
// @Router /requests [post]
func (h *RequestHandler) Create(c *gin.Context) {
	var body CreateRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	employeeID, err := uuid.Parse(body.EmployeeID)
	if err != nil {
		h.BadRequest(c, "Invalid employee ID")
		return
	}
	participants := make([]uuid.UUID, 0, len(body.Participants))
	for _, p := range body.Participants {
		id, err := uuid.Parse(p)
		if err != nil {
			h.BadRequest(c, "Invalid participant ID")
			return
		}
		participants = append(participants, id)
	}

	r, err := h.requests.Create(c.Request.Context(), workflow.CreateRequestInput{
		EmployeeID:    employeeID,
		Destination:   body.Destination,
		City:          body.City,
		Country:       body.Country,
		StartDate:     body.StartDate,
		EndDate:       body.EndDate,
		Motive:        body.Motive,
		ExtraRequests: body.ExtraRequests,
		Suggested:     body.Suggested,
		Participants:  participants,
		Attachments:   body.Attachments,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toRequestResponse(r))
}

// ListRequestsQuery narrows the request listing
type ListRequestsQuery struct {
	Status     string `form:"status"`
	RegionCode string `form:"region"`
	EmployeeID string `form:"employee_id" binding:"omitempty,uuid"`
	Search     string `form:"search"`
	Page       int    `form:"page" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// List returns requests matching the filter
// @Summary List accommodation requests
// @Tags requests
// @Router /requests [get]
func (h *RequestHandler) List(c *gin.Context) {
	var query ListRequestsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	filter := workflow.ListFilter{
		Status:     query.Status,
		RegionCode: query.RegionCode,
		Search:     query.Search,
		Page:       query.Page,
		PageSize:   query.PageSize,
	}
	if query.EmployeeID != "" {
		id, err := uuid.Parse(query.EmployeeID)
		if err != nil {
			h.BadRequest(c, "Invalid employee ID")
			return
		}
		filter.EmployeeID = &id
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}

	items, total, err := h.requests.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, toRequestResponses(items), total, filter.Page, filter.PageSize)
}

// Get returns a single request
// @Summary Get an accommodation request
// @Tags requests
// @Router /requests/{id} [get]
func (h *RequestHandler) Get(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	r, err := h.requests.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toRequestResponse(r))
}

// DecisionBody is the payload for a line manager verdict
type DecisionBody struct {
	Approved *bool  `json:"approved" binding:"required"`
	Comment  string `json:"comment"`
}

// Decide records the line manager verdict
// @Summary Approve or reject a request
// @Tags requests
// @Router /requests/{id}/decision [patch]
func (h *RequestHandler) Decide(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}
	actor, ok := h.requireActor(c, identity.RoleManager)
	if !ok {
		return
	}

	var body DecisionBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	r, err := h.approvals.SubmitDecision(c.Request.Context(), id, actor, workflow.DecisionInput{
		Approved: *body.Approved,
		Comment:  body.Comment,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toRequestResponse(r))
}

// ReservationBody is the payload for a booking assignment
type ReservationBody struct {
	HotelID   string                     `json:"hotel_id" binding:"required,uuid"`
	Formula   string                     `json:"formula"`
	RoomType  string                     `json:"room_type"`
	StartDate *time.Time                 `json:"start_date"`
	EndDate   *time.Time                 `json:"end_date"`
	Comment   string                     `json:"comment"`
	Options   request.ReservationOptions `json:"options"`
}

// Reserve books the request into a hotel and issues the purchase order
// @Summary Assign a reservation
// @Tags requests
// @Router /requests/{id}/reservation [patch]
func (h *RequestHandler) Reserve(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}
	actor, ok := h.requireActor(c, identity.RoleAgent)
	if !ok {
		return
	}

	var body ReservationBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	hotelID, err := uuid.Parse(body.HotelID)
	if err != nil {
		h.BadRequest(c, "Invalid hotel ID")
		return
	}

	r, err := h.reservations.Assign(c.Request.Context(), id, actor, workflow.ReservationInput{
		HotelID:   hotelID,
		Formula:   body.Formula,
		RoomType:  body.RoomType,
		StartDate: body.StartDate,
		EndDate:   body.EndDate,
		Comment:   body.Comment,
		Options:   body.Options,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toRequestResponse(r))
}

// PaymentBody is the payload for a finance reconciliation update
type PaymentBody struct {
	Status      string     `json:"status" binding:"required,oneof=PAID UNPAID"`
	PaymentDate *time.Time `json:"payment_date"`
	Reference   string     `json:"reference"`
	Note        string     `json:"note"`
}

// RecordPayment reconciles the purchase order payment state
// @Summary Record a payment reconciliation
// @Tags requests
// @Router /requests/{id}/payment [patch]
func (h *RequestHandler) RecordPayment(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}
	actor, ok := h.requireActor(c, identity.RoleFinance)
	if !ok {
		return
	}

	var body PaymentBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	r, err := h.finance.RecordPayment(c.Request.Context(), id, actor, workflow.PaymentInput{
		Status:      body.Status,
		PaymentDate: body.PaymentDate,
		Reference:   body.Reference,
		Note:        body.Note,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toRequestResponse(r))
}

// AuditEntryResponse is one audit trail row
type AuditEntryResponse struct {
	ID        uuid.UUID              `json:"id"`
	Action    string                 `json:"action"`
	ActorID   *uuid.UUID             `json:"actor_id,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

// History returns the audit trail of a request
// @Summary Get the request audit trail
// @Tags requests
// @Router /requests/{id}/history [get]
func (h *RequestHandler) History(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	entries, err := h.trail.FindByEntity(c.Request.Context(), "Request", id.String())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	out := make([]AuditEntryResponse, len(entries))
	for i, e := range entries {
		out[i] = AuditEntryResponse{
			ID:        e.ID,
			Action:    e.Action,
			ActorID:   e.ActorID,
			Metadata:  e.Metadata,
			CreatedAt: e.CreatedAt,
		}
	}
	h.Success(c, out)
}
