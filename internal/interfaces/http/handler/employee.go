package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hrs/backend/internal/domain/identity"
)

// EmployeeHandler manages the employee directory
type EmployeeHandler struct {
	BaseHandler
	employees identity.EmployeeRepository
}

// NewEmployeeHandler creates a new EmployeeHandler
func NewEmployeeHandler(employees identity.EmployeeRepository) *EmployeeHandler {
	return &EmployeeHandler{employees: employees}
}

// RegisterRoutes registers the employee directory routes
func (h *EmployeeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	employees := rg.Group("/employees")
	{
		employees.GET("", h.List)
		employees.GET("/:id", h.Get)
		employees.POST("", h.Create)
	}
}

// CreateEmployeeBody is the payload for registering an employee
type CreateEmployeeBody struct {
	Code       string `json:"code" binding:"required"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email" binding:"omitempty,email"`
	RegionCode string `json:"region_code"`
	RegionName string `json:"region_name"`
	OrgUnit    string `json:"org_unit"`
	Department string `json:"department"`
	Role       string `json:"role" binding:"required,oneof=EMPLOYEE MANAGER AGENT FINANCE ADMIN"`
}

// EmployeeResponse is the employee directory representation
type EmployeeResponse struct {
	ID         uuid.UUID `json:"id"`
	Code       string    `json:"code"`
	FirstName  string    `json:"first_name,omitempty"`
	LastName   string    `json:"last_name,omitempty"`
	FullName   string    `json:"full_name"`
	Email      string    `json:"email,omitempty"`
	RegionCode string    `json:"region_code,omitempty"`
	RegionName string    `json:"region_name,omitempty"`
	OrgUnit    string    `json:"org_unit,omitempty"`
	Department string    `json:"department,omitempty"`
	Role       string    `json:"role"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at"`
}

func toEmployeeResponse(e *identity.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:         e.ID,
		Code:       e.Code,
		FirstName:  e.FirstName,
		LastName:   e.LastName,
		FullName:   e.FullName(),
		Email:      e.Email,
		RegionCode: e.RegionCode,
		RegionName: e.RegionName,
		OrgUnit:    e.OrgUnit,
		Department: e.Department,
		Role:       e.Role.String(),
		Active:     e.Active,
		CreatedAt:  e.CreatedAt,
	}
}

// List returns the employee directory
// @Summary List employees
// @Tags employees
// @Router /employees [get]
func (h *EmployeeHandler) List(c *gin.Context) {
	employees, err := h.employees.FindAll(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	out := make([]EmployeeResponse, len(employees))
	for i := range employees {
		out[i] = toEmployeeResponse(&employees[i])
	}
	h.Success(c, out)
}

// Get returns a single employee
// @Summary Get an employee
// @Tags employees
// @Router /employees/{id} [get]
func (h *EmployeeHandler) Get(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	employee, err := h.employees.FindByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toEmployeeResponse(employee))
}

// Create registers an employee record
// @Summary Register an employee
// @Tags employees
// @Router /employees [post]
func (h *EmployeeHandler) Create(c *gin.Context) {
	if _, ok := h.requireActor(c, identity.RoleAdmin); !ok {
		return
	}

	var body CreateEmployeeBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	employee, err := identity.NewEmployee(
		body.Code,
		body.FirstName,
		body.LastName,
		body.Email,
		body.RegionCode,
		identity.Role(body.Role),
	)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	employee.RegionName = body.RegionName
	employee.OrgUnit = body.OrgUnit
	employee.Department = body.Department

	if err := h.employees.Save(c.Request.Context(), employee); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toEmployeeResponse(employee))
}
