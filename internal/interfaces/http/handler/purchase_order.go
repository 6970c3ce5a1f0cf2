package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hrs/backend/internal/application/document"
	"github.com/hrs/backend/internal/application/workflow"
	"github.com/hrs/backend/internal/domain/request"
)

// PurchaseOrderHandler serves purchase order listings and documents
type PurchaseOrderHandler struct {
	BaseHandler
	finance   *workflow.FinanceService
	documents *document.Service
}

// NewPurchaseOrderHandler creates a new PurchaseOrderHandler
func NewPurchaseOrderHandler(finance *workflow.FinanceService, documents *document.Service) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{
		finance:   finance,
		documents: documents,
	}
}

// RegisterRoutes registers the purchase order routes
func (h *PurchaseOrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/purchase-orders")
	{
		orders.GET("", h.List)
		orders.GET("/export", h.Export)
	}
	rg.GET("/requests/:id/purchase-order", h.Download)
}

// PurchaseOrderQuery narrows purchase order listings and exports
type PurchaseOrderQuery struct {
	PaymentStatus string `form:"payment_status" binding:"omitempty,oneof=PAID UNPAID"`
	RegionCode    string `form:"region"`
	From          string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To            string `form:"to" binding:"omitempty,datetime=2006-01-02"`
}

// toFilter converts the query to the domain export filter
func (q PurchaseOrderQuery) toFilter() request.ExportFilter {
	filter := request.ExportFilter{RegionCode: q.RegionCode}
	if q.PaymentStatus != "" {
		status := request.PaymentStatus(q.PaymentStatus)
		filter.PaymentStatus = &status
	}
	if q.From != "" {
		from, _ := time.Parse("2006-01-02", q.From)
		filter.From = &from
	}
	if q.To != "" {
		to, _ := time.Parse("2006-01-02", q.To)
		filter.To = &to
	}
	return filter
}

// List returns reserved requests carrying an issued purchase order
// @Summary List purchase orders
// @Tags purchase-orders
// @Router /purchase-orders [get]
func (h *PurchaseOrderHandler) List(c *gin.Context) {
	var query PurchaseOrderQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	items, err := h.finance.ListReserved(c.Request.Context(), query.toFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toRequestResponses(items))
}

// Export serves the tabular purchase order recap as a PDF
// @Summary Export purchase orders
// @Tags purchase-orders
// @Produce application/pdf
// @Router /purchase-orders/export [get]
func (h *PurchaseOrderHandler) Export(c *gin.Context) {
	var query PurchaseOrderQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	result, err := h.documents.Export(c.Request.Context(), query.toFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=\""+result.Filename+"\"")
	c.Data(http.StatusOK, result.ContentType, result.Data)
}

// Download serves the purchase order PDF of a reserved request
// @Summary Download a purchase order document
// @Tags purchase-orders
// @Produce application/pdf
// @Router /requests/{id}/purchase-order [get]
func (h *PurchaseOrderHandler) Download(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	result, err := h.documents.FetchPurchaseOrder(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", "inline; filename=\""+result.Filename+"\"")
	c.Data(http.StatusOK, result.ContentType, result.Data)
}
