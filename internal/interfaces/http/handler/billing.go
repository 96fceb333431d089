package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/wms3pl/backend/internal/application/billing"
	"github.com/wms3pl/backend/internal/domain/tenancy"
	"github.com/wms3pl/backend/internal/interfaces/http/dto"
	"github.com/wms3pl/backend/internal/interfaces/http/middleware"
)

// BillingHandler serves invoice listing and generation
type BillingHandler struct {
	BaseHandler
	service *billing.InvoiceService
}

// NewBillingHandler creates a new BillingHandler
func NewBillingHandler(resolver *tenancy.Resolver, service *billing.InvoiceService) *BillingHandler {
	return &BillingHandler{BaseHandler: BaseHandler{resolver: resolver}, service: service}
}

// ListInvoices handles GET /billing/invoices
func (h *BillingHandler) ListInvoices(c *gin.Context) {
	scope, ok := h.resolveScope(c)
	if !ok {
		return
	}
	limit, ok := h.queryLimit(c)
	if !ok {
		return
	}
	invoices, err := h.service.ListInvoices(c.Request.Context(), scope, limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.ToInvoiceResponses(invoices))
}

// GenerateInvoice handles POST /billing/invoices/generate
func (h *BillingHandler) GenerateInvoice(c *gin.Context) {
	caller, ok := h.principal(c)
	if !ok {
		return
	}

	var req dto.GenerateInvoiceRequest
	if !h.bindStrictJSON(c, &req) {
		return
	}

	start, err := dto.ParseDate(req.PeriodStart)
	if err != nil {
		h.Error(c, dto.ErrCodeInvalidInput, "period_start must be a date (2006-01-02) or RFC 3339 timestamp")
		return
	}
	end, err := dto.ParseDate(req.PeriodEnd)
	if err != nil {
		h.Error(c, dto.ErrCodeInvalidInput, "period_end must be a date (2006-01-02) or RFC 3339 timestamp")
		return
	}

	invoice, err := h.service.Generate(c.Request.Context(), caller, billing.GenerateInvoiceInput{
		TenantID:    req.TenantID,
		PeriodStart: start,
		PeriodEnd:   end,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, dto.ToInvoiceResponse(invoice))
}

// bindStrictJSON decodes the body rejecting unknown fields, then validates it
func (h *BillingHandler) bindStrictJSON(c *gin.Context, obj any) bool {
	decoder := json.NewDecoder(c.Request.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(obj); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.Error(c, dto.ErrCodeRequestTooLarge, "Request body exceeds maximum allowed size")
			return false
		}
		h.Error(c, dto.ErrCodeInvalidJSON, "Invalid JSON body: "+err.Error())
		return false
	}
	if err := binding.Validator.ValidateStruct(obj); err != nil {
		c.JSON(http.StatusBadRequest, middleware.FormatValidationErrors(err, getRequestID(c)))
		return false
	}
	return true
}

// RegisterRoutes registers the billing endpoints
func (h *BillingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	invoices := rg.Group("/billing/invoices")
	invoices.GET("", h.ListInvoices)
	invoices.POST("/generate", h.GenerateInvoice)
}
