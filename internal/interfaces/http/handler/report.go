package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/wms3pl/backend/internal/application/report"
	"github.com/wms3pl/backend/internal/domain/tenancy"
	"github.com/wms3pl/backend/internal/interfaces/http/dto"
)

// ReportHandler serves the stock and dashboard read models
type ReportHandler struct {
	BaseHandler
	service *report.AggregationService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(resolver *tenancy.Resolver, service *report.AggregationService) *ReportHandler {
	return &ReportHandler{BaseHandler: BaseHandler{resolver: resolver}, service: service}
}

// DashboardSummary handles GET /dashboard/summary
func (h *ReportHandler) DashboardSummary(c *gin.Context) {
	scope, ok := h.resolveScope(c)
	if !ok {
		return
	}
	summary, err := h.service.DashboardSummary(c.Request.Context(), scope)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// LowStock handles GET /inventory/low-stock
func (h *ReportHandler) LowStock(c *gin.Context) {
	scope, ok := h.resolveScope(c)
	if !ok {
		return
	}
	limit, ok := h.queryLimit(c)
	if !ok {
		return
	}
	rows, err := h.service.LowStock(c.Request.Context(), scope, limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rows)
}

// StockRollup handles GET /inventory/stock
func (h *ReportHandler) StockRollup(c *gin.Context) {
	scope, ok := h.resolveScope(c)
	if !ok {
		return
	}
	rows, err := h.service.StockRollup(c.Request.Context(), scope)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rows)
}

// InventoryLots handles GET /inventory/lots
func (h *ReportHandler) InventoryLots(c *gin.Context) {
	scope, ok := h.resolveScope(c)
	if !ok {
		return
	}
	limit, ok := h.queryLimit(c)
	if !ok {
		return
	}
	lots, err := h.service.InventoryView(c.Request.Context(), scope, limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.ToLotResponses(lots))
}

// ListLocations handles GET /locations
func (h *ReportHandler) ListLocations(c *gin.Context) {
	if _, ok := h.principal(c); !ok {
		return
	}
	limit, ok := h.queryLimit(c)
	if !ok {
		return
	}
	locations, err := h.service.ListLocations(c.Request.Context(), limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.ToLocationResponses(locations))
}

// ListOrders handles GET /orders
func (h *ReportHandler) ListOrders(c *gin.Context) {
	scope, ok := h.resolveScope(c)
	if !ok {
		return
	}
	limit, ok := h.queryLimit(c)
	if !ok {
		return
	}
	orders, err := h.service.ListOrders(c.Request.Context(), scope, c.Query(StatusParam), limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, orders)
}

// ListReceipts handles GET /receipts
func (h *ReportHandler) ListReceipts(c *gin.Context) {
	scope, ok := h.resolveScope(c)
	if !ok {
		return
	}
	limit, ok := h.queryLimit(c)
	if !ok {
		return
	}
	receipts, err := h.service.ListReceipts(c.Request.Context(), scope, c.Query(StatusParam), limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, receipts)
}

// RegisterRoutes registers the read endpoints
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/dashboard/summary", h.DashboardSummary)

	inventory := rg.Group("/inventory")
	inventory.GET("/low-stock", h.LowStock)
	inventory.GET("/stock", h.StockRollup)
	inventory.GET("/lots", h.InventoryLots)

	rg.GET("/locations", h.ListLocations)
	rg.GET("/orders", h.ListOrders)
	rg.GET("/receipts", h.ListReceipts)
}
