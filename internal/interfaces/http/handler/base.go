// Package handler implements the HTTP endpoints of the warehouse API.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/wms3pl/backend/internal/domain/shared"
	"github.com/wms3pl/backend/internal/domain/tenancy"
	"github.com/wms3pl/backend/internal/infrastructure/logger"
	"github.com/wms3pl/backend/internal/interfaces/http/dto"
	"github.com/wms3pl/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// Query parameters shared by the read endpoints
const (
	TenantIDParam = "tenant_id"
	LimitParam    = "limit"
	StatusParam   = "status"
)

// BaseHandler provides common handler utilities
type BaseHandler struct {
	resolver *tenancy.Resolver
}

func getRequestID(c *gin.Context) string {
	return c.GetString("request_id")
}

// Success sends a 200 response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Created sends a 201 response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// Error sends an error response, deriving the status from the code
func (h *BaseHandler) Error(c *gin.Context, code, message string) {
	c.JSON(dto.GetHTTPStatus(code), dto.NewErrorResponse(code, message, getRequestID(c)))
}

// HandleError converts domain errors to HTTP responses. Anything else is an
// internal error whose details stay in the log.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		code := dto.NormalizeErrorCode(domainErr.Code)
		if dto.GetHTTPStatus(code) >= http.StatusInternalServerError {
			logger.L(c.Request.Context()).Error("Request failed", zap.Error(err))
			_ = c.Error(err)
		}
		c.JSON(dto.GetHTTPStatus(code), dto.NewErrorResponse(code, domainErr.Message, getRequestID(c)))
		return
	}

	logger.L(c.Request.Context()).Error("Request failed", zap.Error(err))
	_ = c.Error(err)
	h.Error(c, dto.ErrCodeInternal, "An unexpected error occurred")
}

// principal returns the authenticated caller or answers 401
func (h *BaseHandler) principal(c *gin.Context) (tenancy.Principal, bool) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		h.Error(c, dto.ErrCodeUnauthorized, "Authentication required")
	}
	return p, ok
}

// resolveScope turns the caller and the optional tenant_id query parameter
// into the scope every read runs under
func (h *BaseHandler) resolveScope(c *gin.Context) (tenancy.Scope, bool) {
	p, ok := h.principal(c)
	if !ok {
		return tenancy.Scope{}, false
	}

	var requested *string
	if id, present := c.GetQuery(TenantIDParam); present {
		requested = &id
	}

	scope, err := h.resolver.Resolve(c.Request.Context(), p, requested)
	if err != nil {
		h.HandleError(c, err)
		return tenancy.Scope{}, false
	}
	return scope, true
}

// queryLimit parses the limit query parameter. Absent means 0, which every
// service reads as "use the default".
func (h *BaseHandler) queryLimit(c *gin.Context) (int, bool) {
	raw := c.Query(LimitParam)
	if raw == "" {
		return 0, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		h.Error(c, dto.ErrCodeInvalidInput, "limit must be a non-negative integer")
		return 0, false
	}
	return limit, true
}
