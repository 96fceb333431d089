package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/wms3pl/backend/internal/application/client"
	"github.com/wms3pl/backend/internal/interfaces/http/dto"
)

// ClientHandler serves the operator's client directory
type ClientHandler struct {
	BaseHandler
	service *client.ClientService
}

// NewClientHandler creates a new ClientHandler
func NewClientHandler(service *client.ClientService) *ClientHandler {
	return &ClientHandler{service: service}
}

// ListClients handles GET /clients
func (h *ClientHandler) ListClients(c *gin.Context) {
	caller, ok := h.principal(c)
	if !ok {
		return
	}
	tenants, err := h.service.ListClients(c.Request.Context(), caller)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.ToClientResponses(tenants))
}

// RegisterRoutes registers the client directory endpoints
func (h *ClientHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/clients", h.ListClients)
}
