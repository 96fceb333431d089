package dto

import (
	"time"

	"github.com/wms3pl/backend/internal/domain/tenancy"
)

// ClientResponse is one tenant in the operator's client directory
type ClientResponse struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	IsDemo    bool      `json:"is_demo"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// ToClientResponses converts tenants
func ToClientResponses(tenants []tenancy.Tenant) []ClientResponse {
	out := make([]ClientResponse, len(tenants))
	for i, t := range tenants {
		out[i] = ClientResponse{
			ID:        t.ID,
			Code:      t.Code,
			Name:      t.Name,
			IsDemo:    t.IsDemo,
			Active:    t.Active,
			CreatedAt: t.CreatedAt.UTC(),
		}
	}
	return out
}
