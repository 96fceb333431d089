// Package client serves the operator's directory of warehouse clients.
package client

import (
	"context"

	"github.com/wms3pl/backend/internal/domain/shared"
	"github.com/wms3pl/backend/internal/domain/tenancy"
)

// ClientService lists the tenants an operator can act for
type ClientService struct {
	tenants tenancy.TenantReader
}

// NewClientService creates a new ClientService
func NewClientService(tenants tenancy.TenantReader) *ClientService {
	return &ClientService{tenants: tenants}
}

// ListClients returns active tenants ordered by code, demo tenants included
// so operators can select them explicitly. Only operators may list clients.
func (s *ClientService) ListClients(ctx context.Context, caller tenancy.Principal) ([]tenancy.Tenant, error) {
	if !caller.IsAdmin() {
		return nil, shared.Forbidden("only operators may list clients")
	}
	return s.tenants.FindTenants(ctx, tenancy.TenantFilter{ActiveOnly: true})
}
