// Package tenancy models tenants, the principals acting on their behalf,
// and the Scope that bounds what a principal may read.
//
// Every tenant-owned record (product, order, receipt, invoice) carries exactly
// one tenant ID. A Scope is resolved once per request by the Resolver and then
// handed unchanged to every query, so demo exclusion and cross-tenant checks
// live in one place.
package tenancy

import (
	"context"
	"time"
)

// Tenant is a client company whose goods are stored in the warehouse
type Tenant struct {
	ID        string
	Code      string // unique, immutable
	Name      string
	IsDemo    bool // demo tenants are hidden from unfiltered operator views
	Active    bool
	CreatedAt time.Time
}

// TenantFilter selects tenants by id, demo flag and activity
type TenantFilter struct {
	IDs         []string // empty means any id
	ExcludeDemo bool
	ActiveOnly  bool
}

// TenantReader is the read side of the tenant store
type TenantReader interface {
	FindTenants(ctx context.Context, filter TenantFilter) ([]Tenant, error)
	// GetTenant returns shared.ErrNotFound when no tenant has the id.
	GetTenant(ctx context.Context, id string) (*Tenant, error)
}
