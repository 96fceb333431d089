package tenancy

import (
	"context"
	"fmt"

	"github.com/wms3pl/backend/internal/domain/shared"
)

// Resolver turns a principal and an optional tenant filter into a Scope.
type Resolver struct {
	tenants TenantReader
}

// NewResolver creates a Resolver reading the non-demo tenant set from tenants
func NewResolver(tenants TenantReader) *Resolver {
	return &Resolver{tenants: tenants}
}

// Resolve computes the scope for one request.
//
//   - client: its own tenant; asking for any other tenant is Forbidden
//   - admin with a filter: the requested tenant, demo or not
//   - admin without a filter: every non-demo tenant, or the empty scope
//
// requested == nil or "" means no filter. Only the unfiltered admin case
// touches the store.
func (r *Resolver) Resolve(ctx context.Context, p Principal, requested *string) (Scope, error) {
	var want string
	if requested != nil {
		want = *requested
	}

	switch p.Role {
	case RoleClient:
		if p.TenantID == "" {
			return Scope{}, shared.Forbidden("client principal has no tenant")
		}
		if want != "" && want != p.TenantID {
			return Scope{}, shared.Forbidden("tenant %s is outside the caller's scope", want)
		}
		return SingleTenant(p.TenantID), nil

	case RoleAdmin:
		if want != "" {
			return SingleTenant(want), nil
		}
		tenants, err := r.tenants.FindTenants(ctx, TenantFilter{ExcludeDemo: true})
		if err != nil {
			return Scope{}, fmt.Errorf("list non-demo tenants: %w", err)
		}
		ids := make([]string, 0, len(tenants))
		for _, t := range tenants {
			ids = append(ids, t.ID)
		}
		return NonDemoTenants(ids), nil

	default:
		return Scope{}, shared.Forbidden("unknown role %q", p.Role)
	}
}
