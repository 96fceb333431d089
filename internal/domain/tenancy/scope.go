package tenancy

import "slices"

// Scope is the set of tenant IDs a query may read. The zero value is the
// empty scope and matches nothing.
type Scope struct {
	tenantIDs   []string
	excludeDemo bool
}

// SingleTenant scopes reads to one tenant
func SingleTenant(tenantID string) Scope {
	return Scope{tenantIDs: []string{tenantID}}
}

// NonDemoTenants scopes reads to the given non-demo tenants. An empty id
// list yields the empty scope, never "all tenants".
func NonDemoTenants(tenantIDs []string) Scope {
	return Scope{tenantIDs: slices.Clone(tenantIDs), excludeDemo: true}
}

// EmptyScope matches nothing
func EmptyScope() Scope {
	return Scope{}
}

// TenantIDs returns a copy of the tenant IDs in scope
func (s Scope) TenantIDs() []string {
	return slices.Clone(s.tenantIDs)
}

// IsEmpty reports whether the scope matches no tenant
func (s Scope) IsEmpty() bool {
	return len(s.tenantIDs) == 0
}

// ExcludesDemo reports whether the scope was built by dropping demo tenants
func (s Scope) ExcludesDemo() bool {
	return s.excludeDemo
}

// Contains reports whether tenantID is in scope
func (s Scope) Contains(tenantID string) bool {
	return slices.Contains(s.tenantIDs, tenantID)
}
