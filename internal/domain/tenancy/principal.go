package tenancy

// Role is the coarse permission level of a principal
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleClient Role = "client"
)

// IsValid reports whether r is a known role
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleClient
}

// Principal is the authenticated caller. Credential checks happen before a
// Principal is built; the engine only trusts its fields.
type Principal struct {
	UserID   string
	Role     Role
	TenantID string // required for RoleClient, ignored for RoleAdmin
}

// IsAdmin reports whether the principal is an operator
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
