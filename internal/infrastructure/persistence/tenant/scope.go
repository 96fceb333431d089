// Package tenant renders a resolved tenancy.Scope as GORM query scopes.
//
// Usage:
//
//	db.Scopes(tenant.Scoped(scope)).Find(&products)                      // WHERE tenant_id IN (...)
//	db.Scopes(tenant.ScopedColumn(scope, "products.tenant_id")).Find(&v) // qualified column for joins
//
// The empty scope renders as "1 = 0" so it matches nothing instead of
// silently dropping the filter.
package tenant

import (
	"github.com/wms3pl/backend/internal/domain/tenancy"
	"gorm.io/gorm"
)

// Column is the default tenant column name
const Column = "tenant_id"

// Scoped filters on the tenant_id column
func Scoped(scope tenancy.Scope) func(db *gorm.DB) *gorm.DB {
	return ScopedColumn(scope, Column)
}

// ScopedColumn filters on the given column, which may be table-qualified
func ScopedColumn(scope tenancy.Scope, column string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		ids := scope.TenantIDs()
		switch len(ids) {
		case 0:
			return db.Where("1 = 0")
		case 1:
			return db.Where(column+" = ?", ids[0])
		default:
			return db.Where(column+" IN ?", ids)
		}
	}
}
