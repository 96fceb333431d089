// Package inventory holds products, storage locations and inventory lots, and
// the pure computations that derive stock levels from them.
package inventory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wms3pl/backend/internal/domain/tenancy"
)

// Product is a stock-keeping unit owned by one tenant
type Product struct {
	ID            string
	TenantID      string // immutable after creation
	SKU           string // unique per tenant
	Name          string
	UnitWeight    decimal.Decimal // kg
	MinStockLevel int64           // >= 0; stock strictly below it is "low"
	Active        bool
	CreatedAt     time.Time
}

// Location is a storage slot in the warehouse
type Location struct {
	ID   string
	Code string
	Zone string
}

// Lot is a quantity of one product held at one location
type Lot struct {
	ID         string
	ProductID  string
	LocationID string
	Quantity   int64 // >= 0
	LotNumber  string
}

// LotView is a lot joined with its product and location
type LotView struct {
	LotID        string
	TenantID     string
	ProductID    string
	SKU          string
	ProductName  string
	LocationID   string
	LocationCode string
	Quantity     int64
	LotNumber    string
}

// ProductFilter selects products inside a scope
type ProductFilter struct {
	Scope      tenancy.Scope
	ActiveOnly bool
}

// Reader is the read side of the inventory store
type Reader interface {
	FindProducts(ctx context.Context, filter ProductFilter) ([]Product, error)
	// SumInventoryByProduct returns the summed lot quantity per product id.
	// Products without lots are absent from the map. A product holding a
	// negative lot is an invariant violation even when its sum is positive.
	SumInventoryByProduct(ctx context.Context, productIDs []string) (map[string]int64, error)
	ListLots(ctx context.Context, scope tenancy.Scope, limit int) ([]LotView, error)
	// ListLocations returns warehouse locations ordered by code. Locations
	// are shared by all tenants.
	ListLocations(ctx context.Context, limit int) ([]Location, error)
}
