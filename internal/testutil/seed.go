package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/wms3pl/backend/internal/domain/inventory"
	"github.com/wms3pl/backend/internal/domain/operations"
	"github.com/wms3pl/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// Jan2025 is the default creation time of seeded records
var Jan2025 = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

// Seeder inserts warehouse records, failing the test on error
type Seeder struct {
	t  *testing.T
	db *gorm.DB
	n  int
}

// NewSeeder creates a Seeder over db
func NewSeeder(t *testing.T, db *gorm.DB) *Seeder {
	return &Seeder{t: t, db: db}
}

func (s *Seeder) create(value any) {
	s.t.Helper()
	require.NoError(s.t, s.db.Create(value).Error)
}

// Tenant inserts an active tenant named "Tenant <id>" unless name is given
func (s *Seeder) Tenant(id string, demo bool, name ...string) *Seeder {
	s.t.Helper()
	display := "Tenant " + id
	if len(name) > 0 {
		display = name[0]
	}
	s.create(&models.TenantModel{ID: id, Code: "C-" + id, Name: display, IsDemo: demo, Active: true, CreatedAt: Jan2025})
	return s
}

// Location inserts a storage location
func (s *Seeder) Location(id, code string) *Seeder {
	s.t.Helper()
	s.create(&models.LocationModel{ID: id, Code: code, Zone: code[:1]})
	return s
}

// Product inserts a product with one lot per quantity at locationID
func (s *Seeder) Product(id, tenantID, sku string, minStock int64, active bool, locationID string, lots ...int64) *Seeder {
	s.t.Helper()
	s.create(models.ProductModelFromDomain(inventory.Product{
		ID: id, TenantID: tenantID, SKU: sku, Name: "Product " + sku,
		UnitWeight: decimal.NewFromInt(1), MinStockLevel: minStock, Active: active, CreatedAt: Jan2025,
	}))
	// gorm skips zero-value bools that carry a default
	if !active {
		require.NoError(s.t, s.db.Model(&models.ProductModel{}).Where("id = ?", id).Update("active", false).Error)
	}
	for i, qty := range lots {
		s.create(models.LotModelFromDomain(inventory.Lot{
			ID: uuid.NewString(), ProductID: id, LocationID: locationID, Quantity: qty,
			LotNumber: fmt.Sprintf("%s-%d", sku, i+1),
		}))
	}
	return s
}

// Orders inserts count orders for tenantID, one hour apart starting at start
func (s *Seeder) Orders(tenantID string, status operations.OrderStatus, start time.Time, count int) *Seeder {
	s.t.Helper()
	for i := range count {
		s.n++
		s.create(models.OrderModelFromDomain(operations.Order{
			ID: uuid.NewString(), TenantID: tenantID, OrderNumber: fmt.Sprintf("CMD-%06d", s.n),
			Status: status, CreatedAt: start.Add(time.Duration(i) * time.Hour),
		}))
	}
	return s
}

// Receipts inserts count receipts for tenantID, one hour apart starting at start
func (s *Seeder) Receipts(tenantID string, status operations.ReceiptStatus, start time.Time, count int) *Seeder {
	s.t.Helper()
	for i := range count {
		s.n++
		s.create(models.ReceiptModelFromDomain(operations.Receipt{
			ID: uuid.NewString(), TenantID: tenantID, ReceiptNumber: fmt.Sprintf("REC-%06d", s.n),
			Status: status, CreatedAt: start.Add(time.Duration(i) * time.Hour),
		}))
	}
	return s
}
