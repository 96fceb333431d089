package persistence

import (
	"context"
	"fmt"

	"github.com/wms3pl/backend/internal/domain/inventory"
	"github.com/wms3pl/backend/internal/domain/shared"
	"github.com/wms3pl/backend/internal/domain/tenancy"
	"github.com/wms3pl/backend/internal/infrastructure/persistence/models"
	"github.com/wms3pl/backend/internal/infrastructure/persistence/tenant"
	"gorm.io/gorm"
)

// sumChunkSize bounds the IN list of a single SumInventoryByProduct query
const sumChunkSize = 500

// GormInventoryRepository implements inventory.Reader using GORM
type GormInventoryRepository struct {
	db *gorm.DB
}

// NewGormInventoryRepository creates a new GormInventoryRepository
func NewGormInventoryRepository(db *gorm.DB) *GormInventoryRepository {
	return &GormInventoryRepository{db: db}
}

// FindProducts returns the products in scope
func (r *GormInventoryRepository) FindProducts(ctx context.Context, filter inventory.ProductFilter) ([]inventory.Product, error) {
	query := r.db.WithContext(ctx).Model(&models.ProductModel{}).Scopes(tenant.Scoped(filter.Scope))
	if filter.ActiveOnly {
		query = query.Where("active = ?", true)
	}

	var rows []models.ProductModel
	if err := query.Order("sku, id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}

	products := make([]inventory.Product, len(rows))
	for i := range rows {
		products[i] = rows[i].ToDomain()
	}
	return products, nil
}

type productSum struct {
	ProductID string
	Total     int64
	MinLot    int64
}

// SumInventoryByProduct sums lot quantities per product
func (r *GormInventoryRepository) SumInventoryByProduct(ctx context.Context, productIDs []string) (map[string]int64, error) {
	sums := make(map[string]int64, len(productIDs))
	for start := 0; start < len(productIDs); start += sumChunkSize {
		end := min(start+sumChunkSize, len(productIDs))

		var rows []productSum
		err := r.db.WithContext(ctx).
			Model(&models.InventoryLotModel{}).
			Select("product_id, COALESCE(SUM(quantity), 0) AS total, COALESCE(MIN(quantity), 0) AS min_lot").
			Where("product_id IN ?", productIDs[start:end]).
			Group("product_id").
			Scan(&rows).Error
		if err != nil {
			return nil, fmt.Errorf("sum inventory: %w", err)
		}
		for _, row := range rows {
			if row.MinLot < 0 {
				return nil, shared.InvariantViolation("product %s holds a lot with negative quantity %d", row.ProductID, row.MinLot)
			}
			sums[row.ProductID] = row.Total
		}
	}
	return sums, nil
}

// ListLocations returns warehouse locations ordered by code
func (r *GormInventoryRepository) ListLocations(ctx context.Context, limit int) ([]inventory.Location, error) {
	var rows []models.LocationModel
	if err := r.db.WithContext(ctx).Order("code").Limit(limit).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}

	locations := make([]inventory.Location, len(rows))
	for i := range rows {
		locations[i] = rows[i].ToDomain()
	}
	return locations, nil
}

// ListLots returns lots in scope joined with product and location,
// ordered by SKU then location code.
func (r *GormInventoryRepository) ListLots(ctx context.Context, scope tenancy.Scope, limit int) ([]inventory.LotView, error) {
	var rows []models.LotViewRow
	err := r.db.WithContext(ctx).
		Table("inventory_lots AS l").
		Select(`l.id AS lot_id, p.tenant_id, l.product_id, p.sku, p.name AS product_name,
			l.location_id, COALESCE(loc.code, '') AS location_code, l.quantity, l.lot_number`).
		Joins("JOIN products p ON p.id = l.product_id").
		Joins("LEFT JOIN locations loc ON loc.id = l.location_id").
		Scopes(tenant.ScopedColumn(scope, "p.tenant_id")).
		Order("p.sku, location_code, l.id").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list lots: %w", err)
	}

	lots := make([]inventory.LotView, len(rows))
	for i := range rows {
		lots[i] = rows[i].ToDomain()
	}
	return lots, nil
}
