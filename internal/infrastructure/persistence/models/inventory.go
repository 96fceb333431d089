package models

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/wms3pl/backend/internal/domain/inventory"
)

// ProductModel is the persistence model for products
type ProductModel struct {
	ID            string          `gorm:"type:varchar(36);primaryKey"`
	TenantID      string          `gorm:"type:varchar(36);not null;uniqueIndex:idx_products_tenant_sku,priority:1"`
	SKU           string          `gorm:"column:sku;type:varchar(100);not null;uniqueIndex:idx_products_tenant_sku,priority:2"`
	Name          string          `gorm:"type:varchar(200);not null"`
	UnitWeight    decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0"`
	MinStockLevel int64           `gorm:"not null;default:0;check:chk_products_min_stock,min_stock_level >= 0"`
	Active        bool            `gorm:"not null;default:true"`
	CreatedAt     time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the model to a domain Product
func (m *ProductModel) ToDomain() inventory.Product {
	return inventory.Product{
		ID:            m.ID,
		TenantID:      m.TenantID,
		SKU:           m.SKU,
		Name:          m.Name,
		UnitWeight:    m.UnitWeight,
		MinStockLevel: m.MinStockLevel,
		Active:        m.Active,
		CreatedAt:     m.CreatedAt,
	}
}

// ProductModelFromDomain builds a model from a domain Product
func ProductModelFromDomain(p inventory.Product) *ProductModel {
	return &ProductModel{
		ID:            p.ID,
		TenantID:      p.TenantID,
		SKU:           p.SKU,
		Name:          p.Name,
		UnitWeight:    p.UnitWeight,
		MinStockLevel: p.MinStockLevel,
		Active:        p.Active,
		CreatedAt:     p.CreatedAt,
	}
}

// LocationModel is the persistence model for storage locations
type LocationModel struct {
	ID   string `gorm:"type:varchar(36);primaryKey"`
	Code string `gorm:"type:varchar(50);not null;uniqueIndex"`
	Zone string `gorm:"type:varchar(50)"`
}

// TableName returns the table name for GORM
func (LocationModel) TableName() string {
	return "locations"
}

// ToDomain converts the model to a domain location
func (m *LocationModel) ToDomain() inventory.Location {
	return inventory.Location{ID: m.ID, Code: m.Code, Zone: m.Zone}
}

// InventoryLotModel is the persistence model for inventory lots
type InventoryLotModel struct {
	ID         string `gorm:"type:varchar(36);primaryKey"`
	ProductID  string `gorm:"type:varchar(36);not null;index"`
	LocationID string `gorm:"type:varchar(36);not null;index"`
	Quantity   int64  `gorm:"not null;default:0;check:chk_inventory_lots_quantity,quantity >= 0"`
	LotNumber  string `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (InventoryLotModel) TableName() string {
	return "inventory_lots"
}

// LotModelFromDomain builds a model from a domain Lot
func LotModelFromDomain(l inventory.Lot) *InventoryLotModel {
	return &InventoryLotModel{
		ID:         l.ID,
		ProductID:  l.ProductID,
		LocationID: l.LocationID,
		Quantity:   l.Quantity,
		LotNumber:  l.LotNumber,
	}
}

// LotViewRow is the scan target for the lot/product/location join
type LotViewRow struct {
	LotID        string
	TenantID     string
	ProductID    string
	SKU          string `gorm:"column:sku"`
	ProductName  string
	LocationID   string
	LocationCode string
	Quantity     int64
	LotNumber    string
}

// ToDomain converts the row to a domain LotView
func (r *LotViewRow) ToDomain() inventory.LotView {
	return inventory.LotView{
		LotID:        r.LotID,
		TenantID:     r.TenantID,
		ProductID:    r.ProductID,
		SKU:          r.SKU,
		ProductName:  r.ProductName,
		LocationID:   r.LocationID,
		LocationCode: r.LocationCode,
		Quantity:     r.Quantity,
		LotNumber:    r.LotNumber,
	}
}
