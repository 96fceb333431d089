package inventory

import (
	"cmp"
	"slices"

	"github.com/wms3pl/backend/internal/domain/shared"
)

// DefaultLowStockLimit is used when the caller does not bound the low-stock list
const DefaultLowStockLimit = 20

// StockRow is the derived stock position of one product
type StockRow struct {
	ProductID     string `json:"product_id"`
	TenantID      string `json:"tenant_id"`
	SKU           string `json:"sku"`
	Name          string `json:"name"`
	Active        bool   `json:"active"`
	CurrentStock  int64  `json:"current_stock"`
	MinStockLevel int64  `json:"min_stock_level"`
}

// IsLow reports whether the product is active and below its minimum level
func (r StockRow) IsLow() bool {
	return r.Active && r.CurrentStock < r.MinStockLevel
}

// Rollup joins products with their summed lot quantities. A product with no
// lots has stock 0. Rows are ordered by SKU. A negative sum means the store
// holds a negative lot and is reported as an invariant violation.
func Rollup(products []Product, sums map[string]int64) ([]StockRow, error) {
	rows := make([]StockRow, 0, len(products))
	for _, p := range products {
		stock := sums[p.ID]
		if stock < 0 {
			return nil, shared.InvariantViolation("product %s has negative stock %d", p.ID, stock)
		}
		rows = append(rows, StockRow{
			ProductID:     p.ID,
			TenantID:      p.TenantID,
			SKU:           p.SKU,
			Name:          p.Name,
			Active:        p.Active,
			CurrentStock:  stock,
			MinStockLevel: p.MinStockLevel,
		})
	}
	slices.SortFunc(rows, func(a, b StockRow) int {
		return cmp.Or(cmp.Compare(a.SKU, b.SKU), cmp.Compare(a.ProductID, b.ProductID))
	})
	return rows, nil
}

// SelectLowStock keeps rows that are low, orders them by current stock then
// SKU, and truncates to limit.
func SelectLowStock(rows []StockRow, limit int) []StockRow {
	low := make([]StockRow, 0)
	for _, r := range rows {
		if r.IsLow() {
			low = append(low, r)
		}
	}
	slices.SortFunc(low, func(a, b StockRow) int {
		return cmp.Or(
			cmp.Compare(a.CurrentStock, b.CurrentStock),
			cmp.Compare(a.SKU, b.SKU),
			cmp.Compare(a.ProductID, b.ProductID),
		)
	})
	if limit >= 0 && len(low) > limit {
		low = low[:limit]
	}
	return low
}

// TotalQuantity sums current stock across rows
func TotalQuantity(rows []StockRow) int64 {
	var total int64
	for _, r := range rows {
		total += r.CurrentStock
	}
	return total
}
