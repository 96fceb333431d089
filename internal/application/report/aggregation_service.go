// Package report serves the tenant-scoped read models: stock rollups,
// low-stock lists, the dashboard summary and activity listings.
package report

import (
	"context"
	"fmt"

	"github.com/wms3pl/backend/internal/domain/inventory"
	"github.com/wms3pl/backend/internal/domain/operations"
	"github.com/wms3pl/backend/internal/domain/shared"
	"github.com/wms3pl/backend/internal/domain/tenancy"
	"github.com/wms3pl/backend/internal/infrastructure/logger"
	"github.com/wms3pl/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// Result limits
const (
	MaxLowStockLimit     = 200
	DefaultLotLimit      = 500
	MaxLotLimit          = 500
	DefaultActivityLimit = 100
	MaxActivityLimit     = 100
	MaxLocationLimit     = 200
)

// StockSummary is the stock block of the dashboard
type StockSummary struct {
	TotalProducts int   `json:"total_products"`
	TotalQuantity int64 `json:"total_quantity"`
}

// OrderSummary is the orders block of the dashboard
type OrderSummary struct {
	TotalOrders   int64 `json:"total_orders"`
	PendingOrders int64 `json:"pending_orders"`
}

// ReceiptSummary is the receipts block of the dashboard
type ReceiptSummary struct {
	PendingReceipts int64 `json:"pending_receipts"`
}

// DashboardSummary is the operator and client landing view
type DashboardSummary struct {
	Stock            StockSummary         `json:"stock"`
	Orders           OrderSummary         `json:"orders"`
	Receipts         ReceiptSummary       `json:"receipts"`
	LowStockProducts []inventory.StockRow `json:"low_stock_products"`
}

// AggregationService computes derived quantities over a resolved scope.
// It holds no state between calls.
type AggregationService struct {
	inventory  inventory.Reader
	operations operations.Reader
	metrics    *telemetry.BusinessMetrics
}

// NewAggregationService creates a new AggregationService. metrics may be nil.
func NewAggregationService(
	inventoryReader inventory.Reader,
	operationsReader operations.Reader,
	metrics *telemetry.BusinessMetrics,
) *AggregationService {
	return &AggregationService{
		inventory:  inventoryReader,
		operations: operationsReader,
		metrics:    metrics,
	}
}

// StockRollup returns the current stock of every product in scope, ordered by SKU
func (s *AggregationService) StockRollup(ctx context.Context, scope tenancy.Scope) ([]inventory.StockRow, error) {
	return s.rollup(ctx, inventory.ProductFilter{Scope: scope})
}

// LowStock returns active products below their minimum level, lowest stock first
func (s *AggregationService) LowStock(ctx context.Context, scope tenancy.Scope, limit int) ([]inventory.StockRow, error) {
	rows, err := s.rollup(ctx, inventory.ProductFilter{Scope: scope, ActiveOnly: true})
	if err != nil {
		return nil, err
	}
	low := inventory.SelectLowStock(rows, shared.ClampLimit(limit, inventory.DefaultLowStockLimit, MaxLowStockLimit))
	s.metrics.RecordLowStock(ctx, len(scope.TenantIDs()), len(low))
	return low, nil
}

// DashboardSummary aggregates stock, order and receipt counters for the scope.
// Total quantity counts every lot in scope; product count and low stock only
// consider active products.
func (s *AggregationService) DashboardSummary(ctx context.Context, scope tenancy.Scope) (*DashboardSummary, error) {
	all, err := s.rollup(ctx, inventory.ProductFilter{Scope: scope})
	if err != nil {
		return nil, err
	}
	rows := make([]inventory.StockRow, 0, len(all))
	for _, r := range all {
		if r.Active {
			rows = append(rows, r)
		}
	}

	totalOrders, err := s.operations.CountOrders(ctx, operations.ActivityFilter{Scope: scope})
	if err != nil {
		return nil, err
	}
	pendingOrders, err := s.operations.CountOrders(ctx, operations.ActivityFilter{
		Scope:    scope,
		Statuses: operations.OrderStatuses(operations.OrderPending),
	})
	if err != nil {
		return nil, err
	}
	pendingReceipts, err := s.operations.CountReceipts(ctx, operations.ActivityFilter{
		Scope:    scope,
		Statuses: operations.ReceiptStatuses(operations.PendingReceiptStatuses...),
	})
	if err != nil {
		return nil, err
	}

	low := inventory.SelectLowStock(rows, inventory.DefaultLowStockLimit)
	s.metrics.RecordLowStock(ctx, len(scope.TenantIDs()), len(low))

	logger.L(ctx).Debug("Dashboard summary computed",
		zap.Int("scope_tenants", len(scope.TenantIDs())),
		zap.Int("products", len(rows)),
		zap.Int("low_stock", len(low)))

	return &DashboardSummary{
		Stock: StockSummary{
			TotalProducts: len(rows),
			TotalQuantity: inventory.TotalQuantity(all),
		},
		Orders: OrderSummary{
			TotalOrders:   totalOrders,
			PendingOrders: pendingOrders,
		},
		Receipts:         ReceiptSummary{PendingReceipts: pendingReceipts},
		LowStockProducts: low,
	}, nil
}

// InventoryView lists lots in scope with their product and location
func (s *AggregationService) InventoryView(ctx context.Context, scope tenancy.Scope, limit int) ([]inventory.LotView, error) {
	if scope.IsEmpty() {
		return []inventory.LotView{}, nil
	}
	return s.inventory.ListLots(ctx, scope, shared.ClampLimit(limit, DefaultLotLimit, MaxLotLimit))
}

// ListLocations lists warehouse locations by code. Locations hold goods of
// every tenant and are not scoped.
func (s *AggregationService) ListLocations(ctx context.Context, limit int) ([]inventory.Location, error) {
	return s.inventory.ListLocations(ctx, shared.ClampLimit(limit, MaxLocationLimit, MaxLocationLimit))
}

// ListOrders lists orders in scope, newest first. An empty status means any.
func (s *AggregationService) ListOrders(ctx context.Context, scope tenancy.Scope, status string, limit int) ([]operations.Order, error) {
	filter := operations.ActivityFilter{
		Scope: scope,
		Limit: shared.ClampLimit(limit, DefaultActivityLimit, MaxActivityLimit),
	}
	if status != "" {
		if !operations.OrderStatus(status).IsValid() {
			return nil, shared.InvalidInput("unknown order status %q", status)
		}
		filter.Statuses = []string{status}
	}
	if scope.IsEmpty() {
		return []operations.Order{}, nil
	}
	return s.operations.ListOrders(ctx, filter)
}

// ListReceipts lists receipts in scope, newest first. An empty status means any.
func (s *AggregationService) ListReceipts(ctx context.Context, scope tenancy.Scope, status string, limit int) ([]operations.Receipt, error) {
	filter := operations.ActivityFilter{
		Scope: scope,
		Limit: shared.ClampLimit(limit, DefaultActivityLimit, MaxActivityLimit),
	}
	if status != "" {
		if !operations.ReceiptStatus(status).IsValid() {
			return nil, shared.InvalidInput("unknown receipt status %q", status)
		}
		filter.Statuses = []string{status}
	}
	if scope.IsEmpty() {
		return []operations.Receipt{}, nil
	}
	return s.operations.ListReceipts(ctx, filter)
}

func (s *AggregationService) rollup(ctx context.Context, filter inventory.ProductFilter) ([]inventory.StockRow, error) {
	if filter.Scope.IsEmpty() {
		return []inventory.StockRow{}, nil
	}

	products, err := s.inventory.FindProducts(ctx, filter)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}

	sums, err := s.inventory.SumInventoryByProduct(ctx, ids)
	if err != nil {
		return nil, err
	}

	rows, err := inventory.Rollup(products, sums)
	if err != nil {
		logger.L(ctx).Error("Stock rollup aborted", zap.Error(err))
		return nil, fmt.Errorf("stock rollup: %w", err)
	}
	return rows, nil
}
