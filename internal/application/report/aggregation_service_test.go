package report

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/wms3pl/backend/internal/domain/inventory"
	"github.com/wms3pl/backend/internal/domain/operations"
	"github.com/wms3pl/backend/internal/domain/shared"
	"github.com/wms3pl/backend/internal/domain/tenancy"
	"github.com/wms3pl/backend/internal/infrastructure/persistence"
	"github.com/wms3pl/backend/internal/infrastructure/persistence/models"
	"github.com/wms3pl/backend/internal/infrastructure/telemetry"
	"github.com/wms3pl/backend/internal/testutil"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// MockInventoryReader is a mock implementation of inventory.Reader
type MockInventoryReader struct {
	mock.Mock
}

func (m *MockInventoryReader) FindProducts(ctx context.Context, filter inventory.ProductFilter) ([]inventory.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.Product), args.Error(1)
}

func (m *MockInventoryReader) SumInventoryByProduct(ctx context.Context, productIDs []string) (map[string]int64, error) {
	args := m.Called(ctx, productIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}

func (m *MockInventoryReader) ListLots(ctx context.Context, scope tenancy.Scope, limit int) ([]inventory.LotView, error) {
	args := m.Called(ctx, scope, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.LotView), args.Error(1)
}

func (m *MockInventoryReader) ListLocations(ctx context.Context, limit int) ([]inventory.Location, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.Location), args.Error(1)
}

// MockOperationsReader is a mock implementation of operations.Reader
type MockOperationsReader struct {
	mock.Mock
}

func (m *MockOperationsReader) CountOrders(ctx context.Context, filter operations.ActivityFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOperationsReader) CountReceipts(ctx context.Context, filter operations.ActivityFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOperationsReader) ListOrders(ctx context.Context, filter operations.ActivityFilter) ([]operations.Order, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]operations.Order), args.Error(1)
}

func (m *MockOperationsReader) ListReceipts(ctx context.Context, filter operations.ActivityFilter) ([]operations.Receipt, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]operations.Receipt), args.Error(1)
}

func product(id, sku string, minStock int64) inventory.Product {
	return inventory.Product{ID: id, TenantID: "T1", SKU: sku, Name: "Product " + sku, MinStockLevel: minStock, Active: true}
}

func TestAggregationService_StockRollup(t *testing.T) {
	ctx := context.Background()
	scope := tenancy.SingleTenant("T1")

	t.Run("sums lots and reports zero for products without lots", func(t *testing.T) {
		inv := new(MockInventoryReader)
		inv.On("FindProducts", ctx, inventory.ProductFilter{Scope: scope}).
			Return([]inventory.Product{product("p2", "SKU-B", 0), product("p1", "SKU-A", 0)}, nil)
		inv.On("SumInventoryByProduct", ctx, []string{"p2", "p1"}).
			Return(map[string]int64{"p1": 17}, nil)

		svc := NewAggregationService(inv, new(MockOperationsReader), nil)
		rows, err := svc.StockRollup(ctx, scope)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "SKU-A", rows[0].SKU)
		assert.Equal(t, int64(17), rows[0].CurrentStock)
		assert.Equal(t, int64(0), rows[1].CurrentStock)
		inv.AssertExpectations(t)
	})

	t.Run("negative stock aborts", func(t *testing.T) {
		inv := new(MockInventoryReader)
		inv.On("FindProducts", ctx, mock.Anything).Return([]inventory.Product{product("p1", "SKU-A", 0)}, nil)
		inv.On("SumInventoryByProduct", ctx, []string{"p1"}).Return(map[string]int64{"p1": -3}, nil)

		svc := NewAggregationService(inv, new(MockOperationsReader), nil)
		_, err := svc.StockRollup(ctx, scope)
		assert.ErrorIs(t, err, shared.ErrInvariantViolation)
	})

	t.Run("empty scope reads nothing", func(t *testing.T) {
		inv := new(MockInventoryReader)
		svc := NewAggregationService(inv, new(MockOperationsReader), nil)

		rows, err := svc.StockRollup(ctx, tenancy.EmptyScope())
		require.NoError(t, err)
		assert.Empty(t, rows)
		inv.AssertNotCalled(t, "FindProducts", mock.Anything, mock.Anything)
	})

	t.Run("store error propagates", func(t *testing.T) {
		inv := new(MockInventoryReader)
		inv.On("FindProducts", ctx, mock.Anything).Return(nil, fmt.Errorf("connection reset"))

		svc := NewAggregationService(inv, new(MockOperationsReader), nil)
		_, err := svc.StockRollup(ctx, scope)
		assert.EqualError(t, err, "connection reset")
	})
}

func TestAggregationService_LowStock(t *testing.T) {
	ctx := context.Background()
	scope := tenancy.SingleTenant("T1")
	activeOnly := inventory.ProductFilter{Scope: scope, ActiveOnly: true}

	newService := func() *AggregationService {
		inv := new(MockInventoryReader)
		inv.On("FindProducts", ctx, activeOnly).Return([]inventory.Product{
			product("a", "A", 10),
			product("b", "B", 10),
			product("c", "C", 10),
			product("d", "D", 1),
		}, nil)
		inv.On("SumInventoryByProduct", ctx, mock.Anything).
			Return(map[string]int64{"a": 2, "b": 8, "c": 5, "d": 1}, nil)
		return NewAggregationService(inv, new(MockOperationsReader), nil)
	}

	t.Run("orders by stock then sku", func(t *testing.T) {
		rows, err := newService().LowStock(ctx, scope, 0)
		require.NoError(t, err)
		skus := make([]string, len(rows))
		for i, r := range rows {
			skus[i] = r.SKU
		}
		assert.Equal(t, []string{"A", "C", "B"}, skus)
	})

	t.Run("truncates to limit", func(t *testing.T) {
		rows, err := newService().LowStock(ctx, scope, 1)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "A", rows[0].SKU)
	})

	t.Run("records gauge", func(t *testing.T) {
		reader := sdkmetric.NewManualReader()
		provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
		bm, err := telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{Meter: provider.Meter("test")})
		require.NoError(t, err)

		svc := newService()
		svc.metrics = bm
		_, err = svc.LowStock(ctx, scope, 0)
		require.NoError(t, err)

		var rm metricdata.ResourceMetrics
		require.NoError(t, reader.Collect(ctx, &rm))
		require.Len(t, rm.ScopeMetrics, 1)
		require.Len(t, rm.ScopeMetrics[0].Metrics, 1)
		gauge, ok := rm.ScopeMetrics[0].Metrics[0].Data.(metricdata.Gauge[int64])
		require.True(t, ok)
		require.Len(t, gauge.DataPoints, 1)
		assert.Equal(t, int64(3), gauge.DataPoints[0].Value)
	})
}

func TestAggregationService_DashboardSummary(t *testing.T) {
	ctx := context.Background()
	scope := tenancy.NonDemoTenants([]string{"T1", "T2"})

	inv := new(MockInventoryReader)
	retired := product("p3", "C", 50)
	retired.Active = false
	inv.On("FindProducts", ctx, inventory.ProductFilter{Scope: scope}).
		Return([]inventory.Product{product("p1", "A", 10), product("p2", "B", 0), retired}, nil)
	inv.On("SumInventoryByProduct", ctx, []string{"p1", "p2", "p3"}).
		Return(map[string]int64{"p1": 4, "p2": 30, "p3": 7}, nil)

	ops := new(MockOperationsReader)
	ops.On("CountOrders", ctx, operations.ActivityFilter{Scope: scope}).Return(int64(9), nil)
	ops.On("CountOrders", ctx, operations.ActivityFilter{Scope: scope, Statuses: []string{"pending"}}).Return(int64(3), nil)
	ops.On("CountReceipts", ctx, operations.ActivityFilter{Scope: scope, Statuses: []string{"planned", "in_progress"}}).Return(int64(2), nil)

	summary, err := NewAggregationService(inv, ops, nil).DashboardSummary(ctx, scope)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Stock.TotalProducts)
	assert.Equal(t, int64(41), summary.Stock.TotalQuantity, "inactive stock is still counted")
	assert.Equal(t, int64(9), summary.Orders.TotalOrders)
	assert.Equal(t, int64(3), summary.Orders.PendingOrders)
	assert.Equal(t, int64(2), summary.Receipts.PendingReceipts)
	require.Len(t, summary.LowStockProducts, 1)
	assert.Equal(t, "p1", summary.LowStockProducts[0].ProductID)
	ops.AssertExpectations(t)
}

func TestAggregationService_ListLocations(t *testing.T) {
	ctx := context.Background()
	inv := new(MockInventoryReader)
	inv.On("ListLocations", ctx, MaxLocationLimit).Return([]inventory.Location{{ID: "l1", Code: "A-01"}}, nil).Twice()

	svc := NewAggregationService(inv, nil, nil)
	locations, err := svc.ListLocations(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, locations, 1)

	_, err = svc.ListLocations(ctx, 5000)
	require.NoError(t, err)
	inv.AssertExpectations(t)
}

func TestAggregationService_ListActivity(t *testing.T) {
	ctx := context.Background()
	scope := tenancy.SingleTenant("T1")

	t.Run("invalid order status", func(t *testing.T) {
		ops := new(MockOperationsReader)
		_, err := NewAggregationService(new(MockInventoryReader), ops, nil).ListOrders(ctx, scope, "lost", 0)
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
		ops.AssertNotCalled(t, "ListOrders", mock.Anything, mock.Anything)
	})

	t.Run("invalid receipt status", func(t *testing.T) {
		_, err := NewAggregationService(new(MockInventoryReader), new(MockOperationsReader), nil).
			ListReceipts(ctx, scope, "shipped", 0)
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})

	t.Run("default and capped limits", func(t *testing.T) {
		ops := new(MockOperationsReader)
		ops.On("ListOrders", ctx, operations.ActivityFilter{Scope: scope, Limit: DefaultActivityLimit}).
			Return([]operations.Order{}, nil).Once()
		ops.On("ListOrders", ctx, operations.ActivityFilter{Scope: scope, Statuses: []string{"shipped"}, Limit: MaxActivityLimit}).
			Return([]operations.Order{}, nil).Once()

		svc := NewAggregationService(new(MockInventoryReader), ops, nil)
		_, err := svc.ListOrders(ctx, scope, "", 0)
		require.NoError(t, err)
		_, err = svc.ListOrders(ctx, scope, "shipped", 10_000)
		require.NoError(t, err)
		ops.AssertExpectations(t)
	})

	t.Run("inventory view default limit", func(t *testing.T) {
		inv := new(MockInventoryReader)
		inv.On("ListLots", ctx, scope, DefaultLotLimit).Return([]inventory.LotView{{LotID: "l1"}}, nil)

		lots, err := NewAggregationService(inv, new(MockOperationsReader), nil).InventoryView(ctx, scope, -1)
		require.NoError(t, err)
		assert.Len(t, lots, 1)
	})
}

// End-to-end over the GORM store: tenant isolation and demo exclusion.
func TestAggregationService_WithStore(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))

	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	for _, tn := range []models.TenantModel{
		{ID: "T1", Code: "ACME", Name: "Acme", Active: true, CreatedAt: now},
		{ID: "T2", Code: "GLOBEX", Name: "Globex", Active: true, CreatedAt: now},
		{ID: "DEMO", Code: "DEMO", Name: "Demo", IsDemo: true, Active: true, CreatedAt: now},
	} {
		require.NoError(t, db.Create(&tn).Error)
	}
	require.NoError(t, db.Create(&models.LocationModel{ID: "loc", Code: "A-01"}).Error)
	for _, p := range []models.ProductModel{
		{ID: "p1", TenantID: "T1", SKU: "X", Name: "T1 X", MinStockLevel: 10, Active: true, CreatedAt: now},
		{ID: "p2", TenantID: "T2", SKU: "X", Name: "T2 X", MinStockLevel: 0, Active: true, CreatedAt: now},
		{ID: "p3", TenantID: "DEMO", SKU: "X", Name: "Demo X", MinStockLevel: 100, Active: true, CreatedAt: now},
	} {
		require.NoError(t, db.Create(&p).Error)
	}
	for i, lot := range []struct {
		product string
		qty     int64
	}{{"p1", 5}, {"p1", 0}, {"p1", 12}, {"p2", 3}, {"p3", 50}} {
		require.NoError(t, db.Create(&models.InventoryLotModel{
			ID: fmt.Sprintf("lot-%d", i), ProductID: lot.product, LocationID: "loc", Quantity: lot.qty,
		}).Error)
	}

	tenants := persistence.NewGormTenantRepository(db)
	resolver := tenancy.NewResolver(tenants)
	svc := NewAggregationService(
		persistence.NewGormInventoryRepository(db),
		persistence.NewGormOperationsRepository(db),
		nil,
	)
	ctx := context.Background()

	t.Run("client sees only its tenant", func(t *testing.T) {
		scope, err := resolver.Resolve(ctx, tenancy.Principal{UserID: "u1", Role: tenancy.RoleClient, TenantID: "T1"}, nil)
		require.NoError(t, err)

		rows, err := svc.StockRollup(ctx, scope)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "T1", rows[0].TenantID)
		assert.Equal(t, int64(17), rows[0].CurrentStock)
	})

	t.Run("admin without filter excludes demo", func(t *testing.T) {
		scope, err := resolver.Resolve(ctx, tenancy.Principal{UserID: "op", Role: tenancy.RoleAdmin}, nil)
		require.NoError(t, err)

		summary, err := svc.DashboardSummary(ctx, scope)
		require.NoError(t, err)
		assert.Equal(t, 2, summary.Stock.TotalProducts)
		assert.Equal(t, int64(20), summary.Stock.TotalQuantity)
		assert.Empty(t, summary.LowStockProducts)
	})

	t.Run("admin may request the demo tenant", func(t *testing.T) {
		demo := "DEMO"
		scope, err := resolver.Resolve(ctx, tenancy.Principal{UserID: "op", Role: tenancy.RoleAdmin}, &demo)
		require.NoError(t, err)

		low, err := svc.LowStock(ctx, scope, 0)
		require.NoError(t, err)
		require.Len(t, low, 1)
		assert.Equal(t, "p3", low[0].ProductID)
	})

	t.Run("unknown tenant yields empty result", func(t *testing.T) {
		ghost := "GHOST"
		scope, err := resolver.Resolve(ctx, tenancy.Principal{UserID: "op", Role: tenancy.RoleAdmin}, &ghost)
		require.NoError(t, err)

		rows, err := svc.StockRollup(ctx, scope)
		require.NoError(t, err)
		assert.Empty(t, rows)
	})
}

func TestAggregationService_DashboardCountsInactiveStock(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	testutil.NewSeeder(t, db).
		Tenant("T1", false).
		Location("loc-1", "A-01").
		Product("p-on", "T1", "SKU-ON", 5, true, "loc-1", 10).
		Product("p-off", "T1", "SKU-OFF", 50, false, "loc-1", 7)

	svc := NewAggregationService(
		persistence.NewGormInventoryRepository(db),
		persistence.NewGormOperationsRepository(db),
		nil,
	)

	summary, err := svc.DashboardSummary(context.Background(), tenancy.SingleTenant("T1"))
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Stock.TotalProducts)
	assert.Equal(t, int64(17), summary.Stock.TotalQuantity)
	assert.Empty(t, summary.LowStockProducts, "inactive products are never low")
}
