package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appbilling "github.com/wms3pl/backend/internal/application/billing"
	"github.com/wms3pl/backend/internal/application/client"
	"github.com/wms3pl/backend/internal/application/report"
	"github.com/wms3pl/backend/internal/domain/inventory"
	"github.com/wms3pl/backend/internal/domain/operations"
	"github.com/wms3pl/backend/internal/domain/tenancy"
	"github.com/wms3pl/backend/internal/infrastructure/auth"
	"github.com/wms3pl/backend/internal/infrastructure/config"
	"github.com/wms3pl/backend/internal/infrastructure/persistence"
	"github.com/wms3pl/backend/internal/interfaces/http/dto"
	"github.com/wms3pl/backend/internal/interfaces/http/handler"
	"github.com/wms3pl/backend/internal/interfaces/http/middleware"
	"github.com/wms3pl/backend/internal/testutil"
)

var (
	jan      = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	issuedAt = time.Date(2025, 2, 3, 9, 0, 0, 0, time.UTC)
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

type apiFixture struct {
	engine *gin.Engine
	jwt    *auth.JWTService
}

type pingerFunc func() error

func (f pingerFunc) Ping(_ context.Context) error { return f() }

// setupAPI seeds:
//   - T1: SKU-A (lots 5, 0, 12 → 17, min 10), SKU-B (no lots, min 5)
//   - T2: SKU-C (20, min 100)
//   - DEMO (demo tenant): SKU-D (50)
//   - T1 has 12 orders and 4 receipts in January 2025, T2 one pending order
func setupAPI(t *testing.T) *apiFixture {
	t.Helper()
	db := testutil.NewSQLiteDB(t)

	testutil.NewSeeder(t, db).
		Tenant("T1", false, "Acme Logistics").
		Tenant("T2", false, "Globex").
		Tenant("DEMO", true, "Demo").
		Location("loc-1", "A-01").
		Product("p-a", "T1", "SKU-A", 10, true, "loc-1", 5, 0, 12).
		Product("p-b", "T1", "SKU-B", 5, true, "loc-1").
		Product("p-c", "T2", "SKU-C", 100, true, "loc-1", 20).
		Product("p-d", "DEMO", "SKU-D", 0, true, "loc-1", 50).
		Orders("T1", operations.OrderShipped, jan, 12).
		Receipts("T1", operations.ReceiptCompleted, jan, 4).
		Orders("T2", operations.OrderPending, jan, 1)

	tenants := persistence.NewGormTenantRepository(db)
	ops := persistence.NewGormOperationsRepository(db)
	resolver := tenancy.NewResolver(tenants)

	aggregation := report.NewAggregationService(persistence.NewGormInventoryRepository(db), ops, nil)
	invoices := appbilling.NewInvoiceService(resolver, tenants, ops, persistence.NewGormInvoiceRepository(db), nil,
		appbilling.InvoiceServiceConfig{Now: func() time.Time { return issuedAt }})

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                "router-test-secret-at-least-32-chars",
		Issuer:                "wms-test",
		AccessTokenExpiration: time.Hour,
	})

	engine, err := NewEngine(EngineConfig{
		CORS:        middleware.DefaultCORSConfig(),
		MaxBodySize: 1 << 20,
	})
	require.NoError(t, err)
	handler.NewHealthHandler(pingerFunc(func() error { return nil })).RegisterRoutes(&engine.RouterGroup)

	NewRouter(engine, WithGroupMiddleware(
		middleware.JWTAuthMiddleware(jwtService),
		middleware.TracingAttributeInjector(),
	)).
		Register(handler.NewClientHandler(client.NewClientService(tenants))).
		Register(handler.NewReportHandler(resolver, aggregation)).
		Register(handler.NewBillingHandler(resolver, invoices)).
		Setup()

	return &apiFixture{engine: engine, jwt: jwtService}
}

func (f *apiFixture) token(t *testing.T, p tenancy.Principal) string {
	t.Helper()
	token, _, err := f.jwt.GenerateAccessToken(p)
	require.NoError(t, err)
	return token
}

func (f *apiFixture) do(t *testing.T, method, path, token, body string) (*httptest.ResponseRecorder, dto.Response) {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.engine.ServeHTTP(rec, req)

	var resp dto.Response
	if rec.Body.Len() > 0 {
		resp = testutil.DecodeResponse(t, rec)
	}
	return rec, resp
}

// decodeData re-decodes resp.Data into out
func decodeData(t *testing.T, resp dto.Response, out any) {
	t.Helper()
	raw, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, out))
}

var (
	admin    = tenancy.Principal{UserID: "op-1", Role: tenancy.RoleAdmin}
	clientT1 = tenancy.Principal{UserID: "c-1", Role: tenancy.RoleClient, TenantID: "T1"}
)

func TestAPI_Health(t *testing.T) {
	f := setupAPI(t)
	rec, resp := f.do(t, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestAPI_RequiresAuthentication(t *testing.T) {
	f := setupAPI(t)
	rec, resp := f.do(t, http.MethodGet, "/api/v1/inventory/stock", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, dto.ErrCodeUnauthorized, resp.Error.Code)
}

func TestAPI_UnknownRoute(t *testing.T) {
	f := setupAPI(t)
	rec, resp := f.do(t, http.MethodGet, "/nowhere", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, dto.ErrCodeNotFound, resp.Error.Code)
}

func TestAPI_StockRollupIsolation(t *testing.T) {
	f := setupAPI(t)

	t.Run("client sees only its tenant", func(t *testing.T) {
		rec, resp := f.do(t, http.MethodGet, "/api/v1/inventory/stock", f.token(t, clientT1), "")
		require.Equal(t, http.StatusOK, rec.Code)
		var rows []inventory.StockRow
		decodeData(t, resp, &rows)
		require.Len(t, rows, 2)
		assert.Equal(t, "SKU-A", rows[0].SKU)
		assert.Equal(t, int64(17), rows[0].CurrentStock)
		assert.Equal(t, int64(0), rows[1].CurrentStock)
	})

	t.Run("client asking for another tenant is forbidden", func(t *testing.T) {
		rec, resp := f.do(t, http.MethodGet, "/api/v1/inventory/stock?tenant_id=T2", f.token(t, clientT1), "")
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, dto.ErrCodeForbidden, resp.Error.Code)
	})

	t.Run("client naming its own tenant", func(t *testing.T) {
		rec, _ := f.do(t, http.MethodGet, "/api/v1/inventory/stock?tenant_id=T1", f.token(t, clientT1), "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("admin without filter excludes demo", func(t *testing.T) {
		_, resp := f.do(t, http.MethodGet, "/api/v1/inventory/stock", f.token(t, admin), "")
		var rows []inventory.StockRow
		decodeData(t, resp, &rows)
		skus := make([]string, len(rows))
		for i, r := range rows {
			skus[i] = r.SKU
		}
		assert.Equal(t, []string{"SKU-A", "SKU-B", "SKU-C"}, skus)
	})

	t.Run("admin may request the demo tenant", func(t *testing.T) {
		_, resp := f.do(t, http.MethodGet, "/api/v1/inventory/stock?tenant_id=DEMO", f.token(t, admin), "")
		var rows []inventory.StockRow
		decodeData(t, resp, &rows)
		require.Len(t, rows, 1)
		assert.Equal(t, int64(50), rows[0].CurrentStock)
	})
}

func TestAPI_LowStockAndDashboard(t *testing.T) {
	f := setupAPI(t)
	token := f.token(t, admin)

	rec, resp := f.do(t, http.MethodGet, "/api/v1/inventory/low-stock", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var low []inventory.StockRow
	decodeData(t, resp, &low)
	require.Len(t, low, 2)
	assert.Equal(t, "SKU-B", low[0].SKU)
	assert.Equal(t, "SKU-C", low[1].SKU)

	rec, _ = f.do(t, http.MethodGet, "/api/v1/inventory/low-stock?limit=abc", token, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, resp = f.do(t, http.MethodGet, "/api/v1/dashboard/summary", f.token(t, clientT1), "")
	require.Equal(t, http.StatusOK, rec.Code)
	var summary report.DashboardSummary
	decodeData(t, resp, &summary)
	assert.Equal(t, 2, summary.Stock.TotalProducts)
	assert.Equal(t, int64(17), summary.Stock.TotalQuantity)
	assert.Equal(t, int64(12), summary.Orders.TotalOrders)
	assert.Zero(t, summary.Orders.PendingOrders)
	require.Len(t, summary.LowStockProducts, 1)
	assert.Equal(t, "SKU-B", summary.LowStockProducts[0].SKU)
}

func TestAPI_ActivityListings(t *testing.T) {
	f := setupAPI(t)
	token := f.token(t, admin)

	_, resp := f.do(t, http.MethodGet, "/api/v1/orders?status=pending", token, "")
	var orders []operations.Order
	decodeData(t, resp, &orders)
	require.Len(t, orders, 1)
	assert.Equal(t, "T2", orders[0].TenantID)

	_, resp = f.do(t, http.MethodGet, "/api/v1/orders?limit=5", f.token(t, clientT1), "")
	decodeData(t, resp, &orders)
	require.Len(t, orders, 5)
	assert.Equal(t, "CMD-000012", orders[0].OrderNumber)

	rec, resp := f.do(t, http.MethodGet, "/api/v1/receipts?status=lost", token, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, dto.ErrCodeInvalidInput, resp.Error.Code)

	_, resp = f.do(t, http.MethodGet, "/api/v1/inventory/lots", f.token(t, clientT1), "")
	var lots []dto.LotResponse
	decodeData(t, resp, &lots)
	assert.Len(t, lots, 3)
	for _, l := range lots {
		assert.Equal(t, "T1", l.TenantID)
		assert.Equal(t, "A-01", l.LocationCode)
	}
}

func TestAPI_ClientsAndLocations(t *testing.T) {
	f := setupAPI(t)

	t.Run("operator lists active clients", func(t *testing.T) {
		rec, _ := f.do(t, http.MethodGet, "/api/v1/clients", f.token(t, admin), "")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		clients := testutil.DecodeData[[]dto.ClientResponse](t, rec)
		ids := make([]string, len(clients))
		for i, c := range clients {
			ids[i] = c.ID
		}
		assert.Equal(t, []string{"DEMO", "T1", "T2"}, ids, "ordered by code")
		assert.True(t, clients[0].IsDemo)
		assert.Equal(t, "Acme Logistics", clients[1].Name)
	})

	t.Run("client cannot list clients", func(t *testing.T) {
		rec, _ := f.do(t, http.MethodGet, "/api/v1/clients", f.token(t, clientT1), "")
		testutil.AssertErrorResponse(t, rec, http.StatusForbidden, dto.ErrCodeForbidden)
	})

	t.Run("any caller lists locations", func(t *testing.T) {
		rec, _ := f.do(t, http.MethodGet, "/api/v1/locations", f.token(t, clientT1), "")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		locations := testutil.DecodeData[[]dto.LocationResponse](t, rec)
		require.Len(t, locations, 1)
		assert.Equal(t, dto.LocationResponse{ID: "loc-1", Code: "A-01", Zone: "A"}, locations[0])
	})

	t.Run("locations require authentication", func(t *testing.T) {
		rec, _ := f.do(t, http.MethodGet, "/api/v1/locations", "", "")
		testutil.AssertErrorResponse(t, rec, http.StatusUnauthorized, dto.ErrCodeUnauthorized)
	})
}

func TestAPI_GenerateInvoice(t *testing.T) {
	f := setupAPI(t)
	token := f.token(t, admin)
	body := `{"tenant_id":"T1","period_start":"2025-01-01","period_end":"2025-02-01"}`

	rec, resp := f.do(t, http.MethodPost, "/api/v1/billing/invoices/generate", token, body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var inv dto.InvoiceResponse
	decodeData(t, resp, &inv)
	assert.Equal(t, "FACT-202502-0001", inv.InvoiceNumber)
	assert.Equal(t, "Acme Logistics", inv.ClientName)
	require.Len(t, inv.Lines, 3)
	assert.Equal(t, "Order preparation (12)", inv.Lines[0].Description)
	assert.Equal(t, "30.00", inv.Lines[0].LineTotal)
	assert.Equal(t, "200.00", inv.Subtotal)
	assert.Equal(t, "40.00", inv.TaxAmount)
	assert.Equal(t, "240.00", inv.Total)
	assert.Equal(t, "draft", inv.Status)
	assert.Equal(t, "2025-03-05", inv.DueDate)

	_, resp = f.do(t, http.MethodGet, "/api/v1/billing/invoices", f.token(t, clientT1), "")
	var listed []dto.InvoiceResponse
	decodeData(t, resp, &listed)
	require.Len(t, listed, 1)
	assert.Equal(t, inv.ID, listed[0].ID)

	_, resp = f.do(t, http.MethodGet, "/api/v1/billing/invoices?tenant_id=T2", token, "")
	decodeData(t, resp, &listed)
	assert.Empty(t, listed)
}

func TestAPI_GenerateInvoiceRejections(t *testing.T) {
	f := setupAPI(t)
	adminToken := f.token(t, admin)
	clientToken := f.token(t, clientT1)

	tests := []struct {
		name   string
		token  string
		body   string
		status int
		code   string
	}{
		{"end before start", adminToken, `{"tenant_id":"T1","period_start":"2025-02-01","period_end":"2025-01-01"}`, http.StatusBadRequest, dto.ErrCodeInvalidPeriod},
		{"missing field", adminToken, `{"tenant_id":"T1","period_start":"2025-01-01"}`, http.StatusBadRequest, dto.ErrCodeValidation},
		{"unknown field", adminToken, `{"tenant_id":"T1","period_start":"2025-01-01","period_end":"2025-02-01","amount":1}`, http.StatusBadRequest, dto.ErrCodeInvalidJSON},
		{"malformed date", adminToken, `{"tenant_id":"T1","period_start":"01/01/2025","period_end":"2025-02-01"}`, http.StatusBadRequest, dto.ErrCodeInvalidInput},
		{"unknown tenant", adminToken, `{"tenant_id":"GHOST","period_start":"2025-01-01","period_end":"2025-02-01"}`, http.StatusNotFound, dto.ErrCodeNotFound},
		{"client", clientToken, `{"tenant_id":"T1","period_start":"2025-01-01","period_end":"2025-02-01"}`, http.StatusForbidden, dto.ErrCodeForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, resp := f.do(t, http.MethodPost, "/api/v1/billing/invoices/generate", tt.token, tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}

	_, resp := f.do(t, http.MethodGet, "/api/v1/billing/invoices", adminToken, "")
	var listed []dto.InvoiceResponse
	decodeData(t, resp, &listed)
	assert.Empty(t, listed, "no invoice is stored when generation is rejected")
}
