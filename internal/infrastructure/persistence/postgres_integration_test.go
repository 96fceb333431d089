//go:build integration

package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/wms3pl/backend/internal/domain/operations"
	"github.com/wms3pl/backend/internal/domain/shared"
	"github.com/wms3pl/backend/internal/domain/tenancy"
	"github.com/wms3pl/backend/internal/infrastructure/migration"
	"go.uber.org/zap"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newPostgresDB starts a disposable postgres container and applies the schema
func newPostgresDB(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("wms_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "Failed to start PostgreSQL container")
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("Warning: Failed to terminate container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	m, err := migration.New(sqlDB, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, m.Up())

	return db
}

func TestPostgres_InvoiceFlow(t *testing.T) {
	db := newPostgresDB(t)
	ctx := context.Background()

	seedTenant(t, db, "T1", false)
	seedTenant(t, db, "DEMO", true)

	feb := jan.AddDate(0, 1, 0)
	seedOrder(t, db, "T1", operations.OrderPending, jan)
	seedOrder(t, db, "T1", operations.OrderShipped, feb)
	seedReceipt(t, db, "T1", operations.ReceiptPlanned, jan.Add(time.Hour))

	ops := NewGormOperationsRepository(db)
	period, err := shared.NewPeriod(jan, feb)
	require.NoError(t, err)

	orders, err := ops.CountOrders(ctx, operations.ActivityFilter{Scope: tenancy.SingleTenant("T1"), Period: &period})
	require.NoError(t, err)
	assert.Equal(t, int64(1), orders)

	tenants, err := NewGormTenantRepository(db).FindTenants(ctx, tenancy.TenantFilter{ExcludeDemo: true})
	require.NoError(t, err)
	require.Len(t, tenants, 1)

	invoices := NewGormInvoiceRepository(db)
	require.NoError(t, invoices.Insert(ctx, newTestInvoice(t, "T1", "FACT-202502-0001", feb)))

	err = invoices.Insert(ctx, newTestInvoice(t, "T1", "FACT-202502-0001", feb))
	assert.ErrorIs(t, err, shared.ErrConflict)

	listed, err := invoices.List(ctx, tenancy.SingleTenant("T1"), 10)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "240.00", listed[0].Total.StringFixed(2))
	assert.Len(t, listed[0].Lines, 3)
}

func TestPostgres_MigrationsRollBack(t *testing.T) {
	db := newPostgresDB(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)

	m, err := migration.New(sqlDB, zap.NewNop())
	require.NoError(t, err)

	version, dirty, err := m.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(4), version)
	assert.False(t, dirty)

	require.NoError(t, m.Down())
	assert.False(t, db.Migrator().HasTable("invoices"))
}
