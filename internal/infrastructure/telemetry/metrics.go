package telemetry

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// ErrMeterNil is returned when a metrics constructor gets no meter
var ErrMeterNil = errors.New("telemetry: meter cannot be nil")

// BusinessMetrics records warehouse billing and stock health metrics.
type BusinessMetrics struct {
	logger *zap.Logger

	invoicesGenerated metric.Int64Counter
	invoicedAmount    metric.Float64Counter
	lowStockProducts  metric.Int64Gauge
}

// BusinessMetricsConfig holds configuration for business metrics.
type BusinessMetricsConfig struct {
	Meter  metric.Meter
	Logger *zap.Logger
}

// NewBusinessMetrics registers the business instruments on cfg.Meter
func NewBusinessMetrics(cfg BusinessMetricsConfig) (*BusinessMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	bm := &BusinessMetrics{logger: logger}
	var err error

	bm.invoicesGenerated, err = cfg.Meter.Int64Counter(
		"wms_invoices_generated_total",
		metric.WithDescription("Number of invoices generated"),
		metric.WithUnit("{invoices}"),
	)
	if err != nil {
		return nil, err
	}

	bm.invoicedAmount, err = cfg.Meter.Float64Counter(
		"wms_invoiced_amount_total",
		metric.WithDescription("Sum of generated invoice totals, tax included"),
		metric.WithUnit("{currency}"),
	)
	if err != nil {
		return nil, err
	}

	bm.lowStockProducts, err = cfg.Meter.Int64Gauge(
		"wms_low_stock_products",
		metric.WithDescription("Products below their minimum stock level in the last computed scope"),
		metric.WithUnit("{products}"),
	)
	if err != nil {
		return nil, err
	}

	return bm, nil
}

// RecordInvoiceGenerated counts one invoice and adds its total. A nil
// receiver records nothing.
func (bm *BusinessMetrics) RecordInvoiceGenerated(ctx context.Context, tenantID string, total decimal.Decimal) {
	if bm == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("tenant_id", tenantID))
	bm.invoicesGenerated.Add(ctx, 1, attrs)
	bm.invoicedAmount.Add(ctx, total.InexactFloat64(), attrs)
}

// RecordLowStock records the number of low-stock products for a scope of
// tenantCount tenants.
func (bm *BusinessMetrics) RecordLowStock(ctx context.Context, tenantCount int, lowStock int) {
	if bm == nil {
		return
	}
	bm.lowStockProducts.Record(ctx, int64(lowStock),
		metric.WithAttributes(attribute.Int("scope_tenants", tenantCount)))
}
