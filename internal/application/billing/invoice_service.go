// Package billing generates and lists period invoices.
package billing

import (
	"context"
	"errors"
	"time"

	"github.com/wms3pl/backend/internal/domain/billing"
	"github.com/wms3pl/backend/internal/domain/operations"
	"github.com/wms3pl/backend/internal/domain/shared"
	"github.com/wms3pl/backend/internal/domain/tenancy"
	"github.com/wms3pl/backend/internal/infrastructure/logger"
	"github.com/wms3pl/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

const (
	// MaxInvoiceListLimit caps invoice listings
	MaxInvoiceListLimit = 200
	// MaxNumberAttempts bounds retries when concurrent generates race for the
	// same invoice number
	MaxNumberAttempts = 5
)

// GenerateInvoiceInput names the tenant and half-open period to bill
type GenerateInvoiceInput struct {
	TenantID    string
	PeriodStart time.Time
	PeriodEnd   time.Time
}

// InvoiceServiceConfig contains configuration for InvoiceService
type InvoiceServiceConfig struct {
	DueDays int                    // default 30
	Pricing *billing.PricingPolicy // default billing.DefaultPricing()
	Now     func() time.Time       // default time.Now
}

// InvoiceService prices period activity into draft invoices
type InvoiceService struct {
	resolver   *tenancy.Resolver
	tenants    tenancy.TenantReader
	operations operations.Reader
	invoices   billing.Repository
	metrics    *telemetry.BusinessMetrics

	dueDays int
	pricing billing.PricingPolicy
	now     func() time.Time
}

// NewInvoiceService creates a new InvoiceService. metrics may be nil.
func NewInvoiceService(
	resolver *tenancy.Resolver,
	tenants tenancy.TenantReader,
	operationsReader operations.Reader,
	invoices billing.Repository,
	metrics *telemetry.BusinessMetrics,
	config InvoiceServiceConfig,
) *InvoiceService {
	if config.DueDays <= 0 {
		config.DueDays = 30
	}
	pricing := billing.DefaultPricing()
	if config.Pricing != nil {
		pricing = *config.Pricing
	}
	if config.Now == nil {
		config.Now = time.Now
	}

	return &InvoiceService{
		resolver:   resolver,
		tenants:    tenants,
		operations: operationsReader,
		invoices:   invoices,
		metrics:    metrics,
		dueDays:    config.DueDays,
		pricing:    pricing,
		now:        config.Now,
	}
}

// Generate bills the tenant's orders and receipts created in the period.
// Only operators may generate; every check runs before anything is written,
// and repeated calls create distinct invoices.
func (s *InvoiceService) Generate(ctx context.Context, caller tenancy.Principal, input GenerateInvoiceInput) (*billing.Invoice, error) {
	period, err := shared.NewPeriod(input.PeriodStart.UTC(), input.PeriodEnd.UTC())
	if err != nil {
		return nil, err
	}
	if input.TenantID == "" {
		return nil, shared.InvalidInput("tenant_id is required")
	}

	scope, err := s.resolver.Resolve(ctx, caller, &input.TenantID)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin() {
		return nil, shared.Forbidden("only operators may generate invoices")
	}

	tenant, err := s.tenants.GetTenant(ctx, input.TenantID)
	if err != nil {
		return nil, err
	}

	activity := operations.ActivityFilter{Scope: scope, Period: &period}
	orders, err := s.operations.CountOrders(ctx, activity)
	if err != nil {
		return nil, err
	}
	receipts, err := s.operations.CountReceipts(ctx, activity)
	if err != nil {
		return nil, err
	}

	issuedAt := s.now().UTC()
	var invoice *billing.Invoice
	for attempt := 1; ; attempt++ {
		invoice, err = s.numberAndStore(ctx, billing.Draft{
			TenantID:  tenant.ID,
			Period:    period,
			Usage:     billing.Usage{Orders: orders, Receipts: receipts},
			IssuedAt:  issuedAt,
			DueDays:   s.dueDays,
			CreatedBy: caller.UserID,
		})
		if err == nil {
			break
		}
		// a concurrent generate took the number; recount and try the next one
		if errors.Is(err, shared.ErrConflict) && attempt < MaxNumberAttempts {
			logger.L(ctx).Debug("Invoice number taken, retrying",
				zap.String("tenant_id", tenant.ID),
				zap.Int("attempt", attempt))
			continue
		}
		logger.L(ctx).Error("Failed to store invoice",
			zap.String("tenant_id", tenant.ID),
			zap.Int("attempts", attempt),
			zap.Error(err))
		return nil, err
	}
	invoice.TenantName = tenant.Name

	s.metrics.RecordInvoiceGenerated(ctx, tenant.ID, invoice.Total)
	logger.L(ctx).Info("Invoice generated",
		zap.String("invoice_id", invoice.ID),
		zap.String("invoice_number", invoice.InvoiceNumber),
		zap.String("tenant_id", tenant.ID),
		zap.Int64("orders", orders),
		zap.Int64("receipts", receipts),
		zap.String("total", invoice.Total.StringFixed(2)))

	return invoice, nil
}

// numberAndStore assigns the next global invoice number to the draft, prices
// it and inserts it
func (s *InvoiceService) numberAndStore(ctx context.Context, draft billing.Draft) (*billing.Invoice, error) {
	existing, err := s.invoices.Count(ctx)
	if err != nil {
		return nil, err
	}
	draft.Number = billing.InvoiceNumber(draft.IssuedAt, existing+1)

	invoice, err := billing.NewDraftInvoice(draft, s.pricing)
	if err != nil {
		return nil, err
	}
	if err := s.invoices.Insert(ctx, invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

// ListInvoices returns invoices in scope, newest first
func (s *InvoiceService) ListInvoices(ctx context.Context, scope tenancy.Scope, limit int) ([]billing.Invoice, error) {
	if scope.IsEmpty() {
		return []billing.Invoice{}, nil
	}
	return s.invoices.List(ctx, scope, shared.ClampLimit(limit, billing.DefaultListLimit, MaxInvoiceListLimit))
}
