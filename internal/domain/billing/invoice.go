// Package billing computes period invoices for warehouse tenants.
//
// An invoice charges a tenant for the orders prepared and receipts handled in a
// half-open billing period, plus a flat monthly storage fee. Amounts are exact
// decimals rounded half-up to two places; invoices are created as drafts.
package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wms3pl/backend/internal/domain/shared"
	"github.com/wms3pl/backend/internal/domain/tenancy"
)

// Status is the lifecycle state of an invoice
type Status string

const (
	StatusDraft   Status = "draft"
	StatusSent    Status = "sent"
	StatusPaid    Status = "paid"
	StatusOverdue Status = "overdue"
)

// DefaultListLimit bounds invoice listings
const DefaultListLimit = 50

// Line is one charge on an invoice
type Line struct {
	Description string
	Quantity    int64
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal // Quantity × UnitPrice
}

// Invoice is a tenant's bill for one period
type Invoice struct {
	ID            string
	TenantID      string
	TenantName    string // filled on reads only
	InvoiceNumber string // FACT-YYYYMM-NNNN
	PeriodStart   time.Time
	PeriodEnd     time.Time // exclusive
	Lines         []Line
	Subtotal      decimal.Decimal
	TaxRate       decimal.Decimal // percent
	TaxAmount     decimal.Decimal
	Total         decimal.Decimal
	Status        Status
	IssueDate     time.Time
	DueDate       time.Time
	CreatedBy     string
	CreatedAt     time.Time
}

// Usage is the billable activity counted for a period
type Usage struct {
	Orders   int64
	Receipts int64
}

// Draft carries everything needed to build a draft invoice
type Draft struct {
	TenantID  string
	Period    shared.Period
	Usage     Usage
	Number    string
	IssuedAt  time.Time
	DueDays   int
	CreatedBy string
}

// NewDraftInvoice prices usage with policy and returns a draft invoice.
// Lines are always, in order: order preparation, receipt handling, storage.
func NewDraftInvoice(d Draft, policy PricingPolicy) (*Invoice, error) {
	if d.Usage.Orders < 0 || d.Usage.Receipts < 0 {
		return nil, shared.InvariantViolation("negative activity count (orders=%d, receipts=%d)",
			d.Usage.Orders, d.Usage.Receipts)
	}

	lines := []Line{
		newLine(fmt.Sprintf("Order preparation (%d)", d.Usage.Orders), d.Usage.Orders, policy.OrderPreparation),
		newLine(fmt.Sprintf("Receipt handling (%d)", d.Usage.Receipts), d.Usage.Receipts, policy.ReceiptHandling),
		newLine("Monthly storage fee", 1, policy.MonthlyStorage),
	}

	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.LineTotal)
	}
	subtotal = subtotal.Round(2)
	tax := TaxAmount(subtotal, policy.TaxRate)

	return &Invoice{
		TenantID:      d.TenantID,
		InvoiceNumber: d.Number,
		PeriodStart:   d.Period.Start,
		PeriodEnd:     d.Period.End,
		Lines:         lines,
		Subtotal:      subtotal,
		TaxRate:       policy.TaxRate,
		TaxAmount:     tax,
		Total:         subtotal.Add(tax),
		Status:        StatusDraft,
		IssueDate:     d.IssuedAt,
		DueDate:       d.IssuedAt.AddDate(0, 0, d.DueDays),
		CreatedBy:     d.CreatedBy,
		CreatedAt:     d.IssuedAt,
	}, nil
}

func newLine(description string, qty int64, unit decimal.Decimal) Line {
	return Line{
		Description: description,
		Quantity:    qty,
		UnitPrice:   unit,
		LineTotal:   unit.Mul(decimal.NewFromInt(qty)).Round(2),
	}
}

// TaxAmount is subtotal × rate / 100, rounded half-up to 2 places.
// Amounts are never negative, so decimal's half-away-from-zero rounding
// is half-up here.
func TaxAmount(subtotal, ratePercent decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(ratePercent).Div(decimal.NewFromInt(100)).Round(2)
}

// InvoiceNumber formats the human-readable invoice number for the given
// issue time and 1-based sequence.
func InvoiceNumber(issuedAt time.Time, seq int64) string {
	return fmt.Sprintf("FACT-%s-%04d", issuedAt.Format("200601"), seq)
}

// Repository persists invoices
type Repository interface {
	// Insert stores the invoice and its lines atomically and sets inv.ID.
	// A duplicate invoice number yields shared.ErrConflict.
	Insert(ctx context.Context, inv *Invoice) error
	// Count returns the number of invoices across all tenants.
	Count(ctx context.Context) (int64, error)
	// List returns invoices in scope, newest first.
	List(ctx context.Context, scope tenancy.Scope, limit int) ([]Invoice, error)
}
