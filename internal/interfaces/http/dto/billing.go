package dto

import (
	"time"

	"github.com/wms3pl/backend/internal/domain/billing"
)

// DateLayout is the calendar date format accepted and returned by the API
const DateLayout = "2006-01-02"

// GenerateInvoiceRequest is the body of POST /billing/invoices/generate.
// Dates are either 2006-01-02 (midnight UTC) or RFC 3339.
type GenerateInvoiceRequest struct {
	TenantID    string `json:"tenant_id" binding:"required,max=36"`
	PeriodStart string `json:"period_start" binding:"required"`
	PeriodEnd   string `json:"period_end" binding:"required"`
}

// InvoiceLineResponse is one invoice line. Money is a 2-decimal string.
type InvoiceLineResponse struct {
	Description string `json:"description"`
	Quantity    int64  `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	LineTotal   string `json:"line_total"`
}

// InvoiceResponse is the API view of an invoice
type InvoiceResponse struct {
	ID            string                `json:"id"`
	InvoiceNumber string                `json:"invoice_number"`
	TenantID      string                `json:"tenant_id"`
	ClientName    string                `json:"client_name,omitempty"`
	PeriodStart   time.Time             `json:"period_start"`
	PeriodEnd     time.Time             `json:"period_end"`
	Lines         []InvoiceLineResponse `json:"lines"`
	Subtotal      string                `json:"subtotal"`
	TaxRate       string                `json:"tax_rate"`
	TaxAmount     string                `json:"tax_amount"`
	Total         string                `json:"total"`
	Status        string                `json:"status"`
	IssueDate     string                `json:"issue_date"`
	DueDate       string                `json:"due_date"`
	CreatedBy     string                `json:"created_by,omitempty"`
	CreatedAt     time.Time             `json:"created_at"`
}

// ToInvoiceResponse converts a domain invoice
func ToInvoiceResponse(inv *billing.Invoice) InvoiceResponse {
	lines := make([]InvoiceLineResponse, len(inv.Lines))
	for i, l := range inv.Lines {
		lines[i] = InvoiceLineResponse{
			Description: l.Description,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice.StringFixed(2),
			LineTotal:   l.LineTotal.StringFixed(2),
		}
	}
	return InvoiceResponse{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		TenantID:      inv.TenantID,
		ClientName:    inv.TenantName,
		PeriodStart:   inv.PeriodStart.UTC(),
		PeriodEnd:     inv.PeriodEnd.UTC(),
		Lines:         lines,
		Subtotal:      inv.Subtotal.StringFixed(2),
		TaxRate:       inv.TaxRate.StringFixed(2),
		TaxAmount:     inv.TaxAmount.StringFixed(2),
		Total:         inv.Total.StringFixed(2),
		Status:        string(inv.Status),
		IssueDate:     inv.IssueDate.UTC().Format(DateLayout),
		DueDate:       inv.DueDate.UTC().Format(DateLayout),
		CreatedBy:     inv.CreatedBy,
		CreatedAt:     inv.CreatedAt.UTC(),
	}
}

// ToInvoiceResponses converts a list of domain invoices
func ToInvoiceResponses(invoices []billing.Invoice) []InvoiceResponse {
	out := make([]InvoiceResponse, len(invoices))
	for i := range invoices {
		out[i] = ToInvoiceResponse(&invoices[i])
	}
	return out
}

// ParseDate accepts 2006-01-02 (as midnight UTC) or RFC 3339
func ParseDate(value string) (time.Time, error) {
	if t, err := time.Parse(DateLayout, value); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
