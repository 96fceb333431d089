package models

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/wms3pl/backend/internal/domain/billing"
)

// InvoiceModel is the persistence model for invoices
type InvoiceModel struct {
	ID            string          `gorm:"type:varchar(36);primaryKey"`
	TenantID      string          `gorm:"type:varchar(36);not null;index:idx_invoices_tenant_created,priority:1"`
	InvoiceNumber string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	PeriodStart   time.Time       `gorm:"not null"`
	PeriodEnd     time.Time       `gorm:"not null"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	TaxRate       decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	TaxAmount     decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Total         decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Status        string          `gorm:"type:varchar(20);not null;default:'draft'"`
	IssueDate     time.Time       `gorm:"not null"`
	DueDate       time.Time       `gorm:"not null"`
	CreatedBy     string          `gorm:"type:varchar(36)"`
	CreatedAt     time.Time       `gorm:"not null;index:idx_invoices_tenant_created,priority:2"`
	// Associations
	Lines  []InvoiceLineModel `gorm:"foreignKey:InvoiceID;references:ID"`
	Tenant *TenantModel       `gorm:"foreignKey:TenantID;references:ID"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// InvoiceLineModel is the persistence model for invoice lines
type InvoiceLineModel struct {
	ID          string          `gorm:"type:varchar(36);primaryKey"`
	InvoiceID   string          `gorm:"type:varchar(36);not null;index"`
	Position    int             `gorm:"not null"`
	Description string          `gorm:"type:varchar(200);not null"`
	Quantity    int64           `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	LineTotal   decimal.Decimal `gorm:"type:decimal(18,2);not null"`
}

// TableName returns the table name for GORM
func (InvoiceLineModel) TableName() string {
	return "invoice_lines"
}

// ToDomain converts the model and its loaded associations to a domain Invoice
func (m *InvoiceModel) ToDomain() billing.Invoice {
	inv := billing.Invoice{
		ID:            m.ID,
		TenantID:      m.TenantID,
		InvoiceNumber: m.InvoiceNumber,
		PeriodStart:   m.PeriodStart,
		PeriodEnd:     m.PeriodEnd,
		Subtotal:      m.Subtotal,
		TaxRate:       m.TaxRate,
		TaxAmount:     m.TaxAmount,
		Total:         m.Total,
		Status:        billing.Status(m.Status),
		IssueDate:     m.IssueDate,
		DueDate:       m.DueDate,
		CreatedBy:     m.CreatedBy,
		CreatedAt:     m.CreatedAt,
		Lines:         make([]billing.Line, len(m.Lines)),
	}
	if m.Tenant != nil {
		inv.TenantName = m.Tenant.Name
	}
	for i, l := range m.Lines {
		inv.Lines[i] = billing.Line{
			Description: l.Description,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			LineTotal:   l.LineTotal,
		}
	}
	return inv
}

// InvoiceModelFromDomain builds a model from a domain Invoice. newID supplies
// line IDs; Position keeps the domain line order.
func InvoiceModelFromDomain(inv *billing.Invoice, newID func() string) *InvoiceModel {
	m := &InvoiceModel{
		ID:            inv.ID,
		TenantID:      inv.TenantID,
		InvoiceNumber: inv.InvoiceNumber,
		PeriodStart:   inv.PeriodStart,
		PeriodEnd:     inv.PeriodEnd,
		Subtotal:      inv.Subtotal,
		TaxRate:       inv.TaxRate,
		TaxAmount:     inv.TaxAmount,
		Total:         inv.Total,
		Status:        string(inv.Status),
		IssueDate:     inv.IssueDate,
		DueDate:       inv.DueDate,
		CreatedBy:     inv.CreatedBy,
		CreatedAt:     inv.CreatedAt,
		Lines:         make([]InvoiceLineModel, len(inv.Lines)),
	}
	for i, l := range inv.Lines {
		m.Lines[i] = InvoiceLineModel{
			ID:          newID(),
			InvoiceID:   inv.ID,
			Position:    i,
			Description: l.Description,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			LineTotal:   l.LineTotal,
		}
	}
	return m
}
