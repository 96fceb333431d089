package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/wms3pl/backend/internal/domain/billing"
	"github.com/wms3pl/backend/internal/domain/shared"
	"github.com/wms3pl/backend/internal/domain/tenancy"
	"github.com/wms3pl/backend/internal/infrastructure/persistence/models"
	"github.com/wms3pl/backend/internal/infrastructure/persistence/tenant"
	"gorm.io/gorm"
)

// GormInvoiceRepository implements billing.Repository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// Insert stores the invoice header and lines in one transaction
func (r *GormInvoiceRepository) Insert(ctx context.Context, inv *billing.Invoice) error {
	if inv.ID == "" {
		inv.ID = uuid.NewString()
	}
	m := models.InvoiceModelFromDomain(inv, uuid.NewString)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Omit("Tenant").Create(m).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return shared.NewDomainError(shared.CodeConflict,
			fmt.Sprintf("invoice number %s already exists", inv.InvoiceNumber))
	}
	if err != nil {
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// Count returns the number of invoices across all tenants
func (r *GormInvoiceRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.InvoiceModel{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count invoices: %w", err)
	}
	return count, nil
}

// List returns invoices in scope with lines and tenant name, newest first
func (r *GormInvoiceRepository) List(ctx context.Context, scope tenancy.Scope, limit int) ([]billing.Invoice, error) {
	var rows []models.InvoiceModel
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scoped(scope)).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("Tenant").
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}

	invoices := make([]billing.Invoice, len(rows))
	for i := range rows {
		invoices[i] = rows[i].ToDomain()
	}
	return invoices, nil
}
