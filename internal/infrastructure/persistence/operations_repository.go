package persistence

import (
	"context"
	"fmt"

	"github.com/wms3pl/backend/internal/domain/operations"
	"github.com/wms3pl/backend/internal/infrastructure/persistence/models"
	"github.com/wms3pl/backend/internal/infrastructure/persistence/tenant"
	"gorm.io/gorm"
)

// GormOperationsRepository implements operations.Reader using GORM
type GormOperationsRepository struct {
	db *gorm.DB
}

// NewGormOperationsRepository creates a new GormOperationsRepository
func NewGormOperationsRepository(db *gorm.DB) *GormOperationsRepository {
	return &GormOperationsRepository{db: db}
}

// activityScope applies scope, status and half-open period filters
func activityScope(filter operations.ActivityFilter) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Scopes(tenant.Scoped(filter.Scope))
		if len(filter.Statuses) > 0 {
			db = db.Where("status IN ?", filter.Statuses)
		}
		if filter.Period != nil {
			db = db.Where("created_at >= ? AND created_at < ?", filter.Period.Start.UTC(), filter.Period.End.UTC())
		}
		return db
	}
}

// CountOrders counts orders matching the filter
func (r *GormOperationsRepository) CountOrders(ctx context.Context, filter operations.ActivityFilter) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.OrderModel{}).Scopes(activityScope(filter)).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count orders: %w", err)
	}
	return count, nil
}

// CountReceipts counts receipts matching the filter
func (r *GormOperationsRepository) CountReceipts(ctx context.Context, filter operations.ActivityFilter) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.ReceiptModel{}).Scopes(activityScope(filter)).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count receipts: %w", err)
	}
	return count, nil
}

// ListOrders returns orders matching the filter, newest first
func (r *GormOperationsRepository) ListOrders(ctx context.Context, filter operations.ActivityFilter) ([]operations.Order, error) {
	var rows []models.OrderModel
	err := r.db.WithContext(ctx).
		Scopes(activityScope(filter)).
		Order("created_at DESC, id DESC").
		Limit(filter.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	orders := make([]operations.Order, len(rows))
	for i := range rows {
		orders[i] = rows[i].ToDomain()
	}
	return orders, nil
}

// ListReceipts returns receipts matching the filter, newest first
func (r *GormOperationsRepository) ListReceipts(ctx context.Context, filter operations.ActivityFilter) ([]operations.Receipt, error) {
	var rows []models.ReceiptModel
	err := r.db.WithContext(ctx).
		Scopes(activityScope(filter)).
		Order("created_at DESC, id DESC").
		Limit(filter.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list receipts: %w", err)
	}

	receipts := make([]operations.Receipt, len(rows))
	for i := range rows {
		receipts[i] = rows[i].ToDomain()
	}
	return receipts, nil
}
