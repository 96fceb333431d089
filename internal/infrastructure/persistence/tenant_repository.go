package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/wms3pl/backend/internal/domain/shared"
	"github.com/wms3pl/backend/internal/domain/tenancy"
	"github.com/wms3pl/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormTenantRepository implements tenancy.TenantReader using GORM
type GormTenantRepository struct {
	db *gorm.DB
}

// NewGormTenantRepository creates a new GormTenantRepository
func NewGormTenantRepository(db *gorm.DB) *GormTenantRepository {
	return &GormTenantRepository{db: db}
}

// FindTenants returns tenants matching the filter, ordered by code
func (r *GormTenantRepository) FindTenants(ctx context.Context, filter tenancy.TenantFilter) ([]tenancy.Tenant, error) {
	query := r.db.WithContext(ctx).Model(&models.TenantModel{})
	if len(filter.IDs) > 0 {
		query = query.Where("id IN ?", filter.IDs)
	}
	if filter.ExcludeDemo {
		query = query.Where("is_demo = ?", false)
	}
	if filter.ActiveOnly {
		query = query.Where("active = ?", true)
	}

	var rows []models.TenantModel
	if err := query.Order("code").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("find tenants: %w", err)
	}

	tenants := make([]tenancy.Tenant, len(rows))
	for i := range rows {
		tenants[i] = rows[i].ToDomain()
	}
	return tenants, nil
}

// GetTenant returns a tenant by id
func (r *GormTenantRepository) GetTenant(ctx context.Context, id string) (*tenancy.Tenant, error) {
	var row models.TenantModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, shared.NotFound("tenant %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get tenant: %w", err)
	}
	t := row.ToDomain()
	return &t, nil
}
