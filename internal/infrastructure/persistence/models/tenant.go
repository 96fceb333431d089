package models

import (
	"time"

	"github.com/wms3pl/backend/internal/domain/tenancy"
)

// TenantModel is the persistence model for tenants
type TenantModel struct {
	ID        string    `gorm:"type:varchar(36);primaryKey"`
	Code      string    `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name      string    `gorm:"type:varchar(200);not null"`
	IsDemo    bool      `gorm:"not null;default:false;index"`
	Active    bool      `gorm:"not null;default:true"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (TenantModel) TableName() string {
	return "tenants"
}

// ToDomain converts the model to a domain Tenant
func (m *TenantModel) ToDomain() tenancy.Tenant {
	return tenancy.Tenant{
		ID:        m.ID,
		Code:      m.Code,
		Name:      m.Name,
		IsDemo:    m.IsDemo,
		Active:    m.Active,
		CreatedAt: m.CreatedAt,
	}
}

// TenantModelFromDomain builds a model from a domain Tenant
func TenantModelFromDomain(t tenancy.Tenant) *TenantModel {
	return &TenantModel{
		ID:        t.ID,
		Code:      t.Code,
		Name:      t.Name,
		IsDemo:    t.IsDemo,
		Active:    t.Active,
		CreatedAt: t.CreatedAt,
	}
}
