package models

import (
	"time"

	"github.com/wms3pl/backend/internal/domain/operations"
)

// OrderModel is the persistence model for outbound orders
type OrderModel struct {
	ID          string    `gorm:"type:varchar(36);primaryKey"`
	TenantID    string    `gorm:"type:varchar(36);not null;index:idx_orders_tenant_created,priority:1"`
	OrderNumber string    `gorm:"type:varchar(50);not null;uniqueIndex"`
	Status      string    `gorm:"type:varchar(20);not null;index"`
	CreatedAt   time.Time `gorm:"not null;index:idx_orders_tenant_created,priority:2"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the model to a domain Order
func (m *OrderModel) ToDomain() operations.Order {
	return operations.Order{
		ID:          m.ID,
		TenantID:    m.TenantID,
		OrderNumber: m.OrderNumber,
		Status:      operations.OrderStatus(m.Status),
		CreatedAt:   m.CreatedAt,
	}
}

// OrderModelFromDomain builds a model from a domain Order
func OrderModelFromDomain(o operations.Order) *OrderModel {
	return &OrderModel{
		ID:          o.ID,
		TenantID:    o.TenantID,
		OrderNumber: o.OrderNumber,
		Status:      string(o.Status),
		CreatedAt:   o.CreatedAt,
	}
}

// ReceiptModel is the persistence model for inbound receipts
type ReceiptModel struct {
	ID            string    `gorm:"type:varchar(36);primaryKey"`
	TenantID      string    `gorm:"type:varchar(36);not null;index:idx_receipts_tenant_created,priority:1"`
	ReceiptNumber string    `gorm:"type:varchar(50);not null;uniqueIndex"`
	Status        string    `gorm:"type:varchar(20);not null;index"`
	CreatedAt     time.Time `gorm:"not null;index:idx_receipts_tenant_created,priority:2"`
}

// TableName returns the table name for GORM
func (ReceiptModel) TableName() string {
	return "receipts"
}

// ToDomain converts the model to a domain Receipt
func (m *ReceiptModel) ToDomain() operations.Receipt {
	return operations.Receipt{
		ID:            m.ID,
		TenantID:      m.TenantID,
		ReceiptNumber: m.ReceiptNumber,
		Status:        operations.ReceiptStatus(m.Status),
		CreatedAt:     m.CreatedAt,
	}
}

// ReceiptModelFromDomain builds a model from a domain Receipt
func ReceiptModelFromDomain(r operations.Receipt) *ReceiptModel {
	return &ReceiptModel{
		ID:            r.ID,
		TenantID:      r.TenantID,
		ReceiptNumber: r.ReceiptNumber,
		Status:        string(r.Status),
		CreatedAt:     r.CreatedAt,
	}
}
