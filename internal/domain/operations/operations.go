// Package operations covers the warehouse activity billed to tenants:
// outbound customer orders and inbound receipts.
package operations

import (
	"context"
	"time"

	"github.com/wms3pl/backend/internal/domain/shared"
	"github.com/wms3pl/backend/internal/domain/tenancy"
)

// OrderStatus is the fulfilment state of an outbound order
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPicking   OrderStatus = "picking"
	OrderPacked    OrderStatus = "packed"
	OrderShipped   OrderStatus = "shipped"
	OrderCancelled OrderStatus = "cancelled"
)

// IsValid reports whether s is a known order status
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderPending, OrderPicking, OrderPacked, OrderShipped, OrderCancelled:
		return true
	}
	return false
}

// ReceiptStatus is the state of an inbound receipt
type ReceiptStatus string

const (
	ReceiptPlanned    ReceiptStatus = "planned"
	ReceiptInProgress ReceiptStatus = "in_progress"
	ReceiptCompleted  ReceiptStatus = "completed"
	ReceiptCancelled  ReceiptStatus = "cancelled"
)

// IsValid reports whether s is a known receipt status
func (s ReceiptStatus) IsValid() bool {
	switch s {
	case ReceiptPlanned, ReceiptInProgress, ReceiptCompleted, ReceiptCancelled:
		return true
	}
	return false
}

// PendingReceiptStatuses are the receipts still expected at the dock
var PendingReceiptStatuses = []ReceiptStatus{ReceiptPlanned, ReceiptInProgress}

// Order is an outbound shipment request
type Order struct {
	ID          string      `json:"id"`
	TenantID    string      `json:"tenant_id"`
	OrderNumber string      `json:"order_number"` // CMD-000001
	Status      OrderStatus `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
}

// Receipt is an inbound delivery
type Receipt struct {
	ID            string        `json:"id"`
	TenantID      string        `json:"tenant_id"`
	ReceiptNumber string        `json:"receipt_number"` // REC-000001
	Status        ReceiptStatus `json:"status"`
	CreatedAt     time.Time     `json:"created_at"`
}

// ActivityFilter selects orders or receipts. Statuses are matched as plain
// strings so one filter serves both kinds.
type ActivityFilter struct {
	Scope    tenancy.Scope
	Statuses []string       // empty means any status
	Period   *shared.Period // nil means any time; otherwise created_at in [Start, End)
	Limit    int            // list queries only
}

// Reader is the read side of the order and receipt store
type Reader interface {
	CountOrders(ctx context.Context, filter ActivityFilter) (int64, error)
	CountReceipts(ctx context.Context, filter ActivityFilter) (int64, error)
	// ListOrders and ListReceipts return newest first.
	ListOrders(ctx context.Context, filter ActivityFilter) ([]Order, error)
	ListReceipts(ctx context.Context, filter ActivityFilter) ([]Receipt, error)
}

// OrderStatuses converts typed statuses for an ActivityFilter
func OrderStatuses(statuses ...OrderStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

// ReceiptStatuses converts typed statuses for an ActivityFilter
func ReceiptStatuses(statuses ...ReceiptStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
