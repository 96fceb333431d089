// Package models contains GORM persistence models that map to database tables.
// Domain entities stay free of GORM tags; each model converts to and from its
// entity with ToDomain / FromDomain.
//
// Tables:
//   - tenants
//   - products, locations, inventory_lots
//   - orders, receipts
//   - invoices, invoice_lines
package models

// All returns every model in dependency order, for AutoMigrate in tests
func All() []any {
	return []any{
		&TenantModel{},
		&ProductModel{},
		&LocationModel{},
		&InventoryLotModel{},
		&OrderModel{},
		&ReceiptModel{},
		&InvoiceModel{},
		&InvoiceLineModel{},
	}
}
