package billing

import "github.com/shopspring/decimal"

// PricingPolicy holds the unit prices and tax rate applied to every invoice
type PricingPolicy struct {
	OrderPreparation decimal.Decimal // per order
	ReceiptHandling  decimal.Decimal // per receipt
	MonthlyStorage   decimal.Decimal // flat, not prorated
	TaxRate          decimal.Decimal // percent
}

// DefaultPricing is the tariff applied to all tenants
func DefaultPricing() PricingPolicy {
	return PricingPolicy{
		OrderPreparation: decimal.RequireFromString("2.50"),
		ReceiptHandling:  decimal.RequireFromString("5.00"),
		MonthlyStorage:   decimal.RequireFromString("150.00"),
		TaxRate:          decimal.NewFromInt(20),
	}
}
