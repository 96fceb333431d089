package dto

import "github.com/wms3pl/backend/internal/domain/inventory"

// LotResponse is one inventory lot with its product and location
type LotResponse struct {
	LotID        string `json:"lot_id"`
	TenantID     string `json:"tenant_id"`
	ProductID    string `json:"product_id"`
	SKU          string `json:"sku"`
	ProductName  string `json:"product_name"`
	LocationID   string `json:"location_id"`
	LocationCode string `json:"location_code"`
	Quantity     int64  `json:"quantity"`
	LotNumber    string `json:"lot_number,omitempty"`
}

// ToLotResponses converts inventory lot views
func ToLotResponses(lots []inventory.LotView) []LotResponse {
	out := make([]LotResponse, len(lots))
	for i, l := range lots {
		out[i] = LotResponse{
			LotID:        l.LotID,
			TenantID:     l.TenantID,
			ProductID:    l.ProductID,
			SKU:          l.SKU,
			ProductName:  l.ProductName,
			LocationID:   l.LocationID,
			LocationCode: l.LocationCode,
			Quantity:     l.Quantity,
			LotNumber:    l.LotNumber,
		}
	}
	return out
}

// LocationResponse is one warehouse storage location
type LocationResponse struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Zone string `json:"zone,omitempty"`
}

// ToLocationResponses converts inventory locations
func ToLocationResponses(locations []inventory.Location) []LocationResponse {
	out := make([]LocationResponse, len(locations))
	for i, l := range locations {
		out[i] = LocationResponse{ID: l.ID, Code: l.Code, Zone: l.Zone}
	}
	return out
}
