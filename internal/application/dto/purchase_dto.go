package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordPurchaseRequest body para POST /api/purchases.
type RecordPurchaseRequest struct {
	ProductID string           `json:"product_id" validate:"required,uuid"`
	Quantity  int64            `json:"quantity" validate:"required,gt=0"`
	UnitCost  *decimal.Decimal `json:"unit_cost,omitempty"`
}

// PurchaseResponse salida de una compra registrada, con su envío asociado.
type PurchaseResponse struct {
	ID        string           `json:"id"`
	ProductID string           `json:"product_id"`
	Quantity  int64            `json:"quantity"`
	UnitCost  decimal.Decimal  `json:"unit_cost"`
	CreatedAt time.Time        `json:"created_at"`
	Shipment  ShipmentResponse `json:"shipment"`
	// Stock del producto después de la compra.
	NewStock int64 `json:"new_stock"`
}

// PurchaseListResponse lista paginada de compras.
type PurchaseListResponse struct {
	Items []PurchaseResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// ShipmentResponse salida de un envío.
type ShipmentResponse struct {
	ID         string     `json:"id"`
	PurchaseID string     `json:"purchase_id"`
	Status     string     `json:"status"`
	ShippedAt  *time.Time `json:"shipped_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// UpdateShipmentRequest body para PATCH /api/shipments/:id.
type UpdateShipmentRequest struct {
	Status string `json:"status" validate:"required,oneof=shipped delivered"`
}
