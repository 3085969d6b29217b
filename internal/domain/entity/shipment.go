package entity

import "time"

// Estados del envío. Transiciones válidas: pending -> shipped -> delivered.
const (
	ShipmentStatusPending   = "pending"
	ShipmentStatusShipped   = "shipped"
	ShipmentStatusDelivered = "delivered"
)

// Shipment representa el envío asociado a una compra (relación 1:1).
// PurchaseID nunca cambia después de creado; ShippedAt queda nil hasta
// que el envío pasa a shipped.
type Shipment struct {
	ID         string
	PurchaseID string
	Status     string
	ShippedAt  *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
