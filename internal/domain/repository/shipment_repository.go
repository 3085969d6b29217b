package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// ShipmentRepository define el puerto de persistencia para envíos.
// PurchaseID es inmutable; UpdateStatus solo cambia status y shipped_at.
type ShipmentRepository interface {
	Create(shipment *entity.Shipment) error
	GetByID(id string) (*entity.Shipment, error)
	GetByPurchase(purchaseID string) (*entity.Shipment, error)
	UpdateStatus(shipment *entity.Shipment) error
}
