package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// PurchaseRepository define el puerto de persistencia para compras.
// Append-only: no expone update ni delete.
type PurchaseRepository interface {
	Create(purchase *entity.Purchase) error
	GetByID(id string) (*entity.Purchase, error)
	ListByProduct(productID string, limit, offset int) ([]*entity.Purchase, error)
	List(limit, offset int) ([]*entity.Purchase, error)
}
