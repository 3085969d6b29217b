package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// SaleRepository define el puerto de persistencia para ventas.
// Append-only: no expone update ni delete.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	GetByID(id string) (*entity.Sale, error)
	ListByProduct(productID string, limit, offset int) ([]*entity.Sale, error)
	List(limit, offset int) ([]*entity.Sale, error)
}
