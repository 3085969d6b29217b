package sales

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios de producto y ventas atados a esa tx. El débito de stock y la
// inserción de la venta ocurren dentro del mismo fn: Commit solo si ambos
// pasos terminan sin error.
type TxRunner interface {
	RunSale(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error) error
}
