package purchases

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios de producto, compras y envíos atados a esa tx. El crédito de
// stock, la compra y su envío pending se persisten juntos o no se persisten.
type TxRunner interface {
	RunPurchase(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		purchaseRepo repository.PurchaseRepository,
		shipmentRepo repository.ShipmentRepository,
	) error) error
}
