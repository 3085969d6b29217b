package stock

import (
	"context"
	"time"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// Ledger es la única autoridad para modificar Product.Quantity.
//
// Cada ajuste es un check-then-write dentro de una transacción con la fila
// del producto bloqueada (SELECT FOR UPDATE), de modo que dos ajustes
// concurrentes sobre el mismo producto se serializan y ninguno pisa el efecto
// del otro. Ajustes sobre productos distintos no se bloquean entre sí: el
// lock es por fila, no por catálogo.
type Ledger struct {
	txRunner TxRunner
}

// NewLedger construye el libro de stock.
func NewLedger(txRunner TxRunner) *Ledger {
	return &Ledger{txRunner: txRunner}
}

// Adjust aplica quantity += delta de forma atómica y devuelve el producto
// actualizado. Falla con domain.ErrNotFound si el producto no existe y con
// domain.ErrInsufficientStock si el resultado quedaría negativo; en ese caso
// el delta se rechaza completo, sin aplicación parcial.
func (l *Ledger) Adjust(ctx context.Context, productID string, delta int64) (*entity.Product, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	var updated *entity.Product
	err := l.txRunner.Run(ctx, func(productRepo repository.ProductRepository) error {
		p, err := l.AdjustTx(productRepo, productID, delta)
		if err != nil {
			return err
		}
		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Debit descuenta amount unidades del stock. amount debe ser positivo.
func (l *Ledger) Debit(ctx context.Context, productID string, amount int64) (*entity.Product, error) {
	if amount <= 0 {
		return nil, domain.ErrInvalidInput
	}
	return l.Adjust(ctx, productID, -amount)
}

// Credit suma amount unidades al stock. amount debe ser positivo.
func (l *Ledger) Credit(ctx context.Context, productID string, amount int64) (*entity.Product, error) {
	if amount <= 0 {
		return nil, domain.ErrInvalidInput
	}
	return l.Adjust(ctx, productID, amount)
}

// AdjustTx ejecuta el ajuste usando el repositorio proporcionado (misma
// transacción del caller). Lo usan los casos de uso de ventas y compras para
// que el débito/crédito y la inserción de su propio registro formen una sola
// unidad atómica: o ambos quedan persistidos o ninguno.
func (l *Ledger) AdjustTx(productRepo repository.ProductRepository, productID string, delta int64) (*entity.Product, error) {
	// Bloquea la fila del producto (SELECT FOR UPDATE) hasta el commit.
	product, err := productRepo.GetForUpdate(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	newQty := product.Quantity + delta
	if newQty < 0 {
		return nil, domain.ErrInsufficientStock
	}
	if err := productRepo.UpdateQuantity(productID, newQty); err != nil {
		return nil, err
	}
	product.Quantity = newQty
	product.UpdatedAt = time.Now()
	return product, nil
}
