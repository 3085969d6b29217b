package sales

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/stock"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// RecordSaleUseCase registra ventas: débito de stock + inserción del registro
// de venta como una sola unidad atómica (misma transacción). Si el débito
// falla, no se crea ningún registro y la operación completa se reporta como
// rechazada envolviendo la causa.
type RecordSaleUseCase struct {
	txRunner TxRunner
	ledger   *stock.Ledger
	saleRepo repository.SaleRepository
}

// NewRecordSaleUseCase construye el caso de uso.
func NewRecordSaleUseCase(txRunner TxRunner, ledger *stock.Ledger, saleRepo repository.SaleRepository) *RecordSaleUseCase {
	return &RecordSaleUseCase{txRunner: txRunner, ledger: ledger, saleRepo: saleRepo}
}

// RecordSale valida la entrada, debita el stock vía el libro y persiste la
// venta con timestamp asignado por el servidor.
//
// Caso borde: quantity igual al stock actual es válido y deja el stock en 0.
func (uc *RecordSaleUseCase) RecordSale(ctx context.Context, productID string, quantity int64) (*dto.SaleResponse, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	if quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var out *dto.SaleResponse

	err := uc.txRunner.RunSale(ctx, func(
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error {
		// Débito con la fila bloqueada; falla completo si no alcanza el stock.
		product, err := uc.ledger.AdjustTx(productRepo, productID, -quantity)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrInsufficientStock) {
				return domain.Reject("venta", err)
			}
			return err
		}
		sale := &entity.Sale{
			ID:        uuid.New().String(),
			ProductID: productID,
			Quantity:  quantity,
			UnitPrice: product.Price,
			Total:     product.Price.Mul(decimal.NewFromInt(quantity)),
			CreatedAt: now,
		}
		if err := saleRepo.Create(sale); err != nil {
			return err
		}
		out = toSaleResponse(sale, product.Quantity)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListByProduct lista ventas de un producto, más recientes primero.
func (uc *RecordSaleUseCase) ListByProduct(ctx context.Context, productID string, page dto.PageRequest) (*dto.SaleListResponse, error) {
	page.DefaultPage()
	var (
		list []*entity.Sale
		err  error
	)
	if productID == "" {
		list, err = uc.saleRepo.List(page.Limit, page.Offset)
	} else {
		list, err = uc.saleRepo.ListByProduct(productID, page.Limit, page.Offset)
	}
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSaleResponse(s, 0))
	}
	return &dto.SaleListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func toSaleResponse(s *entity.Sale, remaining int64) *dto.SaleResponse {
	return &dto.SaleResponse{
		ID:             s.ID,
		ProductID:      s.ProductID,
		Quantity:       s.Quantity,
		UnitPrice:      s.UnitPrice,
		Total:          s.Total,
		CreatedAt:      s.CreatedAt,
		RemainingStock: remaining,
	}
}
