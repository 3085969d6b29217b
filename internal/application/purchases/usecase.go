package purchases

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

// RecordPurchaseUseCase registra compras: crédito de stock + inserción de la
// compra y de su envío pending, todo en la misma transacción. Del lado del
// libro la única falla posible es producto inexistente (un crédito nunca deja
// el stock negativo).
type RecordPurchaseUseCase struct {
	txRunner     TxRunner
	ledger       *stock.Ledger
	purchaseRepo repository.PurchaseRepository
	shipmentRepo repository.ShipmentRepository
}

// NewRecordPurchaseUseCase construye el caso de uso.
func NewRecordPurchaseUseCase(
	txRunner TxRunner,
	ledger *stock.Ledger,
	purchaseRepo repository.PurchaseRepository,
	shipmentRepo repository.ShipmentRepository,
) *RecordPurchaseUseCase {
	return &RecordPurchaseUseCase{
		txRunner:     txRunner,
		ledger:       ledger,
		purchaseRepo: purchaseRepo,
		shipmentRepo: shipmentRepo,
	}
}

// RecordPurchase valida la entrada, acredita el stock y persiste la compra
// junto con su envío en estado pending (relación 1:1).
func (uc *RecordPurchaseUseCase) RecordPurchase(ctx context.Context, in dto.RecordPurchaseRequest) (*dto.PurchaseResponse, error) {
	if in.ProductID == "" || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	unitCost := decimal.Zero
	if in.UnitCost != nil {
		if in.UnitCost.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		unitCost = *in.UnitCost
	}

	now := time.Now()
	var out *dto.PurchaseResponse

	err := uc.txRunner.RunPurchase(ctx, func(
		productRepo repository.ProductRepository,
		purchaseRepo repository.PurchaseRepository,
		shipmentRepo repository.ShipmentRepository,
	) error {
		product, err := uc.ledger.AdjustTx(productRepo, in.ProductID, in.Quantity)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.Reject("compra", err)
			}
			return err
		}
		purchase := &entity.Purchase{
			ID:        uuid.New().String(),
			ProductID: in.ProductID,
			Quantity:  in.Quantity,
			UnitCost:  unitCost,
			CreatedAt: now,
		}
		if err := purchaseRepo.Create(purchase); err != nil {
			return err
		}
		shipment := &entity.Shipment{
			ID:         uuid.New().String(),
			PurchaseID: purchase.ID,
			Status:     entity.ShipmentStatusPending,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := shipmentRepo.Create(shipment); err != nil {
			return err
		}
		out = toPurchaseResponse(purchase, shipment, product.Quantity)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// List lista compras con su envío, más recientes primero.
func (uc *RecordPurchaseUseCase) List(ctx context.Context, productID string, page dto.PageRequest) (*dto.PurchaseListResponse, error) {
	page.DefaultPage()
	var (
		list []*entity.Purchase
		err  error
	)
	if productID == "" {
		list, err = uc.purchaseRepo.List(page.Limit, page.Offset)
	} else {
		list, err = uc.purchaseRepo.ListByProduct(productID, page.Limit, page.Offset)
	}
	if err != nil {
		return nil, err
	}
	items := make([]dto.PurchaseResponse, 0, len(list))
	for _, p := range list {
		shipment, err := uc.shipmentRepo.GetByPurchase(p.ID)
		if err != nil {
			return nil, err
		}
		items = append(items, *toPurchaseResponse(p, shipment, 0))
	}
	return &dto.PurchaseListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// UpdateShipmentStatus avanza el estado de un envío. Transiciones válidas:
// pending -> shipped (fija ShippedAt) y shipped -> delivered. Cualquier otra
// transición retorna domain.ErrConflict.
func (uc *RecordPurchaseUseCase) UpdateShipmentStatus(ctx context.Context, shipmentID, status string) (*dto.ShipmentResponse, error) {
	if shipmentID == "" {
		return nil, domain.ErrInvalidInput
	}
	shipment, err := uc.shipmentRepo.GetByID(shipmentID)
	if err != nil {
		return nil, err
	}
	if shipment == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	switch {
	case status == entity.ShipmentStatusShipped && shipment.Status == entity.ShipmentStatusPending:
		shipment.Status = entity.ShipmentStatusShipped
		shipment.ShippedAt = &now
	case status == entity.ShipmentStatusDelivered && shipment.Status == entity.ShipmentStatusShipped:
		shipment.Status = entity.ShipmentStatusDelivered
	default:
		return nil, domain.ErrConflict
	}
	shipment.UpdatedAt = now
	if err := uc.shipmentRepo.UpdateStatus(shipment); err != nil {
		return nil, err
	}
	resp := toShipmentResponse(shipment)
	return &resp, nil
}

func toPurchaseResponse(p *entity.Purchase, s *entity.Shipment, newStock int64) *dto.PurchaseResponse {
	out := &dto.PurchaseResponse{
		ID:        p.ID,
		ProductID: p.ProductID,
		Quantity:  p.Quantity,
		UnitCost:  p.UnitCost,
		CreatedAt: p.CreatedAt,
		NewStock:  newStock,
	}
	if s != nil {
		out.Shipment = toShipmentResponse(s)
	}
	return out
}

func toShipmentResponse(s *entity.Shipment) dto.ShipmentResponse {
	return dto.ShipmentResponse{
		ID:         s.ID,
		PurchaseID: s.PurchaseID,
		Status:     s.Status,
		ShippedAt:  s.ShippedAt,
		CreatedAt:  s.CreatedAt,
	}
}
