// Package report contiene los casos de uso de lectura sobre el catálogo:
// búsqueda de productos y resumen de inventario.
package report

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// DefaultLowStockThreshold productos con cantidad estrictamente menor a este
// umbral aparecen como alerta de stock bajo.
const DefaultLowStockThreshold = 10

// ReportUseCase calcula vistas derivadas del estado actual del catálogo.
//
// Las lecturas son una foto best-effort: no bloquean el catálogo contra
// mutación concurrente, así que un agregado puede quedar momentáneamente
// desfasado respecto a una venta en curso. Es aceptable y deliberado.
type ReportUseCase struct {
	productRepo       repository.ProductRepository
	lowStockThreshold int64
}

// NewReportUseCase construye el caso de uso. threshold <= 0 usa el default.
func NewReportUseCase(productRepo repository.ProductRepository, threshold int64) *ReportUseCase {
	if threshold <= 0 {
		threshold = DefaultLowStockThreshold
	}
	return &ReportUseCase{productRepo: productRepo, lowStockThreshold: threshold}
}

// Search busca productos por substring del nombre (case-insensitive).
// Query vacío lista todo el catálogo. Orden estable por id ascendente.
func (uc *ReportUseCase) Search(ctx context.Context, query string, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.productRepo.FindByNameContains(query, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, dto.ProductResponse{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Quantity:    p.Quantity,
			Price:       p.Price,
			CreatedAt:   p.CreatedAt,
			UpdatedAt:   p.UpdatedAt,
		})
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: len(items)},
	}, nil
}

// Report arma el resumen del inventario al instante del cómputo:
//   - TotalProducts: productos en catálogo.
//   - LowStockItems: cantidad < umbral configurado.
//   - TotalValue: Σ cantidad × precio, acumulado en decimal (sin drift de float).
func (uc *ReportUseCase) Report(ctx context.Context) (*dto.InventoryReportDTO, error) {
	products, err := uc.productRepo.ListAll()
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	var lowStock []dto.ProductResponse
	for _, p := range products {
		total = total.Add(p.Price.Mul(decimal.NewFromInt(p.Quantity)))
		if p.Quantity < uc.lowStockThreshold {
			lowStock = append(lowStock, dto.ProductResponse{
				ID:          p.ID,
				Name:        p.Name,
				Description: p.Description,
				Quantity:    p.Quantity,
				Price:       p.Price,
				CreatedAt:   p.CreatedAt,
				UpdatedAt:   p.UpdatedAt,
			})
		}
	}
	if lowStock == nil {
		lowStock = []dto.ProductResponse{}
	}

	return &dto.InventoryReportDTO{
		TotalProducts:     len(products),
		LowStockItems:     lowStock,
		TotalValue:        total.Round(2),
		LowStockThreshold: uc.lowStockThreshold,
	}, nil
}
