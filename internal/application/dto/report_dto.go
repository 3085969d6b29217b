package dto

import "github.com/shopspring/decimal"

// InventoryReportDTO resumen del inventario en un instante dado.
// Estructura tipada en lugar de un mapa genérico: los campos son parte
// del contrato de la API.
type InventoryReportDTO struct {
	TotalProducts int               `json:"total_products"`
	LowStockItems []ProductResponse `json:"low_stock_items"`
	// TotalValue = Σ cantidad × precio sobre todo el catálogo, acumulado
	// en decimal para no arrastrar error de punto flotante.
	TotalValue decimal.Decimal `json:"total_value"`
	// Umbral usado para armar LowStockItems (cantidad estrictamente menor).
	LowStockThreshold int64 `json:"low_stock_threshold"`
}
