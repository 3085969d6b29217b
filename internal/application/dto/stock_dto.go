package dto

// AdjustStockRequest body para POST /api/stock/adjustments.
// Delta positivo acredita stock, negativo lo debita. El ajuste se rechaza
// completo si dejaría la cantidad en negativo.
type AdjustStockRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Delta     int64  `json:"delta" validate:"required"`
}
