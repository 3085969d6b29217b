package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase representa una compra de mercancía registrada. Inmutable una vez
// persistida. Cada compra tiene exactamente un Shipment asociado.
type Purchase struct {
	ID        string
	ProductID string
	Quantity  int64 // unidades recibidas (> 0)
	UnitCost  decimal.Decimal
	CreatedAt time.Time
}
