package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale representa una venta registrada. Inmutable una vez persistida:
// referencia al producto por ID, nunca se actualiza ni se elimina.
// UnitPrice y Total son una foto del precio del producto al momento de la venta.
type Sale struct {
	ID        string
	ProductID string
	Quantity  int64 // unidades vendidas (> 0)
	UnitPrice decimal.Decimal
	Total     decimal.Decimal
	CreatedAt time.Time // asignado por el servidor al registrar
}
