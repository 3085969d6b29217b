package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo.
// Quantity es el stock autoritativo y solo se modifica a través del libro de
// stock (stock.Ledger); nunca puede quedar negativo.
type Product struct {
	ID          string
	Name        string
	Description string
	Quantity    int64           // unidades en stock (>= 0)
	Price       decimal.Decimal // precio unitario de venta
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
