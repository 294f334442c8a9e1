package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Movement es el registro inmutable de una venta que descontó stock.
// ProductTitle es una copia al momento de la venta: el movimiento sigue siendo legible
// aunque el producto se renombre o elimine. Los campos puntero son opcionales
// (un movimiento mínimo solo trae producto y cantidad).
type Movement struct {
	ID           string
	ProductID    string
	ProductTitle string
	CustomerID   *string
	CustomerName *string
	Quantity     int
	UnitPrice    *decimal.Decimal
	PriceKey     *int
	Status       *string
	Employee     *string
	OwnerID      string
	CreatedAt    time.Time // asignado por la base de datos
}

// Revenue devuelve quantity * unitPrice; sin precio el ingreso es cero.
func (m *Movement) Revenue() decimal.Decimal {
	if m.UnitPrice == nil {
		return decimal.Zero
	}
	return m.UnitPrice.Mul(decimal.NewFromInt(int64(m.Quantity)))
}

// IsPartial indica si el movimiento se registró sin datos de cliente o precio.
func (m *Movement) IsPartial() bool {
	return m.CustomerID == nil || m.UnitPrice == nil || m.PriceKey == nil
}
