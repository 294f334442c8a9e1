package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Niveles de precio (price keys) de un producto.
const (
	PriceKey1 = 1
	PriceKey2 = 2
	PriceKey3 = 3
	PriceKey4 = 4
)

// Product representa un producto de un dueño (tenant). Stock nunca es negativo:
// solo se descuenta dentro de la transacción con bloqueo de fila del libro de stock.
type Product struct {
	ID        string
	OwnerID   string
	Title     string // único; la búsqueda es case-insensitive
	Stock     int
	Price     decimal.Decimal
	Price2    decimal.Decimal
	Price3    decimal.Decimal
	Price4    decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidPriceKey indica si key es uno de los cuatro niveles de precio.
func ValidPriceKey(key int) bool {
	return key >= PriceKey1 && key <= PriceKey4
}

// PriceFor devuelve el precio del nivel indicado (1..4).
func (p *Product) PriceFor(key int) (decimal.Decimal, bool) {
	switch key {
	case PriceKey1:
		return p.Price, true
	case PriceKey2:
		return p.Price2, true
	case PriceKey3:
		return p.Price3, true
	case PriceKey4:
		return p.Price4, true
	}
	return decimal.Zero, false
}
