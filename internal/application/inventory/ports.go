package inventory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando el repositorio
// de productos atado a esa tx. Commit si fn devuelve nil, Rollback en cualquier otro caso
// (incluida la cancelación del contexto).
type TxRunner interface {
	Run(ctx context.Context, fn func(products repository.ProductRepository) error) error
}

// SaleEvent describe una venta ya confirmada (el descuento de stock hizo commit).
type SaleEvent struct {
	OwnerID      string
	Product      entity.Product // estado después del descuento
	Quantity     int
	CustomerID   *string
	CustomerName *string
	UnitPrice    *decimal.Decimal
	PriceKey     *int
	Status       *string
	Employee     *string
}

// SaleHook se invoca después del commit de cada descuento exitoso.
// No devuelve error: una falla del hook nunca afecta a la venta.
type SaleHook interface {
	AfterSale(ctx context.Context, sale SaleEvent)
}

// LedgerMetrics registra el resultado y la latencia de cada descuento.
type LedgerMetrics interface {
	ObserveDecrease(result string, elapsed time.Duration)
}

// Resultados reportados a LedgerMetrics.
const (
	ResultOK                = "ok"
	ResultInvalid           = "invalid"
	ResultNotFound          = "not_found"
	ResultInsufficientStock = "insufficient_stock"
	ResultError             = "error"
)

type nopMetrics struct{}

func (nopMetrics) ObserveDecrease(string, time.Duration) {}
