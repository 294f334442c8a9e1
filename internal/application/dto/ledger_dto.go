package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DecreaseStockRequest body para PATCH /api/products/:id/decrease-stock.
// Solo quantity es obligatorio; el resto completa el movimiento cuando el cliente lo envía.
type DecreaseStockRequest struct {
	Quantity     int              `json:"quantity"`
	CustomerID   *string          `json:"customerId,omitempty"`
	CustomerName *string          `json:"customerName,omitempty"`
	UnitPrice    *decimal.Decimal `json:"unitPrice,omitempty"`
	PriceKey     *int             `json:"priceKey,omitempty"` // 1..4
	Status       *string          `json:"status,omitempty"`
	Employee     *string          `json:"employee,omitempty"`
}

// ProductDTO respuesta con el producto luego del descuento.
type ProductDTO struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Stock     int             `json:"stock"`
	Price     decimal.Decimal `json:"price"`
	Price2    decimal.Decimal `json:"price2"`
	Price3    decimal.Decimal `json:"price3"`
	Price4    decimal.Decimal `json:"price4"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// InsufficientStockResponse error 409 con el stock disponible y lo pedido.
type InsufficientStockResponse struct {
	ErrorResponse
	Stock     int `json:"stock"`
	Requested int `json:"requested"`
}
