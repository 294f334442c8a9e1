package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Rangos de tiempo aceptados por GET /api/movements.
const (
	Range24h = "24h"
	Range7d  = "7d"
	RangeAll = "all"
)

// ListMovementsRequest parámetros de GET /api/movements. Cero significa "no enviado".
type ListMovementsRequest struct {
	Range string `query:"range"` // 24h (default) | 7d | all
	Page  int    `query:"page"`  // >= 1, default 1
	Limit int    `query:"limit"` // 1..100, default 20
}

// MovementDTO un movimiento en la respuesta.
type MovementDTO struct {
	ID           string           `json:"id"`
	ProductID    string           `json:"productId"`
	ProductTitle string           `json:"productTitle"`
	CustomerID   *string          `json:"customerId"`
	CustomerName *string          `json:"customerName"`
	Quantity     int              `json:"quantity"`
	UnitPrice    *decimal.Decimal `json:"unitPrice"`
	PriceKey     *int             `json:"priceKey"`
	Status       *string          `json:"status"`
	Employee     *string          `json:"employee"`
	CreatedAt    time.Time        `json:"createdAt"`
}

// MovementPageDTO respuesta paginada: {data, page, limit, total, totalPages}.
type MovementPageDTO struct {
	Data []MovementDTO `json:"data"`
	PageMeta
}
