package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatisticsRequest parámetros de GET /api/statistics.
type StatisticsRequest struct {
	Mode     string `query:"mode"`     // day | week | month | year
	Anchor   string `query:"anchor"`   // fecha de referencia, ej. 2024-03-10
	TzOffset int    `query:"tzOffset"` // minutos respecto de UTC (-180 = UTC-3)
}

// StatisticsBucketDTO agregados de un subintervalo [start, end).
type StatisticsBucketDTO struct {
	Label    string          `json:"label"`
	Start    time.Time       `json:"start"`
	End      time.Time       `json:"end"`
	Count    int             `json:"count"`
	Quantity int64           `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// StatisticsTotalsDTO agregados de todo el período.
type StatisticsTotalsDTO struct {
	Count    int             `json:"count"`
	Quantity int64           `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// StatisticsDTO respuesta de GET /api/statistics.
type StatisticsDTO struct {
	Mode     string                `json:"mode"`
	Anchor   string                `json:"anchor"`
	TzOffset int                   `json:"tzOffset"`
	Start    time.Time             `json:"start"`
	End      time.Time             `json:"end"`
	Totals   StatisticsTotalsDTO   `json:"totals"`
	Buckets  []StatisticsBucketDTO `json:"buckets"`
}
