// Package metrics expone los colectores Prometheus del libro de stock y del registro de movimientos.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/jhoicas/stock-ledger-api/internal/application/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/application/movements"
)

var (
	StockDecreasesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stock_decreases_total",
		Help: "Total de descuentos de stock por resultado",
	}, []string{"result"})

	StockDecreaseLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "stock_decrease_latency_seconds",
		Help:    "Latencia del descuento de stock (transacción con lock de fila)",
		Buckets: prometheus.DefBuckets,
	})

	MovementRecordingFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "movement_recording_failures_total",
		Help: "Movimientos no registrados después de una venta confirmada (requieren conciliación)",
	})

	MovementPublishFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "movement_publish_failures_total",
		Help: "Movimientos registrados que no se pudieron publicar a Kafka",
	})
)

var (
	_ inventory.LedgerMetrics   = Collector{}
	_ movements.RecorderMetrics = Collector{}
)

// Collector adapta los colectores globales a los puertos de la capa de aplicación.
type Collector struct{}

// ObserveDecrease cuenta el resultado; la latencia solo se observa para descuentos aplicados.
func (Collector) ObserveDecrease(result string, elapsed time.Duration) {
	StockDecreasesTotal.WithLabelValues(result).Inc()
	if result == inventory.ResultOK {
		StockDecreaseLatency.Observe(elapsed.Seconds())
	}
}

func (Collector) RecordingFailed() { MovementRecordingFailuresTotal.Inc() }
func (Collector) PublishFailed()   { MovementPublishFailuresTotal.Inc() }
