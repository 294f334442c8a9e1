package movements

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/jhoicas/stock-ledger-api/internal/application/inventory"
)

var _ inventory.SaleHook = (*SaleRecorder)(nil)

const defaultRecordTimeout = 5 * time.Second

// SaleRecorderConfig opciones del registro post-venta.
type SaleRecorderConfig struct {
	Async   bool          // registrar en una goroutine aparte (la respuesta no espera al INSERT)
	Timeout time.Duration // tiempo máximo del INSERT del movimiento
}

// SaleRecorder es el hook post-commit que registra el movimiento de cada venta.
// Corre con un contexto desligado de la cancelación del request: la venta ya hizo commit.
// Si el registro falla se loguea como recording failure y se cuenta; nunca se propaga.
type SaleRecorder struct {
	recorder  *RecordMovementUseCase
	publisher EventPublisher
	metrics   RecorderMetrics
	log       zerolog.Logger
	cfg       SaleRecorderConfig
	wg        sync.WaitGroup
}

// NewSaleRecorder construye el hook.
func NewSaleRecorder(recorder *RecordMovementUseCase, log zerolog.Logger, cfg SaleRecorderConfig) *SaleRecorder {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultRecordTimeout
	}
	return &SaleRecorder{
		recorder: recorder,
		metrics:  nopMetrics{},
		log:      log,
		cfg:      cfg,
	}
}

// WithPublisher publica cada movimiento registrado (opcional).
func (r *SaleRecorder) WithPublisher(p EventPublisher) *SaleRecorder {
	r.publisher = p
	return r
}

// WithMetrics asigna el colector de métricas.
func (r *SaleRecorder) WithMetrics(m RecorderMetrics) *SaleRecorder {
	if m != nil {
		r.metrics = m
	}
	return r
}

// AfterSale registra el movimiento de la venta confirmada.
func (r *SaleRecorder) AfterSale(ctx context.Context, sale inventory.SaleEvent) {
	in := RecordMovementInput{
		OwnerID:      sale.OwnerID,
		ProductID:    sale.Product.ID,
		ProductTitle: sale.Product.Title,
		CustomerID:   sale.CustomerID,
		CustomerName: sale.CustomerName,
		Quantity:     sale.Quantity,
		UnitPrice:    sale.UnitPrice,
		PriceKey:     sale.PriceKey,
		Status:       sale.Status,
		Employee:     sale.Employee,
	}
	detached := context.WithoutCancel(ctx)
	if !r.cfg.Async {
		r.record(detached, in)
		return
	}
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.record(detached, in)
	}()
}

// Wait espera los registros asíncronos pendientes (apagado ordenado).
func (r *SaleRecorder) Wait() {
	r.wg.Wait()
}

func (r *SaleRecorder) record(ctx context.Context, in RecordMovementInput) {
	defer func() {
		if p := recover(); p != nil {
			r.metrics.RecordingFailed()
			r.log.Error().Interface("panic", p).Str("product_id", in.ProductID).Msg("recording failure: panic al registrar el movimiento")
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, r.cfg.Timeout)
	defer cancel()

	m, err := r.recorder.RecordMovement(ctx, in)
	if err != nil {
		r.metrics.RecordingFailed()
		r.log.Warn().Err(err).
			Str("owner_id", in.OwnerID).
			Str("product_id", in.ProductID).
			Int("quantity", in.Quantity).
			Msg("recording failure: no se pudo registrar el movimiento (venta ya aplicada)")
		return
	}
	r.log.Debug().Str("movement_id", m.ID).Str("product_id", m.ProductID).Msg("movimiento registrado")

	if r.publisher == nil {
		return
	}
	if err := r.publisher.PublishMovementRecorded(ctx, m); err != nil {
		r.metrics.PublishFailed()
		r.log.Warn().Err(err).Str("movement_id", m.ID).Msg("no se pudo publicar el movimiento")
	}
}
