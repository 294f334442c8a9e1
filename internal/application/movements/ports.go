package movements

import (
	"context"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

// EventPublisher publica hacia otros sistemas un movimiento ya persistido.
type EventPublisher interface {
	PublishMovementRecorded(ctx context.Context, movement *entity.Movement) error
}

// RecorderMetrics cuenta las fallas aisladas del registro post-venta.
type RecorderMetrics interface {
	RecordingFailed()
	PublishFailed()
}

type nopMetrics struct{}

func (nopMetrics) RecordingFailed() {}
func (nopMetrics) PublishFailed()   {}
