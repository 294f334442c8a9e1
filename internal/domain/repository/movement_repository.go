package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

// MovementSample es lo mínimo que necesitan las estadísticas de un movimiento.
type MovementSample struct {
	CreatedAt time.Time
	Quantity  int
	UnitPrice *decimal.Decimal
}

// MovementRepository define el puerto de persistencia para movimientos (solo alta y lectura).
type MovementRepository interface {
	// Create inserta el movimiento; completa ID (si está vacío) y CreatedAt asignado por la base.
	Create(ctx context.Context, movement *entity.Movement) error
	// ListByOwner lista los movimientos del dueño más recientes primero.
	// window == 0 significa sin límite inferior; si no, created_at >= now() - window (reloj de la base).
	ListByOwner(ctx context.Context, ownerID string, window time.Duration, limit, offset int) ([]*entity.Movement, error)
	// CountByOwner cuenta con el mismo filtro que ListByOwner.
	CountByOwner(ctx context.Context, ownerID string, window time.Duration) (int, error)
	// ListSamples devuelve los movimientos del dueño con created_at en [from, to).
	ListSamples(ctx context.Context, ownerID string, from, to time.Time) ([]MovementSample, error)
}
