package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = `id, product_id, product_title, customer_id, customer_name, quantity,
		unit_price, price_key, status, employee, owner_id, created_at`

// MovementRepo implementación sobre PostgreSQL (usable con pool o tx).
// Con el pool cada INSERT es su propia transacción, independiente del descuento de stock.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste un movimiento. created_at lo asigna la base (DEFAULT now()).
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	query := `
		INSERT INTO movements (id, product_id, product_title, customer_id, customer_name, quantity,
			unit_price, price_key, status, employee, owner_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at`
	err := r.q.QueryRow(ctx, query,
		m.ID, m.ProductID, m.ProductTitle, m.CustomerID, m.CustomerName, m.Quantity,
		m.UnitPrice, m.PriceKey, m.Status, m.Employee, m.OwnerID,
	).Scan(&m.CreatedAt)
	if err != nil {
		return storageError("create movement", err)
	}
	return nil
}

// ListByOwner lista movimientos del dueño, más recientes primero; empates por orden de inserción (seq).
func (r *MovementRepo) ListByOwner(ctx context.Context, ownerID string, window time.Duration, limit, offset int) ([]*entity.Movement, error) {
	where, args := ownerWindowFilter(ownerID, window)
	query := `SELECT ` + movementColumns + ` FROM movements WHERE ` + where +
		fmt.Sprintf(" ORDER BY created_at DESC, seq DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, storageError("list movements", err)
	}
	defer rows.Close()

	list := make([]*entity.Movement, 0, limit)
	for rows.Next() {
		var m entity.Movement
		if err := rows.Scan(&m.ID, &m.ProductID, &m.ProductTitle, &m.CustomerID, &m.CustomerName, &m.Quantity,
			&m.UnitPrice, &m.PriceKey, &m.Status, &m.Employee, &m.OwnerID, &m.CreatedAt); err != nil {
			return nil, storageError("scan movement", err)
		}
		list = append(list, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("list movements rows", err)
	}
	return list, nil
}

// CountByOwner cuenta con el mismo filtro que ListByOwner.
func (r *MovementRepo) CountByOwner(ctx context.Context, ownerID string, window time.Duration) (int, error) {
	where, args := ownerWindowFilter(ownerID, window)
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM movements WHERE `+where, args...).Scan(&total); err != nil {
		return 0, storageError("count movements", err)
	}
	return total, nil
}

// ListSamples devuelve (created_at, quantity, unit_price) con created_at en [from, to).
func (r *MovementRepo) ListSamples(ctx context.Context, ownerID string, from, to time.Time) ([]repository.MovementSample, error) {
	const query = `
	SELECT created_at, quantity, unit_price
	FROM movements
	WHERE owner_id   = $1
	  AND created_at >= $2
	  AND created_at <  $3`

	rows, err := r.q.Query(ctx, query, ownerID, from, to)
	if err != nil {
		return nil, storageError("movements.ListSamples", err)
	}
	defer rows.Close()

	var samples []repository.MovementSample
	for rows.Next() {
		var s repository.MovementSample
		if err := rows.Scan(&s.CreatedAt, &s.Quantity, &s.UnitPrice); err != nil {
			return nil, storageError("movements.ListSamples scan", err)
		}
		samples = append(samples, s)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("movements.ListSamples rows", err)
	}
	return samples, nil
}

// ownerWindowFilter filtro por dueño y, si window > 0, created_at >= now() - window (reloj de la base).
func ownerWindowFilter(ownerID string, window time.Duration) (string, []any) {
	where := "owner_id = $1"
	args := []any{ownerID}
	if window > 0 {
		where += " AND created_at >= now() - make_interval(secs => $2)"
		args = append(args, window.Seconds())
	}
	return where, args
}
