package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// GetForUpdate obtiene el producto del dueño y bloquea la fila (SELECT FOR UPDATE).
// Solo tiene sentido dentro de una tx; el lock dura hasta Commit/Rollback.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id, ownerID string) (*entity.Product, error) {
	query := `
		SELECT id, owner_id, title, stock, price, price2, price3, price4, created_at, updated_at
		FROM products WHERE id = $1 AND owner_id = $2
		FOR UPDATE`
	var p entity.Product
	err := r.q.QueryRow(ctx, query, id, ownerID).Scan(
		&p.ID, &p.OwnerID, &p.Title, &p.Stock, &p.Price, &p.Price2, &p.Price3, &p.Price4, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storageError("get product for update", err)
	}
	return &p, nil
}

// UpdateStock persiste el nuevo stock. No valida stock >= 0: eso lo garantiza el protocolo del libro.
func (r *ProductRepo) UpdateStock(ctx context.Context, id, ownerID string, stock int) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE products SET stock = $3, updated_at = now() WHERE id = $1 AND owner_id = $2`,
		id, ownerID, stock,
	)
	if err != nil {
		return storageError("update product stock", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
