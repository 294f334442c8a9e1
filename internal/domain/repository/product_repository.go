package repository

import (
	"context"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia de productos usado por el libro de stock.
// Toda lectura o escritura exige el ownerID: el aislamiento por tenant es estructural.
type ProductRepository interface {
	// GetForUpdate bloquea la fila (SELECT ... FOR UPDATE) del producto del dueño.
	// Devuelve (nil, nil) si no existe o pertenece a otro dueño.
	GetForUpdate(ctx context.Context, id, ownerID string) (*entity.Product, error)
	// UpdateStock persiste el nuevo stock del producto del dueño.
	UpdateStock(ctx context.Context, id, ownerID string, stock int) error
}
