// Package apptest reúne repositorios en memoria para probar los casos de uso sin base de datos.
package apptest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/stock-ledger-api/internal/application/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// ProductStore guarda productos en memoria e implementa inventory.TxRunner.
// GetForUpdate toma un mutex por producto que se libera al terminar Run, igual que un
// bloqueo de fila; los cambios se aplican solo si fn devuelve nil.
type ProductStore struct {
	mu       sync.Mutex
	products map[string]entity.Product
	locks    map[string]*sync.Mutex
	runs     int
}

var _ inventory.TxRunner = (*ProductStore)(nil)

// NewProductStore crea el store con los productos dados.
func NewProductStore(products ...entity.Product) *ProductStore {
	s := &ProductStore{products: map[string]entity.Product{}, locks: map[string]*sync.Mutex{}}
	for _, p := range products {
		s.products[p.ID] = p
	}
	return s
}

// Get devuelve una copia del producto confirmado.
func (s *ProductStore) Get(id string) (entity.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	return p, ok
}

// Runs cantidad de transacciones abiertas.
func (s *ProductStore) Runs() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runs
}

func (s *ProductStore) lockFor(id string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[id]
	if !ok {
		l = &sync.Mutex{}
		s.locks[id] = l
	}
	return l
}

// Run ejecuta fn en una transacción en memoria.
func (s *ProductStore) Run(ctx context.Context, fn func(products repository.ProductRepository) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	s.runs++
	s.mu.Unlock()

	tx := &productTx{store: s, staged: map[string]int{}}
	defer tx.release()
	if err := fn(tx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, stock := range tx.staged {
		p := s.products[id]
		p.Stock = stock
		p.UpdatedAt = time.Now().UTC()
		s.products[id] = p
	}
	return nil
}

type productTx struct {
	store  *ProductStore
	staged map[string]int
	held   []*sync.Mutex
}

func (tx *productTx) release() {
	for i := len(tx.held) - 1; i >= 0; i-- {
		tx.held[i].Unlock()
	}
}

func (tx *productTx) GetForUpdate(ctx context.Context, id, ownerID string) (*entity.Product, error) {
	l := tx.store.lockFor(id)
	l.Lock()
	tx.held = append(tx.held, l)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p, ok := tx.store.Get(id)
	if !ok || p.OwnerID != ownerID {
		return nil, nil
	}
	if stock, ok := tx.staged[id]; ok {
		p.Stock = stock
	}
	return &p, nil
}

func (tx *productTx) UpdateStock(_ context.Context, id, ownerID string, stock int) error {
	p, ok := tx.store.Get(id)
	if !ok || p.OwnerID != ownerID {
		return domain.ErrNotFound
	}
	tx.staged[id] = stock
	return nil
}

// MovementStore repositorio de movimientos en memoria. CreateErr fuerza la falla del INSERT.
type MovementStore struct {
	mu        sync.Mutex
	rows      []movementRow
	seq       int64
	Now       func() time.Time
	CreateErr error
}

type movementRow struct {
	m   entity.Movement
	seq int64
}

var _ repository.MovementRepository = (*MovementStore)(nil)

// NewMovementStore crea un store vacío con reloj real.
func NewMovementStore() *MovementStore {
	return &MovementStore{Now: func() time.Time { return time.Now().UTC() }}
}

// Add inserta un movimiento tal cual (created_at incluido); para sembrar datos.
func (s *MovementStore) Add(m entity.Movement) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	s.seq++
	s.rows = append(s.rows, movementRow{m: m, seq: s.seq})
}

// All devuelve los movimientos en orden de inserción.
func (s *MovementStore) All() []entity.Movement {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.Movement, 0, len(s.rows))
	for _, r := range s.rows {
		out = append(out, r.m)
	}
	return out
}

func (s *MovementStore) Create(ctx context.Context, m *entity.Movement) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.CreateErr != nil {
		return s.CreateErr
	}
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	m.CreatedAt = s.Now()
	s.Add(*m)
	return nil
}

func (s *MovementStore) filtered(ownerID string, window time.Duration) []movementRow {
	s.mu.Lock()
	defer s.mu.Unlock()
	var since time.Time
	if window > 0 {
		since = s.Now().Add(-window)
	}
	var out []movementRow
	for _, r := range s.rows {
		if r.m.OwnerID != ownerID {
			continue
		}
		if window > 0 && r.m.CreatedAt.Before(since) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func (s *MovementStore) ListByOwner(ctx context.Context, ownerID string, window time.Duration, limit, offset int) ([]*entity.Movement, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows := s.filtered(ownerID, window)
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].m.CreatedAt.Equal(rows[j].m.CreatedAt) {
			return rows[i].m.CreatedAt.After(rows[j].m.CreatedAt)
		}
		return rows[i].seq > rows[j].seq
	})
	out := []*entity.Movement{}
	for i := offset; i < len(rows) && len(out) < limit; i++ {
		m := rows[i].m
		out = append(out, &m)
	}
	return out, nil
}

func (s *MovementStore) CountByOwner(ctx context.Context, ownerID string, window time.Duration) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return len(s.filtered(ownerID, window)), nil
}

func (s *MovementStore) ListSamples(ctx context.Context, ownerID string, from, to time.Time) ([]repository.MovementSample, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []repository.MovementSample
	for _, r := range s.filtered(ownerID, 0) {
		if r.m.CreatedAt.Before(from) || !r.m.CreatedAt.Before(to) {
			continue
		}
		out = append(out, repository.MovementSample{CreatedAt: r.m.CreatedAt, Quantity: r.m.Quantity, UnitPrice: r.m.UnitPrice})
	}
	return out, nil
}
