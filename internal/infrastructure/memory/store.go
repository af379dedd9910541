// Package memory implementa los puertos de persistencia en memoria.
// Se usa con STORAGE_DRIVER=memory (desarrollo local, demos) y en los tests de casos de uso.
// Las transacciones se serializan con un mutex global y trabajan sobre una copia del estado,
// que solo se publica si el callback termina sin error.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

type state struct {
	categories []entity.Category
	units      []entity.UnitOfMeasurement
	products   []entity.Product
	stockIns   []entity.StockIn
	stockOuts  []entity.StockOut
}

func (s *state) clone() *state {
	return &state{
		categories: append([]entity.Category(nil), s.categories...),
		units:      append([]entity.UnitOfMeasurement(nil), s.units...),
		products:   append([]entity.Product(nil), s.products...),
		stockIns:   append([]entity.StockIn(nil), s.stockIns...),
		stockOuts:  append([]entity.StockOut(nil), s.stockOuts...),
	}
}

// Store estado compartido en memoria.
type Store struct {
	mu sync.Mutex
	st *state
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{st: &state{}}
}

// view da acceso al estado: con bloqueo propio (fuera de tx) o sin él (dentro de Run).
type view struct {
	lock func() func()
	get  func() *state
}

// Repos devuelve repositorios que bloquean el almacén en cada llamada.
func (s *Store) Repos() repository.Repos {
	return newRepos(view{
		lock: func() func() { s.mu.Lock(); return s.mu.Unlock },
		get:  func() *state { return s.st },
	})
}

// Run ejecuta fn de forma serializable sobre una copia del estado; Commit si fn no falla.
func (s *Store) Run(ctx context.Context, fn func(repos repository.Repos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.st.clone()
	repos := newRepos(view{
		lock: func() func() { return func() {} },
		get:  func() *state { return work },
	})
	if err := fn(repos); err != nil {
		return err
	}
	s.st = work
	return nil
}

func newRepos(v view) repository.Repos {
	return repository.Repos{
		Categories: &CategoryRepo{v: v},
		Units:      &UnitRepo{v: v},
		Products:   &ProductRepo{v: v},
		StockIns:   &StockInRepo{v: v},
		StockOuts:  &StockOutRepo{v: v},
		Levels:     &StockLevelRepo{v: v},
	}
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
