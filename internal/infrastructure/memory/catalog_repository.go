package memory

import (
	"context"
	"strings"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var (
	_ repository.CategoryRepository          = (*CategoryRepo)(nil)
	_ repository.UnitOfMeasurementRepository = (*UnitRepo)(nil)
	_ repository.ProductRepository           = (*ProductRepo)(nil)
)

func matches(search string, fields ...string) bool {
	if search == "" {
		return true
	}
	search = strings.ToLower(search)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), search) {
			return true
		}
	}
	return false
}

// CategoryRepo categorías en memoria.
type CategoryRepo struct{ v view }

func (r *CategoryRepo) Create(_ context.Context, c *entity.Category) error {
	defer r.v.lock()()
	st := r.v.get()
	st.categories = append(st.categories, *c)
	return nil
}

func (r *CategoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	defer r.v.lock()()
	for _, c := range r.v.get().categories {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, nil
}

func (r *CategoryRepo) GetByName(_ context.Context, name string) (*entity.Category, error) {
	defer r.v.lock()()
	for _, c := range r.v.get().categories {
		if c.Name == name {
			return &c, nil
		}
	}
	return nil, nil
}

func (r *CategoryRepo) List(_ context.Context, search string, limit, offset int) ([]*entity.Category, error) {
	defer r.v.lock()()
	var out []*entity.Category
	for _, c := range r.v.get().categories {
		if matches(search, c.Name) {
			out = append(out, &c)
		}
	}
	return page(out, limit, offset), nil
}

// Delete borra la categoría y en cascada sus productos con su historial.
func (r *CategoryRepo) Delete(_ context.Context, id string) error {
	defer r.v.lock()()
	st := r.v.get()
	kept := st.categories[:0:0]
	for _, c := range st.categories {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	st.categories = kept
	st.deleteProductsWhere(func(p entity.Product) bool { return p.CategoryID == id })
	return nil
}

// UnitRepo unidades de medida en memoria.
type UnitRepo struct{ v view }

func (r *UnitRepo) Create(_ context.Context, u *entity.UnitOfMeasurement) error {
	defer r.v.lock()()
	st := r.v.get()
	st.units = append(st.units, *u)
	return nil
}

func (r *UnitRepo) GetByID(_ context.Context, id string) (*entity.UnitOfMeasurement, error) {
	defer r.v.lock()()
	for _, u := range r.v.get().units {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *UnitRepo) GetByName(_ context.Context, name string) (*entity.UnitOfMeasurement, error) {
	defer r.v.lock()()
	for _, u := range r.v.get().units {
		if u.Name == name {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *UnitRepo) List(_ context.Context, search string, limit, offset int) ([]*entity.UnitOfMeasurement, error) {
	defer r.v.lock()()
	var out []*entity.UnitOfMeasurement
	for _, u := range r.v.get().units {
		if matches(search, u.Name) {
			out = append(out, &u)
		}
	}
	return page(out, limit, offset), nil
}

func (r *UnitRepo) Delete(_ context.Context, id string) error {
	defer r.v.lock()()
	st := r.v.get()
	kept := st.units[:0:0]
	for _, u := range st.units {
		if u.ID != id {
			kept = append(kept, u)
		}
	}
	st.units = kept
	st.deleteProductsWhere(func(p entity.Product) bool { return p.UnitOfMeasurementID == id })
	return nil
}

func (s *state) deleteProductsWhere(drop func(entity.Product) bool) {
	gone := map[string]bool{}
	kept := s.products[:0:0]
	for _, p := range s.products {
		if drop(p) {
			gone[p.ID] = true
			continue
		}
		kept = append(kept, p)
	}
	s.products = kept
	if len(gone) == 0 {
		return
	}
	ins := s.stockIns[:0:0]
	for _, si := range s.stockIns {
		if !gone[si.ProductID] {
			ins = append(ins, si)
		}
	}
	s.stockIns = ins
	outs := s.stockOuts[:0:0]
	for _, so := range s.stockOuts {
		if !gone[so.ProductID] {
			outs = append(outs, so)
		}
	}
	s.stockOuts = outs
}

// ProductRepo productos en memoria; Code único.
type ProductRepo struct{ v view }

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	defer r.v.lock()()
	st := r.v.get()
	for _, existing := range st.products {
		if existing.Code == p.Code {
			return domain.ErrDuplicate
		}
	}
	st.products = append(st.products, *p)
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	defer r.v.lock()()
	return r.v.get().product(id), nil
}

// GetByIDForUpdate dentro de Run el mutex global ya serializa la transacción.
func (r *ProductRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *ProductRepo) GetByCode(_ context.Context, code string) (*entity.Product, error) {
	defer r.v.lock()()
	for _, p := range r.v.get().products {
		if p.Code == code {
			return &p, nil
		}
	}
	return nil, nil
}

func (r *ProductRepo) GetByName(_ context.Context, name string) (*entity.Product, error) {
	defer r.v.lock()()
	for _, p := range r.v.get().products {
		if p.Name == name {
			return &p, nil
		}
	}
	return nil, nil
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	defer r.v.lock()()
	st := r.v.get()
	idx := -1
	for i, existing := range st.products {
		if existing.Code == p.Code && existing.ID != p.ID {
			return domain.ErrDuplicate
		}
		if existing.ID == p.ID {
			idx = i
		}
	}
	if idx >= 0 {
		st.products[idx] = *p
	}
	return nil
}

func (r *ProductRepo) List(_ context.Context, f repository.ProductFilter, limit, offset int) ([]*entity.Product, error) {
	defer r.v.lock()()
	var out []*entity.Product
	products := r.v.get().products
	for i := len(products) - 1; i >= 0; i-- {
		p := products[i]
		if productMatches(f, p) {
			out = append(out, &p)
		}
	}
	return page(out, limit, offset), nil
}

func (s *state) product(id string) *entity.Product {
	for _, p := range s.products {
		if p.ID == id {
			return &p
		}
	}
	return nil
}

func productMatches(f repository.ProductFilter, p entity.Product) bool {
	if f.CategoryID != "" && p.CategoryID != f.CategoryID {
		return false
	}
	if f.IsActive != nil && p.IsActive != *f.IsActive {
		return false
	}
	return matches(f.Search, p.Name, p.Code)
}
