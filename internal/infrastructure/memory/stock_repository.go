package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
	"github.com/jhoicas/stock-ledger/internal/domain/stock"
)

var (
	_ repository.StockInRepository    = (*StockInRepo)(nil)
	_ repository.StockOutRepository   = (*StockOutRepo)(nil)
	_ repository.StockLevelRepository = (*StockLevelRepo)(nil)
)

// StockInRepo entradas en memoria; BatchID único.
type StockInRepo struct{ v view }

func (r *StockInRepo) Create(_ context.Context, si *entity.StockIn) error {
	defer r.v.lock()()
	st := r.v.get()
	for _, existing := range st.stockIns {
		if existing.BatchID == si.BatchID {
			return domain.ErrDuplicate
		}
	}
	st.stockIns = append(st.stockIns, *si)
	return nil
}

func (r *StockInRepo) ExistsBatchID(_ context.Context, batchID string) (bool, error) {
	defer r.v.lock()()
	for _, si := range r.v.get().stockIns {
		if si.BatchID == batchID {
			return true, nil
		}
	}
	return false, nil
}

func (r *StockInRepo) CountByProduct(_ context.Context, productID string) (int64, error) {
	defer r.v.lock()()
	var n int64
	for _, si := range r.v.get().stockIns {
		if si.ProductID == productID {
			n++
		}
	}
	return n, nil
}

func (r *StockInRepo) SumQuantityByProduct(_ context.Context, productID string) (int64, error) {
	defer r.v.lock()()
	return r.v.get().totalIn(productID), nil
}

func (r *StockInRepo) List(_ context.Context, f repository.StockFilter, limit, offset int) ([]*entity.StockIn, error) {
	defer r.v.lock()()
	st := r.v.get()
	var out []*entity.StockIn
	for i := len(st.stockIns) - 1; i >= 0; i-- {
		si := st.stockIns[i]
		if st.movementMatches(f, si.ProductID, si.DateOfPurchase) {
			out = append(out, &si)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DateOfPurchase.After(out[j].DateOfPurchase) })
	return page(out, limit, offset), nil
}

// StockOutRepo salidas en memoria.
type StockOutRepo struct{ v view }

func (r *StockOutRepo) Create(_ context.Context, so *entity.StockOut) error {
	defer r.v.lock()()
	st := r.v.get()
	st.stockOuts = append(st.stockOuts, *so)
	return nil
}

func (r *StockOutRepo) SumQuantityByProduct(_ context.Context, productID string) (int64, error) {
	defer r.v.lock()()
	return r.v.get().totalOut(productID), nil
}

func (r *StockOutRepo) List(_ context.Context, f repository.StockFilter, limit, offset int) ([]*entity.StockOut, error) {
	defer r.v.lock()()
	st := r.v.get()
	var out []*entity.StockOut
	for i := len(st.stockOuts) - 1; i >= 0; i-- {
		so := st.stockOuts[i]
		if st.movementMatches(f, so.ProductID, so.DateOfDisbursement) {
			out = append(out, &so)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DateOfDisbursement.After(out[j].DateOfDisbursement) })
	return page(out, limit, offset), nil
}

// StockLevelRepo agregado de existencias por producto, ordenado por nombre.
type StockLevelRepo struct{ v view }

func (r *StockLevelRepo) ListLevels(_ context.Context, f repository.ProductFilter) ([]*entity.StockLevel, error) {
	defer r.v.lock()()
	st := r.v.get()
	var out []*entity.StockLevel
	for _, p := range st.products {
		if !productMatches(f, p) {
			continue
		}
		in, outQty := st.totalIn(p.ID), st.totalOut(p.ID)
		out = append(out, &entity.StockLevel{
			ProductID:   p.ID,
			ProductCode: p.Code,
			ProductName: p.Name,
			IsActive:    p.IsActive,
			TotalIn:     in,
			TotalOut:    outQty,
			Available:   stock.Available(in, outQty),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ProductName < out[j].ProductName })
	return out, nil
}

func (s *state) totalIn(productID string) int64 {
	var sum int64
	for _, si := range s.stockIns {
		if si.ProductID == productID {
			sum += si.Quantity
		}
	}
	return sum
}

func (s *state) totalOut(productID string) int64 {
	var sum int64
	for _, so := range s.stockOuts {
		if so.ProductID == productID {
			sum += so.Quantity
		}
	}
	return sum
}

func (s *state) movementMatches(f repository.StockFilter, productID string, date time.Time) bool {
	if f.ProductID != "" && productID != f.ProductID {
		return false
	}
	day := calendarDay(date)
	if f.From != nil && day.Before(*f.From) {
		return false
	}
	if f.To != nil && day.After(*f.To) {
		return false
	}
	if f.Search == "" {
		return true
	}
	p := s.product(productID)
	return p != nil && matches(f.Search, p.Name, p.Code)
}

// calendarDay fecha del movimiento como medianoche UTC, igual que una columna DATE
// y que los límites from/to del filtro.
func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
