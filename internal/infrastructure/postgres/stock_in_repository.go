package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.StockInRepository = (*StockInRepo)(nil)

// StockInRepo entradas (lotes) sobre PostgreSQL. batch_id tiene constraint UNIQUE.
type StockInRepo struct {
	q Querier
}

// NewStockInRepository construye el adaptador de entradas. Pasar pool o tx (Querier).
func NewStockInRepository(q Querier) *StockInRepo {
	return &StockInRepo{q: q}
}

// Create inserta el lote; una violación de unicidad en batch_id devuelve domain.ErrDuplicate.
func (r *StockInRepo) Create(ctx context.Context, si *entity.StockIn) error {
	query := `
		INSERT INTO stock_ins (id, product_id, rate, date_of_purchase, quantity, batch_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		si.ID, si.ProductID, si.Rate, si.DateOfPurchase, si.Quantity, si.BatchID, si.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert stock in: %w", err)
	}
	return nil
}

func (r *StockInRepo) ExistsBatchID(ctx context.Context, batchID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM stock_ins WHERE batch_id = $1)`, batchID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists batch id: %w", err)
	}
	return exists, nil
}

func (r *StockInRepo) CountByProduct(ctx context.Context, productID string) (int64, error) {
	if !isUUID(productID) {
		return 0, nil
	}
	var n int64
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM stock_ins WHERE product_id = $1`, productID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count stock ins: %w", err)
	}
	return n, nil
}

func (r *StockInRepo) SumQuantityByProduct(ctx context.Context, productID string) (int64, error) {
	if !isUUID(productID) {
		return 0, nil
	}
	var sum int64
	err := r.q.QueryRow(ctx, `SELECT COALESCE(SUM(quantity), 0)::bigint FROM stock_ins WHERE product_id = $1`, productID).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("sum stock ins: %w", err)
	}
	return sum, nil
}

// List lista entradas filtradas, más recientes primero.
func (r *StockInRepo) List(ctx context.Context, f repository.StockFilter, limit, offset int) ([]*entity.StockIn, error) {
	w := stockWhere(f, "s.date_of_purchase")
	query := `
		SELECT s.id, s.product_id, s.rate, s.date_of_purchase, s.quantity, s.batch_id, s.created_at
		FROM stock_ins s JOIN products p ON p.id = s.product_id` + w.sql() +
		` ORDER BY s.date_of_purchase DESC, s.created_at DESC, s.id` + w.page(limit, offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list stock ins: %w", err)
	}
	defer rows.Close()
	list := []*entity.StockIn{}
	for rows.Next() {
		var si entity.StockIn
		if err := rows.Scan(&si.ID, &si.ProductID, &si.Rate, &si.DateOfPurchase, &si.Quantity, &si.BatchID, &si.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stock in: %w", err)
		}
		list = append(list, &si)
	}
	return list, rows.Err()
}

// stockWhere traduce StockFilter sobre el alias s (movimiento) y p (producto).
func stockWhere(f repository.StockFilter, dateColumn string) *where {
	w := &where{}
	switch {
	case f.ProductID == "":
	case isUUID(f.ProductID):
		w.add("s.product_id = ?", f.ProductID)
	default:
		w.none()
	}
	if f.Search != "" {
		w.add("(p.name ILIKE ? OR p.code ILIKE ?)", likePattern(f.Search))
	}
	if f.From != nil {
		w.add(dateColumn+" >= ?", *f.From)
	}
	if f.To != nil {
		w.add(dateColumn+" <= ?", *f.To)
	}
	return w
}
