package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.StockOutRepository = (*StockOutRepo)(nil)

// StockOutRepo salidas sobre PostgreSQL.
type StockOutRepo struct {
	q Querier
}

// NewStockOutRepository construye el adaptador de salidas. Pasar pool o tx (Querier).
func NewStockOutRepository(q Querier) *StockOutRepo {
	return &StockOutRepo{q: q}
}

func (r *StockOutRepo) Create(ctx context.Context, so *entity.StockOut) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO stock_outs (id, product_id, date_of_disbursement, quantity, created_at) VALUES ($1, $2, $3, $4, $5)`,
		so.ID, so.ProductID, so.DateOfDisbursement, so.Quantity, so.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock out: %w", err)
	}
	return nil
}

func (r *StockOutRepo) SumQuantityByProduct(ctx context.Context, productID string) (int64, error) {
	if !isUUID(productID) {
		return 0, nil
	}
	var sum int64
	err := r.q.QueryRow(ctx, `SELECT COALESCE(SUM(quantity), 0)::bigint FROM stock_outs WHERE product_id = $1`, productID).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("sum stock outs: %w", err)
	}
	return sum, nil
}

// List lista salidas filtradas, más recientes primero.
func (r *StockOutRepo) List(ctx context.Context, f repository.StockFilter, limit, offset int) ([]*entity.StockOut, error) {
	w := stockWhere(f, "s.date_of_disbursement")
	query := `
		SELECT s.id, s.product_id, s.date_of_disbursement, s.quantity, s.created_at
		FROM stock_outs s JOIN products p ON p.id = s.product_id` + w.sql() +
		` ORDER BY s.date_of_disbursement DESC, s.created_at DESC, s.id` + w.page(limit, offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list stock outs: %w", err)
	}
	defer rows.Close()
	list := []*entity.StockOut{}
	for rows.Next() {
		var so entity.StockOut
		if err := rows.Scan(&so.ID, &so.ProductID, &so.DateOfDisbursement, &so.Quantity, &so.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stock out: %w", err)
		}
		list = append(list, &so)
	}
	return list, rows.Err()
}
