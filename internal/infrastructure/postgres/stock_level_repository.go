package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.StockLevelRepository = (*StockLevelRepo)(nil)

// StockLevelRepo consulta agregada de existencias (entradas - salidas) por producto.
type StockLevelRepo struct {
	q Querier
}

// NewStockLevelRepository construye el adaptador de existencias.
func NewStockLevelRepository(q Querier) *StockLevelRepo {
	return &StockLevelRepo{q: q}
}

// ListLevels devuelve una fila por producto (incluidos los que no tienen movimientos), ordenado por nombre.
func (r *StockLevelRepo) ListLevels(ctx context.Context, f repository.ProductFilter) ([]*entity.StockLevel, error) {
	w := productWhere(f, "p.")
	query := `
		SELECT p.id, p.code, p.name, p.is_active,
		       COALESCE((SELECT SUM(quantity) FROM stock_ins si WHERE si.product_id = p.id), 0)::bigint AS total_in,
		       COALESCE((SELECT SUM(quantity) FROM stock_outs so WHERE so.product_id = p.id), 0)::bigint AS total_out
		FROM products p` + w.sql() + `
		ORDER BY p.name, p.id`
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list stock levels: %w", err)
	}
	defer rows.Close()
	list := []*entity.StockLevel{}
	for rows.Next() {
		var l entity.StockLevel
		if err := rows.Scan(&l.ProductID, &l.ProductCode, &l.ProductName, &l.IsActive, &l.TotalIn, &l.TotalOut); err != nil {
			return nil, fmt.Errorf("scan stock level: %w", err)
		}
		l.Available = l.TotalIn - l.TotalOut
		list = append(list, &l)
	}
	return list, rows.Err()
}
