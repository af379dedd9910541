package repository

import (
	"context"
	"time"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// StockFilter filtros de listados de entradas/salidas.
// Search busca en nombre o código del producto; From/To acotan la fecha del movimiento.
type StockFilter struct {
	ProductID string
	Search    string
	From      *time.Time
	To        *time.Time
}

// StockInRepository puerto de persistencia de entradas (lotes).
type StockInRepository interface {
	// Create devuelve domain.ErrDuplicate si el batch_id ya existe.
	Create(ctx context.Context, stockIn *entity.StockIn) error
	ExistsBatchID(ctx context.Context, batchID string) (bool, error)
	CountByProduct(ctx context.Context, productID string) (int64, error)
	SumQuantityByProduct(ctx context.Context, productID string) (int64, error)
	List(ctx context.Context, filter StockFilter, limit, offset int) ([]*entity.StockIn, error)
}

// StockOutRepository puerto de persistencia de salidas.
type StockOutRepository interface {
	Create(ctx context.Context, stockOut *entity.StockOut) error
	SumQuantityByProduct(ctx context.Context, productID string) (int64, error)
	List(ctx context.Context, filter StockFilter, limit, offset int) ([]*entity.StockOut, error)
}

// StockLevelRepository consulta agregada de existencias por producto.
type StockLevelRepository interface {
	ListLevels(ctx context.Context, filter ProductFilter) ([]*entity.StockLevel, error)
}
