package postgres_test

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger/internal/application/ledger"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/stock"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/postgres"
	"github.com/jhoicas/stock-ledger/pkg/config"
)

// Requiere DATABASE_URL apuntando a una base desechable; sin ella se omite.
func TestRecordStockOut_ConcurrenteConBloqueoDeFila(t *testing.T) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL no definido")
	}
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: dsn, MaxConns: 12, MinConns: 1})
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, postgres.Migrate(ctx, pool))

	repos := postgres.NewRepos(pool)
	now := time.Now()
	cat := &entity.Category{ID: uuid.NewString(), Name: "Concurrencia", CreatedAt: now}
	unit := &entity.UnitOfMeasurement{ID: uuid.NewString(), Name: "Unidad", CreatedAt: now}
	require.NoError(t, repos.Categories.Create(ctx, cat))
	require.NoError(t, repos.Units.Create(ctx, unit))
	t.Cleanup(func() {
		_ = repos.Categories.Delete(context.Background(), cat.ID)
		_ = repos.Units.Delete(context.Background(), unit.ID)
	})
	p := &entity.Product{
		ID:                  uuid.NewString(),
		Name:                "Producto concurrente",
		Code:                "CC-" + uuid.NewString()[:8],
		CategoryID:          cat.ID,
		UnitOfMeasurementID: unit.ID,
		IsActive:            true,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	require.NoError(t, repos.Products.Create(ctx, p))

	uc := ledger.NewUseCase(postgres.NewTxRunner(pool), repos, stock.NewBatchIDAllocator(), zerolog.Nop())
	_, err = uc.RecordStockIn(ctx, ledger.StockInInput{ProductID: p.ID, Rate: decimal.RequireFromString("1.00"), Quantity: 10})
	require.NoError(t, err)

	var wg sync.WaitGroup
	var mu sync.Mutex
	ok, rejected := 0, 0
	for i := 0; i < 12; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.RecordStockOut(ctx, ledger.StockOutInput{ProductID: p.ID, Quantity: 2})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, domain.ErrInsufficientStock):
				rejected++
			default:
				t.Errorf("error inesperado: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, ok)
	assert.Equal(t, 7, rejected)
	available, err := uc.AvailableQuantity(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), available, "el disponible nunca queda negativo")
}
