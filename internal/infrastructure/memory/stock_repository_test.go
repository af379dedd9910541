package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

func TestStockOutList_FiltroPorFechaUsaElDiaCalendario(t *testing.T) {
	ctx := context.Background()
	repos := NewStore().Repos()

	// 23:30 en UTC-5 ya es el día siguiente en UTC
	bogota := time.FixedZone("UTC-5", -5*60*60)
	late := time.Date(2024, 3, 1, 23, 30, 0, 0, bogota)
	require.NoError(t, repos.StockOuts.Create(ctx, &entity.StockOut{
		ID: "so-1", ProductID: "p-1", DateOfDisbursement: late, Quantity: 2, CreatedAt: late,
	}))

	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	endOfDay := day.Add(24*time.Hour - time.Nanosecond)
	next := day.Add(24 * time.Hour)

	list, err := repos.StockOuts.List(ctx, repository.StockFilter{From: &day, To: &endOfDay}, 0, 0)
	require.NoError(t, err)
	assert.Len(t, list, 1, "el movimiento pertenece al 2024-03-01")

	list, err = repos.StockOuts.List(ctx, repository.StockFilter{From: &next}, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, list)
}
