package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger/internal/application/report"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

func TestFormatQuantity(t *testing.T) {
	assert.Equal(t, "0", formatQuantity(0))
	assert.Equal(t, "999", formatQuantity(999))
	assert.Equal(t, "25.000", formatQuantity(25000))
	assert.Equal(t, "1.000.000", formatQuantity(1000000))
	assert.Equal(t, "-1.500", formatQuantity(-1500))
}

func TestGenerateStockReport(t *testing.T) {
	r := &report.StockReport{
		Title:       "stock-ledger",
		GeneratedAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
		Levels: []*entity.StockLevel{
			{ProductCode: "A-1", ProductName: "Agua", IsActive: true, TotalIn: 10, TotalOut: 3, Available: 7},
			{ProductCode: "J-1", ProductName: "Jugo", IsActive: false, TotalIn: 2, TotalOut: 2, Available: 0},
		},
		TotalIn: 12, TotalOut: 5, Available: 7,
	}

	data, err := NewMarotoStockReportGenerator().GenerateStockReport(context.Background(), r)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")), "la salida debe ser un PDF")
}

func TestGenerateStockReport_Vacio(t *testing.T) {
	data, err := NewMarotoStockReportGenerator().GenerateStockReport(context.Background(), &report.StockReport{Title: "x"})
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}
