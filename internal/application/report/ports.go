package report

import (
	"context"
	"time"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// StockReport datos del reporte de existencias.
type StockReport struct {
	Title       string
	GeneratedAt time.Time
	Levels      []*entity.StockLevel
	TotalIn     int64
	TotalOut    int64
	Available   int64
}

// StockReportGenerator puerto de salida para renderizar el reporte (PDF).
type StockReportGenerator interface {
	GenerateStockReport(ctx context.Context, r *StockReport) ([]byte, error)
}
