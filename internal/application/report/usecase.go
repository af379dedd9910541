package report

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// StockReportUseCase genera el reporte de existencias por producto.
type StockReportUseCase struct {
	levels    repository.StockLevelRepository
	generator StockReportGenerator
	title     string
	now       func() time.Time
}

// NewStockReportUseCase construye el caso de uso. title encabeza el documento (normalmente APP_NAME).
func NewStockReportUseCase(levels repository.StockLevelRepository, generator StockReportGenerator, title string) *StockReportUseCase {
	return &StockReportUseCase{levels: levels, generator: generator, title: title, now: time.Now}
}

// Build arma los datos del reporte con los totales generales.
func (uc *StockReportUseCase) Build(ctx context.Context, f repository.ProductFilter) (*StockReport, error) {
	levels, err := uc.levels.ListLevels(ctx, f)
	if err != nil {
		return nil, err
	}
	r := &StockReport{Title: uc.title, GeneratedAt: uc.now(), Levels: levels}
	for _, l := range levels {
		r.TotalIn += l.TotalIn
		r.TotalOut += l.TotalOut
		r.Available += l.Available
	}
	return r, nil
}

// DownloadPDF genera el PDF y el nombre de archivo sugerido.
func (uc *StockReportUseCase) DownloadPDF(ctx context.Context, f repository.ProductFilter) (pdfBytes []byte, filename string, err error) {
	r, err := uc.Build(ctx, f)
	if err != nil {
		return nil, "", fmt.Errorf("reporte: obtener existencias: %w", err)
	}
	pdfBytes, err = uc.generator.GenerateStockReport(ctx, r)
	if err != nil {
		return nil, "", fmt.Errorf("reporte: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("stock_report_%s.pdf", r.GeneratedAt.Format("20060102")), nil
}
