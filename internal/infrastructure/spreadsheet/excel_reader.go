package spreadsheet

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/stock-ledger/internal/application/importer"
	"github.com/jhoicas/stock-ledger/internal/domain"
)

var _ importer.SheetReader = (*ExcelReader)(nil)

// ExcelReader lee planillas .xlsx con excelize.
type ExcelReader struct{}

// NewExcelReader construye el lector.
func NewExcelReader() *ExcelReader {
	return &ExcelReader{}
}

// ReadFirstSheet devuelve la primera hoja: fila 1 como encabezado y el resto como datos.
// Las celdas se leen con su valor crudo (sin formato numérico) para no perder decimales.
func (r *ExcelReader) ReadFirstSheet(ctx context.Context, src io.Reader) (*importer.Sheet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, domain.NewValidationError("file", fmt.Sprintf("cannot read spreadsheet: %v", err))
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, domain.NewValidationError("file", "spreadsheet has no sheets")
	}
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, domain.NewValidationError("file", fmt.Sprintf("cannot read sheet %q: %v", sheets[0], err))
	}
	if len(rows) == 0 {
		return nil, domain.NewValidationError("file", "spreadsheet is empty")
	}
	return &importer.Sheet{Header: rows[0], Rows: rows[1:]}, nil
}
