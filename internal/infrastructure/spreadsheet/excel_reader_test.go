package spreadsheet_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/spreadsheet"
)

func workbook(t *testing.T, rows ...[]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestReadFirstSheet(t *testing.T) {
	buf := workbook(t,
		[]interface{}{"product_code", "rate", "quantity"},
		[]interface{}{"P1", 12.5, 10},
		[]interface{}{"P2", "abc", 3},
	)

	sheet, err := spreadsheet.NewExcelReader().ReadFirstSheet(context.Background(), buf)
	require.NoError(t, err)
	assert.Equal(t, []string{"product_code", "rate", "quantity"}, sheet.Header)
	require.Len(t, sheet.Rows, 2)
	assert.Equal(t, []string{"P1", "12.5", "10"}, sheet.Rows[0])
	assert.Equal(t, "abc", sheet.Rows[1][1])
}

func TestReadFirstSheet_ArchivoInvalido(t *testing.T) {
	_, err := spreadsheet.NewExcelReader().ReadFirstSheet(context.Background(), strings.NewReader("no es un xlsx"))
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "file", vErr.Field)
}

func TestReadFirstSheet_Vacia(t *testing.T) {
	_, err := spreadsheet.NewExcelReader().ReadFirstSheet(context.Background(), workbook(t))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
