package importer

import (
	"fmt"
	"strings"

	"github.com/jhoicas/stock-ledger/internal/domain"
)

// Sheet contenido tabular de una hoja: una fila de encabezado y las filas de datos.
// Los nombres de columna se comparan de forma exacta (sensible a mayúsculas).
type Sheet struct {
	Header []string
	Rows   [][]string
}

// firstDataRow número de fila (1-based, como en la planilla) de la primera fila de datos.
const firstDataRow = 2

// columns índice nombre de columna -> posición.
type columns map[string]int

func (s *Sheet) columns() columns {
	idx := make(columns, len(s.Header))
	for i, h := range s.Header {
		h = strings.TrimSpace(h)
		if _, dup := idx[h]; h != "" && !dup {
			idx[h] = i
		}
	}
	return idx
}

// require verifica que estén todas las columnas obligatorias; las extra se ignoran.
func (c columns) require(names ...string) error {
	var missing []string
	for _, n := range names {
		if _, ok := c[n]; !ok {
			missing = append(missing, n)
		}
	}
	if len(missing) > 0 {
		return domain.NewValidationError("file", fmt.Sprintf("missing required columns: %s", strings.Join(missing, ", ")))
	}
	return nil
}

func (c columns) has(name string) bool {
	_, ok := c[name]
	return ok
}

// get valor recortado de la celda; "" si la columna no existe o la fila es corta.
func (c columns) get(row []string, name string) string {
	i, ok := c[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func blank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
