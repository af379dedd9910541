package importer

import "fmt"

// Estados de una importación.
const (
	StatusSuccess = "success" // todas las filas procesadas (puede haber filas omitidas con aviso)
	StatusPartial = "partial" // abortada tras aplicar al menos una fila
	StatusFailed  = "failed"  // abortada sin aplicar ninguna fila
)

// Mensajes visibles de la importación.
const (
	MsgProductsUploaded = "Products uploaded successfully"
	MsgStockInsUploaded = "Stock In data uploaded successfully"
	MsgProductRequired  = "product code or name required"
	msgInvalidRateQty   = "Rate and quantity must be decimal numbers. Invalid data: Rate: %s, Quantity: %s"
	msgDuplicateBatchID = "Duplicate batch ID found: %s. Skipping row."
	msgAborted          = "%d rows imported, error on row %d: %s"
)

// RowIssue problema asociado a una fila de la planilla (número de fila como en la hoja; encabezado = 1).
type RowIssue struct {
	Row     int
	Message string
}

// Result resultado agregado de una importación.
type Result struct {
	Status      string
	Message     string
	RowsTotal   int // filas de datos no vacías
	RowsApplied int
	RowsSkipped int
	Warnings    []RowIssue
	Failure     *RowIssue
}

// Aborted indica si la importación se detuvo por un error de fila.
func (r *Result) Aborted() bool {
	return r.Failure != nil
}

func (r *Result) succeed(msg string) {
	r.Status = StatusSuccess
	r.Message = msg
}

func (r *Result) abort(row int, err error) {
	r.Failure = &RowIssue{Row: row, Message: err.Error()}
	r.Status = StatusFailed
	if r.RowsApplied > 0 {
		r.Status = StatusPartial
	}
	r.Message = fmt.Sprintf(msgAborted, r.RowsApplied, row, err.Error())
}

func (r *Result) warn(row int, msg string) {
	r.Warnings = append(r.Warnings, RowIssue{Row: row, Message: msg})
	r.RowsSkipped++
}
