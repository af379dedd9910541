package dto

// ImportRowIssue aviso o error asociado a una fila de la planilla.
type ImportRowIssue struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ImportResultResponse resultado agregado de una importación.
// Status: success | partial | failed.
type ImportResultResponse struct {
	Status      string           `json:"status"`
	Message     string           `json:"message"`
	RowsTotal   int              `json:"rows_total"`
	RowsApplied int              `json:"rows_applied"`
	RowsSkipped int              `json:"rows_skipped"`
	Warnings    []ImportRowIssue `json:"warnings"`
	Error       *ImportRowIssue  `json:"error,omitempty"`
}
