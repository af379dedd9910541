package entity

import "time"

// StockOut salida (despacho) de un producto. Solo se crea por el camino validado del ledger.
type StockOut struct {
	ID                 string
	ProductID          string
	DateOfDisbursement time.Time
	Quantity           int64
	CreatedAt          time.Time
}
