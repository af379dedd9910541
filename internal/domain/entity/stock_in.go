package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// BatchIDLength longitud máxima (y generada) de StockIn.BatchID.
const BatchIDLength = 4

// StockIn lote recibido de un producto. Inmutable una vez creado.
type StockIn struct {
	ID             string
	ProductID      string
	Rate           decimal.Decimal // 2 decimales
	DateOfPurchase time.Time
	Quantity       int64
	BatchID        string // único entre todos los StockIn
	CreatedAt      time.Time
}
