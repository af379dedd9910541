package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout formato de fechas (date_of_purchase, date_of_disbursement, filtros from/to).
const DateLayout = "2006-01-02"

// CreateStockInRequest body para POST /api/stock-ins. BatchID vacío = se genera.
type CreateStockInRequest struct {
	ProductID      string          `json:"product_id" validate:"required"`
	Rate           decimal.Decimal `json:"rate"`
	Quantity       int64           `json:"quantity"`
	DateOfPurchase string          `json:"date_of_purchase" validate:"omitempty,datetime=2006-01-02"`
	BatchID        string          `json:"batch_id" validate:"max=4"`
}

// StockInResponse salida de una entrada.
type StockInResponse struct {
	ID             string          `json:"id"`
	ProductID      string          `json:"product_id"`
	Rate           decimal.Decimal `json:"rate"`
	DateOfPurchase string          `json:"date_of_purchase"`
	Quantity       int64           `json:"quantity"`
	BatchID        string          `json:"batch_id"`
	CreatedAt      time.Time       `json:"created_at"`
}

// StockInListResponse lista paginada de entradas.
type StockInListResponse struct {
	Items []StockInResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// CreateStockOutRequest body para POST /api/stock-outs. Las reglas de negocio
// (cantidad cero, producto, stock) las valida el ledger para devolver sus mensajes.
type CreateStockOutRequest struct {
	ProductID          string `json:"product_id"`
	Quantity           int64  `json:"quantity"`
	DateOfDisbursement string `json:"date_of_disbursement" validate:"omitempty,datetime=2006-01-02"`
}

// StockOutResponse salida de un despacho; AvailableQuantity es el disponible actual del producto.
type StockOutResponse struct {
	ID                 string    `json:"id"`
	ProductID          string    `json:"product_id"`
	DateOfDisbursement string    `json:"date_of_disbursement"`
	Quantity           int64     `json:"quantity"`
	AvailableQuantity  *int64    `json:"available_quantity,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
}

// StockOutListResponse lista paginada de salidas.
type StockOutListResponse struct {
	Items []StockOutResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// StockLevelResponse existencias de un producto.
type StockLevelResponse struct {
	ProductID   string `json:"product_id"`
	ProductCode string `json:"product_code"`
	ProductName string `json:"product_name"`
	IsActive    bool   `json:"is_active"`
	TotalIn     int64  `json:"total_in"`
	TotalOut    int64  `json:"total_out"`
	Available   int64  `json:"available"`
}
