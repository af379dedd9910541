package stock

import (
	"fmt"

	"github.com/jhoicas/stock-ledger/internal/domain"
)

// Mensajes de validación de salidas, en el orden en que se evalúan.
const (
	MsgNullQuantity = "cannot check out a null quantity"
	MsgNoProduct    = "cannot check out with no product"
	MsgNoStock      = "selected product has no stock available"
)

// Available cantidad disponible: total recibido menos total despachado.
func Available(totalIn, totalOut int64) int64 {
	return totalIn - totalOut
}

// ValidateStockOutRequest reglas 1 y 2 de una salida (no requieren leer el ledger).
func ValidateStockOutRequest(productID string, quantity int64) error {
	if quantity == 0 {
		return domain.NewValidationError("quantity", MsgNullQuantity)
	}
	if productID == "" {
		return domain.NewValidationError("product", MsgNoProduct)
	}
	return nil
}

// CheckAvailability reglas 3 y 4: el producto debe tener al menos una entrada y la
// cantidad solicitada no puede superar lo disponible. receipts es el número de StockIn.
func CheckAvailability(quantity, receipts, available int64) error {
	if receipts == 0 {
		return domain.NewValidationError("product", MsgNoStock)
	}
	if quantity > available {
		return InsufficientStock(available, quantity)
	}
	return nil
}

// InsufficientStock error de stock insuficiente con los valores concretos.
func InsufficientStock(available, requested int64) *domain.ValidationError {
	return &domain.ValidationError{
		Field:   "quantity",
		Message: fmt.Sprintf("insufficient stock: available=%d, requested=%d", available, requested),
		Kind:    domain.ErrInsufficientStock,
	}
}
