package catalog

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jhoicas/stock-ledger/internal/domain"
)

// Longitudes máximas de los campos de catálogo.
const (
	MaxCategoryName = 100
	MaxUnitName     = 50
	MaxProductName  = 100
	MaxProductCode  = 100
)

// CleanName recorta espacios y valida que el valor no esté vacío ni supere max caracteres.
func CleanName(field, value string, max int) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", domain.NewValidationError(field, fmt.Sprintf("%s is required", field))
	}
	if utf8.RuneCountInString(value) > max {
		return "", domain.NewValidationError(field, fmt.Sprintf("%s must have at most %d characters", field, max))
	}
	return value, nil
}
