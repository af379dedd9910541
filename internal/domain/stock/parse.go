package stock

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// RateScale decimales con los que se guarda la tarifa de un lote.
const RateScale = 2

// ParseRate interpreta una tarifa con aritmética decimal exacta y la redondea a 2 decimales.
func ParseRate(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("rate %q no es decimal: %w", s, err)
	}
	return d.Round(RateScale), nil
}

// ParseQuantity interpreta una cantidad decimal que debe ser entera ("10", "10.0", "1e2").
func ParseQuantity(s string) (int64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("quantity %q no es decimal: %w", s, err)
	}
	if !d.Equal(d.Truncate(0)) {
		return 0, fmt.Errorf("quantity %q no es entera", s)
	}
	if !d.BigInt().IsInt64() {
		return 0, fmt.Errorf("quantity %q fuera de rango", s)
	}
	return d.IntPart(), nil
}
