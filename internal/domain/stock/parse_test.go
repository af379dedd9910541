package stock_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger/internal/domain/stock"
)

func TestParseRate(t *testing.T) {
	r, err := stock.ParseRate(" 12.345 ")
	require.NoError(t, err)
	assert.True(t, r.Equal(decimal.RequireFromString("12.35")), "se redondea a 2 decimales, got %s", r)

	// 0.1 + 0.2 exacto, sin deriva binaria
	a, _ := stock.ParseRate("0.1")
	b, _ := stock.ParseRate("0.2")
	assert.Equal(t, "0.3", a.Add(b).String())

	_, err = stock.ParseRate("abc")
	assert.Error(t, err)
}

func TestParseQuantity(t *testing.T) {
	for in, want := range map[string]int64{"10": 10, "10.0": 10, "-4": -4, "1e2": 100} {
		got, err := stock.ParseQuantity(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, bad := range []string{"", "abc", "2.5", "99999999999999999999999"} {
		_, err := stock.ParseQuantity(bad)
		assert.Error(t, err, bad)
	}
}
