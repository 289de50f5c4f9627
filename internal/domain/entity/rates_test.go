package entity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dysin/market-insights-go/internal/shared/types"
)

func cnyTable() RateTable {
	return RateTable{
		Base: "CNY",
		Rates: map[string]float64{
			"USD": 0.1391,
			"EUR": 0.1287,
			"JPY": 20.41,
		},
	}
}

func TestToBaseAndBack(t *testing.T) {
	tbl := cnyTable()

	cny, err := tbl.ToBase(100, "USD")
	require.NoError(t, err)
	assert.InDelta(t, 100/0.1391, cny, 1e-9)

	back, err := tbl.FromBase(cny, "USD")
	require.NoError(t, err)
	assert.InDelta(t, 100, back, 1e-6)
}

func TestBaseCurrencyIsIdentity(t *testing.T) {
	tbl := cnyTable()
	v, err := tbl.ToBase(42, "CNY")
	require.NoError(t, err)
	assert.Equal(t, 42.0, v)

	v, err = tbl.FromBase(42, "CNY")
	require.NoError(t, err)
	assert.Equal(t, 42.0, v)
}

func TestUnknownCurrencyFails(t *testing.T) {
	tbl := cnyTable()

	_, err := tbl.ToBase(10, "XXX")
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrUnknownCurrency))
	assert.Contains(t, err.Error(), "XXX")

	_, err = tbl.Convert(10, "USD", "XXX")
	assert.True(t, errors.Is(err, types.ErrUnknownCurrency))
}

func TestConvertThroughBase(t *testing.T) {
	tbl := cnyTable()
	jpy, err := tbl.Convert(100, "USD", "JPY")
	require.NoError(t, err)
	assert.InDelta(t, 100/0.1391*20.41, jpy, 1e-6)
}
