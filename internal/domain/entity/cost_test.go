package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestShippingCostPerPieceWins(t *testing.T) {
	opt := LogisticsOption{PerPieceCNY: d("8"), PerKgCNY: d("20")}
	// 10 pieces at 0.2kg: 80 by piece vs 40 by weight
	got := opt.ShippingCost(10, d("0.2"))
	assert.True(t, got.Equal(d("80")), got.String())
}

func TestShippingCostPerKgWins(t *testing.T) {
	opt := LogisticsOption{PerPieceCNY: d("8"), PerKgCNY: d("20")}
	// 10 pieces at 1.5kg: 80 by piece vs 300 by weight
	got := opt.ShippingCost(10, d("1.5"))
	assert.True(t, got.Equal(d("300")), got.String())
}

func TestShippingCostTie(t *testing.T) {
	opt := LogisticsOption{PerPieceCNY: d("10"), PerKgCNY: d("10")}
	got := opt.ShippingCost(3, d("1"))
	assert.True(t, got.Equal(d("30")), got.String())
}
