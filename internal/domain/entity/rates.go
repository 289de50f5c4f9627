package entity

import (
	"fmt"
	"time"

	"github.com/dysin/market-insights-go/internal/shared/types"
)

// RateTable holds exchange rates quoted against a base currency: one unit
// of Base buys Rates[code] units of code.
type RateTable struct {
	Base      string
	FetchedAt time.Time
	Rates     map[string]float64
}

// ToBase converts an amount of currency into the base currency.
func (t RateTable) ToBase(amount float64, currency string) (float64, error) {
	if currency == t.Base {
		return amount, nil
	}
	rate, ok := t.Rates[currency]
	if !ok || rate == 0 {
		return 0, fmt.Errorf("%w: %s", types.ErrUnknownCurrency, currency)
	}
	return amount / rate, nil
}

// FromBase converts an amount of the base currency into currency.
func (t RateTable) FromBase(amount float64, currency string) (float64, error) {
	if currency == t.Base {
		return amount, nil
	}
	rate, ok := t.Rates[currency]
	if !ok {
		return 0, fmt.Errorf("%w: %s", types.ErrUnknownCurrency, currency)
	}
	return amount * rate, nil
}

// Convert goes from one quoted currency to another through the base.
func (t RateTable) Convert(amount float64, from, to string) (float64, error) {
	base, err := t.ToBase(amount, from)
	if err != nil {
		return 0, err
	}
	return t.FromBase(base, to)
}
