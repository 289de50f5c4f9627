package textextract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmail(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"plain", "Contact us at sales@acme-trading.com for quotes", "sales@acme-trading.com"},
		{"first of many", "a@b.io then c@d.io", "a@b.io"},
		{"none", "no address here", ""},
		{"skips image asset", `<img src="logo@2x.png"> write to info@shop.de`, "info@shop.de"},
		{"mailto href", `<a href="mailto:hello@example.org">mail</a>`, "hello@example.org"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Email(tt.text))
		})
	}
}

func TestPrice(t *testing.T) {
	v, ok := Price("$1,299.00")
	assert.True(t, ok)
	assert.InDelta(t, 1299.0, v, 1e-9)

	v, ok = Price("US $12.50")
	assert.True(t, ok)
	assert.InDelta(t, 12.5, v, 1e-9)

	v, ok = Price("US $4.20-5.80")
	assert.True(t, ok)
	assert.InDelta(t, 4.2, v, 1e-9)

	_, ok = Price("call for price")
	assert.False(t, ok)
}

func TestNumber(t *testing.T) {
	assert.Equal(t, 1204, Number("1,204"))
	assert.Equal(t, 2300, Number("2.3K sold"))
	assert.Equal(t, 0, Number(""))
}

func TestRating(t *testing.T) {
	assert.InDelta(t, 4.5, Rating("4.5 out of 5 stars"), 1e-9)
	assert.InDelta(t, 4.7, Rating("4,7 von 5 Sternen"), 1e-9)
	assert.Zero(t, Rating("no rating"))
}
