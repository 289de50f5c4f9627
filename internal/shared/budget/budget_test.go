package budget

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dysin/market-insights-go/internal/shared/types"
)

func TestSpendStopsAtCeiling(t *testing.T) {
	b := New(3, 0)

	for i := 0; i < 3; i++ {
		require.NoError(t, b.Spend())
	}

	err := b.Spend()
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrBudgetExhausted))
	assert.Equal(t, 3, b.Used())
	assert.Equal(t, 0, b.Remaining())

	// still exhausted on a second attempt
	assert.True(t, errors.Is(b.Spend(), types.ErrBudgetExhausted))
	assert.Equal(t, 3, b.Used())
}

func TestZeroCeilingFailsImmediately(t *testing.T) {
	b := New(0, 0)
	assert.True(t, errors.Is(b.Spend(), types.ErrBudgetExhausted))
}

func TestRemaining(t *testing.T) {
	b := New(5, 0)
	require.NoError(t, b.Spend())
	require.NoError(t, b.Spend())
	assert.Equal(t, 3, b.Remaining())
	assert.Equal(t, 2, b.Used())
}
