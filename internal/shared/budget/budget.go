// Package budget paces outbound API calls against a hard ceiling.
package budget

import (
	"time"

	"github.com/dysin/market-insights-go/internal/shared/types"
)

// CallBudget counts calls against a fixed ceiling and enforces a cooldown
// between them. It is not safe for concurrent use; fetch loops are serial.
type CallBudget struct {
	ceiling  int
	used     int
	cooldown time.Duration
}

// New returns a budget of ceiling calls with the given cooldown between
// calls. A ceiling of zero or less means every Spend fails immediately.
func New(ceiling int, cooldown time.Duration) *CallBudget {
	return &CallBudget{ceiling: ceiling, cooldown: cooldown}
}

// Spend consumes one call from the budget. It returns
// types.ErrBudgetExhausted once the ceiling is reached; the caller keeps
// whatever it has already collected.
func (b *CallBudget) Spend() error {
	if b.used >= b.ceiling {
		return types.ErrBudgetExhausted
	}
	b.used++
	return nil
}

// Cooldown sleeps for the configured pause between calls.
func (b *CallBudget) Cooldown() {
	if b.cooldown > 0 {
		time.Sleep(b.cooldown)
	}
}

// PageDelay sleeps for the extra pause required before a continuation
// token becomes valid on paginated APIs.
func (b *CallBudget) PageDelay() {
	time.Sleep(2 * time.Second)
}

func (b *CallBudget) Used() int { return b.used }

func (b *CallBudget) Remaining() int {
	if r := b.ceiling - b.used; r > 0 {
		return r
	}
	return 0
}
