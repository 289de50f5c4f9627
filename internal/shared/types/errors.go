package types

import "errors"

var (
	// ErrBudgetExhausted is returned by a CallBudget once its ceiling is
	// reached. Fetchers stop and hand back whatever they collected; callers
	// must treat a short result as "budget exhausted", not "no more data".
	ErrBudgetExhausted = errors.New("call budget exhausted")

	// ErrSchemaViolation means a required column is missing from an input
	// table. Fatal: downstream aggregation cannot proceed meaningfully.
	ErrSchemaViolation = errors.New("input table is missing a required column")

	// ErrUnknownCurrency means the rate table has no entry for a currency
	// code. Fatal for conversion; a silent rate of 1 is worse than stopping.
	ErrUnknownCurrency = errors.New("currency code not present in rate table")

	ErrMissingAPIKey = errors.New("required API key not set; provide it via flag, config file, or environment")
)
