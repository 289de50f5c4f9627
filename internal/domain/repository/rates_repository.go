package repository

import (
	"context"

	"github.com/dysin/market-insights-go/internal/domain/entity"
)

// RatesRepository fetches a fresh CNY-based rate table and round-trips it
// through a local CSV snapshot so cost analyses can run offline.
type RatesRepository interface {
	FetchLatest(ctx context.Context, base string) (entity.RateTable, error)
	SaveCSV(table entity.RateTable, path string) error
	LoadCSV(path string) (entity.RateTable, error)
}
