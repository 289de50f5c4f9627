package repository

import (
	"context"

	"github.com/dysin/market-insights-go/internal/domain/entity"
	"github.com/dysin/market-insights-go/internal/shared/types"
)

// TrendsRepository fetches relative search interest.
type TrendsRepository interface {
	InterestOverTime(ctx context.Context, q types.TrendQuery) ([]entity.TrendPoint, error)
	InterestByRegion(ctx context.Context, q types.TrendQuery) ([]entity.RegionInterest, error)
}
