package repository

import (
	"context"

	"github.com/dysin/market-insights-go/internal/domain/entity"
	"github.com/dysin/market-insights-go/internal/shared/types"
)

// MarketplaceRepository searches one marketplace for product listings.
// Implementations normalize into entity.ProductRecord and drop listings
// without a usable unique id. Like the places port, a partial slice plus
// types.ErrBudgetExhausted means the call ceiling was hit.
type MarketplaceRepository interface {
	Source() entity.ProductSource
	Search(ctx context.Context, q types.MarketQuery) ([]entity.ProductRecord, error)
}
