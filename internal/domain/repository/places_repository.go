package repository

import (
	"context"

	"github.com/dysin/market-insights-go/internal/domain/entity"
	"github.com/dysin/market-insights-go/internal/shared/types"
)

// PlacesRepository finds businesses around a point. Search returns the
// records collected so far together with types.ErrBudgetExhausted when the
// call ceiling was hit mid-run; callers keep the partial slice.
type PlacesRepository interface {
	Search(ctx context.Context, q types.PlaceQuery) ([]entity.PlaceRecord, error)
}
