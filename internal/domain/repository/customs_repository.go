package repository

import (
	"context"

	"github.com/dysin/market-insights-go/internal/domain/entity"
	"github.com/dysin/market-insights-go/internal/shared/types"
)

// ComtradeRepository fetches monthly tariff lines from UN Comtrade.
type ComtradeRepository interface {
	Fetch(ctx context.Context, q types.TradeQuery) ([]entity.TradeRecord, error)
}

// CustomsTableRepository loads an exported customs statistics table from
// disk, normalizing column names, encodings, and number formats.
type CustomsTableRepository interface {
	Load(path string) ([]entity.TradeRecord, error)
}

// TradeStore persists tariff lines across runs so repeated analyses do not
// refetch.
type TradeStore interface {
	SaveRecords(ctx context.Context, records []entity.TradeRecord) error
	LoadRecords(ctx context.Context, provider, cmdCode string) ([]entity.TradeRecord, error)
	Close() error
}
