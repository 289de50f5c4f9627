package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dysin/market-insights-go/internal/domain/entity"
	"github.com/dysin/market-insights-go/internal/shared/paths"
	"github.com/dysin/market-insights-go/internal/shared/types"
)

func TestMarketplaceRunExportsAllFormats(t *testing.T) {
	exporter := newFakeExporter()
	u := NewMarketplaceUseCase(&fakeMarket{
		source: entity.SourceAmazon,
		records: []entity.ProductRecord{
			{Source: entity.SourceAmazon, ID: "B0TEST", Title: "USB Cable", Price: 9.99, Currency: "USD"},
		},
	}, exporter, quiet())

	err := u.Run(context.Background(), types.CLIArgs{Keyword: "usb cable"}, paths.New(t.TempDir()))
	require.NoError(t, err)

	assert.Contains(t, exporter.csvFiles, "amazon_usb_cable")
	// CSV, JSON, and the workbook share the base name
	assert.Len(t, exporter.csvFiles, 3)
}

func TestMarketplaceRunPartialBudgetStillExports(t *testing.T) {
	exporter := newFakeExporter()
	u := NewMarketplaceUseCase(&fakeMarket{
		source:  entity.SourceShopee,
		records: []entity.ProductRecord{{Source: entity.SourceShopee, ID: "1.2", Title: "Cable"}},
		err:     types.ErrBudgetExhausted,
	}, exporter, quiet())

	err := u.Run(context.Background(), types.CLIArgs{Keyword: "cable"}, paths.New(t.TempDir()))
	require.NoError(t, err)
	assert.NotEmpty(t, exporter.csvFiles)
}

func TestMarketplaceRunHardErrorFails(t *testing.T) {
	exporter := newFakeExporter()
	u := NewMarketplaceUseCase(&fakeMarket{source: entity.SourceAlibaba, err: errors.New("blocked")}, exporter, quiet())

	err := u.Run(context.Background(), types.CLIArgs{Keyword: "cable"}, paths.New(t.TempDir()))
	require.Error(t, err)
	assert.Empty(t, exporter.csvFiles)
}

func TestMarketplaceRunNoResults(t *testing.T) {
	exporter := newFakeExporter()
	u := NewMarketplaceUseCase(&fakeMarket{source: entity.SourceAmazon}, exporter, quiet())

	err := u.Run(context.Background(), types.CLIArgs{Keyword: "cable"}, paths.New(t.TempDir()))
	require.NoError(t, err)
	assert.Empty(t, exporter.csvFiles)
}
