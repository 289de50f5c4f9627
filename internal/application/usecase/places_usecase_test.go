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

func TestPlacesRunExports(t *testing.T) {
	exporter := newFakeExporter()
	u := NewPlacesUseCase(&fakePlaces{records: []entity.PlaceRecord{
		{PlaceID: "p1", Name: "Cafe One"},
	}}, exporter, quiet())

	err := u.Run(context.Background(), types.CLIArgs{Keyword: "Coffee Shop"}, paths.New(t.TempDir()))
	require.NoError(t, err)
	assert.Contains(t, exporter.csvFiles, "places_coffee_shop")
}

func TestPlacesRunPartialBudgetStillExports(t *testing.T) {
	exporter := newFakeExporter()
	u := NewPlacesUseCase(&fakePlaces{
		records: []entity.PlaceRecord{{PlaceID: "p1", Name: "Cafe One"}},
		err:     types.ErrBudgetExhausted,
	}, exporter, quiet())

	err := u.Run(context.Background(), types.CLIArgs{Keyword: "coffee"}, paths.New(t.TempDir()))
	require.NoError(t, err)
	assert.NotEmpty(t, exporter.csvFiles)
}

func TestPlacesRunHardErrorFails(t *testing.T) {
	exporter := newFakeExporter()
	u := NewPlacesUseCase(&fakePlaces{err: errors.New("boom")}, exporter, quiet())

	err := u.Run(context.Background(), types.CLIArgs{Keyword: "coffee"}, paths.New(t.TempDir()))
	require.Error(t, err)
	assert.Empty(t, exporter.csvFiles)
}

func TestPlacesRunNoResults(t *testing.T) {
	exporter := newFakeExporter()
	u := NewPlacesUseCase(&fakePlaces{}, exporter, quiet())

	err := u.Run(context.Background(), types.CLIArgs{Keyword: "coffee"}, paths.New(t.TempDir()))
	require.NoError(t, err)
	assert.Empty(t, exporter.csvFiles)
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "coffee_shop", sanitize("Coffee Shop"))
	assert.Equal(t, "hs8544", sanitize("HS8544"))
	assert.Equal(t, "电线电缆", sanitize("电线电缆"))
	assert.Equal(t, "query", sanitize("!!!"))
}
