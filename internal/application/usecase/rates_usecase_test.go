package usecase

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dysin/market-insights-go/internal/domain/entity"
	"github.com/dysin/market-insights-go/internal/shared/paths"
	"github.com/dysin/market-insights-go/internal/shared/types"
)

func TestRatesRunSavesSnapshot(t *testing.T) {
	repo := &fakeRates{table: entity.RateTable{
		Base:      "CNY",
		FetchedAt: time.Now(),
		Rates:     map[string]float64{"USD": 0.14, "EUR": 0.12},
	}}
	u := NewRatesUseCase(repo, quiet())

	ws := paths.New(t.TempDir())
	err := u.Run(context.Background(), types.CLIArgs{}, ws)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(ws.DataDir(), "rates.csv"), repo.savedPath)
	assert.Equal(t, "CNY", repo.saved.Base)
}

func TestRatesRunHonorsOutputPath(t *testing.T) {
	repo := &fakeRates{table: entity.RateTable{Base: "CNY", Rates: map[string]float64{"USD": 0.14}}}
	u := NewRatesUseCase(repo, quiet())

	out := filepath.Join(t.TempDir(), "snapshot.csv")
	err := u.Run(context.Background(), types.CLIArgs{RatesFile: out}, paths.New(t.TempDir()))
	require.NoError(t, err)
	assert.Equal(t, out, repo.savedPath)
}

func TestRatesRunFetchErrorFails(t *testing.T) {
	u := NewRatesUseCase(&fakeRates{err: errors.New("quota")}, quiet())

	err := u.Run(context.Background(), types.CLIArgs{}, paths.New(t.TempDir()))
	require.Error(t, err)
}
