package rates

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dysin/market-insights-go/internal/domain/entity"
	"github.com/dysin/market-insights-go/internal/shared/types"
)

func TestFetchLatest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "/test-key/latest/CNY")
		fmt.Fprint(w, `{
			"result": "success",
			"base_code": "CNY",
			"conversion_rates": {"CNY": 1, "USD": 0.1391, "EUR": 0.1287}
		}`)
	}))
	defer srv.Close()

	repo := NewRatesRepository("test-key")
	repo.BaseURL = srv.URL

	table, err := repo.FetchLatest(context.Background(), "CNY")
	require.NoError(t, err)
	assert.Equal(t, "CNY", table.Base)
	assert.InDelta(t, 0.1391, table.Rates["USD"], 1e-9)
}

func TestFetchLatestAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"result": "error", "error-type": "invalid-key"}`)
	}))
	defer srv.Close()

	repo := NewRatesRepository("bad-key")
	repo.BaseURL = srv.URL

	_, err := repo.FetchLatest(context.Background(), "CNY")
	assert.Error(t, err)
}

func TestFetchLatestMissingKey(t *testing.T) {
	repo := NewRatesRepository("")
	_, err := repo.FetchLatest(context.Background(), "CNY")
	assert.True(t, errors.Is(err, types.ErrMissingAPIKey))
}

func TestCSVRoundTrip(t *testing.T) {
	repo := NewRatesRepository("")
	path := filepath.Join(t.TempDir(), "rates.csv")

	original := entity.RateTable{
		Base:  "CNY",
		Rates: map[string]float64{"CNY": 1, "USD": 0.1391, "EUR": 0.1287, "JPY": 20.41},
	}
	require.NoError(t, repo.SaveCSV(original, path))

	loaded, err := repo.LoadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, original.Base, loaded.Base)
	require.Len(t, loaded.Rates, len(original.Rates))
	for code, rate := range original.Rates {
		assert.InDelta(t, rate, loaded.Rates[code], 1e-12, code)
	}
}

func TestLoadCSVBadLayout(t *testing.T) {
	repo := NewRatesRepository("")

	for name, contents := range map[string]string{
		"wrong header":     "currency,rate\nUSD,0.14\n",
		"short first row":  "base\ncurrency\nUSD\n",
		"single cell file": "base\n",
	} {
		path := filepath.Join(t.TempDir(), "rates.csv")
		require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

		_, err := repo.LoadCSV(path)
		assert.ErrorContains(t, err, "unexpected layout", name)
	}
}
