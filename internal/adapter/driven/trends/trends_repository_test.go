package trends

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dysin/market-insights-go/internal/shared/budget"
	"github.com/dysin/market-insights-go/internal/shared/types"
	"github.com/dysin/market-insights-go/pkg/console"
)

func newTrendsServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/explore", func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Query().Get("req"), "espresso")
		fmt.Fprint(w, `)]}'
{"widgets": [
	{"id": "TIMESERIES", "token": "tok-ts", "request": {"a": 1}},
	{"id": "GEO_MAP", "token": "tok-geo", "request": {"b": 2}}
]}`)
	})
	mux.HandleFunc("/widgetdata/multiline", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "tok-ts", r.URL.Query().Get("token"))
		fmt.Fprint(w, `)]}',
{"default": {"timelineData": [
	{"time": "1735689600", "value": [57]},
	{"time": "1738368000", "value": [100]}
]}}`)
	})
	mux.HandleFunc("/widgetdata/comparedgeo", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "tok-geo", r.URL.Query().Get("token"))
		fmt.Fprint(w, `)]}',
{"default": {"geoMapData": [
	{"geoName": "United States", "geoCode": "US", "value": [100]},
	{"geoName": "Narnia", "geoCode": "XX", "value": [12]},
	{"geoName": "Japan", "geoCode": "JP", "value": []}
]}}`)
	})
	return httptest.NewServer(mux)
}

func testRepo(t *testing.T, url string, b *budget.CallBudget) *TrendsRepositoryImpl {
	t.Helper()
	repo := NewTrendsRepository(b, console.NewQuietConsole(io.Discard))
	repo.BaseURL = url
	return repo
}

func TestInterestOverTime(t *testing.T) {
	srv := newTrendsServer(t)
	defer srv.Close()

	repo := testRepo(t, srv.URL, budget.New(10, 0))
	points, err := repo.InterestOverTime(context.Background(), types.TrendQuery{
		Keywords: []string{"espresso"}, StartDate: "2025-01-01", EndDate: "2025-06-30",
	})
	require.NoError(t, err)
	require.Len(t, points, 2)

	assert.Equal(t, "espresso", points[0].Keyword)
	assert.Equal(t, 57, points[0].Score)
	assert.Equal(t, 2025, points[0].Date.Year())
	assert.Equal(t, 100, points[1].Score)
}

func TestInterestByRegionResolvesISO3(t *testing.T) {
	srv := newTrendsServer(t)
	defer srv.Close()

	repo := testRepo(t, srv.URL, budget.New(10, 0))
	regions, err := repo.InterestByRegion(context.Background(), types.TrendQuery{Keywords: []string{"espresso"}})
	require.NoError(t, err)

	// the empty-value row is dropped
	require.Len(t, regions, 2)
	assert.Equal(t, "USA", regions[0].Country)
	assert.Equal(t, 100, regions[0].Score)
	// unknown names pass through untouched
	assert.Equal(t, "Narnia", regions[1].Country)
}

func TestBudgetCoversBothCalls(t *testing.T) {
	srv := newTrendsServer(t)
	defer srv.Close()

	// explore eats the only call; the widget fetch must fail
	repo := testRepo(t, srv.URL, budget.New(1, 0))
	_, err := repo.InterestOverTime(context.Background(), types.TrendQuery{Keywords: []string{"espresso"}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrBudgetExhausted))
}

func TestNoKeywords(t *testing.T) {
	repo := testRepo(t, "http://unused", budget.New(10, 0))
	_, err := repo.InterestOverTime(context.Background(), types.TrendQuery{})
	assert.Error(t, err)
}

func TestStripPrefix(t *testing.T) {
	assert.Equal(t, `{"a":1}`, string(stripPrefix([]byte(")]}',\n{\"a\":1}"))))
	assert.Equal(t, `[1]`, string(stripPrefix([]byte(`[1]`))))
}
