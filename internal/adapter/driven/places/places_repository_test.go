package places

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

func newTestServer(t *testing.T, siteURL string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/nearbysearch/json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"status": "OK",
			"results": [
				{"place_id": "p1"},
				{"place_id": ""},
				{"place_id": "p2"}
			]
		}`)
	})
	mux.HandleFunc("/details/json", func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Query().Get("place_id")
		website := ""
		if id == "p1" {
			website = fmt.Sprintf("%q", siteURL)
		} else {
			website = `""`
		}
		fmt.Fprintf(w, `{
			"status": "OK",
			"result": {
				"place_id": "%s",
				"name": "Cafe %s",
				"formatted_address": "1 Main St",
				"international_phone_number": "+61 2 0000 0000",
				"geometry": {"location": {"lat": -33.87, "lng": 151.21}},
				"rating": 4.4,
				"user_ratings_total": 120,
				"website": %s
			}
		}`, id, id, website)
	})
	return httptest.NewServer(mux)
}

func testRepo(t *testing.T, apiURL string, b *budget.CallBudget) *PlacesRepositoryImpl {
	t.Helper()
	repo, err := NewPlacesRepository("test-key", b, console.NewQuietConsole(io.Discard))
	require.NoError(t, err)
	repo.BaseURL = apiURL
	return repo
}

func TestSearchNormalizesAndEnriches(t *testing.T) {
	site := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body>Contact: hello@cafe-p1.example.com</body></html>`)
	}))
	defer site.Close()

	srv := newTestServer(t, site.URL)
	defer srv.Close()

	repo := testRepo(t, srv.URL, budget.New(100, 0))
	records, err := repo.Search(context.Background(), types.PlaceQuery{
		Keyword: "coffee", Lat: -33.87, Lng: 151.21, RadiusMeters: 1500,
	})
	require.NoError(t, err)

	// the empty place_id is dropped
	require.Len(t, records, 2)

	p1 := records[0]
	assert.Equal(t, "p1", p1.PlaceID)
	assert.Equal(t, "Cafe p1", p1.Name)
	assert.Equal(t, "hello@cafe-p1.example.com", p1.Email)
	assert.InDelta(t, -33.87, p1.Lat, 1e-9)
	assert.Equal(t, 120, p1.RatingsTotal)

	// p2 has no website, so enrichment leaves the email empty
	assert.Empty(t, records[1].Email)
	assert.Empty(t, records[1].Website)
}

func TestSearchBudgetExhaustedKeepsPartial(t *testing.T) {
	srv := newTestServer(t, "")
	defer srv.Close()

	// 1 nearby + 1 details, then exhausted before the second details call
	repo := testRepo(t, srv.URL, budget.New(2, 0))
	records, err := repo.Search(context.Background(), types.PlaceQuery{Keyword: "coffee"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrBudgetExhausted))
	assert.Len(t, records, 1)
}

func TestSearchFailedPageKeepsCollected(t *testing.T) {
	nearbyCalls := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/nearbysearch/json", func(w http.ResponseWriter, r *http.Request) {
		nearbyCalls++
		if nearbyCalls > 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, `{"status": "OK", "next_page_token": "tok2", "results": [{"place_id": "p1"}]}`)
	})
	mux.HandleFunc("/details/json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status": "OK", "result": {"place_id": "p1", "name": "Cafe p1"}}`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	repo := testRepo(t, srv.URL, budget.New(100, 0))
	records, err := repo.Search(context.Background(), types.PlaceQuery{Keyword: "coffee"})

	require.NoError(t, err)
	require.Len(t, records, 1) // page 1 survived the page-2 failure
	assert.Equal(t, "p1", records[0].PlaceID)
	assert.Equal(t, 2, nearbyCalls)
}

func TestMissingAPIKey(t *testing.T) {
	_, err := NewPlacesRepository("", budget.New(1, 0), console.NewConsole())
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrMissingAPIKey))
}

func TestEnrichmentFailureIsNotFatal(t *testing.T) {
	srv := newTestServer(t, "http://127.0.0.1:1/unreachable")
	defer srv.Close()

	repo := testRepo(t, srv.URL, budget.New(100, 0))
	records, err := repo.Search(context.Background(), types.PlaceQuery{Keyword: "coffee"})
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Empty(t, records[0].Email)
}
