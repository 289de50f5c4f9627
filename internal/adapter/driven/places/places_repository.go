// Package places implements nearby-business search against the Google
// Maps Places API, with best-effort email enrichment from each business
// website.
package places

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/dysin/market-insights-go/internal/domain/entity"
	"github.com/dysin/market-insights-go/internal/domain/repository"
	"github.com/dysin/market-insights-go/internal/shared/budget"
	"github.com/dysin/market-insights-go/internal/shared/textextract"
	"github.com/dysin/market-insights-go/internal/shared/types"
)

const defaultBaseURL = "https://maps.googleapis.com/maps/api/place"

// maxEnrichBody caps how much of a business website is read when looking
// for an email address.
const maxEnrichBody = 512 * 1024

// PlacesRepositoryImpl implements repository.PlacesRepository.
type PlacesRepositoryImpl struct {
	// BaseURL points at the Places API root; tests override it.
	BaseURL string

	apiKey  string
	budget  *budget.CallBudget
	client  *http.Client
	web     *http.Client
	console types.ConsoleInterface
}

var _ repository.PlacesRepository = (*PlacesRepositoryImpl)(nil)

func NewPlacesRepository(apiKey string, b *budget.CallBudget, console types.ConsoleInterface) (*PlacesRepositoryImpl, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("google maps: %w", types.ErrMissingAPIKey)
	}
	return &PlacesRepositoryImpl{
		BaseURL: defaultBaseURL,
		apiKey:  apiKey,
		budget:  b,
		client:  &http.Client{Timeout: 15 * time.Second},
		web:     &http.Client{Timeout: 5 * time.Second},
		console: console,
	}, nil
}

type nearbyResponse struct {
	Status        string `json:"status"`
	NextPageToken string `json:"next_page_token"`
	Results       []struct {
		PlaceID string `json:"place_id"`
	} `json:"results"`
}

type detailsResponse struct {
	Status string `json:"status"`
	Result struct {
		PlaceID  string `json:"place_id"`
		Name     string `json:"name"`
		Address  string `json:"formatted_address"`
		Phone    string `json:"international_phone_number"`
		Website  string `json:"website"`
		Rating   float64
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
		UserRatingsTotal int `json:"user_ratings_total"`
	} `json:"result"`
}

// Search walks nearby-search pages and fetches details for every place
// found, spending one budget call per API request. It returns what it has
// collected together with types.ErrBudgetExhausted when the ceiling is hit
// mid-run. A page that fails transiently ends the walk with the places
// collected so far; there is no token to resume from.
func (r *PlacesRepositoryImpl) Search(ctx context.Context, q types.PlaceQuery) ([]entity.PlaceRecord, error) {
	var records []entity.PlaceRecord
	pageToken := ""

	for {
		page, err := r.nearbyPage(ctx, q, pageToken)
		if err != nil {
			if ctx.Err() != nil || isBudget(err) {
				return records, err
			}
			r.console.LogWarning("nearby page failed, stopping with %d places: %v", len(records), err)
			return records, nil
		}

		for _, res := range page.Results {
			if res.PlaceID == "" {
				continue
			}
			rec, err := r.details(ctx, res.PlaceID)
			if err != nil {
				if ctx.Err() != nil || isBudget(err) {
					return records, err
				}
				r.console.LogWarning("details for %s failed: %v", res.PlaceID, err)
				continue
			}
			rec.Email = r.enrichEmail(ctx, rec.Website)
			records = append(records, rec)
			r.budget.Cooldown()
		}

		if page.NextPageToken == "" {
			return records, nil
		}
		pageToken = page.NextPageToken
		// continuation tokens need a moment before they become valid
		r.budget.PageDelay()
	}
}

func (r *PlacesRepositoryImpl) nearbyPage(ctx context.Context, q types.PlaceQuery, pageToken string) (*nearbyResponse, error) {
	if err := r.budget.Spend(); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("location", fmt.Sprintf("%f,%f", q.Lat, q.Lng))
	params.Set("radius", strconv.Itoa(q.RadiusMeters))
	params.Set("keyword", q.Keyword)
	params.Set("key", r.apiKey)
	if pageToken != "" {
		params.Set("pagetoken", pageToken)
	}

	var out nearbyResponse
	if err := r.getJSON(ctx, r.BaseURL+"/nearbysearch/json?"+params.Encode(), &out); err != nil {
		return nil, err
	}
	if out.Status != "OK" && out.Status != "ZERO_RESULTS" {
		return nil, fmt.Errorf("nearby search returned status %s", out.Status)
	}
	return &out, nil
}

func (r *PlacesRepositoryImpl) details(ctx context.Context, placeID string) (entity.PlaceRecord, error) {
	if err := r.budget.Spend(); err != nil {
		return entity.PlaceRecord{}, err
	}

	params := url.Values{}
	params.Set("place_id", placeID)
	params.Set("fields", "place_id,name,formatted_address,international_phone_number,geometry,rating,user_ratings_total,website")
	params.Set("key", r.apiKey)

	var out detailsResponse
	if err := r.getJSON(ctx, r.BaseURL+"/details/json?"+params.Encode(), &out); err != nil {
		return entity.PlaceRecord{}, err
	}
	if out.Status != "OK" {
		return entity.PlaceRecord{}, fmt.Errorf("place details returned status %s", out.Status)
	}

	res := out.Result
	return entity.PlaceRecord{
		PlaceID:      placeID,
		Name:         res.Name,
		Address:      res.Address,
		Phone:        res.Phone,
		Lat:          res.Geometry.Location.Lat,
		Lng:          res.Geometry.Location.Lng,
		Rating:       res.Rating,
		RatingsTotal: res.UserRatingsTotal,
		Website:      res.Website,
	}, nil
}

// enrichEmail fetches the business website and scans it for an email
// address. Any failure just leaves the email empty; enrichment never sinks
// a run.
func (r *PlacesRepositoryImpl) enrichEmail(ctx context.Context, website string) string {
	if website == "" {
		return ""
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, website, nil)
	if err != nil {
		return ""
	}
	resp, err := r.web.Do(req)
	if err != nil {
		return ""
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return ""
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxEnrichBody))
	if err != nil {
		return ""
	}
	return textextract.Email(string(body))
}

func (r *PlacesRepositoryImpl) getJSON(ctx context.Context, rawURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("places API returned HTTP %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func isBudget(err error) bool {
	return errors.Is(err, types.ErrBudgetExhausted)
}
