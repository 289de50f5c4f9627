// Package trends fetches relative search interest from the Google Trends
// widget API: an explore call hands out per-widget tokens, the widget
// endpoints return the series. Responses carry an anti-hijacking prefix
// before the JSON payload.
package trends

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dysin/market-insights-go/internal/domain/entity"
	"github.com/dysin/market-insights-go/internal/domain/repository"
	"github.com/dysin/market-insights-go/internal/shared/budget"
	"github.com/dysin/market-insights-go/internal/shared/m49"
	"github.com/dysin/market-insights-go/internal/shared/types"
)

const defaultBaseURL = "https://trends.google.com/trends/api"

// TrendsRepositoryImpl implements repository.TrendsRepository.
type TrendsRepositoryImpl struct {
	BaseURL string

	client  *http.Client
	budget  *budget.CallBudget
	console types.ConsoleInterface
}

var _ repository.TrendsRepository = (*TrendsRepositoryImpl)(nil)

func NewTrendsRepository(b *budget.CallBudget, console types.ConsoleInterface) *TrendsRepositoryImpl {
	return &TrendsRepositoryImpl{
		BaseURL: defaultBaseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
		budget:  b,
		console: console,
	}
}

type widget struct {
	ID      string          `json:"id"`
	Token   string          `json:"token"`
	Request json.RawMessage `json:"request"`
}

type exploreResponse struct {
	Widgets []widget `json:"widgets"`
}

type multilineResponse struct {
	Default struct {
		TimelineData []struct {
			Time  string `json:"time"`
			Value []int  `json:"value"`
		} `json:"timelineData"`
	} `json:"default"`
}

type comparedGeoResponse struct {
	Default struct {
		GeoMapData []struct {
			GeoName string `json:"geoName"`
			GeoCode string `json:"geoCode"`
			Value   []int  `json:"value"`
		} `json:"geoMapData"`
	} `json:"default"`
}

// InterestOverTime returns one point per date per keyword, scores 0-100
// relative to the peak across the whole query.
func (r *TrendsRepositoryImpl) InterestOverTime(ctx context.Context, q types.TrendQuery) ([]entity.TrendPoint, error) {
	w, err := r.explore(ctx, q, "TIMESERIES")
	if err != nil {
		return nil, err
	}

	var out multilineResponse
	if err := r.widgetData(ctx, "widgetdata/multiline", w, &out); err != nil {
		return nil, err
	}

	var points []entity.TrendPoint
	for _, row := range out.Default.TimelineData {
		unix, err := strconv.ParseInt(row.Time, 10, 64)
		if err != nil {
			continue
		}
		date := time.Unix(unix, 0).UTC()
		for i, kw := range q.Keywords {
			if i >= len(row.Value) {
				break
			}
			points = append(points, entity.TrendPoint{Date: date, Keyword: kw, Score: row.Value[i]})
		}
	}
	return points, nil
}

// InterestByRegion returns each country's relative interest. Country names
// are resolved to ISO3 where the M49 table knows them.
func (r *TrendsRepositoryImpl) InterestByRegion(ctx context.Context, q types.TrendQuery) ([]entity.RegionInterest, error) {
	w, err := r.explore(ctx, q, "GEO_MAP")
	if err != nil {
		return nil, err
	}

	var out comparedGeoResponse
	if err := r.widgetData(ctx, "widgetdata/comparedgeo", w, &out); err != nil {
		return nil, err
	}

	keyword := ""
	if len(q.Keywords) > 0 {
		keyword = q.Keywords[0]
	}

	var regions []entity.RegionInterest
	for _, row := range out.Default.GeoMapData {
		if len(row.Value) == 0 {
			continue
		}
		country := row.GeoName
		if c, ok := m49.ByName(row.GeoName); ok {
			country = c.ISO3
		}
		regions = append(regions, entity.RegionInterest{Country: country, Keyword: keyword, Score: row.Value[0]})
	}
	return regions, nil
}

// explore requests widget tokens and picks the widget with the given id.
func (r *TrendsRepositoryImpl) explore(ctx context.Context, q types.TrendQuery, widgetID string) (*widget, error) {
	if len(q.Keywords) == 0 {
		return nil, fmt.Errorf("trends query needs at least one keyword")
	}

	timeRange := strings.TrimSpace(q.StartDate + " " + q.EndDate)
	if timeRange == "" {
		timeRange = "today 12-m"
	}

	items := make([]map[string]interface{}, 0, len(q.Keywords))
	for _, kw := range q.Keywords {
		items = append(items, map[string]interface{}{
			"keyword": kw, "geo": q.Geo, "time": timeRange,
		})
	}
	reqPayload, err := json.Marshal(map[string]interface{}{
		"comparisonItem": items, "category": 0, "property": "",
	})
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("hl", "en-US")
	params.Set("tz", "0")
	params.Set("req", string(reqPayload))

	var out exploreResponse
	if err := r.getJSON(ctx, r.BaseURL+"/explore?"+params.Encode(), &out); err != nil {
		return nil, err
	}
	for i := range out.Widgets {
		if out.Widgets[i].ID == widgetID {
			return &out.Widgets[i], nil
		}
	}
	return nil, fmt.Errorf("explore response has no %s widget", widgetID)
}

func (r *TrendsRepositoryImpl) widgetData(ctx context.Context, endpoint string, w *widget, out interface{}) error {
	params := url.Values{}
	params.Set("hl", "en-US")
	params.Set("tz", "0")
	params.Set("token", w.Token)
	params.Set("req", string(w.Request))
	return r.getJSON(ctx, r.BaseURL+"/"+endpoint+"?"+params.Encode(), out)
}

func (r *TrendsRepositoryImpl) getJSON(ctx context.Context, rawURL string, out interface{}) error {
	if err := r.budget.Spend(); err != nil {
		return err
	}
	defer r.budget.Cooldown()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36")

	resp, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("trends API returned HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	return json.Unmarshal(stripPrefix(body), out)
}

// stripPrefix drops the )]}' guard bytes before the JSON document.
func stripPrefix(body []byte) []byte {
	for i, b := range body {
		if b == '{' || b == '[' {
			return body[i:]
		}
	}
	return body
}
