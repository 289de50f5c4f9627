// Package rates fetches exchange rates and snapshots them to CSV so cost
// analyses can run without network access.
package rates

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/dysin/market-insights-go/internal/domain/entity"
	"github.com/dysin/market-insights-go/internal/domain/repository"
	"github.com/dysin/market-insights-go/internal/shared/types"
)

const defaultBaseURL = "https://v6.exchangerate-api.com/v6"

// RatesRepositoryImpl implements repository.RatesRepository.
type RatesRepositoryImpl struct {
	BaseURL string

	apiKey string
	client *http.Client
}

var _ repository.RatesRepository = (*RatesRepositoryImpl)(nil)

// NewRatesRepository builds the adapter. The key may be empty when only
// the CSV round trip is needed; FetchLatest then fails.
func NewRatesRepository(apiKey string) *RatesRepositoryImpl {
	return &RatesRepositoryImpl{
		BaseURL: defaultBaseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 20 * time.Second},
	}
}

type latestResponse struct {
	Result          string             `json:"result"`
	BaseCode        string             `json:"base_code"`
	ConversionRates map[string]float64 `json:"conversion_rates"`
}

// FetchLatest pulls the current rate table quoted against base.
func (r *RatesRepositoryImpl) FetchLatest(ctx context.Context, base string) (entity.RateTable, error) {
	if r.apiKey == "" {
		return entity.RateTable{}, fmt.Errorf("exchange rates: %w", types.ErrMissingAPIKey)
	}
	if base == "" {
		base = "CNY"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/%s/latest/%s", r.BaseURL, r.apiKey, base), nil)
	if err != nil {
		return entity.RateTable{}, err
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return entity.RateTable{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return entity.RateTable{}, fmt.Errorf("rates API returned HTTP %d", resp.StatusCode)
	}

	var out latestResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return entity.RateTable{}, err
	}
	if out.Result != "success" {
		return entity.RateTable{}, fmt.Errorf("rates API returned result %q", out.Result)
	}

	return entity.RateTable{
		Base:      out.BaseCode,
		FetchedAt: time.Now(),
		Rates:     out.ConversionRates,
	}, nil
}

// SaveCSV writes the table as currency,rate rows sorted by code, with the
// base recorded in the header comment row.
func (r *RatesRepositoryImpl) SaveCSV(table entity.RateTable, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating rates file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"base", table.Base}); err != nil {
		return err
	}
	if err := w.Write([]string{"currency", "rate"}); err != nil {
		return err
	}

	codes := make([]string, 0, len(table.Rates))
	for code := range table.Rates {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		if err := w.Write([]string{code, strconv.FormatFloat(table.Rates[code], 'f', -1, 64)}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// LoadCSV reads a table written by SaveCSV.
func (r *RatesRepositoryImpl) LoadCSV(path string) (entity.RateTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return entity.RateTable{}, fmt.Errorf("error opening rates file: %w", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return entity.RateTable{}, fmt.Errorf("error parsing rates file %s: %w", path, err)
	}
	if len(rows) < 2 || len(rows[0]) < 2 || rows[0][0] != "base" {
		return entity.RateTable{}, fmt.Errorf("rates file %s has an unexpected layout", path)
	}

	table := entity.RateTable{Base: rows[0][1], Rates: make(map[string]float64)}
	for _, row := range rows[2:] {
		if len(row) < 2 {
			continue
		}
		rate, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			return entity.RateTable{}, fmt.Errorf("bad rate for %s in %s: %w", row[0], path, err)
		}
		table.Rates[row[0]] = rate
	}
	return table, nil
}
