// Package customs implements the two trade-statistics sources: the UN
// Comtrade API and exported China customs CSV tables. Both normalize into
// entity.TradeRecord.
package customs

import (
	"context"
	"encoding/json"
	"fmt"
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

const defaultComtradeURL = "https://comtradeapi.un.org/data/v1/get/C/M/HS"

// ComtradeRepositoryImpl implements repository.ComtradeRepository.
type ComtradeRepositoryImpl struct {
	BaseURL string

	apiKey  string
	budget  *budget.CallBudget
	client  *http.Client
	console types.ConsoleInterface
}

var _ repository.ComtradeRepository = (*ComtradeRepositoryImpl)(nil)

func NewComtradeRepository(apiKey string, b *budget.CallBudget, console types.ConsoleInterface) (*ComtradeRepositoryImpl, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("comtrade: %w", types.ErrMissingAPIKey)
	}
	return &ComtradeRepositoryImpl{
		BaseURL: defaultComtradeURL,
		apiKey:  apiKey,
		budget:  b,
		client:  &http.Client{Timeout: 60 * time.Second},
		console: console,
	}, nil
}

type comtradeResponse struct {
	Data []struct {
		ReporterCode int     `json:"reporterCode"`
		ReporterDesc string  `json:"reporterDesc"`
		PartnerCode  int     `json:"partnerCode"`
		PartnerDesc  string  `json:"partnerDesc"`
		Period       string  `json:"period"`
		CmdCode      string  `json:"cmdCode"`
		CmdDesc      string  `json:"cmdDesc"`
		PrimaryValue float64 `json:"primaryValue"`
	} `json:"data"`
}

// Fetch pulls one month of tariff lines per API call across the expanded
// period range. Partial results come back with types.ErrBudgetExhausted
// when the ceiling interrupts the range; a period that fails transiently
// is logged and skipped.
func (r *ComtradeRepositoryImpl) Fetch(ctx context.Context, q types.TradeQuery) ([]entity.TradeRecord, error) {
	periods, err := ExpandMonthRange(q.Periods)
	if err != nil {
		return nil, err
	}

	reporterCodes, err := r.resolveReporters(q.Reporters)
	if err != nil {
		return nil, err
	}

	flow := q.Flow
	if flow == "" {
		flow = "X"
	}

	var records []entity.TradeRecord
	for i, period := range periods {
		if err := r.budget.Spend(); err != nil {
			return records, err
		}

		batch, err := r.fetchPeriod(ctx, period, q.CmdCode, reporterCodes, flow)
		switch {
		case err != nil && ctx.Err() != nil:
			return records, ctx.Err()
		case err != nil:
			r.console.LogWarning("period %s failed, treating as empty: %v", period, err)
		default:
			records = append(records, batch...)
		}

		if i < len(periods)-1 {
			r.budget.Cooldown()
		}
	}
	return records, nil
}

func (r *ComtradeRepositoryImpl) fetchPeriod(ctx context.Context, period, cmdCode string, reporterCodes []string, flow string) ([]entity.TradeRecord, error) {
	params := url.Values{}
	params.Set("period", period)
	params.Set("cmdCode", cmdCode)
	params.Set("flowCode", flow)
	params.Set("subscription-key", r.apiKey)
	if len(reporterCodes) > 0 {
		params.Set("reporterCode", strings.Join(reporterCodes, ","))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("comtrade returned HTTP %d", resp.StatusCode)
	}

	var out comtradeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}

	records := make([]entity.TradeRecord, 0, len(out.Data))
	for _, d := range out.Data {
		p, err := strconv.Atoi(d.Period)
		if err != nil {
			continue
		}
		records = append(records, entity.TradeRecord{
			Provider:     "comtrade",
			Reporter:     d.ReporterDesc,
			ReporterCode: strconv.Itoa(d.ReporterCode),
			Partner:      d.PartnerDesc,
			PartnerCode:  strconv.Itoa(d.PartnerCode),
			Period:       p,
			CmdCode:      d.CmdCode,
			Product:      d.CmdDesc,
			Value:        d.PrimaryValue,
			Currency:     "USD",
		})
	}
	return records, nil
}

// resolveReporters maps country names to M49 codes. Unresolvable names are
// skipped with a warning; all names failing is an error.
func (r *ComtradeRepositoryImpl) resolveReporters(names []string) ([]string, error) {
	if len(names) == 0 {
		return nil, nil
	}
	var codes []string
	for _, name := range names {
		c, ok := m49.ByName(name)
		if !ok {
			r.console.LogWarning("unknown reporter %q, skipping", name)
			continue
		}
		codes = append(codes, c.M49)
	}
	if len(codes) == 0 {
		return nil, fmt.Errorf("none of the reporters %v could be resolved to M49 codes", names)
	}
	return codes, nil
}

// ExpandMonthRange expands comma-separated YYYYMM items, each optionally a
// start-end range, into the full inclusive month list. Ranges roll over
// year boundaries: "202512-202602" covers 202512, 202601, 202602.
func ExpandMonthRange(spec string) ([]string, error) {
	var out []string
	for _, item := range strings.Split(spec, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}

		parts := strings.SplitN(item, "-", 2)
		start, err := parseMonth(parts[0])
		if err != nil {
			return nil, err
		}
		end := start
		if len(parts) == 2 {
			if end, err = parseMonth(parts[1]); err != nil {
				return nil, err
			}
		}
		if end.Before(start) {
			return nil, fmt.Errorf("month range %q runs backwards", item)
		}

		for m := start; !m.After(end); m = m.AddDate(0, 1, 0) {
			out = append(out, m.Format("200601"))
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("empty period spec %q", spec)
	}
	return out, nil
}

func parseMonth(s string) (time.Time, error) {
	t, err := time.Parse("200601", strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q, want YYYYMM: %w", s, err)
	}
	return t, nil
}
