package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dysin/market-insights-go/internal/domain/aggregate"
	"github.com/dysin/market-insights-go/internal/domain/entity"
	"github.com/dysin/market-insights-go/internal/domain/repository"
	"github.com/dysin/market-insights-go/internal/shared/paths"
	"github.com/dysin/market-insights-go/internal/shared/types"
)

// TrendsUseCase fetches search interest over time and by region, exports
// the series, and renders a line chart plus an interest map.
type TrendsUseCase struct {
	trends  repository.TrendsRepository
	export  repository.ExportRepository
	console types.ConsoleInterface
}

func NewTrendsUseCase(trends repository.TrendsRepository, export repository.ExportRepository, console types.ConsoleInterface) *TrendsUseCase {
	return &TrendsUseCase{trends: trends, export: export, console: console}
}

func (u *TrendsUseCase) Run(ctx context.Context, args types.CLIArgs, ws paths.Workspace) error {
	q := types.TrendQuery{
		Keywords:  args.Keywords,
		StartDate: args.StartDate,
		EndDate:   args.EndDate,
		Geo:       args.Geo,
	}
	slug := sanitize(strings.Join(args.Keywords, " "))

	var points []entity.TrendPoint
	if !args.Regenerate {
		points = storedPoints(ws.DataDir(), "trends_"+slug)
		if points != nil {
			u.console.LogInfo("reusing stored interest series (%d points)", len(points))
		}
	}
	if points == nil {
		status := u.console.Status(fmt.Sprintf("Fetching search interest for %v...", args.Keywords))
		var err error
		points, err = u.trends.InterestOverTime(ctx, q)
		status.Stop()
		if err != nil && !errors.Is(err, types.ErrBudgetExhausted) {
			return fmt.Errorf("interest over time failed: %w", err)
		}
		if len(points) > 0 {
			if _, err := u.export.ExportTrendPointsToCSV(points, "trends_"+slug, ws.DataDir()); err != nil {
				return err
			}
		}
	}

	if len(points) > 0 {
		series := aggregate.PivotSum(points, "date", "keyword",
			func(p entity.TrendPoint) string { return p.Date.Format("2006-01-02") },
			func(p entity.TrendPoint) string { return p.Keyword },
			func(p entity.TrendPoint) float64 { return float64(p.Score) }).SortRowsByKey()
		if path, err := u.export.LineChart(series, repository.ChartOptions{
			Title:    "Search interest over time",
			XLabel:   "date",
			YLabel:   "interest",
			Filename: "trends_" + slug,
		}, ws.ChartsDir()); err == nil {
			u.console.LogInfo("interest chart at %s", path)
		} else {
			u.console.LogWarning("interest chart skipped: %v", err)
		}

		u.displayRecentBars(points, args.Keywords[0])
	} else {
		u.console.LogWarning("no interest data returned")
	}

	var regions []entity.RegionInterest
	if !args.Regenerate {
		regions = storedRegions(ws.DataDir(), "trends_regions_"+slug)
		if regions != nil {
			u.console.LogInfo("reusing stored region interest (%d rows)", len(regions))
		}
	}
	if regions == nil {
		status := u.console.Status("Fetching interest by region...")
		var err error
		regions, err = u.trends.InterestByRegion(ctx, q)
		status.Stop()
		if err != nil {
			if errors.Is(err, types.ErrBudgetExhausted) {
				u.console.LogWarning("call budget exhausted before region interest; skipping map")
				return nil
			}
			return fmt.Errorf("interest by region failed: %w", err)
		}
		if len(regions) == 0 {
			return nil
		}
		if _, err := u.export.ExportRegionInterestToCSV(regions, "trends_regions_"+slug, ws.DataDir()); err != nil {
			return err
		}
	}
	if len(regions) == 0 {
		return nil
	}

	table := aggregate.GroupSum(regions, "country", "interest",
		func(g entity.RegionInterest) string { return g.Country },
		func(g entity.RegionInterest) float64 { return float64(g.Score) })
	result, err := u.export.Choropleth(table, repository.MapOptions{
		Title:        fmt.Sprintf("Search interest: %s", strings.Join(args.Keywords, ", ")),
		Filename:     "trends_map_" + slug,
		LocationMode: "iso3",
	}, ws.MapsDir())
	if err != nil {
		u.console.LogWarning("interest map skipped: %v", err)
		return nil
	}

	u.console.LogSuccess("trend reports written (%d points, %d regions, map at %s)",
		len(points), len(regions), result.HTMLPath)
	return nil
}

// displayRecentBars shows the last few points for one keyword directly in
// the terminal.
func (u *TrendsUseCase) displayRecentBars(points []entity.TrendPoint, keyword string) {
	var recent []types.ScorePoint
	for _, p := range points {
		if p.Keyword == keyword {
			recent = append(recent, types.ScorePoint{Label: p.Date.Format("2006-01-02"), Score: float64(p.Score)})
		}
	}
	if len(recent) > 12 {
		recent = recent[len(recent)-12:]
	}
	u.console.DisplayScoreBars("Recent interest: "+keyword, recent)
}
