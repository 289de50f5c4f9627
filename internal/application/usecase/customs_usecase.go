package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dysin/market-insights-go/internal/domain/aggregate"
	"github.com/dysin/market-insights-go/internal/domain/entity"
	"github.com/dysin/market-insights-go/internal/domain/repository"
	"github.com/dysin/market-insights-go/internal/shared/paths"
	"github.com/dysin/market-insights-go/internal/shared/types"
)

const (
	topPartnersChart = 20
	topPartnersList  = 8
	topProducts      = 5
)

// CustomsUseCase fetches trade statistics and turns them into the full
// report set: aggregate CSVs, charts, a choropleth, and a PDF summary.
type CustomsUseCase struct {
	comtrade repository.ComtradeRepository
	table    repository.CustomsTableRepository
	store    repository.TradeStore
	export   repository.ExportRepository
	console  types.ConsoleInterface
}

func NewCustomsUseCase(
	comtrade repository.ComtradeRepository,
	table repository.CustomsTableRepository,
	store repository.TradeStore,
	export repository.ExportRepository,
	console types.ConsoleInterface,
) *CustomsUseCase {
	return &CustomsUseCase{comtrade: comtrade, table: table, store: store, export: export, console: console}
}

// Fetch pulls tariff lines from Comtrade, persists them in the local
// store, and drops a raw CSV snapshot.
func (u *CustomsUseCase) Fetch(ctx context.Context, args types.CLIArgs, ws paths.Workspace) error {
	status := u.console.Status(fmt.Sprintf("Fetching HS %s for %s...", args.HSCode, args.Periods))

	records, err := u.comtrade.Fetch(ctx, types.TradeQuery{
		CmdCode:   args.HSCode,
		Periods:   args.Periods,
		Reporters: args.Reporters,
		Flow:      args.Flow,
	})
	status.Stop()

	switch {
	case errors.Is(err, types.ErrBudgetExhausted):
		u.console.LogWarning("call budget exhausted after %d records; keeping what was fetched", len(records))
	case err != nil:
		return fmt.Errorf("comtrade fetch failed: %w", err)
	}

	if len(records) == 0 {
		u.console.LogWarning("no tariff lines for HS %s in %s", args.HSCode, args.Periods)
		return nil
	}

	if err := u.store.SaveRecords(ctx, records); err != nil {
		return fmt.Errorf("error persisting records: %w", err)
	}
	path, err := u.export.ExportTradeRecordsToCSV(records, "comtrade_"+args.HSCode, ws.DataDir())
	if err != nil {
		return err
	}

	u.console.LogSuccess("stored %d tariff lines, snapshot at %s", len(records), path)
	return nil
}

// Analyze builds the report set from either a China customs CSV export
// (when an input file is given) or previously fetched Comtrade lines.
func (u *CustomsUseCase) Analyze(ctx context.Context, args types.CLIArgs, ws paths.Workspace) error {
	records, err := u.loadRecords(ctx, args)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		u.console.LogWarning("nothing to analyze")
		return nil
	}

	currency := records[0].Currency
	report := entity.AnalysisReport{
		Title:       args.ReportName,
		GeneratedAt: time.Now(),
		Provider:    records[0].Provider,
		Currency:    currency,
		RecordCount: len(records),
	}
	report.PeriodFrom, report.PeriodTo = periodSpan(records)

	byProduct := aggregate.GroupSum(records, "product", "value_"+currency,
		func(r entity.TradeRecord) string { return r.Product },
		func(r entity.TradeRecord) float64 { return r.Value })
	report.TotalValue = byProduct.Total()

	u.printProductTable(byProduct, currency)
	if _, err := u.export.ExportTableToCSV(byProduct.SortDesc(), "value_by_product", ws.ReportsDir()); err != nil {
		return err
	}
	if path, err := u.export.BarChart(byProduct.TopN(topProducts), repository.ChartOptions{
		Title:    fmt.Sprintf("Trade value by product (%s)", currency),
		YLabel:   currency,
		Filename: "value_by_product",
	}, ws.ChartsDir()); err == nil {
		report.ChartPaths = append(report.ChartPaths, path)
	} else {
		u.console.LogWarning("product chart skipped: %v", err)
	}

	locationMode := args.LocationMode
	if locationMode == "" {
		locationMode = "country-name"
	}

	progress := u.console.ProgressWithTotal("Analyzing products", min(topProducts, len(byProduct.Rows)))
	for _, row := range byProduct.TopN(topProducts).Rows {
		product := row.Key
		subset := filterProduct(records, product)

		breakdown, charts, err := u.analyzeProduct(product, subset, report.TotalValue, currency, locationMode, ws)
		if err != nil {
			progress.Stop()
			return err
		}
		report.Products = append(report.Products, breakdown)
		report.ChartPaths = append(report.ChartPaths, charts...)
		progress.Increment()
	}
	progress.Stop()

	pdfPath, err := u.export.ExportAnalysisToPDF(report, "customs_analysis", ws.ReportsDir())
	if err != nil {
		return err
	}
	u.console.LogSuccess("analysis complete: %d records, %d products, summary at %s",
		len(records), len(report.Products), pdfPath)
	return nil
}

func (u *CustomsUseCase) loadRecords(ctx context.Context, args types.CLIArgs) ([]entity.TradeRecord, error) {
	if args.InputFile != "" {
		u.console.LogInfo("loading customs table %s", args.InputFile)
		return u.table.Load(args.InputFile)
	}
	u.console.LogInfo("loading stored tariff lines for HS %s", args.HSCode)
	return u.store.LoadRecords(ctx, "comtrade", args.HSCode)
}

// analyzeProduct emits the per-product reports and returns the breakdown
// for the PDF summary.
func (u *CustomsUseCase) analyzeProduct(product string, records []entity.TradeRecord, grandTotal float64, currency, locationMode string, ws paths.Workspace) (entity.ProductBreakdown, []string, error) {
	var charts []string
	slug := sanitize(product)

	byPartner := aggregate.GroupSum(records, "partner", "value_"+currency,
		func(r entity.TradeRecord) string { return r.Partner },
		func(r entity.TradeRecord) float64 { return r.Value })

	breakdown := entity.ProductBreakdown{
		Product:    product,
		TotalValue: byPartner.Total(),
	}
	if grandTotal > 0 {
		breakdown.Share = breakdown.TotalValue / grandTotal
	}
	for _, r := range byPartner.TopN(topPartnersList).Rows {
		breakdown.TopPartners = append(breakdown.TopPartners, entity.NamedValue{Name: r.Key, Value: r.Value})
	}

	if _, err := u.export.ExportTableToCSV(byPartner.SortDesc(), slug+"_partners", ws.ReportsDir()); err != nil {
		return breakdown, charts, err
	}
	if path, err := u.export.BarChart(byPartner.TopN(topPartnersChart), repository.ChartOptions{
		Title:    fmt.Sprintf("%s: top partners (%s)", product, currency),
		YLabel:   currency,
		Filename: slug + "_partners",
	}, ws.ChartsDir()); err == nil {
		charts = append(charts, path)
	}

	// month x partner series for the biggest partners
	topKeys := make(map[string]bool, topPartnersList)
	for _, r := range byPartner.TopN(topPartnersList).Rows {
		topKeys[r.Key] = true
	}
	var topRecords []entity.TradeRecord
	for _, r := range records {
		if topKeys[r.Partner] {
			topRecords = append(topRecords, r)
		}
	}
	monthly := aggregate.PivotSum(topRecords, "period", "partner",
		func(r entity.TradeRecord) string { return fmt.Sprintf("%06d", r.Period) },
		func(r entity.TradeRecord) string { return r.Partner },
		func(r entity.TradeRecord) float64 { return r.Value }).SortRowsByKey()
	if _, err := u.export.ExportPivotToCSV(monthly, slug+"_monthly", ws.ReportsDir()); err != nil {
		return breakdown, charts, err
	}
	if path, err := u.export.LineChart(monthly, repository.ChartOptions{
		Title:    fmt.Sprintf("%s: monthly value by partner (%s)", product, currency),
		XLabel:   "period",
		YLabel:   currency,
		Filename: slug + "_monthly",
	}, ws.ChartsDir()); err == nil {
		charts = append(charts, path)
	} else {
		u.console.LogWarning("monthly chart for %s skipped: %v", product, err)
	}

	// trade mode and province splits only exist on China customs tables
	if hasField(records, func(r entity.TradeRecord) string { return r.Mode }) {
		byMode := aggregate.GroupSum(records, "mode", "value_"+currency,
			func(r entity.TradeRecord) string { return r.Mode },
			func(r entity.TradeRecord) float64 { return r.Value })
		for _, r := range byMode.TopN(topPartnersList).Rows {
			breakdown.TopModes = append(breakdown.TopModes, entity.NamedValue{Name: r.Key, Value: r.Value})
		}
		if path, err := u.export.BarChart(byMode.SortDesc(), repository.ChartOptions{
			Title:    fmt.Sprintf("%s: trade modes (%s)", product, currency),
			YLabel:   currency,
			Filename: slug + "_modes",
		}, ws.ChartsDir()); err == nil {
			charts = append(charts, path)
		}
	}
	if hasField(records, func(r entity.TradeRecord) string { return r.Province }) {
		byProvince := aggregate.GroupSum(records, "province", "value_"+currency,
			func(r entity.TradeRecord) string { return r.Province },
			func(r entity.TradeRecord) float64 { return r.Value })
		if path, err := u.export.BarChart(byProvince.TopN(topPartnersChart), repository.ChartOptions{
			Title:        fmt.Sprintf("%s: origin provinces (%s)", product, currency),
			YLabel:       currency,
			Filename:     slug + "_provinces",
			NumberFormat: repository.NumberFormatSci,
		}, ws.ChartsDir()); err == nil {
			charts = append(charts, path)
		}
	}

	result, err := u.export.Choropleth(byPartner, repository.MapOptions{
		Title:        fmt.Sprintf("%s: destinations (%s)", product, currency),
		Filename:     slug + "_map",
		LocationMode: locationMode,
	}, ws.MapsDir())
	if err != nil {
		u.console.LogWarning("map for %s skipped: %v", product, err)
	} else if result.PNGPath != "" {
		charts = append(charts, result.PNGPath)
	}

	return breakdown, charts, nil
}

func (u *CustomsUseCase) printProductTable(byProduct aggregate.Table, currency string) {
	total := byProduct.Total()
	table := u.console.CreateTable()
	table.AddColumn("Product")
	table.AddColumn("Value (" + currency + ")")
	table.AddColumn("Share")
	for _, r := range byProduct.TopN(topProducts).Rows {
		share := 0.0
		if total > 0 {
			share = r.Value / total * 100
		}
		table.AddRow(r.Key, fmt.Sprintf("%.0f", r.Value), fmt.Sprintf("%.1f%%", share))
	}
	u.console.Println(table.Render())
}

func filterProduct(records []entity.TradeRecord, product string) []entity.TradeRecord {
	var out []entity.TradeRecord
	for _, r := range records {
		if r.Product == product {
			out = append(out, r)
		}
	}
	return out
}

func hasField(records []entity.TradeRecord, field func(entity.TradeRecord) string) bool {
	for _, r := range records {
		if field(r) != "" {
			return true
		}
	}
	return false
}

func periodSpan(records []entity.TradeRecord) (int, int) {
	from, to := records[0].Period, records[0].Period
	for _, r := range records[1:] {
		if r.Period < from {
			from = r.Period
		}
		if r.Period > to {
			to = r.Period
		}
	}
	return from, to
}
