package usecase

import (
	"context"
	"io"

	"github.com/dysin/market-insights-go/internal/domain/aggregate"
	"github.com/dysin/market-insights-go/internal/domain/entity"
	"github.com/dysin/market-insights-go/internal/domain/repository"
	"github.com/dysin/market-insights-go/internal/shared/types"
	"github.com/dysin/market-insights-go/pkg/console"
)

func quiet() types.ConsoleInterface { return console.NewQuietConsole(io.Discard) }

// fakeExporter records every emission instead of touching disk.
type fakeExporter struct {
	csvFiles   []string
	tables     map[string]aggregate.Table
	pivots     map[string]aggregate.PivotTable
	charts     []string
	maps       []string
	pdfReports []entity.AnalysisReport
	costRows   []entity.CostSummaryRow
}

var _ repository.ExportRepository = (*fakeExporter)(nil)

func newFakeExporter() *fakeExporter {
	return &fakeExporter{
		tables: make(map[string]aggregate.Table),
		pivots: make(map[string]aggregate.PivotTable),
	}
}

func (f *fakeExporter) record(name string) (string, error) {
	f.csvFiles = append(f.csvFiles, name)
	return name + ".out", nil
}

func (f *fakeExporter) ExportPlacesToCSV(_ []entity.PlaceRecord, filename, _ string) (string, error) {
	return f.record(filename)
}

func (f *fakeExporter) ExportProductsToCSV(_ []entity.ProductRecord, filename, _ string) (string, error) {
	return f.record(filename)
}

func (f *fakeExporter) ExportProductsToJSON(_ []entity.ProductRecord, filename, _ string) (string, error) {
	return f.record(filename)
}

func (f *fakeExporter) ExportProductsToXLSX(_ []entity.ProductRecord, _, filename, _ string) (string, error) {
	return f.record(filename)
}

func (f *fakeExporter) DownloadProductImages(context.Context, []entity.ProductRecord, string) error {
	return nil
}

func (f *fakeExporter) ExportTradeRecordsToCSV(_ []entity.TradeRecord, filename, _ string) (string, error) {
	return f.record(filename)
}

func (f *fakeExporter) ExportTableToCSV(table aggregate.Table, filename, _ string) (string, error) {
	f.tables[filename] = table
	return f.record(filename)
}

func (f *fakeExporter) ExportPivotToCSV(pivot aggregate.PivotTable, filename, _ string) (string, error) {
	f.pivots[filename] = pivot
	return f.record(filename)
}

func (f *fakeExporter) ExportTrendPointsToCSV(_ []entity.TrendPoint, filename, _ string) (string, error) {
	return f.record(filename)
}

func (f *fakeExporter) ExportRegionInterestToCSV(_ []entity.RegionInterest, filename, _ string) (string, error) {
	return f.record(filename)
}

func (f *fakeExporter) ExportCostSummaryToCSV(rows []entity.CostSummaryRow, filename, _ string) (string, error) {
	f.costRows = rows
	return f.record(filename)
}

func (f *fakeExporter) ExportCostSummaryToXLSX(_ []entity.CostSummaryRow, filename, _ string) (string, error) {
	return f.record(filename)
}

func (f *fakeExporter) BarChart(_ aggregate.Table, opts repository.ChartOptions, _ string) (string, error) {
	f.charts = append(f.charts, opts.Filename)
	return opts.Filename + ".png", nil
}

func (f *fakeExporter) LineChart(_ aggregate.PivotTable, opts repository.ChartOptions, _ string) (string, error) {
	f.charts = append(f.charts, opts.Filename)
	return opts.Filename + ".png", nil
}

func (f *fakeExporter) Choropleth(_ aggregate.Table, opts repository.MapOptions, _ string) (repository.ChoroplethResult, error) {
	f.maps = append(f.maps, opts.Filename)
	return repository.ChoroplethResult{HTMLPath: opts.Filename + ".html", PNGPath: opts.Filename + ".png"}, nil
}

func (f *fakeExporter) ExportAnalysisToPDF(report entity.AnalysisReport, filename, _ string) (string, error) {
	f.pdfReports = append(f.pdfReports, report)
	return filename + ".pdf", nil
}

// fakeStore serves canned records.
type fakeStore struct {
	saved  []entity.TradeRecord
	canned []entity.TradeRecord
}

var _ repository.TradeStore = (*fakeStore)(nil)

func (f *fakeStore) SaveRecords(_ context.Context, records []entity.TradeRecord) error {
	f.saved = append(f.saved, records...)
	return nil
}

func (f *fakeStore) LoadRecords(context.Context, string, string) ([]entity.TradeRecord, error) {
	return f.canned, nil
}

func (f *fakeStore) Close() error { return nil }

// fakePlaces returns canned records with an optional error.
type fakePlaces struct {
	records []entity.PlaceRecord
	err     error
}

var _ repository.PlacesRepository = (*fakePlaces)(nil)

func (f *fakePlaces) Search(context.Context, types.PlaceQuery) ([]entity.PlaceRecord, error) {
	return f.records, f.err
}

// fakeMarket returns canned listings with an optional error.
type fakeMarket struct {
	source  entity.ProductSource
	records []entity.ProductRecord
	err     error
}

var _ repository.MarketplaceRepository = (*fakeMarket)(nil)

func (f *fakeMarket) Source() entity.ProductSource { return f.source }

func (f *fakeMarket) Search(context.Context, types.MarketQuery) ([]entity.ProductRecord, error) {
	return f.records, f.err
}

// fakeTrends returns canned interest data.
type fakeTrends struct {
	points    []entity.TrendPoint
	regions   []entity.RegionInterest
	timeErr   error
	regionErr error
}

var _ repository.TrendsRepository = (*fakeTrends)(nil)

func (f *fakeTrends) InterestOverTime(context.Context, types.TrendQuery) ([]entity.TrendPoint, error) {
	return f.points, f.timeErr
}

func (f *fakeTrends) InterestByRegion(context.Context, types.TrendQuery) ([]entity.RegionInterest, error) {
	return f.regions, f.regionErr
}

// fakeRates serves a canned table and records saves.
type fakeRates struct {
	table     entity.RateTable
	err       error
	savedPath string
	saved     entity.RateTable
}

var _ repository.RatesRepository = (*fakeRates)(nil)

func (f *fakeRates) FetchLatest(context.Context, string) (entity.RateTable, error) {
	return f.table, f.err
}

func (f *fakeRates) SaveCSV(table entity.RateTable, path string) error {
	f.saved, f.savedPath = table, path
	return nil
}

func (f *fakeRates) LoadCSV(string) (entity.RateTable, error) {
	return f.table, f.err
}

// fakeComtrade returns canned records with an optional error.
type fakeComtrade struct {
	records []entity.TradeRecord
	err     error
}

var _ repository.ComtradeRepository = (*fakeComtrade)(nil)

func (f *fakeComtrade) Fetch(context.Context, types.TradeQuery) ([]entity.TradeRecord, error) {
	return f.records, f.err
}
