package repository

import (
	"context"

	"github.com/dysin/market-insights-go/internal/domain/aggregate"
	"github.com/dysin/market-insights-go/internal/domain/entity"
)

// ChartOptions configures a rendered chart image.
type ChartOptions struct {
	Title    string
	XLabel   string
	YLabel   string
	Filename string // without extension; timestamped on write
	// NumberFormat annotates each bar label with its numeric value:
	// "fixed" for plain two-decimal figures, "sci" for scientific
	// notation where magnitudes span orders. Empty leaves labels bare.
	NumberFormat string
}

// Annotation formats for ChartOptions.NumberFormat.
const (
	NumberFormatFixed = "fixed"
	NumberFormatSci   = "sci"
)

// MapOptions configures a choropleth document.
type MapOptions struct {
	Title    string
	Filename string
	// LocationMode is "country-name" when table keys are provider names
	// to be resolved through the M49 table, or "iso3" when they already
	// are alpha-3 codes.
	LocationMode string
}

// ChoroplethResult reports where the two renditions of a map landed. PNG
// is empty when rasterization was unavailable and only the HTML document
// was written.
type ChoroplethResult struct {
	HTMLPath string
	PNGPath  string
	// Unmapped lists table keys that resolved to no country and were
	// left off the map.
	Unmapped []string
}

// ExportRepository defines the interface for report emission: CSV and
// XLSX tables, chart images, choropleth documents, and PDF summaries.
// Every method returns the path it wrote.
type ExportRepository interface {
	ExportPlacesToCSV(records []entity.PlaceRecord, filename string, outputDir string) (string, error)
	ExportProductsToCSV(records []entity.ProductRecord, filename string, outputDir string) (string, error)
	ExportProductsToJSON(records []entity.ProductRecord, filename string, outputDir string) (string, error)
	ExportProductsToXLSX(records []entity.ProductRecord, imagesDir string, filename string, outputDir string) (string, error)
	DownloadProductImages(ctx context.Context, records []entity.ProductRecord, dir string) error

	ExportTradeRecordsToCSV(records []entity.TradeRecord, filename string, outputDir string) (string, error)
	ExportTableToCSV(table aggregate.Table, filename string, outputDir string) (string, error)
	ExportPivotToCSV(pivot aggregate.PivotTable, filename string, outputDir string) (string, error)

	ExportTrendPointsToCSV(points []entity.TrendPoint, filename string, outputDir string) (string, error)
	ExportRegionInterestToCSV(regions []entity.RegionInterest, filename string, outputDir string) (string, error)

	ExportCostSummaryToCSV(rows []entity.CostSummaryRow, filename string, outputDir string) (string, error)
	ExportCostSummaryToXLSX(rows []entity.CostSummaryRow, filename string, outputDir string) (string, error)

	BarChart(table aggregate.Table, opts ChartOptions, outputDir string) (string, error)
	LineChart(pivot aggregate.PivotTable, opts ChartOptions, outputDir string) (string, error)
	Choropleth(table aggregate.Table, opts MapOptions, outputDir string) (ChoroplethResult, error)

	ExportAnalysisToPDF(report entity.AnalysisReport, filename string, outputDir string) (string, error)
}
