package export

import (
	"fmt"
	"os"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/dysin/market-insights-go/internal/domain/aggregate"
	"github.com/dysin/market-insights-go/internal/domain/repository"
)

const (
	chartWidth  = 1280
	chartHeight = 720
)

// annotateLabel appends the bar's value to its category label in the
// requested format. Unknown formats leave the label bare.
func annotateLabel(key string, value float64, format string) string {
	switch format {
	case repository.NumberFormatFixed:
		return fmt.Sprintf("%s (%.2f)", key, value)
	case repository.NumberFormatSci:
		return fmt.Sprintf("%s (%.1e)", key, value)
	}
	return key
}

// tickRotation tilts category labels once they get too dense to print
// horizontally.
func tickRotation(categories int) float64 {
	if categories > 10 {
		return 45
	}
	return 0
}

// BarChart renders one bar per table row.
func (r *ExportRepositoryImpl) BarChart(table aggregate.Table, opts repository.ChartOptions, outputDir string) (string, error) {
	if len(table.Rows) == 0 {
		return "", fmt.Errorf("bar chart %q has no rows", opts.Title)
	}

	bars := make([]chart.Value, 0, len(table.Rows))
	for _, row := range table.Rows {
		bars = append(bars, chart.Value{
			Label: annotateLabel(row.Key, row.Value, opts.NumberFormat),
			Value: row.Value,
		})
	}

	barWidth := (chartWidth - 100) / len(bars)
	if barWidth > 60 {
		barWidth = 60
	}
	if barWidth < 8 {
		barWidth = 8
	}

	graph := chart.BarChart{
		Title:      opts.Title,
		Width:      chartWidth,
		Height:     chartHeight,
		BarWidth:   barWidth,
		BarSpacing: 12,
		Background: chart.Style{Padding: chart.Box{Top: 48, Bottom: 56, Left: 24, Right: 24}},
		XAxis:      chart.Style{TextRotationDegrees: tickRotation(len(bars))},
		YAxis: chart.YAxis{
			Name: opts.YLabel,
		},
		Bars: bars,
	}

	path, err := outputPath(outputDir, opts.Filename, "png")
	if err != nil {
		return "", err
	}
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("error creating chart file: %w", err)
	}
	defer f.Close()

	if err := graph.Render(chart.PNG, f); err != nil {
		return "", fmt.Errorf("error rendering bar chart: %w", err)
	}
	return path, nil
}

// LineChart renders one series per pivot column over the pivot rows,
// which are expected to be sorted (usually YYYYMM periods).
func (r *ExportRepositoryImpl) LineChart(pivot aggregate.PivotTable, opts repository.ChartOptions, outputDir string) (string, error) {
	if len(pivot.Rows) < 2 {
		return "", fmt.Errorf("line chart %q needs at least two rows", opts.Title)
	}
	if len(pivot.Columns) == 0 {
		return "", fmt.Errorf("line chart %q has no series", opts.Title)
	}

	xs := make([]float64, len(pivot.Rows))
	ticks := make([]chart.Tick, len(pivot.Rows))
	for i, row := range pivot.Rows {
		xs[i] = float64(i)
		ticks[i] = chart.Tick{Value: float64(i), Label: row.Key}
	}

	series := make([]chart.Series, 0, len(pivot.Columns))
	for _, col := range pivot.Columns {
		series = append(series, chart.ContinuousSeries{
			Name:    col,
			XValues: xs,
			YValues: pivot.Column(col),
		})
	}

	graph := chart.Chart{
		Title:      opts.Title,
		Width:      chartWidth,
		Height:     chartHeight,
		Background: chart.Style{Padding: chart.Box{Top: 48, Bottom: 56, Left: 24, Right: 24}},
		XAxis: chart.XAxis{
			Name:  opts.XLabel,
			Ticks: ticks,
			Style: chart.Style{TextRotationDegrees: tickRotation(len(ticks))},
		},
		YAxis: chart.YAxis{
			Name: opts.YLabel,
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.LegendThin(&graph)}

	path, err := outputPath(outputDir, opts.Filename, "png")
	if err != nil {
		return "", err
	}
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("error creating chart file: %w", err)
	}
	defer f.Close()

	if err := graph.Render(chart.PNG, f); err != nil {
		return "", fmt.Errorf("error rendering line chart: %w", err)
	}
	return path, nil
}
