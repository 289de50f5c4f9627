package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/dysin/market-insights-go/internal/domain/aggregate"
	"github.com/dysin/market-insights-go/internal/domain/repository"
	"github.com/dysin/market-insights-go/internal/shared/m49"
)

// echartsNames maps M49 canonical names onto the labels the echarts world
// map uses where they differ.
var echartsNames = map[string]string{
	"United States of America":           "United States",
	"Republic of Korea":                  "Korea",
	"Dem. People's Rep. of Korea":        "Dem. Rep. Korea",
	"Russian Federation":                 "Russia",
	"Viet Nam":                           "Vietnam",
	"Iran (Islamic Republic of)":         "Iran",
	"Syrian Arab Republic":               "Syria",
	"Lao People's Dem. Rep.":             "Lao PDR",
	"Czechia":                            "Czech Rep.",
	"Bolivia (Plurinational State of)":   "Bolivia",
	"Venezuela (Bolivarian Republic of)": "Venezuela",
	"United Rep. of Tanzania":            "Tanzania",
	"Republic of Moldova":                "Moldova",
	"Türkiye":                            "Turkey",
	"Brunei Darussalam":                  "Brunei",
	"Other Asia, nes":                    "Taiwan",
}

// Choropleth writes an interactive HTML world map and, when a headless
// browser is available, a PNG raster of it. Keys that resolve to no
// country are dropped with a warning; a partial map is still useful.
func (r *ExportRepositoryImpl) Choropleth(table aggregate.Table, mapOpts repository.MapOptions, outputDir string) (repository.ChoroplethResult, error) {
	var result repository.ChoroplethResult

	data := make([]opts.MapData, 0, len(table.Rows))
	var max float64
	for _, row := range table.Rows {
		name, ok := resolveMapName(row.Key, mapOpts.LocationMode)
		if !ok {
			result.Unmapped = append(result.Unmapped, row.Key)
			continue
		}
		data = append(data, opts.MapData{Name: name, Value: row.Value})
		if row.Value > max {
			max = row.Value
		}
	}
	for _, key := range result.Unmapped {
		r.console.LogWarning("no map location for %q, dropping", key)
	}
	if len(data) == 0 {
		return result, fmt.Errorf("choropleth %q has no mappable rows", mapOpts.Title)
	}

	mc := charts.NewMap()
	mc.RegisterMapType("world")
	mc.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: mapOpts.Title}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: opts.Bool(true),
			Min:        0,
			Max:        float32(max),
		}),
		charts.WithInitializationOpts(opts.Initialization{Width: "1280px", Height: "720px"}),
	)
	mc.AddSeries(table.MeasureName, data)

	htmlPath, err := outputPath(outputDir, mapOpts.Filename, "html")
	if err != nil {
		return result, err
	}
	f, err := os.Create(htmlPath)
	if err != nil {
		return result, fmt.Errorf("error creating map file: %w", err)
	}
	if err := mc.Render(f); err != nil {
		f.Close()
		return result, fmt.Errorf("error rendering map: %w", err)
	}
	f.Close()
	result.HTMLPath = htmlPath

	pngPath := strings.TrimSuffix(htmlPath, ".html") + ".png"
	if err := r.rasterize(htmlPath, pngPath); err != nil {
		r.console.LogWarning("map raster unavailable, HTML only: %v", err)
		return result, nil
	}
	result.PNGPath = pngPath
	return result, nil
}

// resolveMapName turns a table key into an echarts world map label.
func resolveMapName(key, locationMode string) (string, bool) {
	var c m49.Country
	var ok bool
	if locationMode == "iso3" {
		c, ok = m49.ByISO3(key)
	} else {
		c, ok = m49.ByName(key)
	}
	if !ok {
		return "", false
	}
	if mapped, found := echartsNames[c.Name]; found {
		return mapped, true
	}
	return c.Name, true
}

// rasterizeWithBrowser screenshots the rendered HTML document with
// headless Chrome.
func rasterizeWithBrowser(htmlPath, pngPath string) error {
	abs, err := filepath.Abs(htmlPath)
	if err != nil {
		return err
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(),
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
		)...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	runCtx, cancel := context.WithTimeout(browserCtx, 60*time.Second)
	defer cancel()

	var buf []byte
	if err := chromedp.Run(runCtx,
		chromedp.EmulateViewport(1280, 720),
		chromedp.Navigate("file://"+abs),
		chromedp.Sleep(3*time.Second), // let the map asset load and draw
		chromedp.FullScreenshot(&buf, 95),
	); err != nil {
		return err
	}
	return os.WriteFile(pngPath, buf, 0o644)
}
