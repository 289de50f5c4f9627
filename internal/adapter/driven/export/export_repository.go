// Package export implements report emission: CSV and XLSX tables, chart
// images, choropleth documents, and PDF summaries.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dysin/market-insights-go/internal/domain/repository"
	"github.com/dysin/market-insights-go/internal/shared/paths"
	"github.com/dysin/market-insights-go/internal/shared/types"
)

// ExportRepositoryImpl implements repository.ExportRepository.
type ExportRepositoryImpl struct {
	console types.ConsoleInterface

	// rasterize turns a written HTML document into a PNG; stubbed in
	// tests, headless Chrome in production.
	rasterize func(htmlPath, pngPath string) error
}

var _ repository.ExportRepository = (*ExportRepositoryImpl)(nil)

func NewExportRepository(console types.ConsoleInterface) *ExportRepositoryImpl {
	r := &ExportRepositoryImpl{console: console}
	r.rasterize = rasterizeWithBrowser
	return r
}

// outputPath ensures outputDir exists and returns the timestamped target.
func outputPath(outputDir, filename, ext string) (string, error) {
	if outputDir == "" {
		outputDir = "."
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("error creating output directory: %w", err)
	}
	return filepath.Join(outputDir, paths.Timestamped(filename, ext)), nil
}

// writeCSV writes header plus rows to a timestamped file and returns its
// path.
func writeCSV(outputDir, filename string, header []string, rows [][]string) (string, error) {
	path, err := outputPath(outputDir, filename, "csv")
	if err != nil {
		return "", err
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("error creating CSV file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return "", fmt.Errorf("error writing CSV header: %w", err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("error writing CSV row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return path, nil
}
