package export

import (
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/dysin/market-insights-go/internal/domain/entity"
)

// ExportAnalysisToPDF writes the printable summary of a customs analysis.
func (r *ExportRepositoryImpl) ExportAnalysisToPDF(report entity.AnalysisReport, filename, outputDir string) (string, error) {
	path, err := outputPath(outputDir, filename, "pdf")
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 18)
	pdf.AddPage()

	drawReportHeader(pdf, report)
	drawTotals(pdf, report)
	for _, product := range report.Products {
		drawProductSection(pdf, product, report.Currency)
	}
	if len(report.ChartPaths) > 0 {
		drawChartAppendix(pdf, report.ChartPaths)
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("error writing PDF: %w", err)
	}
	return path, nil
}

func drawReportHeader(pdf *gofpdf.Fpdf, report entity.AnalysisReport) {
	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(0, 12, report.Title, "", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(90, 90, 90)
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated %s  |  source: %s",
		report.GeneratedAt.Format("2006-01-02 15:04"), report.Provider), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Periods %d - %d  |  %d records",
		report.PeriodFrom, report.PeriodTo, report.RecordCount), "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)
}

func drawTotals(pdf *gofpdf.Fpdf, report entity.AnalysisReport) {
	pdf.SetFillColor(68, 114, 196)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 9, "  Totals", "", 1, "L", true, 0, "")
	pdf.SetTextColor(0, 0, 0)

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 8, fmt.Sprintf("Total trade value: %s %s",
		formatAmount(report.TotalValue), report.Currency), "B", 1, "L", false, 0, "")
	pdf.Ln(3)
}

func drawProductSection(pdf *gofpdf.Fpdf, product entity.ProductBreakdown, currency string) {
	pdf.SetFillColor(234, 238, 246)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 9, "  "+product.Product, "", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 7, fmt.Sprintf("Value %s %s (%.1f%% of total)",
		formatAmount(product.TotalValue), currency, product.Share*100), "", 1, "L", false, 0, "")

	drawNamedValues(pdf, "Top partners", product.TopPartners, currency)
	drawNamedValues(pdf, "Trade modes", product.TopModes, currency)
	pdf.Ln(3)
}

func drawNamedValues(pdf *gofpdf.Fpdf, caption string, values []entity.NamedValue, currency string) {
	if len(values) == 0 {
		return
	}
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(0, 6, caption, "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	for i, v := range values {
		pdf.CellFormat(8, 6, fmt.Sprintf("%d.", i+1), "", 0, "R", false, 0, "")
		pdf.CellFormat(110, 6, v.Name, "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, fmt.Sprintf("%s %s", formatAmount(v.Value), currency), "", 1, "R", false, 0, "")
	}
}

func drawChartAppendix(pdf *gofpdf.Fpdf, chartPaths []string) {
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 9, "Charts", "", 1, "L", false, 0, "")
	for _, path := range chartPaths {
		pdf.AddPage()
		// A4 portrait: 190mm usable width at 16:9
		pdf.ImageOptions(path, 10, pdf.GetY(), 190, 0, false,
			gofpdf.ImageOptions{ImageType: "", ReadDpi: true}, 0, "")
	}
}

func formatAmount(v float64) string {
	if v >= 1e9 {
		return fmt.Sprintf("%.2fB", v/1e9)
	}
	if v >= 1e6 {
		return fmt.Sprintf("%.2fM", v/1e6)
	}
	if v >= 1e3 {
		return fmt.Sprintf("%.1fK", v/1e3)
	}
	return fmt.Sprintf("%.2f", v)
}
