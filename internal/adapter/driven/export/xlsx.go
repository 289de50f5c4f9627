package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/dysin/market-insights-go/internal/domain/entity"
)

const sheetName = "Sheet1"

func headerStyle(f *excelize.File) (int, error) {
	return f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center", Vertical: "center",
		},
	})
}

// ExportProductsToXLSX writes a product workbook. When imagesDir holds a
// file named <record id> with a common image extension, the picture is
// anchored into the row.
func (r *ExportRepositoryImpl) ExportProductsToXLSX(records []entity.ProductRecord, imagesDir, filename, outputDir string) (string, error) {
	path, err := outputPath(outputDir, filename, "xlsx")
	if err != nil {
		return "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	headers := []string{"Image", "Source", "ID", "Title", "Price", "Currency", "Rating", "Reviews", "Sold", "URL"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return "", err
		}
	}
	if style, err := headerStyle(f); err == nil {
		last, _ := excelize.CoordinatesToCellName(len(headers), 1)
		_ = f.SetCellStyle(sheetName, "A1", last, style)
	}
	_ = f.SetColWidth(sheetName, "A", "A", 14)
	_ = f.SetColWidth(sheetName, "D", "D", 60)
	_ = f.SetColWidth(sheetName, "J", "J", 40)

	for i, p := range records {
		row := i + 2
		values := []interface{}{nil, string(p.Source), p.ID, p.Title, p.Price, p.Currency, p.Rating, p.Reviews, p.Sold, p.URL}
		for col, v := range values {
			if v == nil {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return "", err
			}
		}

		if img := findImage(imagesDir, p.ID); img != "" {
			_ = f.SetRowHeight(sheetName, row, 70)
			cell, _ := excelize.CoordinatesToCellName(1, row)
			if err := f.AddPicture(sheetName, cell, img, &excelize.GraphicOptions{
				ScaleX: 0.25, ScaleY: 0.25, Positioning: "oneCell",
			}); err != nil {
				r.console.LogWarning("could not embed image for %s: %v", p.ID, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("error saving workbook: %w", err)
	}
	return path, nil
}

func (r *ExportRepositoryImpl) ExportCostSummaryToXLSX(rows []entity.CostSummaryRow, filename, outputDir string) (string, error) {
	path, err := outputPath(outputDir, filename, "xlsx")
	if err != nil {
		return "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	headers := []string{"SKU", "Name", "Supplier", "Quantity", "Weight (kg)", "Carrier", "Mode", "Currency", "Unit Price", "Goods Cost", "Shipping Cost", "Total Cost"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return "", err
		}
	}
	if style, err := headerStyle(f); err == nil {
		last, _ := excelize.CoordinatesToCellName(len(headers), 1)
		_ = f.SetCellStyle(sheetName, "A1", last, style)
	}
	_ = f.SetColWidth(sheetName, "B", "C", 28)

	for i, c := range rows {
		row := i + 2
		values := []interface{}{
			c.SKU, c.Name, c.Supplier, c.Quantity, c.WeightKg.InexactFloat64(),
			c.Carrier, c.Mode, c.Currency,
			c.UnitPrice.InexactFloat64(), c.GoodsCost.InexactFloat64(),
			c.ShippingCost.InexactFloat64(), c.TotalCost.InexactFloat64(),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return "", err
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("error saving workbook: %w", err)
	}
	return path, nil
}

// findImage locates a downloaded product image by record id.
func findImage(imagesDir, id string) string {
	if imagesDir == "" || id == "" {
		return ""
	}
	for _, ext := range []string{".jpg", ".jpeg", ".png", ".webp"} {
		candidate := filepath.Join(imagesDir, id+ext)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}
