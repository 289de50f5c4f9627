package export

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/dysin/market-insights-go/internal/domain/aggregate"
	"github.com/dysin/market-insights-go/internal/domain/entity"
)

func (r *ExportRepositoryImpl) ExportPlacesToCSV(records []entity.PlaceRecord, filename, outputDir string) (string, error) {
	header := []string{"place_id", "name", "address", "phone", "lat", "lng", "rating", "ratings_total", "website", "email"}
	rows := make([][]string, 0, len(records))
	for _, p := range records {
		rows = append(rows, []string{
			p.PlaceID, p.Name, p.Address, p.Phone,
			formatFloat(p.Lat), formatFloat(p.Lng),
			formatFloat(p.Rating), strconv.Itoa(p.RatingsTotal),
			p.Website, p.Email,
		})
	}
	return writeCSV(outputDir, filename, header, rows)
}

func (r *ExportRepositoryImpl) ExportProductsToCSV(records []entity.ProductRecord, filename, outputDir string) (string, error) {
	header := []string{"source", "id", "shop_id", "title", "price", "currency", "rating", "reviews", "sold", "url", "image_url"}
	rows := make([][]string, 0, len(records))
	for _, p := range records {
		rows = append(rows, []string{
			string(p.Source), p.ID, p.ShopID, p.Title,
			formatFloat(p.Price), p.Currency, formatFloat(p.Rating),
			strconv.Itoa(p.Reviews), strconv.Itoa(p.Sold), p.URL, p.ImageURL,
		})
	}
	return writeCSV(outputDir, filename, header, rows)
}

func (r *ExportRepositoryImpl) ExportProductsToJSON(records []entity.ProductRecord, filename, outputDir string) (string, error) {
	path, err := outputPath(outputDir, filename, "json")
	if err != nil {
		return "", err
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return "", fmt.Errorf("error marshaling products: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("error writing products JSON: %w", err)
	}
	return path, nil
}

func (r *ExportRepositoryImpl) ExportTradeRecordsToCSV(records []entity.TradeRecord, filename, outputDir string) (string, error) {
	header := []string{"provider", "reporter", "partner", "period", "cmd_code", "product", "mode", "province", "value", "currency"}
	rows := make([][]string, 0, len(records))
	for _, t := range records {
		rows = append(rows, []string{
			t.Provider, t.Reporter, t.Partner, strconv.Itoa(t.Period),
			t.CmdCode, t.Product, t.Mode, t.Province,
			formatFloat(t.Value), t.Currency,
		})
	}
	return writeCSV(outputDir, filename, header, rows)
}

func (r *ExportRepositoryImpl) ExportTableToCSV(table aggregate.Table, filename, outputDir string) (string, error) {
	header := []string{table.KeyName, table.MeasureName}
	rows := make([][]string, 0, len(table.Rows))
	for _, row := range table.Rows {
		rows = append(rows, []string{row.Key, formatFloat(row.Value)})
	}
	return writeCSV(outputDir, filename, header, rows)
}

func (r *ExportRepositoryImpl) ExportPivotToCSV(pivot aggregate.PivotTable, filename, outputDir string) (string, error) {
	header := append([]string{pivot.RowName}, pivot.Columns...)
	rows := make([][]string, 0, len(pivot.Rows))
	for _, row := range pivot.Rows {
		cells := make([]string, 0, len(row.Values)+1)
		cells = append(cells, row.Key)
		for _, v := range row.Values {
			cells = append(cells, formatFloat(v))
		}
		rows = append(rows, cells)
	}
	return writeCSV(outputDir, filename, header, rows)
}

func (r *ExportRepositoryImpl) ExportTrendPointsToCSV(points []entity.TrendPoint, filename, outputDir string) (string, error) {
	header := []string{"date", "keyword", "score"}
	rows := make([][]string, 0, len(points))
	for _, p := range points {
		rows = append(rows, []string{p.Date.Format("2006-01-02"), p.Keyword, strconv.Itoa(p.Score)})
	}
	return writeCSV(outputDir, filename, header, rows)
}

func (r *ExportRepositoryImpl) ExportRegionInterestToCSV(regions []entity.RegionInterest, filename, outputDir string) (string, error) {
	header := []string{"country", "keyword", "score"}
	rows := make([][]string, 0, len(regions))
	for _, g := range regions {
		rows = append(rows, []string{g.Country, g.Keyword, strconv.Itoa(g.Score)})
	}
	return writeCSV(outputDir, filename, header, rows)
}

func (r *ExportRepositoryImpl) ExportCostSummaryToCSV(rows []entity.CostSummaryRow, filename, outputDir string) (string, error) {
	header := []string{"sku", "name", "supplier", "quantity", "weight_kg", "carrier", "mode", "currency", "unit_price", "goods_cost", "shipping_cost", "total_cost"}
	out := make([][]string, 0, len(rows))
	for _, c := range rows {
		out = append(out, []string{
			c.SKU, c.Name, c.Supplier, strconv.Itoa(c.Quantity),
			c.WeightKg.String(), c.Carrier, c.Mode, c.Currency,
			c.UnitPrice.StringFixed(2), c.GoodsCost.StringFixed(2),
			c.ShippingCost.StringFixed(2), c.TotalCost.StringFixed(2),
		})
	}
	return writeCSV(outputDir, filename, header, out)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
