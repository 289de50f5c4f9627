// Package catalog loads the cost-analysis input tables from CSV files.
// All money columns are quoted in CNY and parsed as decimals.
package catalog

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/dysin/market-insights-go/internal/domain/entity"
	"github.com/dysin/market-insights-go/internal/domain/repository"
	"github.com/dysin/market-insights-go/internal/shared/types"
)

// CatalogRepositoryImpl implements repository.CatalogRepository.
type CatalogRepositoryImpl struct{}

var _ repository.CatalogRepository = (*CatalogRepositoryImpl)(nil)

func NewCatalogRepository() *CatalogRepositoryImpl {
	return &CatalogRepositoryImpl{}
}

// LoadProducts reads the product catalog. Required columns: sku, name,
// supplier, unit_price_cny, weight_kg.
func (r *CatalogRepositoryImpl) LoadProducts(path string) ([]entity.Product, error) {
	rows, header, err := readTable(path)
	if err != nil {
		return nil, err
	}
	cols, err := requireColumns(header, "sku", "name", "supplier", "unit_price_cny", "weight_kg")
	if err != nil {
		return nil, err
	}

	out := make([]entity.Product, 0, len(rows))
	for i, row := range rows {
		price, err := parseDecimal(row, cols["unit_price_cny"])
		if err != nil {
			return nil, fmt.Errorf("products row %d: %w", i+2, err)
		}
		weight, err := parseDecimal(row, cols["weight_kg"])
		if err != nil {
			return nil, fmt.Errorf("products row %d: %w", i+2, err)
		}
		out = append(out, entity.Product{
			SKU:          cell(row, cols["sku"]),
			Name:         cell(row, cols["name"]),
			Supplier:     cell(row, cols["supplier"]),
			UnitPriceCNY: price,
			WeightKg:     weight,
		})
	}
	return out, nil
}

// LoadLogistics reads the shipping offers. Required columns: id, carrier,
// mode, per_piece_cny, per_kg_cny; lead_days is optional.
func (r *CatalogRepositoryImpl) LoadLogistics(path string) ([]entity.LogisticsOption, error) {
	rows, header, err := readTable(path)
	if err != nil {
		return nil, err
	}
	cols, err := requireColumns(header, "id", "carrier", "mode", "per_piece_cny", "per_kg_cny")
	if err != nil {
		return nil, err
	}
	leadIdx, hasLead := header["lead_days"]

	out := make([]entity.LogisticsOption, 0, len(rows))
	for i, row := range rows {
		perPiece, err := parseDecimal(row, cols["per_piece_cny"])
		if err != nil {
			return nil, fmt.Errorf("logistics row %d: %w", i+2, err)
		}
		perKg, err := parseDecimal(row, cols["per_kg_cny"])
		if err != nil {
			return nil, fmt.Errorf("logistics row %d: %w", i+2, err)
		}
		opt := entity.LogisticsOption{
			ID:          cell(row, cols["id"]),
			Carrier:     cell(row, cols["carrier"]),
			Mode:        cell(row, cols["mode"]),
			PerPieceCNY: perPiece,
			PerKgCNY:    perKg,
		}
		if hasLead {
			opt.LeadDays, _ = strconv.Atoi(cell(row, leadIdx))
		}
		out = append(out, opt)
	}
	return out, nil
}

// LoadOrders reads the order lines. Required columns: sku, quantity,
// logistics_id.
func (r *CatalogRepositoryImpl) LoadOrders(path string) ([]entity.OrderLine, error) {
	rows, header, err := readTable(path)
	if err != nil {
		return nil, err
	}
	cols, err := requireColumns(header, "sku", "quantity", "logistics_id")
	if err != nil {
		return nil, err
	}

	out := make([]entity.OrderLine, 0, len(rows))
	for i, row := range rows {
		qty, err := strconv.Atoi(cell(row, cols["quantity"]))
		if err != nil || qty <= 0 {
			return nil, fmt.Errorf("orders row %d: bad quantity %q", i+2, cell(row, cols["quantity"]))
		}
		out = append(out, entity.OrderLine{
			SKU:         cell(row, cols["sku"]),
			Quantity:    qty,
			LogisticsID: cell(row, cols["logistics_id"]),
		})
	}
	return out, nil
}

func readTable(path string) ([][]string, map[string]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("error opening table: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("error parsing table %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("table %s is empty", path)
	}

	header := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		header[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return rows[1:], header, nil
}

func requireColumns(header map[string]int, names ...string) (map[string]int, error) {
	out := make(map[string]int, len(names))
	for _, name := range names {
		i, ok := header[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", types.ErrSchemaViolation, name)
		}
		out[name] = i
	}
	return out, nil
}

func cell(row []string, i int) string {
	if i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}

func parseDecimal(row []string, i int) (decimal.Decimal, error) {
	s := strings.ReplaceAll(cell(row, i), ",", "")
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("bad number %q", s)
	}
	return v, nil
}
