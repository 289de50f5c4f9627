package usecase

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/dysin/market-insights-go/internal/domain/entity"
	"github.com/dysin/market-insights-go/internal/domain/repository"
	"github.com/dysin/market-insights-go/internal/shared/paths"
	"github.com/dysin/market-insights-go/internal/shared/types"
)

// CostUseCase prices an order book: goods cost plus the better of
// per-piece and per-kg shipping, converted into the report currency.
type CostUseCase struct {
	catalog repository.CatalogRepository
	rates   repository.RatesRepository
	export  repository.ExportRepository
	console types.ConsoleInterface
}

func NewCostUseCase(
	catalog repository.CatalogRepository,
	rates repository.RatesRepository,
	export repository.ExportRepository,
	console types.ConsoleInterface,
) *CostUseCase {
	return &CostUseCase{catalog: catalog, rates: rates, export: export, console: console}
}

func (u *CostUseCase) Run(ctx context.Context, args types.CLIArgs, ws paths.Workspace) error {
	products, err := u.catalog.LoadProducts(args.ProductsFile)
	if err != nil {
		return fmt.Errorf("error loading products: %w", err)
	}
	logistics, err := u.catalog.LoadLogistics(args.LogisticsFile)
	if err != nil {
		return fmt.Errorf("error loading logistics: %w", err)
	}
	orders, err := u.catalog.LoadOrders(args.OrdersFile)
	if err != nil {
		return fmt.Errorf("error loading orders: %w", err)
	}

	currency := args.Currency
	if currency == "" {
		currency = "CNY"
	}
	rate, err := u.conversionRate(ctx, args, currency)
	if err != nil {
		return err
	}

	rows, err := PriceOrders(products, logistics, orders, currency, rate)
	if err != nil {
		return err
	}

	csvPath, err := u.export.ExportCostSummaryToCSV(rows, "cost_summary", ws.ReportsDir())
	if err != nil {
		return err
	}
	if _, err := u.export.ExportCostSummaryToXLSX(rows, "cost_summary", ws.ReportsDir()); err != nil {
		return err
	}

	grand := decimal.Zero
	table := u.console.CreateTable()
	table.AddColumn("SKU")
	table.AddColumn("Qty")
	table.AddColumn("Goods")
	table.AddColumn("Shipping")
	table.AddColumn("Total (" + currency + ")")
	for _, r := range rows {
		grand = grand.Add(r.TotalCost)
		table.AddRow(r.SKU, r.Quantity, r.GoodsCost.StringFixed(2), r.ShippingCost.StringFixed(2), r.TotalCost.StringFixed(2))
	}
	u.console.Println(table.Render())

	u.console.LogSuccess("priced %d order lines, grand total %s %s, report at %s",
		len(rows), grand.StringFixed(2), currency, csvPath)
	return nil
}

// conversionRate returns the CNY -> currency multiplier.
func (u *CostUseCase) conversionRate(ctx context.Context, args types.CLIArgs, currency string) (decimal.Decimal, error) {
	if currency == "CNY" {
		return decimal.NewFromInt(1), nil
	}

	var table entity.RateTable
	var err error
	if args.RatesFile != "" {
		table, err = u.rates.LoadCSV(args.RatesFile)
	} else {
		table, err = u.rates.FetchLatest(ctx, "CNY")
	}
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("error getting exchange rates: %w", err)
	}

	rate, ok := table.Rates[currency]
	if !ok || rate == 0 {
		return decimal.Decimal{}, fmt.Errorf("%w: %s", types.ErrUnknownCurrency, currency)
	}
	return decimal.NewFromFloat(rate), nil
}

// PriceOrders prices every order line in CNY and converts with the given
// CNY -> target multiplier. Unknown SKUs or logistics ids are errors: a
// silently skipped line would understate the landed cost.
func PriceOrders(products []entity.Product, logistics []entity.LogisticsOption, orders []entity.OrderLine, currency string, rate decimal.Decimal) ([]entity.CostSummaryRow, error) {
	productBySKU := make(map[string]entity.Product, len(products))
	for _, p := range products {
		productBySKU[p.SKU] = p
	}
	logisticsByID := make(map[string]entity.LogisticsOption, len(logistics))
	for _, l := range logistics {
		logisticsByID[l.ID] = l
	}

	rows := make([]entity.CostSummaryRow, 0, len(orders))
	for _, o := range orders {
		p, ok := productBySKU[o.SKU]
		if !ok {
			return nil, fmt.Errorf("order references unknown SKU %q", o.SKU)
		}
		l, ok := logisticsByID[o.LogisticsID]
		if !ok {
			return nil, fmt.Errorf("order for %q references unknown logistics option %q", o.SKU, o.LogisticsID)
		}

		qty := decimal.NewFromInt(int64(o.Quantity))
		goods := p.UnitPriceCNY.Mul(qty)
		shipping := l.ShippingCost(o.Quantity, p.WeightKg)

		rows = append(rows, entity.CostSummaryRow{
			SKU:          p.SKU,
			Name:         p.Name,
			Supplier:     p.Supplier,
			Quantity:     o.Quantity,
			WeightKg:     p.WeightKg.Mul(qty),
			Carrier:      l.Carrier,
			Mode:         l.Mode,
			Currency:     currency,
			UnitPrice:    p.UnitPriceCNY.Mul(rate),
			GoodsCost:    goods.Mul(rate),
			ShippingCost: shipping.Mul(rate),
			TotalCost:    goods.Add(shipping).Mul(rate),
		})
	}
	return rows, nil
}
