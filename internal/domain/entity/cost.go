package entity

import "github.com/shopspring/decimal"

// Product is one sourced item from the product catalog. Prices are kept as
// decimals end to end; rounding happens only at report time.
type Product struct {
	SKU          string
	Name         string
	Supplier     string
	UnitPriceCNY decimal.Decimal
	WeightKg     decimal.Decimal
}

// LogisticsOption is one shipping offer. Billing takes the greater of the
// per-piece and the per-kilogram total.
type LogisticsOption struct {
	ID          string
	Carrier     string
	Mode        string // e.g. "air", "sea", "rail"
	PerPieceCNY decimal.Decimal
	PerKgCNY    decimal.Decimal
	LeadDays    int
}

// OrderLine pairs a product with a quantity and a chosen logistics option.
type OrderLine struct {
	SKU         string
	Quantity    int
	LogisticsID string
}

// CostSummaryRow is one fully priced order line in the report currency.
type CostSummaryRow struct {
	SKU          string
	Name         string
	Supplier     string
	Quantity     int
	WeightKg     decimal.Decimal
	Carrier      string
	Mode         string
	Currency     string
	UnitPrice    decimal.Decimal
	GoodsCost    decimal.Decimal
	ShippingCost decimal.Decimal
	TotalCost    decimal.Decimal
}

// ShippingCost applies the per-piece vs per-kg rule for one line.
func (o LogisticsOption) ShippingCost(qty int, unitWeightKg decimal.Decimal) decimal.Decimal {
	q := decimal.NewFromInt(int64(qty))
	byPiece := o.PerPieceCNY.Mul(q)
	byWeight := o.PerKgCNY.Mul(unitWeightKg).Mul(q)
	if byWeight.GreaterThan(byPiece) {
		return byWeight
	}
	return byPiece
}
