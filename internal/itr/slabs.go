package itr

import "github.com/shopspring/decimal"

// Slab is one progressive tax bracket. A zero Max marks the open-ended
// top bracket.
type Slab struct {
	Min  decimal.Decimal
	Max  decimal.Decimal
	Rate decimal.Decimal
}

var oldRegimeSlabs = []Slab{
	{decimal.Zero, decimal.NewFromInt(250000), decimal.Zero},
	{decimal.NewFromInt(250000), decimal.NewFromInt(500000), decimal.NewFromFloat(0.05)},
	{decimal.NewFromInt(500000), decimal.NewFromInt(1000000), decimal.NewFromFloat(0.20)},
	{decimal.NewFromInt(1000000), decimal.Zero, decimal.NewFromFloat(0.30)},
}

var newRegimeSlabs = []Slab{
	{decimal.Zero, decimal.NewFromInt(300000), decimal.Zero},
	{decimal.NewFromInt(300000), decimal.NewFromInt(600000), decimal.NewFromFloat(0.05)},
	{decimal.NewFromInt(600000), decimal.NewFromInt(900000), decimal.NewFromFloat(0.10)},
	// The 15% band covers the whole 9,00,000-15,00,000 span.
	{decimal.NewFromInt(900000), decimal.NewFromInt(1500000), decimal.NewFromFloat(0.15)},
	{decimal.NewFromInt(1500000), decimal.Zero, decimal.NewFromFloat(0.30)},
}

// SlabsForRegime returns the slab table for a regime. Unknown regimes fall
// back to the new-regime table, which is the statutory default.
func SlabsForRegime(regime TaxRegime) []Slab {
	if regime == RegimeOld {
		return oldRegimeSlabs
	}
	return newRegimeSlabs
}

// ComputeTax applies standard marginal-bracket arithmetic to a non-negative
// taxable income. Income exactly at a slab boundary belongs to the
// lower-rate bracket. No rounding is applied.
func ComputeTax(taxable decimal.Decimal, regime TaxRegime) decimal.Decimal {
	if taxable.IsNegative() {
		return decimal.Zero
	}

	tax := decimal.Zero
	for _, s := range SlabsForRegime(regime) {
		if taxable.LessThanOrEqual(s.Min) {
			break
		}
		upper := taxable
		if !s.Max.IsZero() {
			upper = decimal.Min(taxable, s.Max)
		}
		tax = tax.Add(upper.Sub(s.Min).Mul(s.Rate))
	}
	return tax
}
