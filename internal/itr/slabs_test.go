package itr_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"taxsage/internal/itr"
)

func TestComputeTax_NewRegime(t *testing.T) {
	cases := []struct {
		name    string
		taxable int64
		want    int64
	}{
		{"zero", 0, 0},
		{"below_first_slab", 250000, 0},
		{"exactly_300000_boundary", 300000, 0},
		{"exactly_600000", 600000, 15000},
		{"exactly_900000", 900000, 45000},
		{"exactly_1200000", 1200000, 90000},
		{"fifteen_percent_band_spans_to_fifteen_lakh", 1275000, 101250},
		{"exactly_1500000", 1500000, 135000},
		{"mid_top_bracket", 2000000, 285000},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := itr.ComputeTax(decimal.NewFromInt(tc.taxable), itr.RegimeNew)
			assert.True(t, got.Equal(decimal.NewFromInt(tc.want)),
				"taxable %d: got %s, want %d", tc.taxable, got, tc.want)
		})
	}
}

func TestComputeTax_BoundaryEngagesNextBracket(t *testing.T) {
	atBoundary := itr.ComputeTax(decimal.NewFromInt(300000), itr.RegimeNew)
	overBoundary := itr.ComputeTax(decimal.NewFromInt(300001), itr.RegimeNew)

	assert.True(t, atBoundary.IsZero())
	assert.True(t, overBoundary.GreaterThan(decimal.Zero))
	// Exactly one rupee taxed at 5%, no rounding applied.
	assert.True(t, overBoundary.Equal(decimal.NewFromFloat(0.05)))
}

func TestComputeTax_OldRegime(t *testing.T) {
	cases := []struct {
		name    string
		taxable int64
		want    int64
	}{
		{"zero", 0, 0},
		{"exactly_250000", 250000, 0},
		{"exactly_500000", 500000, 12500},
		{"exactly_1000000", 1000000, 112500},
		{"above_top", 1500000, 262500},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := itr.ComputeTax(decimal.NewFromInt(tc.taxable), itr.RegimeOld)
			assert.True(t, got.Equal(decimal.NewFromInt(tc.want)),
				"taxable %d: got %s, want %d", tc.taxable, got, tc.want)
		})
	}
}

func TestComputeTax_MonotonicAcrossSlabs(t *testing.T) {
	for _, regime := range []itr.TaxRegime{itr.RegimeOld, itr.RegimeNew} {
		prev := decimal.Zero
		for income := int64(0); income <= 3000000; income += 25000 {
			tax := itr.ComputeTax(decimal.NewFromInt(income), regime)
			assert.True(t, tax.GreaterThanOrEqual(prev),
				"regime %s: tax decreased at income %d", regime, income)
			prev = tax
		}
	}
}

func TestComputeTax_NegativeInputIsZero(t *testing.T) {
	got := itr.ComputeTax(decimal.NewFromInt(-50000), itr.RegimeNew)
	assert.True(t, got.IsZero())
}

func TestSlabsForRegime(t *testing.T) {
	assert.Len(t, itr.SlabsForRegime(itr.RegimeOld), 4)
	assert.Len(t, itr.SlabsForRegime(itr.RegimeNew), 5)
	// Unknown regimes fall back to the new-regime table.
	assert.Len(t, itr.SlabsForRegime(itr.TaxRegime("unknown")), 5)
}
