package itr_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"taxsage/internal/itr"
)

func totalsWithTaxable(taxable, paid int64) itr.ComputedTotals {
	return itr.ComputedTotals{
		TaxableIncome: decimal.NewFromInt(taxable),
		TotalTaxPaid:  decimal.NewFromInt(paid),
	}
}

func TestCompute_ZeroTaxableIncome(t *testing.T) {
	for _, regime := range []itr.TaxRegime{itr.RegimeOld, itr.RegimeNew} {
		res := itr.Compute(totalsWithTaxable(0, 0), regime)

		assert.True(t, res.GrossTax.IsZero())
		assert.True(t, res.Rebate87A.IsZero())
		assert.True(t, res.Cess.IsZero())
		assert.True(t, res.TotalLiability.IsZero())
		assert.True(t, res.NetPayable.IsZero())
		assert.True(t, res.RefundDue.IsZero())
	}
}

func TestCompute_FullRebateAtSevenLakh(t *testing.T) {
	// New regime at exactly 7,00,000: gross tax 25,000 is wiped by the 87A
	// rebate, leaving zero tax and zero cess.
	res := itr.Compute(totalsWithTaxable(700000, 0), itr.RegimeNew)

	assert.True(t, res.GrossTax.Equal(decimal.NewFromInt(25000)))
	assert.True(t, res.Rebate87A.Equal(decimal.NewFromInt(25000)))
	assert.True(t, res.TaxAfterRebate.IsZero())
	assert.True(t, res.Cess.IsZero())
	assert.True(t, res.TotalLiability.IsZero())
}

func TestCompute_RebateCappedAt25000(t *testing.T) {
	// Old regime at 7,00,000: gross tax is 52,500, above the rebate cap.
	res := itr.Compute(totalsWithTaxable(700000, 0), itr.RegimeOld)

	assert.True(t, res.GrossTax.Equal(decimal.NewFromInt(52500)))
	assert.True(t, res.Rebate87A.Equal(decimal.NewFromInt(25000)))
	assert.True(t, res.TaxAfterRebate.Equal(decimal.NewFromInt(27500)))
}

func TestCompute_NoRebateAboveSevenLakh(t *testing.T) {
	res := itr.Compute(totalsWithTaxable(700001, 0), itr.RegimeNew)
	assert.True(t, res.Rebate87A.IsZero())
}

func TestCompute_HighIncomeNewRegime(t *testing.T) {
	// 12,75,000 under the new regime: 45,000 on the filled brackets below
	// 9,00,000 plus 3,75,000 x 15% in the 9-15L band.
	res := itr.Compute(totalsWithTaxable(1275000, 0), itr.RegimeNew)

	assert.True(t, res.GrossTax.Equal(decimal.NewFromInt(101250)))
	assert.True(t, res.Rebate87A.IsZero())
	assert.True(t, res.Cess.Equal(decimal.NewFromInt(4050)))
	assert.True(t, res.TotalLiability.Equal(decimal.NewFromInt(105300)))
}

func TestCompute_PayableAndRefundExclusive(t *testing.T) {
	t.Run("payable", func(t *testing.T) {
		res := itr.Compute(totalsWithTaxable(1275000, 50000), itr.RegimeNew)
		assert.True(t, res.NetPayable.Equal(decimal.NewFromInt(55300)))
		assert.True(t, res.RefundDue.IsZero())
	})

	t.Run("refund", func(t *testing.T) {
		res := itr.Compute(totalsWithTaxable(1275000, 150000), itr.RegimeNew)
		assert.True(t, res.NetPayable.IsZero())
		assert.True(t, res.RefundDue.Equal(decimal.NewFromInt(44700)))
	})

	t.Run("settled_exactly", func(t *testing.T) {
		res := itr.Compute(totalsWithTaxable(1275000, 105300), itr.RegimeNew)
		assert.True(t, res.NetPayable.IsZero())
		assert.True(t, res.RefundDue.IsZero())
	})
}

func TestCompute_CessIsFourPercentOfPostRebateTax(t *testing.T) {
	res := itr.Compute(totalsWithTaxable(1000000, 0), itr.RegimeNew)

	want := res.TaxAfterRebate.Mul(decimal.NewFromFloat(0.04))
	assert.True(t, res.Cess.Equal(want))
	assert.True(t, res.TotalLiability.Equal(res.TaxAfterRebate.Add(res.Cess)))
}

func TestCompute_Deterministic(t *testing.T) {
	totals := itr.Aggregate(sampleInput())
	first := itr.Compute(totals, itr.RegimeNew)
	second := itr.Compute(totals, itr.RegimeNew)
	assert.Equal(t, first, second)
}
