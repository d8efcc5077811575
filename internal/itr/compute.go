package itr

import "github.com/shopspring/decimal"

// Section 87A rebate parameters and the health & education cess rate.
var (
	rebateIncomeCeiling = decimal.NewFromInt(700000)
	rebateCap           = decimal.NewFromInt(25000)
	cessRate            = decimal.NewFromFloat(0.04)
)

// TaxComputationResult is the full tax position derived from ComputedTotals
// under the selected regime.
type TaxComputationResult struct {
	GrossTax       decimal.Decimal `json:"gross_tax"`
	Rebate87A      decimal.Decimal `json:"rebate_87a"`
	TaxAfterRebate decimal.Decimal `json:"tax_after_rebate"`
	Cess           decimal.Decimal `json:"cess"`
	TotalLiability decimal.Decimal `json:"total_liability"`
	NetPayable     decimal.Decimal `json:"net_payable"`
	RefundDue      decimal.Decimal `json:"refund_due"`
}

// Compute derives the tax position for the aggregated totals. Exactly one
// of NetPayable and RefundDue is non-zero (both are zero when liability
// equals tax paid).
func Compute(totals ComputedTotals, regime TaxRegime) TaxComputationResult {
	grossTax := ComputeTax(totals.TaxableIncome, regime)

	rebate := decimal.Zero
	if totals.TaxableIncome.LessThanOrEqual(rebateIncomeCeiling) {
		rebate = decimal.Min(rebateCap, grossTax)
	}

	afterRebate := clampZero(grossTax.Sub(rebate))
	cess := afterRebate.Mul(cessRate)
	liability := afterRebate.Add(cess)

	return TaxComputationResult{
		GrossTax:       grossTax,
		Rebate87A:      rebate,
		TaxAfterRebate: afterRebate,
		Cess:           cess,
		TotalLiability: liability,
		NetPayable:     clampZero(liability.Sub(totals.TotalTaxPaid)),
		RefundDue:      clampZero(totals.TotalTaxPaid.Sub(liability)),
	}
}
