package itr

import "github.com/shopspring/decimal"

// ComputedTotals are the category subtotals derived from a FilingInput.
// They are recomputed on every read and never stored independently.
type ComputedTotals struct {
	SalaryTotal       decimal.Decimal `json:"salary_total"`
	HousePropertyNet  decimal.Decimal `json:"house_property_net"`
	OtherSourcesTotal decimal.Decimal `json:"other_sources_total"`
	CapitalGainsTotal decimal.Decimal `json:"capital_gains_total"`
	GrossTotalIncome  decimal.Decimal `json:"gross_total_income"`
	TotalDeductions   decimal.Decimal `json:"total_deductions"`
	TotalTaxPaid      decimal.Decimal `json:"total_tax_paid"`
	TaxableIncome     decimal.Decimal `json:"taxable_income"`
}

// Aggregate sums the raw line items of a filing into category subtotals.
// It never fails: zero-valued fields contribute nothing.
//
// House-property losses are not set off against other heads in this model;
// the category contribution is clamped at zero.
func Aggregate(in FilingInput) ComputedTotals {
	salary := in.Income.Salary.Basic.
		Add(in.Income.Salary.Allowances).
		Add(in.Income.Salary.Perquisites).
		Add(in.Income.Salary.ProfitsInLieu)

	houseProperty := clampZero(in.Income.HouseProperty.AnnualValue.Sub(in.Income.HouseProperty.InterestPaid))

	otherSources := in.Income.OtherSources.Interest.
		Add(in.Income.OtherSources.Dividend).
		Add(in.Income.OtherSources.Other)

	capitalGains := in.Income.CapitalGains.ShortTerm.Add(in.Income.CapitalGains.LongTerm)

	gross := salary.Add(houseProperty).Add(otherSources).Add(capitalGains)

	deductions := in.Deductions.Section80C.
		Add(in.Deductions.Section80D).
		Add(in.Deductions.Section80G).
		Add(in.Deductions.Section24).
		Add(in.Deductions.Section80E).
		Add(in.Deductions.Section80TTA)

	taxPaid := in.TaxPaid.TDS.
		Add(in.TaxPaid.AdvanceTax).
		Add(in.TaxPaid.SelfAssessmentTax)

	return ComputedTotals{
		SalaryTotal:       salary,
		HousePropertyNet:  houseProperty,
		OtherSourcesTotal: otherSources,
		CapitalGainsTotal: capitalGains,
		GrossTotalIncome:  gross,
		TotalDeductions:   deductions,
		TotalTaxPaid:      taxPaid,
		TaxableIncome:     clampZero(gross.Sub(deductions)),
	}
}

func clampZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
