// Package xlsxexport renders a filing's tax computation as an Excel
// workbook for download by the taxpayer or the reviewing CA.
package xlsxexport

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"taxsage/internal/itr"
)

const (
	summarySheet = "Summary"
	taxSheet     = "Tax Computation"
)

// Build creates a two-sheet workbook: an income and deduction summary, and
// the slab-wise tax computation for the chosen regime.
func Build(assessmentYear string, in itr.FilingInput, totals itr.ComputedTotals, tax itr.TaxComputationResult) (*excelize.File, error) {
	f := excelize.NewFile()

	// excelize creates "Sheet1" by default; rename it.
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, fmt.Errorf("renaming sheet: %w", err)
	}
	if _, err := f.NewSheet(taxSheet); err != nil {
		return nil, fmt.Errorf("adding sheet: %w", err)
	}

	summaryRows := [][]interface{}{
		{"Assessment Year", assessmentYear},
		{"Taxpayer", in.PersonalInfo.Name},
		{"PAN", in.PersonalInfo.PAN},
		{"Tax Regime", string(in.TaxRegime)},
		{},
		{"Income Head", "Amount (INR)"},
		{"Salary", money(totals.SalaryTotal)},
		{"House Property (net)", money(totals.HousePropertyNet)},
		{"Other Sources", money(totals.OtherSourcesTotal)},
		{"Capital Gains", money(totals.CapitalGainsTotal)},
		{"Gross Total Income", money(totals.GrossTotalIncome)},
		{},
		{"Deduction", "Amount (INR)"},
		{"Section 80C", money(in.Deductions.Section80C)},
		{"Section 80D", money(in.Deductions.Section80D)},
		{"Section 80G", money(in.Deductions.Section80G)},
		{"Section 24", money(in.Deductions.Section24)},
		{"Section 80E", money(in.Deductions.Section80E)},
		{"Section 80TTA", money(in.Deductions.Section80TTA)},
		{"Total Deductions", money(totals.TotalDeductions)},
		{},
		{"Taxable Income", money(totals.TaxableIncome)},
	}
	if err := writeRows(f, summarySheet, summaryRows); err != nil {
		return nil, err
	}

	taxRows := [][]interface{}{
		{"Tax Computation", "Amount (INR)"},
		{"Tax on Taxable Income", money(tax.GrossTax)},
		{"Rebate u/s 87A", money(tax.Rebate87A)},
		{"Tax After Rebate", money(tax.TaxAfterRebate)},
		{"Health and Education Cess (4%)", money(tax.Cess)},
		{"Total Tax Liability", money(tax.TotalLiability)},
		{},
		{"Taxes Paid", money(totals.TotalTaxPaid)},
		{"Balance Payable", money(tax.NetPayable)},
		{"Refund Due", money(tax.RefundDue)},
	}
	if err := writeRows(f, taxSheet, taxRows); err != nil {
		return nil, err
	}

	// Widen the label columns on both sheets.
	for _, sheet := range []string{summarySheet, taxSheet} {
		if err := f.SetColWidth(sheet, "A", "A", 32); err != nil {
			return nil, fmt.Errorf("setting column width: %w", err)
		}
		if err := f.SetColWidth(sheet, "B", "B", 18); err != nil {
			return nil, fmt.Errorf("setting column width: %w", err)
		}
	}

	return f, nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("resolving cell: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("writing row %d on %s: %w", i+1, sheet, err)
		}
	}
	return nil
}

// money renders a decimal with two places so Excel shows consistent amounts.
func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}
