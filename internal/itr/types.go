// Package itr implements the income-tax computation pipeline for ITR-1
// filings: aggregation of line-item inputs, slab-based tax calculation,
// and transformation into the e-filing document format. Everything in this
// package is a pure function over in-memory values; persistence and I/O
// belong to the service layer.
package itr

import "github.com/shopspring/decimal"

// TaxRegime selects the slab table used for tax computation.
type TaxRegime string

const (
	RegimeOld TaxRegime = "old"
	RegimeNew TaxRegime = "new"
)

// Valid reports whether the regime is one of the two known values.
func (r TaxRegime) Valid() bool {
	return r == RegimeOld || r == RegimeNew
}

// Address is the taxpayer's residential address.
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
}

// PersonalInfo holds the taxpayer's identity fields.
type PersonalInfo struct {
	Name        string  `json:"name"`
	PAN         string  `json:"pan"`
	DateOfBirth string  `json:"date_of_birth"` // YYYY-MM-DD
	Phone       string  `json:"phone"`
	Email       string  `json:"email"`
	Address     Address `json:"address"`
}

// SalaryIncome holds the salary sub-fields from Form 16.
type SalaryIncome struct {
	Basic         decimal.Decimal `json:"basic"`
	Allowances    decimal.Decimal `json:"allowances"`
	Perquisites   decimal.Decimal `json:"perquisites"`
	ProfitsInLieu decimal.Decimal `json:"profits_in_lieu"`
}

// HousePropertyIncome holds house-property income fields.
type HousePropertyIncome struct {
	AnnualValue  decimal.Decimal `json:"annual_value"`
	InterestPaid decimal.Decimal `json:"interest_paid"` // section 24(b) interest on borrowed capital
}

// OtherSourcesIncome holds income-from-other-sources fields.
type OtherSourcesIncome struct {
	Interest decimal.Decimal `json:"interest"`
	Dividend decimal.Decimal `json:"dividend"`
	Other    decimal.Decimal `json:"other"`
}

// CapitalGains holds capital-gains income fields.
type CapitalGains struct {
	ShortTerm decimal.Decimal `json:"short_term"`
	LongTerm  decimal.Decimal `json:"long_term"`
}

// Income groups all income heads.
type Income struct {
	Salary        SalaryIncome        `json:"salary"`
	HouseProperty HousePropertyIncome `json:"house_property"`
	OtherSources  OtherSourcesIncome  `json:"other_sources"`
	CapitalGains  CapitalGains        `json:"capital_gains"`
}

// Deductions holds the chapter VI-A (and section 24) deduction amounts.
// Statutory per-section caps are advisory in the UI and are intentionally
// not enforced here; the CA review step owns that judgement.
type Deductions struct {
	Section80C   decimal.Decimal `json:"section_80c"`
	Section80D   decimal.Decimal `json:"section_80d"`
	Section80G   decimal.Decimal `json:"section_80g"`
	Section24    decimal.Decimal `json:"section_24"`
	Section80E   decimal.Decimal `json:"section_80e"`
	Section80TTA decimal.Decimal `json:"section_80tta"`
}

// TaxPaid holds taxes already paid against this assessment year.
type TaxPaid struct {
	TDS               decimal.Decimal `json:"tds"`
	AdvanceTax        decimal.Decimal `json:"advance_tax"`
	SelfAssessmentTax decimal.Decimal `json:"self_assessment_tax"`
}

// FilingInput is the raw, user-editable record for one assessment year.
// Absent numeric fields are the decimal zero value, which is the identity
// for every computation in this package.
type FilingInput struct {
	PersonalInfo PersonalInfo `json:"personal_info"`
	Income       Income       `json:"income"`
	Deductions   Deductions   `json:"deductions"`
	TaxPaid      TaxPaid      `json:"tax_paid"`
	TaxRegime    TaxRegime    `json:"tax_regime"`
}
