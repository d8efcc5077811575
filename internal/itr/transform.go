package itr

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Transformation constants fixed by the e-filing schema.
var (
	standardDeductionCap   = decimal.NewFromInt(50000)
	standardDeductionShare = decimal.NewFromFloat(0.4)
	annualValueShare       = decimal.NewFromFloat(0.3)
)

// ITRDocument mirrors the ITR-1 e-filing form shape. Field names, nesting
// and derived-value formulas are the external contract with the filing
// portal; the document is rebuilt in full on every export.
type ITRDocument struct {
	PersonalInfo     ITRPersonalInfo     `json:"PersonalInfo"`
	FilingStatus     ITRFilingStatus     `json:"FilingStatus"`
	IncomeDeductions ITRIncomeDeductions `json:"ITR1_IncomeDeductions"`
	Deductions       ITRDeductions       `json:"ITR1_Deductions"`
	TaxComputation   ITRTaxComputation   `json:"ITR1_TaxComputation"`
	TaxPaid          ITRTaxPaid          `json:"TaxPaid"`
	Refund           ITRRefund           `json:"Refund"`
	Verification     ITRVerification     `json:"Verification"`
	Schedule         ITRSchedule         `json:"Schedule"`
}

// ITRPersonalInfo is the PersonalInfo section of the form.
type ITRPersonalInfo struct {
	AssesseeName ITRAssesseeName `json:"AssesseeName"`
	PAN          string          `json:"PAN"`
	DOB          string          `json:"DOB"`
	Address      ITRAddress      `json:"Address"`
}

// ITRAssesseeName splits the taxpayer name the way the form expects.
type ITRAssesseeName struct {
	FirstName        string `json:"FirstName"`
	SurNameOrOrgName string `json:"SurNameOrOrgName"`
}

// ITRAddress is the address block with the derived state code.
type ITRAddress struct {
	ResidenceNo          string `json:"ResidenceNo"`
	CityOrTownOrDistrict string `json:"CityOrTownOrDistrict"`
	StateCode            string `json:"StateCode"`
	CountryCode          string `json:"CountryCode"`
	PinCode              string `json:"PinCode"`
	MobileNo             string `json:"MobileNo"`
	EmailAddress         string `json:"EmailAddress"`
}

// ITRFilingStatus is the FilingStatus section.
type ITRFilingStatus struct {
	AssessmentYear    string `json:"AssessmentYear"`
	ReturnFileSec     int    `json:"ReturnFileSec"`
	ResidentialStatus string `json:"ResidentialStatus"`
}

// ITRIncomeDeductions is the ITR1_IncomeDeductions section.
type ITRIncomeDeductions struct {
	GrossSalary              decimal.Decimal `json:"GrossSalary"`
	DeductionUs16            decimal.Decimal `json:"DeductionUs16"`
	IncomeFromSal            decimal.Decimal `json:"IncomeFromSal"`
	AnnualValue              decimal.Decimal `json:"AnnualValue"`
	ThirtyPercentAnnualValue decimal.Decimal `json:"ThirtyPercentAnnualValue"`
	InterestPayable          decimal.Decimal `json:"InterestPayable"`
	TotalIncomeOfHP          decimal.Decimal `json:"TotalIncomeOfHP"`
	IncomeOthSrc             decimal.Decimal `json:"IncomeOthSrc"`
	CapitalGains             decimal.Decimal `json:"CapitalGains"`
	GrossTotIncome           decimal.Decimal `json:"GrossTotIncome"`
	UsrDeductUndChapVIA      decimal.Decimal `json:"UsrDeductUndChapVIA"`
	TotalIncome              decimal.Decimal `json:"TotalIncome"`
}

// ITRDeductions is the ITR1_Deductions section with per-section amounts.
type ITRDeductions struct {
	Section80C             decimal.Decimal `json:"Section80C"`
	Section80D             decimal.Decimal `json:"Section80D"`
	Section80G             decimal.Decimal `json:"Section80G"`
	Section24              decimal.Decimal `json:"Section24"`
	Section80E             decimal.Decimal `json:"Section80E"`
	Section80TTA           decimal.Decimal `json:"Section80TTA"`
	TotalChapVIADeductions decimal.Decimal `json:"TotalChapVIADeductions"`
}

// ITRTaxComputation is the ITR1_TaxComputation section.
type ITRTaxComputation struct {
	TotalTaxPayable    decimal.Decimal `json:"TotalTaxPayable"`
	Rebate87A          decimal.Decimal `json:"Rebate87A"`
	TaxPayableOnRebate decimal.Decimal `json:"TaxPayableOnRebate"`
	EducationCess      decimal.Decimal `json:"EducationCess"`
	GrossTaxLiability  decimal.Decimal `json:"GrossTaxLiability"`
	NetTaxLiability    decimal.Decimal `json:"NetTaxLiability"`
}

// ITRTaxPaid is the TaxPaid section.
type ITRTaxPaid struct {
	TDS               decimal.Decimal `json:"TDS"`
	AdvanceTax        decimal.Decimal `json:"AdvanceTax"`
	SelfAssessmentTax decimal.Decimal `json:"SelfAssessmentTax"`
	TotalTaxesPaid    decimal.Decimal `json:"TotalTaxesPaid"`
}

// ITRRefund is the Refund section; exactly one of RefundDue and BalTaxPayable
// is non-zero.
type ITRRefund struct {
	RefundDue     decimal.Decimal `json:"RefundDue"`
	BalTaxPayable decimal.Decimal `json:"BalTaxPayable"`
}

// ITRVerification is the Verification section.
type ITRVerification struct {
	DeclarantName string `json:"DeclarantName"`
	FatherName    string `json:"FatherName"`
	Place         string `json:"Place"`
	Capacity      string `json:"Capacity"`
}

// ITRSchedule carries schedule-level flags.
type ITRSchedule struct {
	TaxRegime string `json:"TaxRegime"` // "N" new, "O" old
}

// BuildITR assembles the complete e-filing document for one assessment year
// (format "YYYY-YY"). It is permissive by design: missing strings become
// empty fields and never abort the build. Callers must run the filing
// validator before treating the output as submission-ready.
func BuildITR(in FilingInput, totals ComputedTotals, result TaxComputationResult, assessmentYear string) ITRDocument {
	stdDeduction := decimal.Min(standardDeductionCap, totals.SalaryTotal.Mul(standardDeductionShare))
	netSalary := totals.SalaryTotal.Sub(stdDeduction)

	first, last := splitName(in.PersonalInfo.Name)

	regime := "N"
	if in.TaxRegime == RegimeOld {
		regime = "O"
	}

	return ITRDocument{
		PersonalInfo: ITRPersonalInfo{
			AssesseeName: ITRAssesseeName{FirstName: first, SurNameOrOrgName: last},
			PAN:          in.PersonalInfo.PAN,
			DOB:          in.PersonalInfo.DateOfBirth,
			Address: ITRAddress{
				ResidenceNo:          in.PersonalInfo.Address.Street,
				CityOrTownOrDistrict: in.PersonalInfo.Address.City,
				StateCode:            StateCode(in.PersonalInfo.Address.State),
				CountryCode:          "91",
				PinCode:              in.PersonalInfo.Address.Pincode,
				MobileNo:             in.PersonalInfo.Phone,
				EmailAddress:         in.PersonalInfo.Email,
			},
		},
		FilingStatus: ITRFilingStatus{
			AssessmentYear:    assessmentYear,
			ReturnFileSec:     11, // voluntary return before due date, section 139(1)
			ResidentialStatus: "RES",
		},
		IncomeDeductions: ITRIncomeDeductions{
			GrossSalary:              totals.SalaryTotal,
			DeductionUs16:            stdDeduction,
			IncomeFromSal:            netSalary,
			AnnualValue:              in.Income.HouseProperty.AnnualValue,
			ThirtyPercentAnnualValue: in.Income.HouseProperty.AnnualValue.Mul(annualValueShare),
			InterestPayable:          in.Income.HouseProperty.InterestPaid,
			TotalIncomeOfHP:          totals.HousePropertyNet,
			IncomeOthSrc:             totals.OtherSourcesTotal,
			CapitalGains:             totals.CapitalGainsTotal,
			GrossTotIncome:           totals.GrossTotalIncome,
			UsrDeductUndChapVIA:      totals.TotalDeductions,
			TotalIncome:              totals.TaxableIncome,
		},
		Deductions: ITRDeductions{
			Section80C:             in.Deductions.Section80C,
			Section80D:             in.Deductions.Section80D,
			Section80G:             in.Deductions.Section80G,
			Section24:              in.Deductions.Section24,
			Section80E:             in.Deductions.Section80E,
			Section80TTA:           in.Deductions.Section80TTA,
			TotalChapVIADeductions: totals.TotalDeductions,
		},
		TaxComputation: ITRTaxComputation{
			TotalTaxPayable:    result.GrossTax,
			Rebate87A:          result.Rebate87A,
			TaxPayableOnRebate: result.TaxAfterRebate,
			EducationCess:      result.Cess,
			GrossTaxLiability:  result.TotalLiability,
			NetTaxLiability:    result.NetPayable,
		},
		TaxPaid: ITRTaxPaid{
			TDS:               in.TaxPaid.TDS,
			AdvanceTax:        in.TaxPaid.AdvanceTax,
			SelfAssessmentTax: in.TaxPaid.SelfAssessmentTax,
			TotalTaxesPaid:    totals.TotalTaxPaid,
		},
		Refund: ITRRefund{
			RefundDue:     result.RefundDue,
			BalTaxPayable: result.NetPayable,
		},
		Verification: ITRVerification{
			DeclarantName: in.PersonalInfo.Name,
			Place:         in.PersonalInfo.Address.City,
			Capacity:      "Self",
		},
		Schedule: ITRSchedule{TaxRegime: regime},
	}
}

// splitName divides a full name into first name and surname at the last
// space. Single-word names become the first name with an empty surname.
func splitName(name string) (first, last string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ""
	}
	idx := strings.LastIndex(name, " ")
	if idx < 0 {
		return name, ""
	}
	return strings.TrimSpace(name[:idx]), name[idx+1:]
}
