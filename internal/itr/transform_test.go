package itr_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taxsage/internal/itr"
)

func buildSampleITR(t *testing.T) itr.ITRDocument {
	t.Helper()
	in := sampleInput()
	totals := itr.Aggregate(in)
	result := itr.Compute(totals, in.TaxRegime)
	return itr.BuildITR(in, totals, result, "2024-25")
}

func TestBuildITR_PersonalInfo(t *testing.T) {
	doc := buildSampleITR(t)

	assert.Equal(t, "Arjun", doc.PersonalInfo.AssesseeName.FirstName)
	assert.Equal(t, "Mehta", doc.PersonalInfo.AssesseeName.SurNameOrOrgName)
	assert.Equal(t, "ABCDE1234F", doc.PersonalInfo.PAN)
	assert.Equal(t, "1988-04-12", doc.PersonalInfo.DOB)
	assert.Equal(t, "31", doc.PersonalInfo.Address.StateCode) // Tamil Nadu
	assert.Equal(t, "600040", doc.PersonalInfo.Address.PinCode)
	assert.Equal(t, "91", doc.PersonalInfo.Address.CountryCode)
}

func TestBuildITR_StandardDeduction(t *testing.T) {
	t.Run("capped_at_50000", func(t *testing.T) {
		doc := buildSampleITR(t) // salary total 14,60,000
		assert.True(t, doc.IncomeDeductions.DeductionUs16.Equal(decimal.NewFromInt(50000)))
		assert.True(t, doc.IncomeDeductions.IncomeFromSal.Equal(decimal.NewFromInt(1410000)))
	})

	t.Run("forty_percent_below_cap", func(t *testing.T) {
		in := itr.FilingInput{}
		in.Income.Salary.Basic = d(100000)
		totals := itr.Aggregate(in)
		doc := itr.BuildITR(in, totals, itr.Compute(totals, itr.RegimeNew), "2024-25")

		assert.True(t, doc.IncomeDeductions.DeductionUs16.Equal(d(40000)))
		assert.True(t, doc.IncomeDeductions.IncomeFromSal.Equal(d(60000)))
	})
}

func TestBuildITR_ThirtyPercentAnnualValue(t *testing.T) {
	doc := buildSampleITR(t) // annual value 2,40,000
	assert.True(t, doc.IncomeDeductions.ThirtyPercentAnnualValue.Equal(d(72000)))
	// Informational field only: house-property net is not reduced by it.
	assert.True(t, doc.IncomeDeductions.TotalIncomeOfHP.Equal(d(150000)))
}

func TestBuildITR_RegimeSchedule(t *testing.T) {
	in := sampleInput()
	totals := itr.Aggregate(in)

	newDoc := itr.BuildITR(in, totals, itr.Compute(totals, itr.RegimeNew), "2024-25")
	assert.Equal(t, "N", newDoc.Schedule.TaxRegime)

	in.TaxRegime = itr.RegimeOld
	oldDoc := itr.BuildITR(in, totals, itr.Compute(totals, itr.RegimeOld), "2024-25")
	assert.Equal(t, "O", oldDoc.Schedule.TaxRegime)
}

func TestBuildITR_RefundSection(t *testing.T) {
	in := sampleInput()
	in.TaxPaid.TDS = d(500000)
	totals := itr.Aggregate(in)
	result := itr.Compute(totals, in.TaxRegime)
	doc := itr.BuildITR(in, totals, result, "2024-25")

	assert.True(t, doc.Refund.RefundDue.GreaterThan(decimal.Zero))
	assert.True(t, doc.Refund.BalTaxPayable.IsZero())
	assert.True(t, doc.TaxPaid.TotalTaxesPaid.Equal(d(520000)))
}

func TestBuildITR_PermissiveOnMissingFields(t *testing.T) {
	in := itr.FilingInput{}
	totals := itr.Aggregate(in)
	doc := itr.BuildITR(in, totals, itr.Compute(totals, itr.RegimeNew), "2024-25")

	assert.Equal(t, "", doc.PersonalInfo.PAN)
	assert.Equal(t, "", doc.PersonalInfo.AssesseeName.FirstName)
	assert.Equal(t, "99", doc.PersonalInfo.Address.StateCode)
	assert.Equal(t, "2024-25", doc.FilingStatus.AssessmentYear)
}

func TestBuildITR_FullRebuildIsStable(t *testing.T) {
	first := buildSampleITR(t)
	second := buildSampleITR(t)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.JSONEq(t, string(a), string(b))
}

func TestStateCode(t *testing.T) {
	assert.Equal(t, "21", itr.StateCode("Maharashtra"))
	assert.Equal(t, "17", itr.StateCode("Karnataka"))
	assert.Equal(t, "34", itr.StateCode("Uttar Pradesh"))
	assert.Equal(t, "99", itr.StateCode("Atlantis"))
	assert.Equal(t, "99", itr.StateCode(""))
	// Lookup is exact, not case-folded.
	assert.Equal(t, "99", itr.StateCode("maharashtra"))
}

func TestBuildITR_SectionNamesInJSON(t *testing.T) {
	doc := buildSampleITR(t)
	raw, err := json.Marshal(doc)
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &decoded))

	for _, section := range []string{
		"PersonalInfo", "FilingStatus", "ITR1_IncomeDeductions", "ITR1_Deductions",
		"ITR1_TaxComputation", "TaxPaid", "Refund", "Verification", "Schedule",
	} {
		assert.Contains(t, decoded, section)
	}
}
