package validator_test

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taxsage/internal/domain"
	"taxsage/internal/itr"
	"taxsage/internal/validator"
)

func validInput() itr.FilingInput {
	return itr.FilingInput{
		PersonalInfo: itr.PersonalInfo{
			Name:        "Arjun Mehta",
			PAN:         "ABCDE1234F",
			DateOfBirth: "1988-04-12",
			Phone:       "9876543210",
			Email:       "arjun@example.com",
			Address: itr.Address{
				Street:  "14 Lakeview Road",
				City:    "Chennai",
				State:   "Tamil Nadu",
				Pincode: "600040",
			},
		},
		TaxRegime: itr.RegimeNew,
	}
}

func newEngine() *validator.Engine {
	return validator.NewEngine(validator.DefaultRegistry())
}

func failedEntries(report validator.Report) []validator.ResultEntry {
	var failed []validator.ResultEntry
	for _, e := range report.Results {
		if !e.Passed {
			failed = append(failed, e)
		}
	}
	return failed
}

func TestValidate_CleanFilingPasses(t *testing.T) {
	report := newEngine().Validate(context.Background(), &itr.FilingInput{
		PersonalInfo: validInput().PersonalInfo,
		TaxRegime:    itr.RegimeNew,
	})

	assert.Equal(t, domain.ValidationStatusValid, report.Status)
	assert.False(t, report.HasErrors())
	assert.Empty(t, failedEntries(report))
	assert.Equal(t, report.Summary.Total, report.Summary.Passed)
}

func TestValidate_CollectsAllFailures(t *testing.T) {
	in := validInput()
	in.PersonalInfo.PAN = "abcde1234f"       // lowercase
	in.PersonalInfo.Phone = "1234567890"     // must start 6-9
	in.PersonalInfo.Address.Pincode = "0400" // too short, leading zero
	in.PersonalInfo.Email = "not-an-email"

	report := newEngine().Validate(context.Background(), &in)

	require.Equal(t, domain.ValidationStatusInvalid, report.Status)
	assert.True(t, report.HasErrors())
	assert.GreaterOrEqual(t, report.Summary.Errors, 4)

	paths := make(map[string]bool)
	for _, e := range failedEntries(report) {
		paths[e.FieldPath] = true
	}
	assert.True(t, paths["personal_info.pan"])
	assert.True(t, paths["personal_info.phone"])
	assert.True(t, paths["personal_info.address.pincode"])
	assert.True(t, paths["personal_info.email"])
}

func TestValidate_MissingFieldsFailRequiredNotFormat(t *testing.T) {
	in := validInput()
	in.PersonalInfo.PAN = ""

	report := newEngine().Validate(context.Background(), &in)

	require.True(t, report.HasErrors())
	for _, e := range failedEntries(report) {
		assert.Equal(t, "personal_info.pan", e.FieldPath)
		assert.Equal(t, domain.ValidationRuleRequired, e.RuleType)
	}
}

func TestValidate_DateOfBirth(t *testing.T) {
	cases := []struct {
		name string
		dob  string
		ok   bool
	}{
		{"valid_adult", "1990-06-15", true},
		{"unparseable", "15/06/1990", false},
		{"in_future", "2090-01-01", false},
		{"minor", "2015-01-01", false},
		{"too_old", "1890-01-01", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			in.PersonalInfo.DateOfBirth = tc.dob

			report := newEngine().Validate(context.Background(), &in)
			if tc.ok {
				assert.False(t, report.HasErrors())
			} else {
				assert.True(t, report.HasErrors())
			}
		})
	}
}

func TestValidate_InvalidRegime(t *testing.T) {
	in := validInput()
	in.TaxRegime = "hybrid"

	report := newEngine().Validate(context.Background(), &in)
	assert.True(t, report.HasErrors())
}

func TestValidate_NegativeAmountIsError(t *testing.T) {
	in := validInput()
	in.Income.Salary.Basic = decimal.NewFromInt(-1000)

	report := newEngine().Validate(context.Background(), &in)
	require.True(t, report.HasErrors())

	found := false
	for _, e := range failedEntries(report) {
		if e.FieldPath == "income.salary.basic" {
			found = true
			assert.Contains(t, e.Message, "negative")
		}
	}
	assert.True(t, found)
}

func TestValidate_DeductionCapIsWarningOnly(t *testing.T) {
	in := validInput()
	in.Deductions.Section80C = decimal.NewFromInt(500000)

	report := newEngine().Validate(context.Background(), &in)

	assert.Equal(t, domain.ValidationStatusWarning, report.Status)
	assert.False(t, report.HasErrors())
	assert.GreaterOrEqual(t, report.Summary.Warnings, 1)
}

func TestValidate_MissingPincodeIsWarningOnly(t *testing.T) {
	// The pincode format rule only applies to a present value; an absent
	// pincode must not produce an error-severity failure.
	in := validInput()
	in.PersonalInfo.Address.Pincode = ""

	report := newEngine().Validate(context.Background(), &in)

	assert.Equal(t, domain.ValidationStatusWarning, report.Status)
	assert.False(t, report.HasErrors())
	assert.GreaterOrEqual(t, report.Summary.Warnings, 1)
}

func TestValidate_MissingNameIsWarningOnly(t *testing.T) {
	in := validInput()
	in.PersonalInfo.Name = ""

	report := newEngine().Validate(context.Background(), &in)

	assert.Equal(t, domain.ValidationStatusWarning, report.Status)
	assert.False(t, report.HasErrors())
}

func TestValidate_MissingStreetIsWarningOnly(t *testing.T) {
	in := validInput()
	in.PersonalInfo.Address.Street = ""

	report := newEngine().Validate(context.Background(), &in)

	assert.Equal(t, domain.ValidationStatusWarning, report.Status)
	assert.False(t, report.HasErrors())
}

func TestValidate_FailureDoesNotShortCircuit(t *testing.T) {
	report := newEngine().Validate(context.Background(), &itr.FilingInput{})

	// Every registered rule still produced results despite early failures.
	keys := make(map[string]bool)
	for _, e := range report.Results {
		keys[e.RuleKey] = true
	}
	for _, prefix := range []string{"req.", "fmt.", "logic."} {
		found := false
		for k := range keys {
			if strings.HasPrefix(k, prefix) {
				found = true
				break
			}
		}
		assert.True(t, found, "no results for rules with prefix %s", prefix)
	}
}

func TestRegistry_RegistrationOrderIsStable(t *testing.T) {
	r := validator.DefaultRegistry()
	first := r.All()
	second := r.All()
	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].RuleKey(), second[i].RuleKey())
	}
}
