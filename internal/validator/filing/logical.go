package filing

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"taxsage/internal/domain"
	"taxsage/internal/itr"
)

const dobLayout = "2006-01-02"

const (
	minFilingAge = 18
	maxFilingAge = 120
)

// Advisory statutory caps. Exceeding them is flagged as a warning but never
// blocks export; the review step owns the judgement call.
var (
	cap80C   = decimal.NewFromInt(150000)
	cap80D   = decimal.NewFromInt(100000)
	cap80TTA = decimal.NewFromInt(10000)
)

// logicalValidator covers checks that are not plain regex or presence rules.
type logicalValidator struct {
	ruleKey  string
	ruleName string
	severity domain.ValidationSeverity
	validate func(*itr.FilingInput) []ValidationResult
}

func (v *logicalValidator) RuleKey() string                     { return v.ruleKey }
func (v *logicalValidator) RuleName() string                    { return v.ruleName }
func (v *logicalValidator) RuleType() domain.ValidationRuleType { return domain.ValidationRuleLogical }
func (v *logicalValidator) Severity() domain.ValidationSeverity { return v.severity }

func (v *logicalValidator) Validate(_ context.Context, in *itr.FilingInput) []ValidationResult {
	return v.validate(in)
}

func dobCheck(value string, now time.Time) ValidationResult {
	const ruleName = "Logical: Date of Birth"
	fieldPath := "personal_info.date_of_birth"
	expected := fmt.Sprintf("YYYY-MM-DD, age %d-%d", minFilingAge, maxFilingAge)

	if value == "" {
		return ValidationResult{
			Passed: true, FieldPath: fieldPath,
			ExpectedValue: expected, ActualValue: value,
			Message: ruleName + ": field is empty, skipping",
		}
	}

	dob, err := time.Parse(dobLayout, value)
	if err != nil {
		return ValidationResult{
			Passed: false, FieldPath: fieldPath,
			ExpectedValue: expected, ActualValue: value,
			Message: ruleName + ": not a valid YYYY-MM-DD date",
		}
	}
	if dob.After(now) {
		return ValidationResult{
			Passed: false, FieldPath: fieldPath,
			ExpectedValue: expected, ActualValue: value,
			Message: ruleName + ": date of birth is in the future",
		}
	}

	age := now.Year() - dob.Year()
	if now.YearDay() < dob.YearDay() {
		age--
	}
	if age < minFilingAge || age > maxFilingAge {
		return ValidationResult{
			Passed: false, FieldPath: fieldPath,
			ExpectedValue: expected, ActualValue: value,
			Message: fmt.Sprintf("%s: age %d is outside the allowed range %d-%d", ruleName, age, minFilingAge, maxFilingAge),
		}
	}
	return ValidationResult{
		Passed: true, FieldPath: fieldPath,
		ExpectedValue: expected, ActualValue: value,
		Message: ruleName + ": date of birth is valid",
	}
}

func nonNegativeCheck(fieldPath string, value decimal.Decimal) ValidationResult {
	const ruleName = "Logical: Non-negative Amount"
	passed := !value.IsNegative()
	msg := fmt.Sprintf("%s: %s is non-negative", ruleName, fieldPath)
	if !passed {
		msg = fmt.Sprintf("%s: %s must not be negative", ruleName, fieldPath)
	}
	return ValidationResult{
		Passed: passed, FieldPath: fieldPath,
		ExpectedValue: ">= 0", ActualValue: value.String(), Message: msg,
	}
}

func capAdvisory(fieldPath, section string, value, cap decimal.Decimal) ValidationResult {
	ruleName := "Advisory: Section " + section + " Cap"
	passed := value.LessThanOrEqual(cap)
	msg := fmt.Sprintf("%s: %s is within the statutory cap", ruleName, fieldPath)
	if !passed {
		msg = fmt.Sprintf("%s: %s exceeds the statutory cap of %s", ruleName, fieldPath, cap.String())
	}
	return ValidationResult{
		Passed: passed, FieldPath: fieldPath,
		ExpectedValue: "<= " + cap.String(), ActualValue: value.String(), Message: msg,
	}
}

// LogicalValidators returns all logical validators.
func LogicalValidators() []*logicalValidator {
	return []*logicalValidator{
		{
			ruleKey: "logic.personal.dob", ruleName: "Logical: Date of Birth",
			severity: domain.ValidationSeverityError,
			validate: func(in *itr.FilingInput) []ValidationResult {
				return []ValidationResult{dobCheck(in.PersonalInfo.DateOfBirth, time.Now())}
			},
		},
		{
			ruleKey: "logic.regime", ruleName: "Logical: Tax Regime",
			severity: domain.ValidationSeverityError,
			validate: func(in *itr.FilingInput) []ValidationResult {
				passed := in.TaxRegime.Valid()
				msg := "Logical: Tax Regime: regime is valid"
				if !passed {
					msg = "Logical: Tax Regime: regime must be old or new"
				}
				return []ValidationResult{{
					Passed: passed, FieldPath: "tax_regime",
					ExpectedValue: "old or new", ActualValue: string(in.TaxRegime), Message: msg,
				}}
			},
		},
		{
			ruleKey: "logic.amounts.non_negative", ruleName: "Logical: Non-negative Amount",
			severity: domain.ValidationSeverityError,
			validate: func(in *itr.FilingInput) []ValidationResult {
				checks := []struct {
					path  string
					value decimal.Decimal
				}{
					{"income.salary.basic", in.Income.Salary.Basic},
					{"income.salary.allowances", in.Income.Salary.Allowances},
					{"income.salary.perquisites", in.Income.Salary.Perquisites},
					{"income.salary.profits_in_lieu", in.Income.Salary.ProfitsInLieu},
					{"income.house_property.annual_value", in.Income.HouseProperty.AnnualValue},
					{"income.house_property.interest_paid", in.Income.HouseProperty.InterestPaid},
					{"income.other_sources.interest", in.Income.OtherSources.Interest},
					{"income.other_sources.dividend", in.Income.OtherSources.Dividend},
					{"income.other_sources.other", in.Income.OtherSources.Other},
					{"income.capital_gains.short_term", in.Income.CapitalGains.ShortTerm},
					{"income.capital_gains.long_term", in.Income.CapitalGains.LongTerm},
					{"deductions.section_80c", in.Deductions.Section80C},
					{"deductions.section_80d", in.Deductions.Section80D},
					{"deductions.section_80g", in.Deductions.Section80G},
					{"deductions.section_24", in.Deductions.Section24},
					{"deductions.section_80e", in.Deductions.Section80E},
					{"deductions.section_80tta", in.Deductions.Section80TTA},
					{"tax_paid.tds", in.TaxPaid.TDS},
					{"tax_paid.advance_tax", in.TaxPaid.AdvanceTax},
					{"tax_paid.self_assessment_tax", in.TaxPaid.SelfAssessmentTax},
				}
				results := make([]ValidationResult, 0, len(checks))
				for _, c := range checks {
					results = append(results, nonNegativeCheck(c.path, c.value))
				}
				return results
			},
		},
		{
			ruleKey: "logic.deductions.caps", ruleName: "Advisory: Deduction Caps",
			severity: domain.ValidationSeverityWarning,
			validate: func(in *itr.FilingInput) []ValidationResult {
				return []ValidationResult{
					capAdvisory("deductions.section_80c", "80C", in.Deductions.Section80C, cap80C),
					capAdvisory("deductions.section_80d", "80D", in.Deductions.Section80D, cap80D),
					capAdvisory("deductions.section_80tta", "80TTA", in.Deductions.Section80TTA, cap80TTA),
				}
			},
		},
	}
}
