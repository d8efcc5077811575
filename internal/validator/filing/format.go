package filing

import (
	"context"
	"fmt"
	"regexp"

	"taxsage/internal/domain"
	"taxsage/internal/itr"
)

var (
	panPattern   = regexp.MustCompile(`^[A-Z]{5}\d{4}[A-Z]$`)
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phonePattern = regexp.MustCompile(`^[6-9]\d{9}$`)
	pinPattern   = regexp.MustCompile(`^[1-9]\d{5}$`)
)

// formatValidator checks a field against a regex rule. Empty fields pass;
// presence is the required validators' concern.
type formatValidator struct {
	ruleKey   string
	ruleName  string
	fieldPath string
	severity  domain.ValidationSeverity
	validate  func(*itr.FilingInput) []ValidationResult
}

func (v *formatValidator) RuleKey() string                     { return v.ruleKey }
func (v *formatValidator) RuleName() string                    { return v.ruleName }
func (v *formatValidator) RuleType() domain.ValidationRuleType { return domain.ValidationRuleRegex }
func (v *formatValidator) Severity() domain.ValidationSeverity { return v.severity }

func (v *formatValidator) Validate(_ context.Context, in *itr.FilingInput) []ValidationResult {
	return v.validate(in)
}

func regexCheck(fieldPath, value, pattern, ruleName string, re *regexp.Regexp) ValidationResult {
	if value == "" {
		return ValidationResult{
			Passed: true, FieldPath: fieldPath,
			ExpectedValue: pattern, ActualValue: value,
			Message: fmt.Sprintf("%s: field is empty, skipping format check", ruleName),
		}
	}
	passed := re.MatchString(value)
	msg := fmt.Sprintf("%s: %s matches expected format", ruleName, fieldPath)
	if !passed {
		msg = fmt.Sprintf("%s: %s does not match expected format", ruleName, fieldPath)
	}
	return ValidationResult{
		Passed: passed, FieldPath: fieldPath,
		ExpectedValue: pattern, ActualValue: value, Message: msg,
	}
}

// FormatValidators returns all format validators.
func FormatValidators() []*formatValidator {
	return []*formatValidator{
		{
			ruleKey: "fmt.personal.pan", ruleName: "Format: PAN",
			fieldPath: "personal_info.pan", severity: domain.ValidationSeverityError,
			validate: func(in *itr.FilingInput) []ValidationResult {
				return []ValidationResult{regexCheck("personal_info.pan", in.PersonalInfo.PAN, "10-char PAN (AAAAA9999A)", "Format: PAN", panPattern)}
			},
		},
		{
			ruleKey: "fmt.personal.email", ruleName: "Format: Email",
			fieldPath: "personal_info.email", severity: domain.ValidationSeverityError,
			validate: func(in *itr.FilingInput) []ValidationResult {
				return []ValidationResult{regexCheck("personal_info.email", in.PersonalInfo.Email, "email address", "Format: Email", emailPattern)}
			},
		},
		{
			ruleKey: "fmt.personal.phone", ruleName: "Format: Phone",
			fieldPath: "personal_info.phone", severity: domain.ValidationSeverityError,
			validate: func(in *itr.FilingInput) []ValidationResult {
				return []ValidationResult{regexCheck("personal_info.phone", in.PersonalInfo.Phone, "10-digit mobile starting 6-9", "Format: Phone", phonePattern)}
			},
		},
		{
			ruleKey: "fmt.address.pincode", ruleName: "Format: Pincode",
			fieldPath: "personal_info.address.pincode", severity: domain.ValidationSeverityError,
			validate: func(in *itr.FilingInput) []ValidationResult {
				return []ValidationResult{regexCheck("personal_info.address.pincode", in.PersonalInfo.Address.Pincode, "6-digit pincode", "Format: Pincode", pinPattern)}
			},
		},
	}
}
