package filing

import (
	"context"
	"fmt"

	"taxsage/internal/domain"
	"taxsage/internal/itr"
)

// requiredFieldValidator checks that a required field is not empty.
type requiredFieldValidator struct {
	ruleKey   string
	ruleName  string
	fieldPath string
	severity  domain.ValidationSeverity
	extract   func(*itr.FilingInput) string
}

func (v *requiredFieldValidator) RuleKey() string  { return v.ruleKey }
func (v *requiredFieldValidator) RuleName() string { return v.ruleName }
func (v *requiredFieldValidator) RuleType() domain.ValidationRuleType {
	return domain.ValidationRuleRequired
}
func (v *requiredFieldValidator) Severity() domain.ValidationSeverity { return v.severity }

func (v *requiredFieldValidator) Validate(_ context.Context, in *itr.FilingInput) []ValidationResult {
	val := v.extract(in)
	return []ValidationResult{{
		Passed:        val != "",
		FieldPath:     v.fieldPath,
		ExpectedValue: "non-empty value",
		ActualValue:   val,
		Message:       fieldMessage(val != "", v.ruleName, v.fieldPath),
	}}
}

func fieldMessage(passed bool, ruleName, fieldPath string) string {
	if passed {
		return fmt.Sprintf("%s: %s is present", ruleName, fieldPath)
	}
	return fmt.Sprintf("%s: %s is missing or empty", ruleName, fieldPath)
}

// RequiredFieldValidators returns all required field validators.
func RequiredFieldValidators() []*requiredFieldValidator {
	return []*requiredFieldValidator{
		{
			// ITR document generation tolerates a missing name, so this
			// only warns.
			ruleKey: "req.personal.name", ruleName: "Required: Full Name",
			fieldPath: "personal_info.name", severity: domain.ValidationSeverityWarning,
			extract: func(in *itr.FilingInput) string { return in.PersonalInfo.Name },
		},
		{
			ruleKey: "req.personal.pan", ruleName: "Required: PAN",
			fieldPath: "personal_info.pan", severity: domain.ValidationSeverityError,
			extract: func(in *itr.FilingInput) string { return in.PersonalInfo.PAN },
		},
		{
			ruleKey: "req.personal.dob", ruleName: "Required: Date of Birth",
			fieldPath: "personal_info.date_of_birth", severity: domain.ValidationSeverityError,
			extract: func(in *itr.FilingInput) string { return in.PersonalInfo.DateOfBirth },
		},
		{
			ruleKey: "req.personal.email", ruleName: "Required: Email",
			fieldPath: "personal_info.email", severity: domain.ValidationSeverityError,
			extract: func(in *itr.FilingInput) string { return in.PersonalInfo.Email },
		},
		{
			ruleKey: "req.personal.phone", ruleName: "Required: Phone",
			fieldPath: "personal_info.phone", severity: domain.ValidationSeverityError,
			extract: func(in *itr.FilingInput) string { return in.PersonalInfo.Phone },
		},
		{
			ruleKey: "req.address.city", ruleName: "Required: City",
			fieldPath: "personal_info.address.city", severity: domain.ValidationSeverityError,
			extract: func(in *itr.FilingInput) string { return in.PersonalInfo.Address.City },
		},
		{
			ruleKey: "req.address.state", ruleName: "Required: State",
			fieldPath: "personal_info.address.state", severity: domain.ValidationSeverityError,
			extract: func(in *itr.FilingInput) string { return in.PersonalInfo.Address.State },
		},
		{
			// Pincode format is only checked when present; absence alone
			// must not block submission.
			ruleKey: "req.address.pincode", ruleName: "Required: Pincode",
			fieldPath: "personal_info.address.pincode", severity: domain.ValidationSeverityWarning,
			extract: func(in *itr.FilingInput) string { return in.PersonalInfo.Address.Pincode },
		},
		{
			ruleKey: "req.address.street", ruleName: "Required: Street",
			fieldPath: "personal_info.address.street", severity: domain.ValidationSeverityWarning,
			extract: func(in *itr.FilingInput) string { return in.PersonalInfo.Address.Street },
		},
	}
}
