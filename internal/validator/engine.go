package validator

import (
	"context"
	"time"

	"taxsage/internal/domain"
	"taxsage/internal/itr"
)

// ResultEntry is a single validation result as stored in the filing's
// validation_results JSONB column.
type ResultEntry struct {
	RuleKey       string                    `json:"rule_key"`
	RuleName      string                    `json:"rule_name"`
	RuleType      domain.ValidationRuleType `json:"rule_type"`
	Severity      domain.ValidationSeverity `json:"severity"`
	Passed        bool                      `json:"passed"`
	FieldPath     string                    `json:"field_path"`
	ExpectedValue string                    `json:"expected_value"`
	ActualValue   string                    `json:"actual_value"`
	Message       string                    `json:"message"`
	ValidatedAt   time.Time                 `json:"validated_at"`
}

// Summary holds aggregate counts of validation results.
type Summary struct {
	Total    int `json:"total"`
	Passed   int `json:"passed"`
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
}

// Report is the full outcome of validating one filing.
type Report struct {
	Status  domain.ValidationStatus `json:"status"`
	Summary Summary                 `json:"summary"`
	Results []ResultEntry           `json:"results"`
}

// HasErrors reports whether any error-severity rule failed.
func (r Report) HasErrors() bool { return r.Summary.Errors > 0 }

// Engine runs all registered rules against a filing input.
type Engine struct {
	registry *Registry
}

// NewEngine creates a validation engine over a rule registry.
func NewEngine(registry *Registry) *Engine {
	return &Engine{registry: registry}
}

// Validate runs every registered rule and collects all results. Rules never
// short-circuit; a failing rule does not stop later rules from running.
func (e *Engine) Validate(ctx context.Context, in *itr.FilingInput) Report {
	now := time.Now().UTC()
	var entries []ResultEntry
	var summary Summary

	for _, v := range e.registry.All() {
		for _, vr := range v.Validate(ctx, in) {
			entries = append(entries, ResultEntry{
				RuleKey:       v.RuleKey(),
				RuleName:      v.RuleName(),
				RuleType:      v.RuleType(),
				Severity:      v.Severity(),
				Passed:        vr.Passed,
				FieldPath:     vr.FieldPath,
				ExpectedValue: vr.ExpectedValue,
				ActualValue:   vr.ActualValue,
				Message:       vr.Message,
				ValidatedAt:   now,
			})
			summary.Total++
			switch {
			case vr.Passed:
				summary.Passed++
			case v.Severity() == domain.ValidationSeverityError:
				summary.Errors++
			default:
				summary.Warnings++
			}
		}
	}

	status := domain.ValidationStatusValid
	switch {
	case summary.Errors > 0:
		status = domain.ValidationStatusInvalid
	case summary.Warnings > 0:
		status = domain.ValidationStatusWarning
	}

	return Report{Status: status, Summary: summary, Results: entries}
}
