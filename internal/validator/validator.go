package validator

import (
	"context"

	"taxsage/internal/domain"
	"taxsage/internal/itr"
	"taxsage/internal/validator/filing"
)

// Validator is the interface for a single built-in validation rule.
type Validator interface {
	Validate(ctx context.Context, in *itr.FilingInput) []filing.ValidationResult
	RuleKey() string
	RuleName() string
	RuleType() domain.ValidationRuleType
	Severity() domain.ValidationSeverity
}
