package noop

import (
	"context"
	"log"

	"taxsage/internal/port"
)

type noopSender struct{}

// NewNoopSender creates a no-op EmailSender that logs review notifications
// instead of sending them. Used in local development and tests.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) SendReviewRequested(_ context.Context, email port.ReviewEmail) error {
	log.Printf("[NOOP EMAIL] review requested: to=%s taxpayer=%s ay=%s", email.ToEmail, email.TaxpayerName, email.AssessmentYear)
	return nil
}

func (s *noopSender) SendReviewAccepted(_ context.Context, email port.ReviewEmail) error {
	log.Printf("[NOOP EMAIL] review accepted: to=%s ca=%s ay=%s", email.ToEmail, email.CAName, email.AssessmentYear)
	return nil
}

func (s *noopSender) SendReviewRejected(_ context.Context, email port.ReviewEmail) error {
	log.Printf("[NOOP EMAIL] review rejected: to=%s ca=%s ay=%s", email.ToEmail, email.CAName, email.AssessmentYear)
	return nil
}

func (s *noopSender) SendReviewCompleted(_ context.Context, email port.ReviewEmail) error {
	log.Printf("[NOOP EMAIL] review completed: to=%s ca=%s ay=%s", email.ToEmail, email.CAName, email.AssessmentYear)
	return nil
}
