package port

import "context"

// ReviewEmail carries the fields rendered into a review notification.
type ReviewEmail struct {
	ToEmail        string
	ToName         string
	CAName         string
	TaxpayerName   string
	AssessmentYear string
}

// EmailSender defines the contract for sending review lifecycle emails.
type EmailSender interface {
	SendReviewRequested(ctx context.Context, email ReviewEmail) error
	SendReviewAccepted(ctx context.Context, email ReviewEmail) error
	SendReviewRejected(ctx context.Context, email ReviewEmail) error
	SendReviewCompleted(ctx context.Context, email ReviewEmail) error
}
