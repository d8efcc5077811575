package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"taxsage/internal/port"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendReviewRequested(ctx context.Context, email port.ReviewEmail) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockEmailSender) SendReviewAccepted(ctx context.Context, email port.ReviewEmail) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockEmailSender) SendReviewRejected(ctx context.Context, email port.ReviewEmail) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockEmailSender) SendReviewCompleted(ctx context.Context, email port.ReviewEmail) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}
