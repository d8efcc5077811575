package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"taxsage/internal/domain"
)

// MockReviewRequestRepo is a mock implementation of port.ReviewRequestRepository.
type MockReviewRequestRepo struct {
	mock.Mock
}

func (m *MockReviewRequestRepo) Create(ctx context.Context, req *domain.ReviewRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockReviewRequestRepo) GetByID(ctx context.Context, reqID uuid.UUID) (*domain.ReviewRequest, error) {
	args := m.Called(ctx, reqID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReviewRequest), args.Error(1)
}

func (m *MockReviewRequestRepo) ListByTaxpayer(ctx context.Context, taxpayerID uuid.UUID, offset, limit int) ([]domain.ReviewRequest, int, error) {
	args := m.Called(ctx, taxpayerID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.ReviewRequest), args.Int(1), args.Error(2)
}

func (m *MockReviewRequestRepo) ListByCA(ctx context.Context, caUserID uuid.UUID, status domain.ReviewStatus, offset, limit int) ([]domain.ReviewRequest, int, error) {
	args := m.Called(ctx, caUserID, status, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.ReviewRequest), args.Int(1), args.Error(2)
}

func (m *MockReviewRequestRepo) Update(ctx context.Context, req *domain.ReviewRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
