package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"taxsage/internal/domain"
	"taxsage/internal/port"
)

// MockCAProfileRepo is a mock implementation of port.CAProfileRepository.
type MockCAProfileRepo struct {
	mock.Mock
}

func (m *MockCAProfileRepo) Create(ctx context.Context, profile *domain.CAProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockCAProfileRepo) GetByID(ctx context.Context, profileID uuid.UUID) (*domain.CAProfile, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CAProfile), args.Error(1)
}

func (m *MockCAProfileRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.CAProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CAProfile), args.Error(1)
}

func (m *MockCAProfileRepo) List(ctx context.Context, filters port.CAProfileFilters, offset, limit int) ([]domain.CAProfile, int, error) {
	args := m.Called(ctx, filters, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.CAProfile), args.Int(1), args.Error(2)
}

func (m *MockCAProfileRepo) Update(ctx context.Context, profile *domain.CAProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockCAProfileRepo) Delete(ctx context.Context, profileID uuid.UUID) error {
	args := m.Called(ctx, profileID)
	return args.Error(0)
}
