package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"taxsage/internal/domain"
)

// MockFilingRepo is a mock implementation of port.FilingRepository.
type MockFilingRepo struct {
	mock.Mock
}

func (m *MockFilingRepo) Create(ctx context.Context, filing *domain.Filing) error {
	args := m.Called(ctx, filing)
	return args.Error(0)
}

func (m *MockFilingRepo) GetByID(ctx context.Context, filingID uuid.UUID) (*domain.Filing, error) {
	args := m.Called(ctx, filingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Filing), args.Error(1)
}

func (m *MockFilingRepo) GetByUserAndYear(ctx context.Context, userID uuid.UUID, assessmentYear string) (*domain.Filing, error) {
	args := m.Called(ctx, userID, assessmentYear)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Filing), args.Error(1)
}

func (m *MockFilingRepo) ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.Filing, int, error) {
	args := m.Called(ctx, userID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Filing), args.Int(1), args.Error(2)
}

func (m *MockFilingRepo) UpdateInput(ctx context.Context, filing *domain.Filing) error {
	args := m.Called(ctx, filing)
	return args.Error(0)
}

func (m *MockFilingRepo) UpdateStatus(ctx context.Context, filing *domain.Filing) error {
	args := m.Called(ctx, filing)
	return args.Error(0)
}

func (m *MockFilingRepo) UpdateValidationResults(ctx context.Context, filing *domain.Filing) error {
	args := m.Called(ctx, filing)
	return args.Error(0)
}

func (m *MockFilingRepo) Delete(ctx context.Context, filingID uuid.UUID) error {
	args := m.Called(ctx, filingID)
	return args.Error(0)
}
