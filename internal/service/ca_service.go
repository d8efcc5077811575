package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"taxsage/internal/domain"
	"taxsage/internal/port"
)

// CAProfileInput is the DTO for creating or updating a marketplace profile.
type CAProfileInput struct {
	MembershipNumber string          `json:"membership_number" binding:"required"`
	FirmName         string          `json:"firm_name"`
	City             string          `json:"city" binding:"required"`
	State            string          `json:"state" binding:"required"`
	ExperienceYears  int             `json:"experience_years" binding:"min=0"`
	Specialization   string          `json:"specialization"`
	Bio              string          `json:"bio"`
	ReviewFee        decimal.Decimal `json:"review_fee"`
	IsAvailable      bool            `json:"is_available"`
}

// CAService manages the CA marketplace.
type CAService interface {
	CreateProfile(ctx context.Context, userID uuid.UUID, input CAProfileInput) (*domain.CAProfile, error)
	GetProfile(ctx context.Context, profileID uuid.UUID) (*domain.CAProfile, error)
	GetProfileByUser(ctx context.Context, userID uuid.UUID) (*domain.CAProfile, error)
	List(ctx context.Context, filters port.CAProfileFilters, offset, limit int) ([]domain.CAProfile, int, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, input CAProfileInput) (*domain.CAProfile, error)
	SetAvailability(ctx context.Context, userID uuid.UUID, available bool) error
}

type caService struct {
	profileRepo port.CAProfileRepository
	userRepo    port.UserRepository
}

// NewCAService creates a new CAService implementation.
func NewCAService(profileRepo port.CAProfileRepository, userRepo port.UserRepository) CAService {
	return &caService{profileRepo: profileRepo, userRepo: userRepo}
}

func (s *caService) CreateProfile(ctx context.Context, userID uuid.UUID, input CAProfileInput) (*domain.CAProfile, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Role != domain.RoleCA {
		return nil, domain.ErrForbidden
	}

	// One profile per CA.
	if _, err := s.profileRepo.GetByUserID(ctx, userID); err == nil {
		return nil, domain.ErrDuplicateMembership
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	profile := &domain.CAProfile{
		UserID:           userID,
		MembershipNumber: input.MembershipNumber,
		FirmName:         input.FirmName,
		City:             input.City,
		State:            input.State,
		ExperienceYears:  input.ExperienceYears,
		Specialization:   input.Specialization,
		Bio:              input.Bio,
		ReviewFee:        input.ReviewFee,
		IsAvailable:      input.IsAvailable,
	}
	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *caService) GetProfile(ctx context.Context, profileID uuid.UUID) (*domain.CAProfile, error) {
	return s.profileRepo.GetByID(ctx, profileID)
}

func (s *caService) GetProfileByUser(ctx context.Context, userID uuid.UUID) (*domain.CAProfile, error) {
	return s.profileRepo.GetByUserID(ctx, userID)
}

func (s *caService) List(ctx context.Context, filters port.CAProfileFilters, offset, limit int) ([]domain.CAProfile, int, error) {
	return s.profileRepo.List(ctx, filters, offset, limit)
}

func (s *caService) UpdateProfile(ctx context.Context, userID uuid.UUID, input CAProfileInput) (*domain.CAProfile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Membership number is immutable once registered.
	profile.FirmName = input.FirmName
	profile.City = input.City
	profile.State = input.State
	profile.ExperienceYears = input.ExperienceYears
	profile.Specialization = input.Specialization
	profile.Bio = input.Bio
	profile.ReviewFee = input.ReviewFee
	profile.IsAvailable = input.IsAvailable

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *caService) SetAvailability(ctx context.Context, userID uuid.UUID, available bool) error {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	profile.IsAvailable = available
	return s.profileRepo.Update(ctx, profile)
}
