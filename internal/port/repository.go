package port

import (
	"context"

	"github.com/google/uuid"

	"taxsage/internal/domain"
)

// UserRepository defines the contract for user persistence.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, offset, limit int) ([]domain.User, int, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, userID uuid.UUID) error
}

// CAProfileFilters narrows the marketplace listing.
type CAProfileFilters struct {
	City           string
	State          string
	Specialization string
	MinExperience  int
	OnlyAvailable  bool
}

// CAProfileRepository defines the contract for CA marketplace profiles.
type CAProfileRepository interface {
	Create(ctx context.Context, profile *domain.CAProfile) error
	GetByID(ctx context.Context, profileID uuid.UUID) (*domain.CAProfile, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.CAProfile, error)
	List(ctx context.Context, filters CAProfileFilters, offset, limit int) ([]domain.CAProfile, int, error)
	Update(ctx context.Context, profile *domain.CAProfile) error
	Delete(ctx context.Context, profileID uuid.UUID) error
}

// FilingRepository defines the contract for filing persistence.
type FilingRepository interface {
	Create(ctx context.Context, filing *domain.Filing) error
	GetByID(ctx context.Context, filingID uuid.UUID) (*domain.Filing, error)
	GetByUserAndYear(ctx context.Context, userID uuid.UUID, assessmentYear string) (*domain.Filing, error)
	ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.Filing, int, error)
	UpdateInput(ctx context.Context, filing *domain.Filing) error
	UpdateStatus(ctx context.Context, filing *domain.Filing) error
	UpdateValidationResults(ctx context.Context, filing *domain.Filing) error
	Delete(ctx context.Context, filingID uuid.UUID) error
}

// ReviewRequestRepository defines the contract for review request persistence.
type ReviewRequestRepository interface {
	Create(ctx context.Context, req *domain.ReviewRequest) error
	GetByID(ctx context.Context, reqID uuid.UUID) (*domain.ReviewRequest, error)
	ListByTaxpayer(ctx context.Context, taxpayerID uuid.UUID, offset, limit int) ([]domain.ReviewRequest, int, error)
	ListByCA(ctx context.Context, caUserID uuid.UUID, status domain.ReviewStatus, offset, limit int) ([]domain.ReviewRequest, int, error)
	Update(ctx context.Context, req *domain.ReviewRequest) error
}

// FileMetaRepository defines the contract for file metadata persistence.
type FileMetaRepository interface {
	Create(ctx context.Context, meta *domain.FileMeta) error
	GetByID(ctx context.Context, fileID uuid.UUID) (*domain.FileMeta, error)
	ListByFiling(ctx context.Context, filingID uuid.UUID, offset, limit int) ([]domain.FileMeta, int, error)
	UpdateStatus(ctx context.Context, fileID uuid.UUID, status domain.FileStatus) error
	Delete(ctx context.Context, fileID uuid.UUID) error
}
