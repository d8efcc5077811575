package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"taxsage/internal/domain"
	"taxsage/internal/port"
)

// RequestReviewInput is the DTO for asking a CA to review a filing.
type RequestReviewInput struct {
	FilingID uuid.UUID `json:"filing_id" binding:"required"`
	CAUserID uuid.UUID `json:"ca_user_id" binding:"required"`
	Message  string    `json:"message"`
}

// CompleteReviewInput carries the CA's findings.
type CompleteReviewInput struct {
	Notes string `json:"notes" binding:"required"`
}

// ReviewService manages the CA review lifecycle.
type ReviewService interface {
	Request(ctx context.Context, taxpayerID uuid.UUID, input RequestReviewInput) (*domain.ReviewRequest, error)
	Accept(ctx context.Context, caUserID uuid.UUID, reqID uuid.UUID) (*domain.ReviewRequest, error)
	Reject(ctx context.Context, caUserID uuid.UUID, reqID uuid.UUID) (*domain.ReviewRequest, error)
	Complete(ctx context.Context, caUserID uuid.UUID, reqID uuid.UUID, input CompleteReviewInput) (*domain.ReviewRequest, error)
	ListForTaxpayer(ctx context.Context, taxpayerID uuid.UUID, offset, limit int) ([]domain.ReviewRequest, int, error)
	ListForCA(ctx context.Context, caUserID uuid.UUID, status domain.ReviewStatus, offset, limit int) ([]domain.ReviewRequest, int, error)
	FilingForReview(ctx context.Context, caUserID uuid.UUID, reqID uuid.UUID) (*domain.Filing, error)
}

type reviewService struct {
	reviewRepo  port.ReviewRequestRepository
	filingRepo  port.FilingRepository
	userRepo    port.UserRepository
	profileRepo port.CAProfileRepository
	email       port.EmailSender
}

// NewReviewService creates a new ReviewService implementation.
func NewReviewService(
	reviewRepo port.ReviewRequestRepository,
	filingRepo port.FilingRepository,
	userRepo port.UserRepository,
	profileRepo port.CAProfileRepository,
	email port.EmailSender,
) ReviewService {
	return &reviewService{
		reviewRepo:  reviewRepo,
		filingRepo:  filingRepo,
		userRepo:    userRepo,
		profileRepo: profileRepo,
		email:       email,
	}
}

func (s *reviewService) Request(ctx context.Context, taxpayerID uuid.UUID, input RequestReviewInput) (*domain.ReviewRequest, error) {
	filing, err := s.filingRepo.GetByID(ctx, input.FilingID)
	if err != nil {
		return nil, err
	}
	if filing.UserID != taxpayerID {
		return nil, domain.ErrForbidden
	}
	if !filing.Status.CanTransition(domain.FilingStatusUnderReview) {
		return nil, domain.ErrInvalidTransition
	}

	ca, err := s.userRepo.GetByID(ctx, input.CAUserID)
	if err != nil {
		return nil, err
	}
	if ca.Role != domain.RoleCA || !ca.IsActive {
		return nil, domain.ErrForbidden
	}
	profile, err := s.profileRepo.GetByUserID(ctx, input.CAUserID)
	if err != nil {
		return nil, err
	}
	if !profile.IsAvailable {
		return nil, domain.ErrForbidden
	}

	req := &domain.ReviewRequest{
		FilingID:   filing.ID,
		TaxpayerID: taxpayerID,
		CAUserID:   input.CAUserID,
		Status:     domain.ReviewStatusPending,
		Message:    input.Message,
	}
	if err := s.reviewRepo.Create(ctx, req); err != nil {
		return nil, err
	}

	filing.Status = domain.FilingStatusUnderReview
	if err := s.filingRepo.UpdateStatus(ctx, filing); err != nil {
		return nil, err
	}

	s.notify(ctx, req, filing, func(email port.ReviewEmail) error {
		return s.email.SendReviewRequested(ctx, email)
	}, true)
	return req, nil
}

func (s *reviewService) Accept(ctx context.Context, caUserID uuid.UUID, reqID uuid.UUID) (*domain.ReviewRequest, error) {
	req, err := s.getAssigned(ctx, caUserID, reqID)
	if err != nil {
		return nil, err
	}
	if req.Status != domain.ReviewStatusPending {
		return nil, domain.ErrReviewNotPending
	}

	now := time.Now().UTC()
	req.Status = domain.ReviewStatusAccepted
	req.RespondedAt = &now
	if err := s.reviewRepo.Update(ctx, req); err != nil {
		return nil, err
	}

	filing, err := s.filingRepo.GetByID(ctx, req.FilingID)
	if err == nil {
		s.notify(ctx, req, filing, func(email port.ReviewEmail) error {
			return s.email.SendReviewAccepted(ctx, email)
		}, false)
	}
	return req, nil
}

func (s *reviewService) Reject(ctx context.Context, caUserID uuid.UUID, reqID uuid.UUID) (*domain.ReviewRequest, error) {
	req, err := s.getAssigned(ctx, caUserID, reqID)
	if err != nil {
		return nil, err
	}
	if req.Status != domain.ReviewStatusPending {
		return nil, domain.ErrReviewNotPending
	}

	now := time.Now().UTC()
	req.Status = domain.ReviewStatusRejected
	req.RespondedAt = &now
	if err := s.reviewRepo.Update(ctx, req); err != nil {
		return nil, err
	}

	// Hand the filing back to the taxpayer so another CA can be asked.
	filing, err := s.filingRepo.GetByID(ctx, req.FilingID)
	if err != nil {
		return nil, err
	}
	if filing.Status.CanTransition(domain.FilingStatusSubmitted) {
		filing.Status = domain.FilingStatusSubmitted
		if err := s.filingRepo.UpdateStatus(ctx, filing); err != nil {
			return nil, err
		}
	}

	s.notify(ctx, req, filing, func(email port.ReviewEmail) error {
		return s.email.SendReviewRejected(ctx, email)
	}, false)
	return req, nil
}

func (s *reviewService) Complete(ctx context.Context, caUserID uuid.UUID, reqID uuid.UUID, input CompleteReviewInput) (*domain.ReviewRequest, error) {
	req, err := s.getAssigned(ctx, caUserID, reqID)
	if err != nil {
		return nil, err
	}
	if req.Status != domain.ReviewStatusAccepted {
		return nil, domain.ErrReviewNotAccepted
	}

	now := time.Now().UTC()
	req.Status = domain.ReviewStatusCompleted
	req.CANotes = input.Notes
	req.CompletedAt = &now
	if err := s.reviewRepo.Update(ctx, req); err != nil {
		return nil, err
	}

	filing, err := s.filingRepo.GetByID(ctx, req.FilingID)
	if err != nil {
		return nil, err
	}
	if !filing.Status.CanTransition(domain.FilingStatusReviewed) {
		return nil, domain.ErrInvalidTransition
	}
	filing.Status = domain.FilingStatusReviewed
	if err := s.filingRepo.UpdateStatus(ctx, filing); err != nil {
		return nil, err
	}

	s.notify(ctx, req, filing, func(email port.ReviewEmail) error {
		return s.email.SendReviewCompleted(ctx, email)
	}, false)
	return req, nil
}

func (s *reviewService) ListForTaxpayer(ctx context.Context, taxpayerID uuid.UUID, offset, limit int) ([]domain.ReviewRequest, int, error) {
	return s.reviewRepo.ListByTaxpayer(ctx, taxpayerID, offset, limit)
}

func (s *reviewService) ListForCA(ctx context.Context, caUserID uuid.UUID, status domain.ReviewStatus, offset, limit int) ([]domain.ReviewRequest, int, error) {
	return s.reviewRepo.ListByCA(ctx, caUserID, status, offset, limit)
}

// FilingForReview gives the assigned CA read access to the filing while the
// request is accepted or completed.
func (s *reviewService) FilingForReview(ctx context.Context, caUserID uuid.UUID, reqID uuid.UUID) (*domain.Filing, error) {
	req, err := s.getAssigned(ctx, caUserID, reqID)
	if err != nil {
		return nil, err
	}
	if req.Status != domain.ReviewStatusAccepted && req.Status != domain.ReviewStatusCompleted {
		return nil, domain.ErrReviewNotAccepted
	}
	return s.filingRepo.GetByID(ctx, req.FilingID)
}

func (s *reviewService) getAssigned(ctx context.Context, caUserID uuid.UUID, reqID uuid.UUID) (*domain.ReviewRequest, error) {
	req, err := s.reviewRepo.GetByID(ctx, reqID)
	if err != nil {
		return nil, err
	}
	if req.CAUserID != caUserID {
		return nil, domain.ErrForbidden
	}
	return req, nil
}

// notify sends a review lifecycle email; toCA selects the recipient side.
// Delivery failures are logged, never surfaced to the caller.
func (s *reviewService) notify(ctx context.Context, req *domain.ReviewRequest, filing *domain.Filing, send func(port.ReviewEmail) error, toCA bool) {
	taxpayer, err := s.userRepo.GetByID(ctx, req.TaxpayerID)
	if err != nil {
		log.Printf("reviewService.notify: loading taxpayer %s: %v", req.TaxpayerID, err)
		return
	}
	ca, err := s.userRepo.GetByID(ctx, req.CAUserID)
	if err != nil {
		log.Printf("reviewService.notify: loading ca %s: %v", req.CAUserID, err)
		return
	}

	email := port.ReviewEmail{
		ToEmail:        taxpayer.Email,
		ToName:         taxpayer.FullName,
		CAName:         ca.FullName,
		TaxpayerName:   taxpayer.FullName,
		AssessmentYear: filing.AssessmentYear,
	}
	if toCA {
		email.ToEmail = ca.Email
		email.ToName = ca.FullName
	}
	if err := send(email); err != nil {
		log.Printf("reviewService.notify: sending email for request %s: %v", req.ID, err)
	}
}
