package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"taxsage/internal/domain"
	"taxsage/internal/service"
	"taxsage/mocks"
)

type reviewFixture struct {
	reviewRepo  *mocks.MockReviewRequestRepo
	filingRepo  *mocks.MockFilingRepo
	userRepo    *mocks.MockUserRepo
	profileRepo *mocks.MockCAProfileRepo
	email       *mocks.MockEmailSender
	svc         service.ReviewService

	taxpayer *domain.User
	ca       *domain.User
	filing   *domain.Filing
}

func newReviewFixture(t *testing.T) *reviewFixture {
	t.Helper()
	f := &reviewFixture{
		reviewRepo:  new(mocks.MockReviewRequestRepo),
		filingRepo:  new(mocks.MockFilingRepo),
		userRepo:    new(mocks.MockUserRepo),
		profileRepo: new(mocks.MockCAProfileRepo),
		email:       new(mocks.MockEmailSender),
	}
	f.svc = service.NewReviewService(f.reviewRepo, f.filingRepo, f.userRepo, f.profileRepo, f.email)

	f.taxpayer = &domain.User{
		ID:       uuid.New(),
		Email:    "asha@example.com",
		FullName: "Asha Iyer",
		Role:     domain.RoleTaxpayer,
		IsActive: true,
	}
	f.ca = &domain.User{
		ID:       uuid.New(),
		Email:    "ca@example.com",
		FullName: "Ravi Deshpande",
		Role:     domain.RoleCA,
		IsActive: true,
	}
	f.filing = &domain.Filing{
		ID:             uuid.New(),
		UserID:         f.taxpayer.ID,
		AssessmentYear: "2024-25",
		Status:         domain.FilingStatusSubmitted,
	}
	return f
}

func (f *reviewFixture) stubNotifyUsers() {
	f.userRepo.On("GetByID", mock.Anything, f.taxpayer.ID).Return(f.taxpayer, nil)
	f.userRepo.On("GetByID", mock.Anything, f.ca.ID).Return(f.ca, nil)
}

func TestRequestReview_MovesFilingUnderReview(t *testing.T) {
	f := newReviewFixture(t)
	f.filingRepo.On("GetByID", mock.Anything, f.filing.ID).Return(f.filing, nil)
	f.stubNotifyUsers()
	f.profileRepo.On("GetByUserID", mock.Anything, f.ca.ID).Return(&domain.CAProfile{
		ID:          uuid.New(),
		UserID:      f.ca.ID,
		IsAvailable: true,
	}, nil)
	f.reviewRepo.On("Create", mock.Anything, mock.MatchedBy(func(r *domain.ReviewRequest) bool {
		return r.Status == domain.ReviewStatusPending && r.CAUserID == f.ca.ID
	})).Return(nil)
	f.filingRepo.On("UpdateStatus", mock.Anything, mock.MatchedBy(func(fl *domain.Filing) bool {
		return fl.Status == domain.FilingStatusUnderReview
	})).Return(nil)
	f.email.On("SendReviewRequested", mock.Anything, mock.Anything).Return(nil)

	req, err := f.svc.Request(context.Background(), f.taxpayer.ID, service.RequestReviewInput{
		FilingID: f.filing.ID,
		CAUserID: f.ca.ID,
		Message:  "Please check my 80C claims",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ReviewStatusPending, req.Status)
	f.reviewRepo.AssertExpectations(t)
	f.filingRepo.AssertExpectations(t)
}

func TestRequestReview_DraftFilingCannotBeReviewed(t *testing.T) {
	f := newReviewFixture(t)
	f.filing.Status = domain.FilingStatusDraft
	f.filingRepo.On("GetByID", mock.Anything, f.filing.ID).Return(f.filing, nil)

	_, err := f.svc.Request(context.Background(), f.taxpayer.ID, service.RequestReviewInput{
		FilingID: f.filing.ID,
		CAUserID: f.ca.ID,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestRequestReview_UnavailableCA(t *testing.T) {
	f := newReviewFixture(t)
	f.filingRepo.On("GetByID", mock.Anything, f.filing.ID).Return(f.filing, nil)
	f.userRepo.On("GetByID", mock.Anything, f.ca.ID).Return(f.ca, nil)
	f.profileRepo.On("GetByUserID", mock.Anything, f.ca.ID).Return(&domain.CAProfile{
		UserID:      f.ca.ID,
		IsAvailable: false,
	}, nil)

	_, err := f.svc.Request(context.Background(), f.taxpayer.ID, service.RequestReviewInput{
		FilingID: f.filing.ID,
		CAUserID: f.ca.ID,
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestRequestReview_SomeoneElsesFiling(t *testing.T) {
	f := newReviewFixture(t)
	f.filingRepo.On("GetByID", mock.Anything, f.filing.ID).Return(f.filing, nil)

	_, err := f.svc.Request(context.Background(), uuid.New(), service.RequestReviewInput{
		FilingID: f.filing.ID,
		CAUserID: f.ca.ID,
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func pendingRequest(f *reviewFixture) *domain.ReviewRequest {
	return &domain.ReviewRequest{
		ID:         uuid.New(),
		FilingID:   f.filing.ID,
		TaxpayerID: f.taxpayer.ID,
		CAUserID:   f.ca.ID,
		Status:     domain.ReviewStatusPending,
	}
}

func TestAcceptReview(t *testing.T) {
	f := newReviewFixture(t)
	req := pendingRequest(f)
	f.filing.Status = domain.FilingStatusUnderReview

	f.reviewRepo.On("GetByID", mock.Anything, req.ID).Return(req, nil)
	f.reviewRepo.On("Update", mock.Anything, req).Return(nil)
	f.filingRepo.On("GetByID", mock.Anything, f.filing.ID).Return(f.filing, nil)
	f.stubNotifyUsers()
	f.email.On("SendReviewAccepted", mock.Anything, mock.Anything).Return(nil)

	accepted, err := f.svc.Accept(context.Background(), f.ca.ID, req.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReviewStatusAccepted, accepted.Status)
	require.NotNil(t, accepted.RespondedAt)
}

func TestAcceptReview_WrongCA(t *testing.T) {
	f := newReviewFixture(t)
	req := pendingRequest(f)

	f.reviewRepo.On("GetByID", mock.Anything, req.ID).Return(req, nil)

	_, err := f.svc.Accept(context.Background(), uuid.New(), req.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestAcceptReview_NotPending(t *testing.T) {
	f := newReviewFixture(t)
	req := pendingRequest(f)
	req.Status = domain.ReviewStatusAccepted

	f.reviewRepo.On("GetByID", mock.Anything, req.ID).Return(req, nil)

	_, err := f.svc.Accept(context.Background(), f.ca.ID, req.ID)
	assert.ErrorIs(t, err, domain.ErrReviewNotPending)
}

func TestRejectReview_HandsFilingBackToTaxpayer(t *testing.T) {
	f := newReviewFixture(t)
	req := pendingRequest(f)
	f.filing.Status = domain.FilingStatusUnderReview

	f.reviewRepo.On("GetByID", mock.Anything, req.ID).Return(req, nil)
	f.reviewRepo.On("Update", mock.Anything, req).Return(nil)
	f.filingRepo.On("GetByID", mock.Anything, f.filing.ID).Return(f.filing, nil)
	f.filingRepo.On("UpdateStatus", mock.Anything, mock.MatchedBy(func(fl *domain.Filing) bool {
		return fl.Status == domain.FilingStatusSubmitted
	})).Return(nil)
	f.stubNotifyUsers()
	f.email.On("SendReviewRejected", mock.Anything, mock.Anything).Return(nil)

	rejected, err := f.svc.Reject(context.Background(), f.ca.ID, req.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReviewStatusRejected, rejected.Status)
	f.filingRepo.AssertExpectations(t)
}

func TestCompleteReview(t *testing.T) {
	f := newReviewFixture(t)
	req := pendingRequest(f)
	req.Status = domain.ReviewStatusAccepted
	f.filing.Status = domain.FilingStatusUnderReview

	f.reviewRepo.On("GetByID", mock.Anything, req.ID).Return(req, nil)
	f.reviewRepo.On("Update", mock.Anything, req).Return(nil)
	f.filingRepo.On("GetByID", mock.Anything, f.filing.ID).Return(f.filing, nil)
	f.filingRepo.On("UpdateStatus", mock.Anything, mock.MatchedBy(func(fl *domain.Filing) bool {
		return fl.Status == domain.FilingStatusReviewed
	})).Return(nil)
	f.stubNotifyUsers()
	f.email.On("SendReviewCompleted", mock.Anything, mock.Anything).Return(nil)

	completed, err := f.svc.Complete(context.Background(), f.ca.ID, req.ID, service.CompleteReviewInput{
		Notes: "80C proofs verified, return looks correct.",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ReviewStatusCompleted, completed.Status)
	assert.Equal(t, "80C proofs verified, return looks correct.", completed.CANotes)
	require.NotNil(t, completed.CompletedAt)
}

func TestCompleteReview_RequiresAcceptedState(t *testing.T) {
	f := newReviewFixture(t)
	req := pendingRequest(f)

	f.reviewRepo.On("GetByID", mock.Anything, req.ID).Return(req, nil)

	_, err := f.svc.Complete(context.Background(), f.ca.ID, req.ID, service.CompleteReviewInput{Notes: "n"})
	assert.ErrorIs(t, err, domain.ErrReviewNotAccepted)
}

func TestFilingForReview(t *testing.T) {
	f := newReviewFixture(t)
	req := pendingRequest(f)

	t.Run("pending request grants no access", func(t *testing.T) {
		f.reviewRepo.On("GetByID", mock.Anything, req.ID).Return(req, nil).Once()

		_, err := f.svc.FilingForReview(context.Background(), f.ca.ID, req.ID)
		assert.ErrorIs(t, err, domain.ErrReviewNotAccepted)
	})

	t.Run("accepted request grants read access", func(t *testing.T) {
		req.Status = domain.ReviewStatusAccepted
		f.reviewRepo.On("GetByID", mock.Anything, req.ID).Return(req, nil).Once()
		f.filingRepo.On("GetByID", mock.Anything, f.filing.ID).Return(f.filing, nil)

		filing, err := f.svc.FilingForReview(context.Background(), f.ca.ID, req.ID)
		require.NoError(t, err)
		assert.Equal(t, f.filing.ID, filing.ID)
	})
}
