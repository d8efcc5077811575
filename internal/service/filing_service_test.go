package service_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"taxsage/internal/domain"
	"taxsage/internal/itr"
	"taxsage/internal/service"
	"taxsage/internal/validator"
	"taxsage/mocks"
)

func newFilingService(repo *mocks.MockFilingRepo) service.FilingService {
	return service.NewFilingService(repo, validator.NewEngine(validator.DefaultRegistry()))
}

func completeInput() itr.FilingInput {
	in := itr.FilingInput{
		PersonalInfo: itr.PersonalInfo{
			Name:        "Arjun Mehta",
			PAN:         "ABCDE1234F",
			DateOfBirth: "1988-04-12",
			Phone:       "9876543210",
			Email:       "arjun@example.com",
			Address: itr.Address{
				Street:  "14 Lakeview Road",
				City:    "Chennai",
				State:   "Tamil Nadu",
				Pincode: "600040",
			},
		},
		TaxRegime: itr.RegimeNew,
	}
	in.Income.Salary.Basic = decimal.NewFromInt(900000)
	in.Income.Salary.Allowances = decimal.NewFromInt(300000)
	in.TaxPaid.TDS = decimal.NewFromInt(90000)
	return in
}

func draftFiling(userID uuid.UUID, in itr.FilingInput) *domain.Filing {
	raw, _ := json.Marshal(in)
	return &domain.Filing{
		ID:                uuid.New(),
		UserID:            userID,
		AssessmentYear:    "2024-25",
		TaxRegime:         string(in.TaxRegime),
		Status:            domain.FilingStatusDraft,
		CurrentStep:       6,
		Input:             raw,
		ValidationResults: json.RawMessage("null"),
	}
}

func TestValidAssessmentYear(t *testing.T) {
	cases := []struct {
		year string
		want bool
	}{
		{"2024-25", true},
		{"2023-24", true},
		{"2099-00", true}, // century rollover
		{"2024-26", false},
		{"2024-24", false},
		{"202425", false},
		{"24-25", false},
		{"", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, service.ValidAssessmentYear(tc.year), "year %q", tc.year)
	}
}

func TestCreateDraft_RejectsMalformedYear(t *testing.T) {
	svc := newFilingService(new(mocks.MockFilingRepo))

	_, err := svc.CreateDraft(context.Background(), uuid.New(), service.CreateFilingInput{
		AssessmentYear: "2024-26",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidAssessmentYear)
}

func TestCreateDraft_DefaultsToNewRegime(t *testing.T) {
	repo := new(mocks.MockFilingRepo)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(f *domain.Filing) bool {
		return f.TaxRegime == "new" && f.Status == domain.FilingStatusDraft && f.CurrentStep == 1
	})).Return(nil)

	svc := newFilingService(repo)

	filing, err := svc.CreateDraft(context.Background(), uuid.New(), service.CreateFilingInput{
		AssessmentYear: "2024-25",
	})
	require.NoError(t, err)
	assert.Equal(t, "new", filing.TaxRegime)
	repo.AssertExpectations(t)
}

func TestGetByID_ForeignFilingIsForbidden(t *testing.T) {
	owner := uuid.New()
	filing := draftFiling(owner, completeInput())

	repo := new(mocks.MockFilingRepo)
	repo.On("GetByID", mock.Anything, filing.ID).Return(filing, nil)

	svc := newFilingService(repo)

	_, err := svc.GetByID(context.Background(), uuid.New(), filing.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestUpdateInput_NonDraftIsNotEditable(t *testing.T) {
	userID := uuid.New()
	filing := draftFiling(userID, completeInput())
	filing.Status = domain.FilingStatusSubmitted

	repo := new(mocks.MockFilingRepo)
	repo.On("GetByID", mock.Anything, filing.ID).Return(filing, nil)

	svc := newFilingService(repo)

	_, err := svc.UpdateInput(context.Background(), userID, filing.ID, service.UpdateFilingInput{
		CurrentStep: 2,
		Input:       completeInput(),
	})
	assert.ErrorIs(t, err, domain.ErrFilingNotEditable)
}

func TestUpdateInput_SyncsRegimeFromWizard(t *testing.T) {
	userID := uuid.New()
	filing := draftFiling(userID, completeInput())

	repo := new(mocks.MockFilingRepo)
	repo.On("GetByID", mock.Anything, filing.ID).Return(filing, nil)
	repo.On("UpdateInput", mock.Anything, filing).Return(nil)

	svc := newFilingService(repo)

	in := completeInput()
	in.TaxRegime = itr.RegimeOld
	updated, err := svc.UpdateInput(context.Background(), userID, filing.ID, service.UpdateFilingInput{
		CurrentStep: 5,
		Input:       in,
	})
	require.NoError(t, err)
	assert.Equal(t, "old", updated.TaxRegime)
	assert.Equal(t, 5, updated.CurrentStep)
}

func TestCompute_NewRegimeTotals(t *testing.T) {
	userID := uuid.New()
	filing := draftFiling(userID, completeInput())

	repo := new(mocks.MockFilingRepo)
	repo.On("GetByID", mock.Anything, filing.ID).Return(filing, nil)

	svc := newFilingService(repo)

	result, err := svc.Compute(context.Background(), userID, filing.ID)
	require.NoError(t, err)
	assert.Equal(t, "2024-25", result.AssessmentYear)
	assert.Equal(t, itr.RegimeNew, result.TaxRegime)
	// 1,200,000 gross salary with no chapter VI-A deductions claimed.
	assert.True(t, result.Totals.TaxableIncome.Equal(decimal.NewFromInt(1200000)),
		"taxable income %s", result.Totals.TaxableIncome)
	assert.True(t, result.Tax.TotalLiability.GreaterThan(decimal.Zero))
}

func TestSubmit_ValidationErrorsBlockSubmission(t *testing.T) {
	userID := uuid.New()
	in := completeInput()
	in.PersonalInfo.PAN = "not-a-pan"
	filing := draftFiling(userID, in)

	repo := new(mocks.MockFilingRepo)
	repo.On("GetByID", mock.Anything, filing.ID).Return(filing, nil)
	repo.On("UpdateValidationResults", mock.Anything, filing).Return(nil)

	svc := newFilingService(repo)

	_, err := svc.Submit(context.Background(), userID, filing.ID)
	assert.ErrorIs(t, err, domain.ErrValidationFailed)
	// The failed report is still persisted for the wizard to display.
	repo.AssertCalled(t, "UpdateValidationResults", mock.Anything, filing)
	repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything)
}

func TestSubmit_CleanDraftTransitions(t *testing.T) {
	userID := uuid.New()
	filing := draftFiling(userID, completeInput())

	repo := new(mocks.MockFilingRepo)
	repo.On("GetByID", mock.Anything, filing.ID).Return(filing, nil)
	repo.On("UpdateValidationResults", mock.Anything, filing).Return(nil)
	repo.On("UpdateStatus", mock.Anything, filing).Return(nil)

	svc := newFilingService(repo)

	submitted, err := svc.Submit(context.Background(), userID, filing.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.FilingStatusSubmitted, submitted.Status)
	require.NotNil(t, submitted.SubmittedAt)
	repo.AssertExpectations(t)
}

func TestSubmit_MissingPincodeStillSubmits(t *testing.T) {
	// An absent pincode is a warning, not an error, so it must not block
	// submission the way a malformed PAN does.
	userID := uuid.New()
	in := completeInput()
	in.PersonalInfo.Address.Pincode = ""
	filing := draftFiling(userID, in)

	repo := new(mocks.MockFilingRepo)
	repo.On("GetByID", mock.Anything, filing.ID).Return(filing, nil)
	repo.On("UpdateValidationResults", mock.Anything, filing).Return(nil)
	repo.On("UpdateStatus", mock.Anything, filing).Return(nil)

	svc := newFilingService(repo)

	submitted, err := svc.Submit(context.Background(), userID, filing.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.FilingStatusSubmitted, submitted.Status)
	repo.AssertExpectations(t)
}

func TestSubmit_AlreadySubmitted(t *testing.T) {
	userID := uuid.New()
	filing := draftFiling(userID, completeInput())
	filing.Status = domain.FilingStatusSubmitted

	repo := new(mocks.MockFilingRepo)
	repo.On("GetByID", mock.Anything, filing.ID).Return(filing, nil)

	svc := newFilingService(repo)

	_, err := svc.Submit(context.Background(), userID, filing.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestMarkFiled(t *testing.T) {
	userID := uuid.New()

	t.Run("from submitted", func(t *testing.T) {
		filing := draftFiling(userID, completeInput())
		filing.Status = domain.FilingStatusSubmitted

		repo := new(mocks.MockFilingRepo)
		repo.On("GetByID", mock.Anything, filing.ID).Return(filing, nil)
		repo.On("UpdateStatus", mock.Anything, filing).Return(nil)

		svc := newFilingService(repo)

		filed, err := svc.MarkFiled(context.Background(), userID, filing.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.FilingStatusFiled, filed.Status)
		require.NotNil(t, filed.FiledAt)
	})

	t.Run("from draft is invalid", func(t *testing.T) {
		filing := draftFiling(userID, completeInput())

		repo := new(mocks.MockFilingRepo)
		repo.On("GetByID", mock.Anything, filing.ID).Return(filing, nil)

		svc := newFilingService(repo)

		_, err := svc.MarkFiled(context.Background(), userID, filing.ID)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})
}

func TestExportITR_BuildsDocumentForCleanFiling(t *testing.T) {
	userID := uuid.New()
	filing := draftFiling(userID, completeInput())

	repo := new(mocks.MockFilingRepo)
	repo.On("GetByID", mock.Anything, filing.ID).Return(filing, nil)
	repo.On("UpdateValidationResults", mock.Anything, filing).Return(nil)

	svc := newFilingService(repo)

	doc, err := svc.ExportITR(context.Background(), userID, filing.ID)
	require.NoError(t, err)
	assert.Equal(t, "ABCDE1234F", doc.PersonalInfo.PAN)
	assert.Equal(t, "2024-25", doc.FilingStatus.AssessmentYear)
}

func TestDelete_OnlyDrafts(t *testing.T) {
	userID := uuid.New()
	filing := draftFiling(userID, completeInput())
	filing.Status = domain.FilingStatusFiled

	repo := new(mocks.MockFilingRepo)
	repo.On("GetByID", mock.Anything, filing.ID).Return(filing, nil)

	svc := newFilingService(repo)

	err := svc.Delete(context.Background(), userID, filing.ID)
	assert.ErrorIs(t, err, domain.ErrFilingNotEditable)
}
