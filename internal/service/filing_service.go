package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"time"

	"github.com/google/uuid"

	"taxsage/internal/domain"
	"taxsage/internal/itr"
	"taxsage/internal/port"
	"taxsage/internal/validator"
)

// Wizard steps: 1 personal info, 2 income, 3 deductions, 4 taxes paid,
// 5 regime selection, 6 review and submit.
const maxWizardStep = 6

var assessmentYearPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

// CreateFilingInput is the DTO for starting a new draft.
type CreateFilingInput struct {
	AssessmentYear string `json:"assessment_year" binding:"required"`
	TaxRegime      string `json:"tax_regime" binding:"omitempty,oneof=old new"`
}

// UpdateFilingInput is the DTO for saving wizard progress.
type UpdateFilingInput struct {
	CurrentStep int             `json:"current_step" binding:"required,min=1,max=6"`
	Input       itr.FilingInput `json:"input"`
}

// ComputationResult bundles the aggregation and tax outputs for one filing.
type ComputationResult struct {
	AssessmentYear string                   `json:"assessment_year"`
	TaxRegime      itr.TaxRegime            `json:"tax_regime"`
	Totals         itr.ComputedTotals       `json:"totals"`
	Tax            itr.TaxComputationResult `json:"tax"`
}

// FilingService manages the filing lifecycle from draft to filed.
type FilingService interface {
	CreateDraft(ctx context.Context, userID uuid.UUID, input CreateFilingInput) (*domain.Filing, error)
	GetByID(ctx context.Context, userID uuid.UUID, filingID uuid.UUID) (*domain.Filing, error)
	ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.Filing, int, error)
	UpdateInput(ctx context.Context, userID uuid.UUID, filingID uuid.UUID, input UpdateFilingInput) (*domain.Filing, error)
	Compute(ctx context.Context, userID uuid.UUID, filingID uuid.UUID) (*ComputationResult, error)
	Validate(ctx context.Context, userID uuid.UUID, filingID uuid.UUID) (*validator.Report, error)
	ExportITR(ctx context.Context, userID uuid.UUID, filingID uuid.UUID) (*itr.ITRDocument, error)
	Submit(ctx context.Context, userID uuid.UUID, filingID uuid.UUID) (*domain.Filing, error)
	MarkFiled(ctx context.Context, userID uuid.UUID, filingID uuid.UUID) (*domain.Filing, error)
	Delete(ctx context.Context, userID uuid.UUID, filingID uuid.UUID) error
}

type filingService struct {
	filingRepo port.FilingRepository
	engine     *validator.Engine
}

// NewFilingService creates a new FilingService implementation.
func NewFilingService(filingRepo port.FilingRepository, engine *validator.Engine) FilingService {
	return &filingService{filingRepo: filingRepo, engine: engine}
}

// ValidAssessmentYear reports whether the year is well formed, e.g. "2024-25"
// where the suffix is the following calendar year.
func ValidAssessmentYear(year string) bool {
	if !assessmentYearPattern.MatchString(year) {
		return false
	}
	start, _ := strconv.Atoi(year[:4])
	end, _ := strconv.Atoi(year[5:])
	return (start+1)%100 == end
}

func (s *filingService) CreateDraft(ctx context.Context, userID uuid.UUID, input CreateFilingInput) (*domain.Filing, error) {
	if !ValidAssessmentYear(input.AssessmentYear) {
		return nil, domain.ErrInvalidAssessmentYear
	}

	regime := input.TaxRegime
	if regime == "" {
		regime = string(itr.RegimeNew)
	}

	emptyInput, err := json.Marshal(itr.FilingInput{TaxRegime: itr.TaxRegime(regime)})
	if err != nil {
		return nil, fmt.Errorf("marshaling empty input: %w", err)
	}

	filing := &domain.Filing{
		UserID:            userID,
		AssessmentYear:    input.AssessmentYear,
		TaxRegime:         regime,
		Status:            domain.FilingStatusDraft,
		CurrentStep:       1,
		Input:             emptyInput,
		ValidationResults: json.RawMessage("null"),
	}
	if err := s.filingRepo.Create(ctx, filing); err != nil {
		return nil, err // ErrDuplicateFiling propagates naturally
	}
	return filing, nil
}

func (s *filingService) GetByID(ctx context.Context, userID uuid.UUID, filingID uuid.UUID) (*domain.Filing, error) {
	return s.getOwned(ctx, userID, filingID)
}

func (s *filingService) ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.Filing, int, error) {
	return s.filingRepo.ListByUser(ctx, userID, offset, limit)
}

func (s *filingService) UpdateInput(ctx context.Context, userID uuid.UUID, filingID uuid.UUID, input UpdateFilingInput) (*domain.Filing, error) {
	filing, err := s.getOwned(ctx, userID, filingID)
	if err != nil {
		return nil, err
	}
	if filing.Status != domain.FilingStatusDraft {
		return nil, domain.ErrFilingNotEditable
	}
	if input.CurrentStep < 1 || input.CurrentStep > maxWizardStep {
		return nil, fmt.Errorf("step %d out of range: %w", input.CurrentStep, domain.ErrFilingNotEditable)
	}

	raw, err := json.Marshal(input.Input)
	if err != nil {
		return nil, fmt.Errorf("marshaling filing input: %w", err)
	}

	filing.CurrentStep = input.CurrentStep
	filing.Input = raw
	if input.Input.TaxRegime.Valid() {
		filing.TaxRegime = string(input.Input.TaxRegime)
	}
	if err := s.filingRepo.UpdateInput(ctx, filing); err != nil {
		return nil, err
	}
	return filing, nil
}

func (s *filingService) Compute(ctx context.Context, userID uuid.UUID, filingID uuid.UUID) (*ComputationResult, error) {
	filing, err := s.getOwned(ctx, userID, filingID)
	if err != nil {
		return nil, err
	}
	in, err := decodeInput(filing)
	if err != nil {
		return nil, err
	}

	totals := itr.Aggregate(*in)
	result := itr.Compute(totals, in.TaxRegime)
	return &ComputationResult{
		AssessmentYear: filing.AssessmentYear,
		TaxRegime:      in.TaxRegime,
		Totals:         totals,
		Tax:            result,
	}, nil
}

func (s *filingService) Validate(ctx context.Context, userID uuid.UUID, filingID uuid.UUID) (*validator.Report, error) {
	filing, err := s.getOwned(ctx, userID, filingID)
	if err != nil {
		return nil, err
	}
	return s.validateAndStore(ctx, filing)
}

func (s *filingService) ExportITR(ctx context.Context, userID uuid.UUID, filingID uuid.UUID) (*itr.ITRDocument, error) {
	filing, err := s.getOwned(ctx, userID, filingID)
	if err != nil {
		return nil, err
	}

	report, err := s.validateAndStore(ctx, filing)
	if err != nil {
		return nil, err
	}
	if report.HasErrors() {
		return nil, domain.ErrValidationFailed
	}

	in, err := decodeInput(filing)
	if err != nil {
		return nil, err
	}
	totals := itr.Aggregate(*in)
	result := itr.Compute(totals, in.TaxRegime)
	doc := itr.BuildITR(*in, totals, result, filing.AssessmentYear)
	return &doc, nil
}

func (s *filingService) Submit(ctx context.Context, userID uuid.UUID, filingID uuid.UUID) (*domain.Filing, error) {
	filing, err := s.getOwned(ctx, userID, filingID)
	if err != nil {
		return nil, err
	}
	if !filing.Status.CanTransition(domain.FilingStatusSubmitted) {
		return nil, domain.ErrInvalidTransition
	}

	report, err := s.validateAndStore(ctx, filing)
	if err != nil {
		return nil, err
	}
	if report.HasErrors() {
		return nil, domain.ErrValidationFailed
	}

	now := time.Now().UTC()
	filing.Status = domain.FilingStatusSubmitted
	filing.SubmittedAt = &now
	if err := s.filingRepo.UpdateStatus(ctx, filing); err != nil {
		return nil, err
	}
	log.Printf("filingService.Submit: filing %s submitted for AY %s", filing.ID, filing.AssessmentYear)
	return filing, nil
}

func (s *filingService) MarkFiled(ctx context.Context, userID uuid.UUID, filingID uuid.UUID) (*domain.Filing, error) {
	filing, err := s.getOwned(ctx, userID, filingID)
	if err != nil {
		return nil, err
	}
	if !filing.Status.CanTransition(domain.FilingStatusFiled) {
		return nil, domain.ErrInvalidTransition
	}

	now := time.Now().UTC()
	filing.Status = domain.FilingStatusFiled
	filing.FiledAt = &now
	if err := s.filingRepo.UpdateStatus(ctx, filing); err != nil {
		return nil, err
	}
	log.Printf("filingService.MarkFiled: filing %s marked filed for AY %s", filing.ID, filing.AssessmentYear)
	return filing, nil
}

func (s *filingService) Delete(ctx context.Context, userID uuid.UUID, filingID uuid.UUID) error {
	filing, err := s.getOwned(ctx, userID, filingID)
	if err != nil {
		return err
	}
	// Only drafts can be discarded.
	if filing.Status != domain.FilingStatusDraft {
		return domain.ErrFilingNotEditable
	}
	return s.filingRepo.Delete(ctx, filing.ID)
}

func (s *filingService) getOwned(ctx context.Context, userID uuid.UUID, filingID uuid.UUID) (*domain.Filing, error) {
	filing, err := s.filingRepo.GetByID(ctx, filingID)
	if err != nil {
		return nil, err
	}
	if filing.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return filing, nil
}

func (s *filingService) validateAndStore(ctx context.Context, filing *domain.Filing) (*validator.Report, error) {
	in, err := decodeInput(filing)
	if err != nil {
		return nil, err
	}

	report := s.engine.Validate(ctx, in)
	raw, err := json.Marshal(report)
	if err != nil {
		return nil, fmt.Errorf("marshaling validation report: %w", err)
	}
	filing.ValidationResults = raw
	if err := s.filingRepo.UpdateValidationResults(ctx, filing); err != nil {
		return nil, err
	}
	return &report, nil
}

func decodeInput(filing *domain.Filing) (*itr.FilingInput, error) {
	var in itr.FilingInput
	if len(filing.Input) > 0 {
		if err := json.Unmarshal(filing.Input, &in); err != nil {
			return nil, fmt.Errorf("unmarshaling filing input: %w", err)
		}
	}
	if !in.TaxRegime.Valid() {
		in.TaxRegime = itr.TaxRegime(filing.TaxRegime)
	}
	return &in, nil
}
