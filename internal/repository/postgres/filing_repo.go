package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"taxsage/internal/domain"
	"taxsage/internal/port"
)

type filingRepo struct {
	db *sqlx.DB
}

// NewFilingRepo creates a new PostgreSQL-backed FilingRepository.
func NewFilingRepo(db *sqlx.DB) port.FilingRepository {
	return &filingRepo{db: db}
}

func (r *filingRepo) Create(ctx context.Context, filing *domain.Filing) error {
	filing.ID = uuid.New()
	now := time.Now().UTC()
	filing.CreatedAt = now
	filing.UpdatedAt = now

	query := `INSERT INTO filings (id, user_id, assessment_year, tax_regime, status, current_step,
		input, validation_results, submitted_at, filed_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.db.ExecContext(ctx, query,
		filing.ID, filing.UserID, filing.AssessmentYear, filing.TaxRegime,
		filing.Status, filing.CurrentStep, filing.Input, filing.ValidationResults,
		filing.SubmittedAt, filing.FiledAt, filing.CreatedAt, filing.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return domain.ErrDuplicateFiling
		}
		return fmt.Errorf("filingRepo.Create: %w", err)
	}
	return nil
}

func (r *filingRepo) GetByID(ctx context.Context, filingID uuid.UUID) (*domain.Filing, error) {
	var filing domain.Filing
	err := r.db.GetContext(ctx, &filing, "SELECT * FROM filings WHERE id = $1", filingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("filingRepo.GetByID: %w", err)
	}
	return &filing, nil
}

func (r *filingRepo) GetByUserAndYear(ctx context.Context, userID uuid.UUID, assessmentYear string) (*domain.Filing, error) {
	var filing domain.Filing
	err := r.db.GetContext(ctx, &filing,
		"SELECT * FROM filings WHERE user_id = $1 AND assessment_year = $2", userID, assessmentYear)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("filingRepo.GetByUserAndYear: %w", err)
	}
	return &filing, nil
}

func (r *filingRepo) ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.Filing, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM filings WHERE user_id = $1", userID)
	if err != nil {
		return nil, 0, fmt.Errorf("filingRepo.ListByUser count: %w", err)
	}

	var filings []domain.Filing
	err = r.db.SelectContext(ctx, &filings,
		"SELECT * FROM filings WHERE user_id = $1 ORDER BY assessment_year DESC LIMIT $2 OFFSET $3",
		userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("filingRepo.ListByUser: %w", err)
	}
	return filings, total, nil
}

func (r *filingRepo) UpdateInput(ctx context.Context, filing *domain.Filing) error {
	filing.UpdatedAt = time.Now().UTC()
	query := `UPDATE filings SET tax_regime = $1, current_step = $2, input = $3, updated_at = $4
		WHERE id = $5`
	result, err := r.db.ExecContext(ctx, query,
		filing.TaxRegime, filing.CurrentStep, filing.Input, filing.UpdatedAt, filing.ID)
	if err != nil {
		return fmt.Errorf("filingRepo.UpdateInput: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *filingRepo) UpdateStatus(ctx context.Context, filing *domain.Filing) error {
	filing.UpdatedAt = time.Now().UTC()
	query := `UPDATE filings SET status = $1, submitted_at = $2, filed_at = $3, updated_at = $4
		WHERE id = $5`
	result, err := r.db.ExecContext(ctx, query,
		filing.Status, filing.SubmittedAt, filing.FiledAt, filing.UpdatedAt, filing.ID)
	if err != nil {
		return fmt.Errorf("filingRepo.UpdateStatus: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *filingRepo) UpdateValidationResults(ctx context.Context, filing *domain.Filing) error {
	filing.UpdatedAt = time.Now().UTC()
	query := `UPDATE filings SET validation_results = $1, updated_at = $2 WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query,
		filing.ValidationResults, filing.UpdatedAt, filing.ID)
	if err != nil {
		return fmt.Errorf("filingRepo.UpdateValidationResults: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *filingRepo) Delete(ctx context.Context, filingID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM filings WHERE id = $1", filingID)
	if err != nil {
		return fmt.Errorf("filingRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
