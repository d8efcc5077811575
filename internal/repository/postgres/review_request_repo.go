package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"taxsage/internal/domain"
	"taxsage/internal/port"
)

type reviewRequestRepo struct {
	db *sqlx.DB
}

// NewReviewRequestRepo creates a new PostgreSQL-backed ReviewRequestRepository.
func NewReviewRequestRepo(db *sqlx.DB) port.ReviewRequestRepository {
	return &reviewRequestRepo{db: db}
}

func (r *reviewRequestRepo) Create(ctx context.Context, req *domain.ReviewRequest) error {
	req.ID = uuid.New()
	now := time.Now().UTC()
	req.CreatedAt = now
	req.UpdatedAt = now

	query := `INSERT INTO review_requests (id, filing_id, taxpayer_id, ca_user_id, status, message,
		ca_notes, responded_at, completed_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.ExecContext(ctx, query,
		req.ID, req.FilingID, req.TaxpayerID, req.CAUserID, req.Status, req.Message,
		req.CANotes, req.RespondedAt, req.CompletedAt, req.CreatedAt, req.UpdatedAt)
	if err != nil {
		return fmt.Errorf("reviewRequestRepo.Create: %w", err)
	}
	return nil
}

func (r *reviewRequestRepo) GetByID(ctx context.Context, reqID uuid.UUID) (*domain.ReviewRequest, error) {
	var req domain.ReviewRequest
	err := r.db.GetContext(ctx, &req, "SELECT * FROM review_requests WHERE id = $1", reqID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("reviewRequestRepo.GetByID: %w", err)
	}
	return &req, nil
}

func (r *reviewRequestRepo) ListByTaxpayer(ctx context.Context, taxpayerID uuid.UUID, offset, limit int) ([]domain.ReviewRequest, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM review_requests WHERE taxpayer_id = $1", taxpayerID)
	if err != nil {
		return nil, 0, fmt.Errorf("reviewRequestRepo.ListByTaxpayer count: %w", err)
	}

	var reqs []domain.ReviewRequest
	err = r.db.SelectContext(ctx, &reqs,
		"SELECT * FROM review_requests WHERE taxpayer_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3",
		taxpayerID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("reviewRequestRepo.ListByTaxpayer: %w", err)
	}
	return reqs, total, nil
}

// ListByCA filters by status when one is given; an empty status lists all
// requests assigned to the CA.
func (r *reviewRequestRepo) ListByCA(ctx context.Context, caUserID uuid.UUID, status domain.ReviewStatus, offset, limit int) ([]domain.ReviewRequest, int, error) {
	countQuery := "SELECT COUNT(*) FROM review_requests WHERE ca_user_id = $1"
	listQuery := "SELECT * FROM review_requests WHERE ca_user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3"
	countArgs := []interface{}{caUserID}
	listArgs := []interface{}{caUserID, limit, offset}

	if status != "" {
		countQuery = "SELECT COUNT(*) FROM review_requests WHERE ca_user_id = $1 AND status = $2"
		listQuery = "SELECT * FROM review_requests WHERE ca_user_id = $1 AND status = $2 ORDER BY created_at DESC LIMIT $3 OFFSET $4"
		countArgs = []interface{}{caUserID, status}
		listArgs = []interface{}{caUserID, status, limit, offset}
	}

	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, countArgs...); err != nil {
		return nil, 0, fmt.Errorf("reviewRequestRepo.ListByCA count: %w", err)
	}

	var reqs []domain.ReviewRequest
	if err := r.db.SelectContext(ctx, &reqs, listQuery, listArgs...); err != nil {
		return nil, 0, fmt.Errorf("reviewRequestRepo.ListByCA: %w", err)
	}
	return reqs, total, nil
}

func (r *reviewRequestRepo) Update(ctx context.Context, req *domain.ReviewRequest) error {
	req.UpdatedAt = time.Now().UTC()
	query := `UPDATE review_requests SET status = $1, ca_notes = $2, responded_at = $3,
		completed_at = $4, updated_at = $5 WHERE id = $6`
	result, err := r.db.ExecContext(ctx, query,
		req.Status, req.CANotes, req.RespondedAt, req.CompletedAt, req.UpdatedAt, req.ID)
	if err != nil {
		return fmt.Errorf("reviewRequestRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
