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

type caProfileRepo struct {
	db *sqlx.DB
}

// NewCAProfileRepo creates a new PostgreSQL-backed CAProfileRepository.
func NewCAProfileRepo(db *sqlx.DB) port.CAProfileRepository {
	return &caProfileRepo{db: db}
}

func (r *caProfileRepo) Create(ctx context.Context, profile *domain.CAProfile) error {
	profile.ID = uuid.New()
	now := time.Now().UTC()
	profile.CreatedAt = now
	profile.UpdatedAt = now

	query := `INSERT INTO ca_profiles (id, user_id, membership_number, firm_name, city, state,
		experience_years, specialization, bio, review_fee, is_available, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := r.db.ExecContext(ctx, query,
		profile.ID, profile.UserID, profile.MembershipNumber, profile.FirmName,
		profile.City, profile.State, profile.ExperienceYears, profile.Specialization,
		profile.Bio, profile.ReviewFee, profile.IsAvailable, profile.CreatedAt, profile.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return domain.ErrDuplicateMembership
		}
		return fmt.Errorf("caProfileRepo.Create: %w", err)
	}
	return nil
}

func (r *caProfileRepo) GetByID(ctx context.Context, profileID uuid.UUID) (*domain.CAProfile, error) {
	var profile domain.CAProfile
	err := r.db.GetContext(ctx, &profile, "SELECT * FROM ca_profiles WHERE id = $1", profileID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("caProfileRepo.GetByID: %w", err)
	}
	return &profile, nil
}

func (r *caProfileRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.CAProfile, error) {
	var profile domain.CAProfile
	err := r.db.GetContext(ctx, &profile, "SELECT * FROM ca_profiles WHERE user_id = $1", userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("caProfileRepo.GetByUserID: %w", err)
	}
	return &profile, nil
}

// List applies marketplace filters. Filters build up a WHERE clause
// incrementally so the same query serves every filter combination.
func (r *caProfileRepo) List(ctx context.Context, filters port.CAProfileFilters, offset, limit int) ([]domain.CAProfile, int, error) {
	where := []string{"1=1"}
	args := []interface{}{}
	idx := 1

	if filters.City != "" {
		where = append(where, fmt.Sprintf("LOWER(city) = LOWER($%d)", idx))
		args = append(args, filters.City)
		idx++
	}
	if filters.State != "" {
		where = append(where, fmt.Sprintf("LOWER(state) = LOWER($%d)", idx))
		args = append(args, filters.State)
		idx++
	}
	if filters.Specialization != "" {
		where = append(where, fmt.Sprintf("specialization ILIKE $%d", idx))
		args = append(args, "%"+filters.Specialization+"%")
		idx++
	}
	if filters.MinExperience > 0 {
		where = append(where, fmt.Sprintf("experience_years >= $%d", idx))
		args = append(args, filters.MinExperience)
		idx++
	}
	if filters.OnlyAvailable {
		where = append(where, "is_available = TRUE")
	}

	whereClause := strings.Join(where, " AND ")

	var total int
	countQuery := "SELECT COUNT(*) FROM ca_profiles WHERE " + whereClause
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("caProfileRepo.List count: %w", err)
	}

	listQuery := fmt.Sprintf(
		"SELECT * FROM ca_profiles WHERE %s ORDER BY experience_years DESC, created_at DESC LIMIT $%d OFFSET $%d",
		whereClause, idx, idx+1)
	args = append(args, limit, offset)

	var profiles []domain.CAProfile
	if err := r.db.SelectContext(ctx, &profiles, listQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("caProfileRepo.List: %w", err)
	}
	return profiles, total, nil
}

func (r *caProfileRepo) Update(ctx context.Context, profile *domain.CAProfile) error {
	profile.UpdatedAt = time.Now().UTC()
	query := `UPDATE ca_profiles SET firm_name = $1, city = $2, state = $3, experience_years = $4,
		specialization = $5, bio = $6, review_fee = $7, is_available = $8, updated_at = $9
		WHERE id = $10`
	result, err := r.db.ExecContext(ctx, query,
		profile.FirmName, profile.City, profile.State, profile.ExperienceYears,
		profile.Specialization, profile.Bio, profile.ReviewFee, profile.IsAvailable,
		profile.UpdatedAt, profile.ID)
	if err != nil {
		return fmt.Errorf("caProfileRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *caProfileRepo) Delete(ctx context.Context, profileID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM ca_profiles WHERE id = $1", profileID)
	if err != nil {
		return fmt.Errorf("caProfileRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
