package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// User represents an authenticated user of the platform.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FullName     string    `db:"full_name" json:"full_name"`
	Role         UserRole  `db:"role" json:"role"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// CAProfile holds the public marketplace profile of a chartered accountant.
// Exactly one profile exists per user with the ca role.
type CAProfile struct {
	ID               uuid.UUID       `db:"id" json:"id"`
	UserID           uuid.UUID       `db:"user_id" json:"user_id"`
	MembershipNumber string          `db:"membership_number" json:"membership_number"`
	FirmName         string          `db:"firm_name" json:"firm_name"`
	City             string          `db:"city" json:"city"`
	State            string          `db:"state" json:"state"`
	ExperienceYears  int             `db:"experience_years" json:"experience_years"`
	Specialization   string          `db:"specialization" json:"specialization"`
	Bio              string          `db:"bio" json:"bio"`
	ReviewFee        decimal.Decimal `db:"review_fee" json:"review_fee"`
	IsAvailable      bool            `db:"is_available" json:"is_available"`
	CreatedAt        time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time       `db:"updated_at" json:"updated_at"`
}

// Filing represents one income tax return for a user and assessment year.
// Input holds the wizard data as JSONB; ValidationResults holds the latest
// validation report, also as JSONB.
type Filing struct {
	ID                uuid.UUID       `db:"id" json:"id"`
	UserID            uuid.UUID       `db:"user_id" json:"user_id"`
	AssessmentYear    string          `db:"assessment_year" json:"assessment_year"`
	TaxRegime         string          `db:"tax_regime" json:"tax_regime"`
	Status            FilingStatus    `db:"status" json:"status"`
	CurrentStep       int             `db:"current_step" json:"current_step"`
	Input             json.RawMessage `db:"input" json:"input"`
	ValidationResults json.RawMessage `db:"validation_results" json:"validation_results"`
	SubmittedAt       *time.Time      `db:"submitted_at" json:"submitted_at"`
	FiledAt           *time.Time      `db:"filed_at" json:"filed_at"`
	CreatedAt         time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time       `db:"updated_at" json:"updated_at"`
}

// ReviewRequest tracks a taxpayer asking a CA to review a filing.
type ReviewRequest struct {
	ID          uuid.UUID    `db:"id" json:"id"`
	FilingID    uuid.UUID    `db:"filing_id" json:"filing_id"`
	TaxpayerID  uuid.UUID    `db:"taxpayer_id" json:"taxpayer_id"`
	CAUserID    uuid.UUID    `db:"ca_user_id" json:"ca_user_id"`
	Status      ReviewStatus `db:"status" json:"status"`
	Message     string       `db:"message" json:"message"`
	CANotes     string       `db:"ca_notes" json:"ca_notes"`
	RespondedAt *time.Time   `db:"responded_at" json:"responded_at"`
	CompletedAt *time.Time   `db:"completed_at" json:"completed_at"`
	CreatedAt   time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time    `db:"updated_at" json:"updated_at"`
}

// FileMeta stores metadata about a supporting document uploaded for a filing,
// such as a Form 16 or an investment proof.
type FileMeta struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	FilingID     uuid.UUID  `db:"filing_id" json:"filing_id"`
	UploadedBy   uuid.UUID  `db:"uploaded_by" json:"uploaded_by"`
	FileName     string     `db:"file_name" json:"file_name"`
	OriginalName string     `db:"original_name" json:"original_name"`
	FileType     FileType   `db:"file_type" json:"file_type"`
	FileSize     int64      `db:"file_size" json:"file_size"`
	S3Bucket     string     `db:"s3_bucket" json:"s3_bucket"`
	S3Key        string     `db:"s3_key" json:"s3_key"`
	ContentType  string     `db:"content_type" json:"content_type"`
	Status       FileStatus `db:"status" json:"status"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}
