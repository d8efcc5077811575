package domain

// FileType represents the allowed file types for upload.
type FileType string

const (
	FileTypePDF FileType = "pdf"
	FileTypeJPG FileType = "jpg"
	FileTypePNG FileType = "png"
)

// AllowedFileTypes maps FileType to its MIME content type.
var AllowedFileTypes = map[FileType]string{
	FileTypePDF: "application/pdf",
	FileTypeJPG: "image/jpeg",
	FileTypePNG: "image/png",
}

// AllowedContentTypes maps MIME content types back to FileType.
var AllowedContentTypes = map[string]FileType{
	"application/pdf": FileTypePDF,
	"image/jpeg":      FileTypeJPG,
	"image/png":       FileTypePNG,
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"pdf":  FileTypePDF,
	"jpg":  FileTypeJPG,
	"jpeg": FileTypeJPG,
	"png":  FileTypePNG,
}

// UserRole defines the platform role of a user.
type UserRole string

const (
	RoleTaxpayer UserRole = "taxpayer"
	RoleCA       UserRole = "ca"
	RoleAdmin    UserRole = "admin"
)

// ValidUserRoles lists the roles accepted at registration.
var ValidUserRoles = map[UserRole]bool{
	RoleTaxpayer: true,
	RoleCA:       true,
	RoleAdmin:    true,
}

// FilingStatus represents the lifecycle of a tax filing.
type FilingStatus string

const (
	FilingStatusDraft       FilingStatus = "draft"
	FilingStatusSubmitted   FilingStatus = "submitted"
	FilingStatusUnderReview FilingStatus = "under_review"
	FilingStatusReviewed    FilingStatus = "reviewed"
	FilingStatusFiled       FilingStatus = "filed"
)

// filingTransitions defines which status changes are allowed.
var filingTransitions = map[FilingStatus][]FilingStatus{
	FilingStatusDraft:       {FilingStatusSubmitted},
	FilingStatusSubmitted:   {FilingStatusUnderReview, FilingStatusFiled},
	FilingStatusUnderReview: {FilingStatusReviewed, FilingStatusSubmitted},
	FilingStatusReviewed:    {FilingStatusFiled},
}

// CanTransition reports whether a filing may move from one status to another.
func (s FilingStatus) CanTransition(to FilingStatus) bool {
	for _, next := range filingTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// ReviewStatus represents the lifecycle of a CA review request.
type ReviewStatus string

const (
	ReviewStatusPending   ReviewStatus = "pending"
	ReviewStatusAccepted  ReviewStatus = "accepted"
	ReviewStatusRejected  ReviewStatus = "rejected"
	ReviewStatusCompleted ReviewStatus = "completed"
)

// Valid reports whether the review status is a known value.
func (s ReviewStatus) Valid() bool {
	switch s {
	case ReviewStatusPending, ReviewStatusAccepted, ReviewStatusRejected, ReviewStatusCompleted:
		return true
	}
	return false
}

// ValidationSeverity indicates how a failed validation rule is treated.
type ValidationSeverity string

const (
	ValidationSeverityError   ValidationSeverity = "error"
	ValidationSeverityWarning ValidationSeverity = "warning"
)

// ValidationRuleType categorizes validation rules.
type ValidationRuleType string

const (
	ValidationRuleRegex    ValidationRuleType = "regex"
	ValidationRuleRequired ValidationRuleType = "required"
	ValidationRuleLogical  ValidationRuleType = "logical"
)

// ValidationStatus summarizes the outcome of running all rules on a filing.
type ValidationStatus string

const (
	ValidationStatusValid   ValidationStatus = "valid"
	ValidationStatusWarning ValidationStatus = "warning"
	ValidationStatusInvalid ValidationStatus = "invalid"
)

// FileStatus represents the lifecycle of an uploaded file.
type FileStatus string

const (
	FileStatusPending  FileStatus = "pending"
	FileStatusUploaded FileStatus = "uploaded"
	FileStatusFailed   FileStatus = "failed"
	FileStatusDeleted  FileStatus = "deleted"
)
