package domain

import "errors"

var (
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrForbidden             = errors.New("forbidden")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrUserInactive          = errors.New("user is inactive")
	ErrDuplicateEmail        = errors.New("email already registered")
	ErrDuplicateFiling       = errors.New("filing already exists for this assessment year")
	ErrDuplicateMembership   = errors.New("membership number already registered")
	ErrInvalidTransition     = errors.New("filing status transition not allowed")
	ErrFilingNotEditable     = errors.New("filing can no longer be edited")
	ErrValidationFailed      = errors.New("filing failed validation")
	ErrReviewNotPending      = errors.New("review request is not pending")
	ErrReviewNotAccepted     = errors.New("review request is not accepted")
	ErrUnsupportedFileType   = errors.New("unsupported file type")
	ErrFileTooLarge          = errors.New("file exceeds maximum allowed size")
	ErrUploadFailed          = errors.New("file upload to storage failed")
	ErrInvalidAssessmentYear = errors.New("assessment year must be in YYYY-YY format")
)
