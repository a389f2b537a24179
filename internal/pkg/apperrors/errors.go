package apperrors

import "errors"

// Common errors
var (
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")
	ErrPermissionDenied = errors.New("permission denied")
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// Authentication errors
	ErrTokenExpired  = errors.New("token expired")
	ErrTokenInvalid  = errors.New("invalid token")
	ErrInvalidFormat = errors.New("invalid token format")
	ErrUnauthorized  = errors.New("authentication required")
)

// Batch errors
var (
	ErrBatchNotFound         = errors.New("batch not found")
	ErrSignUpClosed          = errors.New("sign-up period is closed")
	ErrApplicationsClosed    = errors.New("application period is closed")
	ErrEditingClosed         = errors.New("editing period is closed")
	ErrNoActiveBatch         = errors.New("no active admissions batch")
	ErrBatchAlreadyExists    = errors.New("batch for this year already exists")
	ErrUniversityNotFound   = errors.New("university not found")
	ErrUniversityDuplicated = errors.New("university with this name already exists")
)

// Application errors
var (
	ErrApplicationNotFound = errors.New("application not found")
	ErrActiveApplication   = errors.New("an active application already exists for this batch")
	ErrApplicationLocked   = errors.New("application status does not allow this operation")
	ErrDocumentMissing     = errors.New("document is missing")
	ErrUploadFailed        = errors.New("document upload failed")
	ErrVersionConflict     = errors.New("application was modified concurrently")
	ErrInvalidGPA          = errors.New("gpa outside allowed bounds")
)

// Scholarship errors
var (
	ErrScholarshipNotFound = errors.New("scholarship not found")
	ErrScholarshipLocked   = errors.New("scholarship status does not allow this operation")
	ErrInvalidIBAN         = errors.New("invalid IBAN")
)

// CustomError carries additional context alongside a sentinel error.
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements the error interface.
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap exposes the sentinel for errors.Is.
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError wrapping a sentinel.
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{Err: err, Message: message}
}

// WithDetails attaches context details to the error.
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// NewValidationError creates a validation error with a message.
func NewValidationError(message string) error {
	return &CustomError{Err: ErrValidationFailed, Message: message}
}

// NewNotFoundError creates a not-found error with a message.
func NewNotFoundError(message string) error {
	return &CustomError{Err: ErrResourceNotFound, Message: message}
}

// NewForbiddenError creates a permission-denied error with a message.
func NewForbiddenError(message string) error {
	return &CustomError{Err: ErrPermissionDenied, Message: message}
}
