package common

import (
	"errors"
	"fmt"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Error taxonomy. Lower layers translate collaborator failures into one of
// these before returning upward; the HTTP layer maps them onto status codes.
var (
	// ErrValidation: bad input shape, wrong file type, missing field. No side effects.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound: the referenced user/certificate/organization does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrExtraction: the uploaded document yielded no usable text.
	ErrExtraction = errors.New("text extraction failed")

	// ErrProcessing: total operation failure (every chunk failed, or the
	// completion capability is unreachable).
	ErrProcessing = errors.New("document processing failed")

	// ErrInsufficientBalance: debit amount exceeds tokens remaining. The
	// balance is left untouched.
	ErrInsufficientBalance = errors.New("insufficient token balance")

	// ErrFeatureNotInTier: the user's tier does not include the feature. The
	// balance is never consulted or touched.
	ErrFeatureNotInTier = errors.New("feature not available in tier")

	ErrInternal = errors.New("internal error")
)

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
