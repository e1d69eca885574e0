package utils

import (
	"errors"
	"fmt"
)

// ErrInvalidInput marks user text rejected at the boundary
var ErrInvalidInput = errors.New("invalid input")

type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func NewAppError(code string, message string, details ...string) *AppError {
	err := &AppError{
		Code:    code,
		Message: message,
	}
	if len(details) > 0 {
		err.Details = details[0]
	}
	return err
}

func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s - %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Common error codes
const (
	ErrCodeValidation        = "VALIDATION_ERROR"
	ErrCodeNotFound          = "NOT_FOUND"
	ErrCodeInternal          = "INTERNAL_ERROR"
	ErrCodeConflict          = "CONFLICT"
	ErrCodeNoClubs           = "NO_CLUBS"
	ErrCodeProfileSaveFailed = "PROFILE_SAVE_FAILED"
	ErrCodeStoreUnavailable  = "STORE_UNAVAILABLE"
)
