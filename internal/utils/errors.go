package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// Domain-level errors used by the service layer to provide
// fine-grained failure reasons.
var (
	ErrOwnerNotFound = errors.New("owner_not_found")

	// For concurrency conflicts
	ErrRowVersionConflict = errors.New("row_version_conflict")

	ErrNoRowsUpdated = errors.New("no_rows_updated")
)

// AppError carries a failure kind from the services to the controllers.
// Every error a lifecycle or authorization operation surfaces is one of
// the constructors below; controllers respond with the embedded status
// and code and never invent their own.
type AppError struct {
	StatusCode int
	Code       string
	Message    string
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

func NewUnauthenticated() *AppError {
	return &AppError{
		StatusCode: http.StatusUnauthorized,
		Code:       ErrCodeUnauthenticated,
		Message:    "Authentication required",
	}
}

// NewAuthorizationDenied is deliberately generic: a missing resource and a
// forbidden resource produce the same response so callers cannot probe for
// existence.
func NewAuthorizationDenied() *AppError {
	return &AppError{
		StatusCode: http.StatusForbidden,
		Code:       ErrCodeAuthorizationDenied,
		Message:    "You do not have permission to perform this action",
	}
}

func NewNotFound(what string) *AppError {
	return &AppError{
		StatusCode: http.StatusNotFound,
		Code:       ErrCodeNotFound,
		Message:    fmt.Sprintf("%s not found", what),
	}
}

func NewValidation(msg string) *AppError {
	return &AppError{
		StatusCode: http.StatusBadRequest,
		Code:       ErrCodeValidation,
		Message:    msg,
	}
}

func NewConflict(msg string) *AppError {
	return &AppError{
		StatusCode: http.StatusConflict,
		Code:       ErrCodeConflict,
		Message:    msg,
	}
}

func NewInternal(err error) *AppError {
	return &AppError{
		StatusCode: http.StatusInternalServerError,
		Code:       ErrCodeInternal,
		Message:    "An unexpected error occurred",
		Err:        err,
	}
}

// IsCode reports whether err is an AppError with the given code.
func IsCode(err error, code string) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// HandleAppError centralizes responding to AppErrors.
func HandleAppError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		RespondErrorWithCode(w, appErr.StatusCode, appErr.Code, appErr.Message, nil, appErr.Err)
	} else {
		// Fallback for unexpected error types
		RespondErrorWithCode(w, http.StatusInternalServerError, ErrCodeInternal, "An unexpected error occurred", nil, err)
	}
}
