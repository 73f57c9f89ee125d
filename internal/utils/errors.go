package utils

import (
	"errors"
	"net/http"
)

// Domain-level errors used by the service layer to provide
// fine-grained failure reasons.
var (
	ErrEmailExists            = errors.New("email_exists")
	ErrInvalidCredentials     = errors.New("invalid_credentials")
	ErrExternalServiceFailure = errors.New("external_service_failure")
)

// AppError is the structured error services hand back to controllers.
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

func NewAppError(status int, code, message string, err error) *AppError {
	return &AppError{StatusCode: status, Code: code, Message: message, Err: err}
}

func NotFoundError(message string) *AppError {
	return NewAppError(http.StatusNotFound, ErrCodeNotFound, message, nil)
}

func ForbiddenError(message string) *AppError {
	return NewAppError(http.StatusForbidden, ErrCodeForbidden, message, nil)
}

func ConflictError(message string) *AppError {
	return NewAppError(http.StatusConflict, ErrCodeConflict, message, nil)
}

func BadRequestError(message string) *AppError {
	return NewAppError(http.StatusBadRequest, ErrCodeInvalidPayload, message, nil)
}

// HandleAppError centralizes responding to AppErrors.
func HandleAppError(w http.ResponseWriter, err error) {
	var appErr *AppError
	switch {
	case errors.As(err, &appErr):
		RespondErrorWithCode(w, appErr.StatusCode, appErr.Code, appErr.Message, nil, appErr.Err)
	case errors.Is(err, ErrExternalServiceFailure):
		RespondErrorWithCode(w, http.StatusFailedDependency, ErrCodeExternalServiceFailure, "A downstream service is unavailable", nil, err)
	default:
		// Fallback for unexpected error types
		RespondErrorWithCode(w, http.StatusInternalServerError, ErrCodeInternal, "An unexpected error occurred", nil, err)
	}
}
