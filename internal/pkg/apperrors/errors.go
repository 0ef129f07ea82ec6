package apperrors

import (
	"fmt"
)

type ErrorType string

const (
	ErrUsage         ErrorType = "USAGE_ERROR"
	ErrRequest       ErrorType = "REQUEST_ERROR"
	ErrUnauthorized  ErrorType = "UNAUTHORIZED"
	ErrQuotaExceeded ErrorType = "QUOTA_EXCEEDED"
	ErrPrivileged    ErrorType = "PRIVILEGED_ACCOUNT_REQUIRED"
	ErrFormat        ErrorType = "FORMAT_ERROR"
	ErrInternal      ErrorType = "INTERNAL_ERROR"
)

// Process exit codes. Usage errors exit with 2 before any network
// traffic happens; every other failure exits with 1.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// AppError is the standard error struct for the application
type AppError struct {
	Type       ErrorType `json:"code"`
	Message    string    `json:"message"`
	Suggestion string    `json:"suggestion,omitempty"`
	ExitCode   int       `json:"-"`
	Cause      error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func New(errType ErrorType, msg string, cause error) *AppError {
	return &AppError{
		Type:       errType,
		Message:    msg,
		Cause:      cause,
		ExitCode:   mapTypeToExitCode(errType),
		Suggestion: mapTypeToSuggestion(errType),
	}
}

func NewUsage(msg string) *AppError {
	return New(ErrUsage, msg, nil)
}

func NewFormat(msg string, cause error) *AppError {
	return New(ErrFormat, msg, cause)
}

func Wrap(err error) *AppError {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return New(ErrInternal, err.Error(), err)
}

func mapTypeToExitCode(t ErrorType) int {
	switch t {
	case ErrUsage:
		return ExitUsage
	default:
		return ExitFailure
	}
}

func mapTypeToSuggestion(t ErrorType) string {
	switch t {
	case ErrUsage:
		return "Run 'malbeacon --help' for usage."
	case ErrUnauthorized:
		return "Check the configured API key (MALBEACON_API_KEY or --api-key)."
	case ErrQuotaExceeded:
		return "Wait for the quota window to reset or upgrade the account plan."
	case ErrPrivileged:
		return "This module requires a privileged MalBeacon account."
	default:
		return ""
	}
}
