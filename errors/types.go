package errors

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific error condition
type ErrorCode string

const (
	// Configuration errors
	ErrCodeConfigNotFound   ErrorCode = "CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid    ErrorCode = "CONFIG_INVALID"
	ErrCodeConfigValidation ErrorCode = "CONFIG_VALIDATION"
	ErrCodeInvalidPattern   ErrorCode = "INVALID_PATTERN"

	// Watch errors
	ErrCodeSubscriptionFailed ErrorCode = "SUBSCRIPTION_FAILED"
	ErrCodeWatchFailed        ErrorCode = "WATCH_FAILED"

	// Process lifecycle errors
	ErrCodeSpawnFailed       ErrorCode = "SPAWN_FAILED"
	ErrCodeTerminationFailed ErrorCode = "TERMINATION_FAILED"

	// General errors
	ErrCodeInternal     ErrorCode = "INTERNAL_ERROR"
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// ReloadError represents a structured error with context
type ReloadError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

// Error implements the error interface
func (e *ReloadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *ReloadError) Unwrap() error {
	return e.Cause
}

// WithDetail adds a detail to the error
func (e *ReloadError) WithDetail(key string, value interface{}) *ReloadError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// ToJSON converts the error to JSON
func (e *ReloadError) ToJSON() string {
	data, _ := json.MarshalIndent(e, "", "  ")
	return string(data)
}

// New creates a new ReloadError
func New(code ErrorCode, message string) *ReloadError {
	return &ReloadError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a ReloadError
func Wrap(err error, code ErrorCode, message string) *ReloadError {
	return &ReloadError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// As returns the outermost ReloadError in the chain, if any.
func As(err error) (*ReloadError, bool) {
	for err != nil {
		if reloadErr, ok := err.(*ReloadError); ok {
			return reloadErr, true
		}
		unwrapper, ok := err.(interface{ Unwrap() error })
		if !ok {
			return nil, false
		}
		err = unwrapper.Unwrap()
	}
	return nil, false
}

// Is checks if an error is a specific ReloadError code
func Is(err error, code ErrorCode) bool {
	if err == nil {
		return false
	}

	reloadErr, ok := err.(*ReloadError)
	if !ok {
		// Try to unwrap
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return Is(unwrapper.Unwrap(), code)
		}
		return false
	}

	if reloadErr.Code == code {
		return true
	}
	return Is(reloadErr.Cause, code)
}

// GetCode extracts the error code from an error
func GetCode(err error) ErrorCode {
	reloadErr, ok := As(err)
	if !ok {
		return ""
	}
	return reloadErr.Code
}

// IsConfigError reports whether err belongs to the configuration family,
// which is always fatal before any watching begins.
func IsConfigError(err error) bool {
	switch GetCode(err) {
	case ErrCodeConfigNotFound, ErrCodeConfigInvalid, ErrCodeConfigValidation, ErrCodeInvalidPattern:
		return true
	}
	return false
}
