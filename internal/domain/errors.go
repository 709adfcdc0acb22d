package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents a machine-readable error code
type ErrorCode string

const (
	// Secure hash errors
	ErrorCodeInvalidKeyFormat ErrorCode = "INVALID_KEY_FORMAT"

	// Session token errors
	ErrorCodeNetworkFailure ErrorCode = "NETWORK_FAILURE"
	ErrorCodeServerRejected ErrorCode = "SERVER_REJECTED"

	// Native SDK errors
	ErrorCodeMissingRootContext ErrorCode = "MISSING_ROOT_CONTEXT"
	ErrorCodeNativeSDKFailed    ErrorCode = "NATIVE_SDK_FAILED"

	// Validation errors
	ErrorCodeValidationFailed ErrorCode = "VALIDATION_FAILED"

	// Attempt lifecycle errors
	ErrorCodeAttemptInProgress ErrorCode = "ATTEMPT_IN_PROGRESS"
	ErrorCodeAttemptNotFound   ErrorCode = "ATTEMPT_NOT_FOUND"

	// Secret source errors
	ErrorCodeSecretUnavailable ErrorCode = "SECRET_UNAVAILABLE"
)

// DomainError represents a structured domain error with error code and context
type DomainError struct {
	Err     error
	Details map[string]interface{}
	Code    ErrorCode
	Message string
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is matches any DomainError carrying the same code, so sentinels work with errors.Is
func (e *DomainError) Is(target error) bool {
	var other *DomainError
	if !errors.As(target, &other) {
		return false
	}
	return other.Code == e.Code
}

// WithDetail adds a detail field to the error
func (e *DomainError) WithDetail(key string, value interface{}) *DomainError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// NewDomainError creates a new domain error
func NewDomainError(code ErrorCode, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// WrapError wraps an existing error with a domain error code
func WrapError(code ErrorCode, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Err:     err,
	}
}

// IsDomainError checks if an error is a DomainError with the given code
func IsDomainError(err error, code ErrorCode) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}

// GetErrorCode extracts the error code from an error, returns empty string if not a DomainError
func GetErrorCode(err error) ErrorCode {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return ""
}

// IsTokenError reports whether err came from the session token exchange
func IsTokenError(err error) bool {
	code := GetErrorCode(err)
	return code == ErrorCodeInvalidKeyFormat ||
		code == ErrorCodeNetworkFailure ||
		code == ErrorCodeServerRejected
}

var (
	ErrInvalidKeyFormat   = NewDomainError(ErrorCodeInvalidKeyFormat, "invalid secret key format")
	ErrNetworkFailure     = NewDomainError(ErrorCodeNetworkFailure, "session token request failed")
	ErrServerRejected     = NewDomainError(ErrorCodeServerRejected, "session token request rejected")
	ErrMissingRootContext = NewDomainError(ErrorCodeMissingRootContext, "no presentable UI context")
	ErrValidationFailed   = NewDomainError(ErrorCodeValidationFailed, "validation failed")
	ErrAttemptInProgress  = NewDomainError(ErrorCodeAttemptInProgress, "payment attempt already in progress")
	ErrAttemptNotFound    = NewDomainError(ErrorCodeAttemptNotFound, "payment attempt not found")
	ErrSecretUnavailable  = NewDomainError(ErrorCodeSecretUnavailable, "merchant secret unavailable")
)
