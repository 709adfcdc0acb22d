package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *DomainError
		want string
	}{
		{
			name: "without wrapped error",
			err:  NewDomainError(ErrorCodeServerRejected, "merchant not found"),
			want: "SERVER_REJECTED: merchant not found",
		},
		{
			name: "with wrapped error",
			err:  WrapError(ErrorCodeNetworkFailure, "session token request failed", errors.New("dial tcp: timeout")),
			want: "NETWORK_FAILURE: session token request failed: dial tcp: timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestDomainError_IsMatchesByCode(t *testing.T) {
	err := WrapError(ErrorCodeInvalidKeyFormat, "secret is not hex", errors.New("odd length"))
	wrapped := fmt.Errorf("start payment: %w", err)

	assert.True(t, errors.Is(wrapped, ErrInvalidKeyFormat))
	assert.False(t, errors.Is(wrapped, ErrServerRejected))
}

func TestDomainError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := WrapError(ErrorCodeNetworkFailure, "session token request failed", cause)

	assert.ErrorIs(t, err, cause)
}

func TestDomainError_WithDetail(t *testing.T) {
	err := NewDomainError(ErrorCodeServerRejected, "rejected").
		WithDetail("status_code", 401).
		WithDetail("errors", []string{"bad hash"})

	require.Len(t, err.Details, 2)
	assert.Equal(t, 401, err.Details["status_code"])
}

func TestDomainError_WithDetailOnZeroValue(t *testing.T) {
	err := &DomainError{Code: ErrorCodeValidationFailed}
	err.WithDetail("field", "amount")

	assert.Equal(t, "amount", err.Details["field"])
}

func TestGetErrorCode(t *testing.T) {
	assert.Equal(t, ErrorCodeMissingRootContext, GetErrorCode(fmt.Errorf("present: %w", ErrMissingRootContext)))
	assert.Equal(t, ErrorCode(""), GetErrorCode(errors.New("plain")))
	assert.Equal(t, ErrorCode(""), GetErrorCode(nil))
}

func TestIsDomainError(t *testing.T) {
	assert.True(t, IsDomainError(ErrAttemptInProgress, ErrorCodeAttemptInProgress))
	assert.False(t, IsDomainError(ErrAttemptInProgress, ErrorCodeAttemptNotFound))
	assert.False(t, IsDomainError(errors.New("plain"), ErrorCodeAttemptInProgress))
}

func TestIsTokenError(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{ErrInvalidKeyFormat, true},
		{ErrNetworkFailure, true},
		{ErrServerRejected, true},
		{ErrMissingRootContext, false},
		{ErrValidationFailed, false},
		{errors.New("plain"), false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.err), func(t *testing.T) {
			assert.Equal(t, tt.want, IsTokenError(tt.err))
		})
	}
}
