package main

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/kevin07696/amwalpay-bridge/internal/domain"
	"github.com/kevin07696/amwalpay-bridge/pkg/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseParams(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    map[string]string
		wantErr bool
	}{
		{name: "empty", raw: "", want: map[string]string{}},
		{name: "pairs", raw: "merchantId=84131, customerId=c-1", want: map[string]string{"merchantId": "84131", "customerId": "c-1"}},
		{name: "empty value kept", raw: "merchantId=84131,customerId=", want: map[string]string{"merchantId": "84131", "customerId": ""}},
		{name: "value with equals", raw: "token=abc==", want: map[string]string{"token": "abc=="}},
		{name: "missing equals", raw: "merchantId", wantErr: true},
		{name: "missing key", raw: "=1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseParams(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilterLevel(t *testing.T) {
	entries := []logging.Entry{
		{Level: "info", Message: "a"},
		{Level: "error", Message: "b"},
		{Level: "info", Message: "c"},
	}

	got := filterLevel(entries, zapcore.InfoLevel)

	require.Len(t, got, 2)
	assert.Equal(t, "c", got[1].Message)
	assert.Len(t, entries, 3)
}

func TestSimulatedCustomerIDs(t *testing.T) {
	assert.Nil(t, simulatedCustomerIDs("cust-1"))
	assert.Len(t, simulatedCustomerIDs(""), 1)
}

func TestExitMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "token error shown as alert",
			err:  fmt.Errorf("fetch session token: %w", domain.NewDomainError(domain.ErrorCodeServerRejected, "Invalid secure hash")),
			want: "Session token exchange failed (SERVER_REJECTED)",
		},
		{
			name: "invalid key",
			err:  fmt.Errorf("start payment: %w", domain.ErrInvalidKeyFormat),
			want: "Session token exchange failed (INVALID_KEY_FORMAT)",
		},
		{
			name: "cancelled",
			err:  fmt.Errorf("fetch session token: %w", context.Canceled),
			want: "Error: fetch session token: context canceled",
		},
		{
			name: "other error",
			err:  errors.New("unknown action: refund"),
			want: "Error: unknown action: refund",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitMessage(tt.err))
		})
	}
}
