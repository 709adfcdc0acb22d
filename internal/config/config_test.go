package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kevin07696/amwalpay-bridge/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"AMWAL_ENVIRONMENT", "AMWAL_MERCHANT_ID", "AMWAL_TERMINAL_ID", "AMWAL_BASE_URL",
	"AMWAL_HTTP_TIMEOUT", "AMWAL_SECRET_SOURCE", "AMWAL_SECRET_KEY", "AMWAL_SECRET_PATH",
	"AMWAL_SECRET_CACHE_TTL", "SECRETS_LOCAL_DIR", "AWS_REGION", "VAULT_ADDR", "VAULT_TOKEN",
	"LOG_LEVEL", "LOG_DEVELOPMENT", "LOG_BUFFER_SIZE", "METRICS_PORT",
}

// clearEnv blanks every key for the test; empty values fall back to defaults
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
	}
}

func TestLoadFromEnv_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("AMWAL_MERCHANT_ID", "84131")
	t.Setenv("AMWAL_SECRET_KEY", "8570CEED")

	cfg, err := LoadFromEnv()

	require.NoError(t, err)
	assert.Equal(t, domain.EnvironmentSIT, cfg.Amwal.Environment)
	assert.Equal(t, time.Duration(0), cfg.Amwal.HTTPTimeout)
	assert.Equal(t, SecretSourceEnv, cfg.Secrets.Source)
	assert.Equal(t, 5*time.Minute, cfg.Secrets.CacheTTL)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, 1000, cfg.Logger.BufferSize)
	assert.Equal(t, 0, cfg.Metrics.Port)
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("AMWAL_ENVIRONMENT", "uat")
	t.Setenv("AMWAL_MERCHANT_ID", "84131")
	t.Setenv("AMWAL_TERMINAL_ID", "811018")
	t.Setenv("AMWAL_HTTP_TIMEOUT", "15")
	t.Setenv("AMWAL_SECRET_SOURCE", "vault")
	t.Setenv("AMWAL_SECRET_PATH", "secret/data/amwal/84131")
	t.Setenv("VAULT_ADDR", "http://127.0.0.1:8200")
	t.Setenv("LOG_DEVELOPMENT", "true")
	t.Setenv("METRICS_PORT", "9090")

	cfg, err := LoadFromEnv()

	require.NoError(t, err)
	assert.Equal(t, domain.EnvironmentUAT, cfg.Amwal.Environment)
	assert.Equal(t, "811018", cfg.Amwal.TerminalID)
	assert.Equal(t, 15*time.Second, cfg.Amwal.HTTPTimeout)
	assert.Equal(t, SecretSourceVault, cfg.Secrets.Source)
	assert.True(t, cfg.Logger.Development)
	assert.Equal(t, 9090, cfg.Metrics.Port)
}

func TestLoadFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "missing merchant",
			env:     map[string]string{"AMWAL_SECRET_KEY": "AA"},
			wantErr: "AMWAL_MERCHANT_ID",
		},
		{
			name:    "unknown environment",
			env:     map[string]string{"AMWAL_ENVIRONMENT": "DEV", "AMWAL_MERCHANT_ID": "1", "AMWAL_SECRET_KEY": "AA"},
			wantErr: "AMWAL_ENVIRONMENT",
		},
		{
			name:    "env source without key",
			env:     map[string]string{"AMWAL_MERCHANT_ID": "1"},
			wantErr: "AMWAL_SECRET_KEY",
		},
		{
			name:    "aws source without path",
			env:     map[string]string{"AMWAL_MERCHANT_ID": "1", "AMWAL_SECRET_SOURCE": "aws"},
			wantErr: "AMWAL_SECRET_PATH",
		},
		{
			name:    "vault without address",
			env:     map[string]string{"AMWAL_MERCHANT_ID": "1", "AMWAL_SECRET_SOURCE": "vault", "AMWAL_SECRET_PATH": "p"},
			wantErr: "VAULT_ADDR",
		},
		{
			name:    "unknown source",
			env:     map[string]string{"AMWAL_MERCHANT_ID": "1", "AMWAL_SECRET_SOURCE": "keychain"},
			wantErr: "AMWAL_SECRET_SOURCE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := LoadFromEnv()

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_EnvFile(t *testing.T) {
	clearEnv(t)
	// godotenv never overrides variables that are already set, including empty ones
	for _, key := range []string{"AMWAL_MERCHANT_ID", "AMWAL_SECRET_KEY", "AMWAL_ENVIRONMENT"} {
		require.NoError(t, os.Unsetenv(key))
	}

	path := filepath.Join(t.TempDir(), "amwal.env")
	content := "AMWAL_ENVIRONMENT=PROD\nAMWAL_MERCHANT_ID=99001\nAMWAL_SECRET_KEY=ABCDEF\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	t.Cleanup(func() {
		os.Unsetenv("AMWAL_ENVIRONMENT")
		os.Unsetenv("AMWAL_MERCHANT_ID")
		os.Unsetenv("AMWAL_SECRET_KEY")
	})

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, domain.EnvironmentPROD, cfg.Amwal.Environment)
	assert.Equal(t, "99001", cfg.Amwal.MerchantID)
	assert.Equal(t, "ABCDEF", cfg.Secrets.Key)
}

func TestLoad_MissingEnvFile(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))

	assert.Error(t, err)
}
