package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kevin07696/amwalpay-bridge/internal/domain"
)

// Secret sources understood by SecretsConfig.Source
const (
	SecretSourceEnv   = "env"
	SecretSourceLocal = "local"
	SecretSourceAWS   = "aws"
	SecretSourceVault = "vault"
)

// Config holds all bridge configuration
type Config struct {
	Amwal   AmwalConfig
	Secrets SecretsConfig
	Logger  LoggerConfig
	Metrics MetricsConfig
}

// AmwalConfig holds the merchant identity and endpoint settings
type AmwalConfig struct {
	Environment domain.Environment
	MerchantID  string
	TerminalID  string
	BaseURL     string        // Overrides the per-environment webhook URL when set
	HTTPTimeout time.Duration // Zero leaves token requests bounded only by their context
}

// SecretsConfig selects where the merchant's hex secret comes from
type SecretsConfig struct {
	Source     string // env, local, aws or vault
	Key        string // The secret itself, for Source=env
	Path       string // Secret name/path for local, aws and vault
	LocalDir   string
	AWSRegion  string
	VaultAddr  string
	VaultToken string
	CacheTTL   time.Duration
}

// LoggerConfig holds logging configuration
type LoggerConfig struct {
	Level       string // debug, info, warn, error
	Development bool
	BufferSize  int
}

// MetricsConfig holds the Prometheus endpoint settings
type MetricsConfig struct {
	Port int // Zero disables the metrics server
}

// Load seeds the process environment from the given .env files and then reads
// the configuration. With no files it tries ./.env, which may be absent.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load .env: %w", err)
		}
	} else if err := godotenv.Load(files...); err != nil {
		return nil, fmt.Errorf("load env files: %w", err)
	}

	return LoadFromEnv()
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Amwal: AmwalConfig{
			Environment: domain.Environment(strings.ToUpper(getEnv("AMWAL_ENVIRONMENT", string(domain.EnvironmentSIT)))),
			MerchantID:  getEnv("AMWAL_MERCHANT_ID", ""),
			TerminalID:  getEnv("AMWAL_TERMINAL_ID", ""),
			BaseURL:     getEnv("AMWAL_BASE_URL", ""),
			HTTPTimeout: time.Duration(getEnvAsInt("AMWAL_HTTP_TIMEOUT", 0)) * time.Second,
		},
		Secrets: SecretsConfig{
			Source:     strings.ToLower(getEnv("AMWAL_SECRET_SOURCE", SecretSourceEnv)),
			Key:        getEnv("AMWAL_SECRET_KEY", ""),
			Path:       getEnv("AMWAL_SECRET_PATH", ""),
			LocalDir:   getEnv("SECRETS_LOCAL_DIR", "./secrets"),
			AWSRegion:  getEnv("AWS_REGION", "us-east-1"),
			VaultAddr:  getEnv("VAULT_ADDR", ""),
			VaultToken: getEnv("VAULT_TOKEN", ""),
			CacheTTL:   time.Duration(getEnvAsInt("AMWAL_SECRET_CACHE_TTL", 300)) * time.Second,
		},
		Logger: LoggerConfig{
			Level:       getEnv("LOG_LEVEL", "info"),
			Development: getEnvAsBool("LOG_DEVELOPMENT", false),
			BufferSize:  getEnvAsInt("LOG_BUFFER_SIZE", 1000),
		},
		Metrics: MetricsConfig{
			Port: getEnvAsInt("METRICS_PORT", 0),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings every action needs
func (c *Config) Validate() error {
	switch c.Amwal.Environment {
	case domain.EnvironmentSIT, domain.EnvironmentUAT, domain.EnvironmentPROD:
	default:
		return fmt.Errorf("AMWAL_ENVIRONMENT must be SIT, UAT or PROD, got %q", c.Amwal.Environment)
	}

	if c.Amwal.MerchantID == "" {
		return fmt.Errorf("AMWAL_MERCHANT_ID is required")
	}

	switch c.Secrets.Source {
	case SecretSourceEnv:
		if c.Secrets.Key == "" {
			return fmt.Errorf("AMWAL_SECRET_KEY is required when AMWAL_SECRET_SOURCE=env")
		}
	case SecretSourceLocal, SecretSourceAWS, SecretSourceVault:
		if c.Secrets.Path == "" {
			return fmt.Errorf("AMWAL_SECRET_PATH is required when AMWAL_SECRET_SOURCE=%s", c.Secrets.Source)
		}
	default:
		return fmt.Errorf("AMWAL_SECRET_SOURCE must be env, local, aws or vault, got %q", c.Secrets.Source)
	}

	if c.Secrets.Source == SecretSourceVault && c.Secrets.VaultAddr == "" {
		return fmt.Errorf("VAULT_ADDR is required when AMWAL_SECRET_SOURCE=vault")
	}

	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
