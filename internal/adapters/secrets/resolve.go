package secrets

import (
	"context"
	"fmt"
	"strings"

	"github.com/kevin07696/amwalpay-bridge/internal/config"
	"github.com/kevin07696/amwalpay-bridge/internal/domain"
	"github.com/kevin07696/amwalpay-bridge/internal/domain/ports"
	"github.com/kevin07696/amwalpay-bridge/pkg/resilience"
)

// remoteReadAttempts bounds reads against AWS and Vault
const remoteReadAttempts = 3

// NewSecretManager builds the secret store selected by cfg.Source.
// The env source has no store and returns nil.
func NewSecretManager(ctx context.Context, cfg config.SecretsConfig, logger ports.Logger) (ports.SecretManagerAdapter, error) {
	switch cfg.Source {
	case config.SecretSourceEnv:
		return nil, nil
	case config.SecretSourceLocal:
		return NewLocalSecretManager(cfg.LocalDir, logger), nil
	case config.SecretSourceAWS:
		awsCfg := DefaultAWSSecretsManagerConfig(cfg.AWSRegion)
		awsCfg.CacheTTL = cfg.CacheTTL
		return NewAWSSecretsManagerAdapter(ctx, awsCfg, logger)
	case config.SecretSourceVault:
		vaultCfg := DefaultVaultConfig(cfg.VaultAddr)
		vaultCfg.Token = cfg.VaultToken
		vaultCfg.CacheTTL = cfg.CacheTTL
		return NewVaultAdapter(ctx, vaultCfg, logger)
	default:
		return nil, fmt.Errorf("unknown secret source %q", cfg.Source)
	}
}

// Resolve returns the merchant's hex secret from the configured source
func Resolve(ctx context.Context, cfg config.SecretsConfig, logger ports.Logger) (string, error) {
	if cfg.Source == config.SecretSourceEnv {
		return normalizeKey(cfg.Key, cfg.Source)
	}

	manager, err := NewSecretManager(ctx, cfg, logger)
	if err != nil {
		return "", domain.WrapError(domain.ErrorCodeSecretUnavailable, "failed to open secret store", err).
			WithDetail("source", cfg.Source)
	}

	if cfg.Source == config.SecretSourceLocal {
		return ResolveFrom(ctx, manager, cfg.Path)
	}

	return resolveWithRetry(ctx, manager, cfg.Path, resilience.SecretStoreBackoff())
}

func resolveWithRetry(ctx context.Context, manager ports.SecretManagerAdapter, path string, backoff resilience.BackoffStrategy) (string, error) {
	var key string
	err := resilience.Retry(ctx, backoff, remoteReadAttempts, func(ctx context.Context) error {
		var readErr error
		key, readErr = ResolveFrom(ctx, manager, path)
		return readErr
	})
	return key, err
}

// ResolveFrom reads path from manager and returns the trimmed secret value
func ResolveFrom(ctx context.Context, manager ports.SecretManagerAdapter, path string) (string, error) {
	secret, err := manager.GetSecret(ctx, path)
	if err != nil {
		return "", fmt.Errorf("resolve merchant secret: %w", err)
	}
	return normalizeKey(secret.Value, path)
}

func normalizeKey(value, source string) (string, error) {
	key := strings.TrimSpace(value)
	if key == "" {
		return "", domain.NewDomainError(domain.ErrorCodeSecretUnavailable, "merchant secret is empty").
			WithDetail("source", source)
	}
	return key, nil
}
