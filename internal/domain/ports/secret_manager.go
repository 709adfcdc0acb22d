package ports

import (
	"context"
)

// Secret represents a retrieved secret with metadata
type Secret struct {
	Value     string            // The secret value (the merchant's hex HMAC key)
	Version   string            // Secret version identifier
	Metadata  map[string]string // Additional secret metadata
	CreatedAt string            // When this version was created
}

// SecretManagerAdapter defines the port for reading merchant secrets from a secret store.
// Backends: local filesystem, AWS Secrets Manager, HashiCorp Vault.
// Implementations cache values for a bounded TTL.
type SecretManagerAdapter interface {
	// GetSecret retrieves the current version of a secret by its path/name
	// Path format depends on implementation:
	//   - Local: file path relative to the base directory
	//   - AWS: secret name or ARN, e.g. "amwal/merchants/84131"
	//   - Vault: path under the KV mount, e.g. "amwal/merchants/84131"
	GetSecret(ctx context.Context, path string) (*Secret, error)

	// GetSecretVersion retrieves a specific version of a secret
	// Useful while a merchant key is being rotated
	GetSecretVersion(ctx context.Context, path string, version string) (*Secret, error)
}
