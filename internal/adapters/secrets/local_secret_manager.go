package secrets

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kevin07696/amwalpay-bridge/internal/domain"
	"github.com/kevin07696/amwalpay-bridge/internal/domain/ports"
)

const localVersion = "v1"

// localSecretManager implements SecretManagerAdapter using local filesystem
// WARNING: This is for development only. Use AWS Secrets Manager or Vault in production.
type localSecretManager struct {
	basePath string
	logger   ports.Logger
}

// NewLocalSecretManager creates a new local filesystem secret manager
func NewLocalSecretManager(basePath string, logger ports.Logger) ports.SecretManagerAdapter {
	return &localSecretManager{
		basePath: basePath,
		logger:   logger,
	}
}

// GetSecret retrieves a secret from the local filesystem.
// Files hold either the bare value or JSON {"value": ..., "tags": ..., "created_at": ...}.
func (m *localSecretManager) GetSecret(ctx context.Context, secretPath string) (*ports.Secret, error) {
	filePath := filepath.Join(m.basePath, filepath.Clean("/"+secretPath))

	m.logger.Debug("reading secret from filesystem",
		ports.String("path", secretPath),
	)

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.NewDomainError(domain.ErrorCodeSecretUnavailable, "secret not found").
				WithDetail("path", secretPath)
		}
		return nil, domain.WrapError(domain.ErrorCodeSecretUnavailable, "failed to read secret", err)
	}

	// Support both plain text and JSON format
	var secretData struct {
		Value     string            `json:"value"`
		Tags      map[string]string `json:"tags"`
		CreatedAt string            `json:"created_at"`
	}
	if err := json.Unmarshal(data, &secretData); err == nil && secretData.Value != "" {
		return &ports.Secret{
			Value:     secretData.Value,
			Version:   localVersion,
			Metadata:  secretData.Tags,
			CreatedAt: secretData.CreatedAt,
		}, nil
	}

	value := strings.TrimSpace(string(data))
	if value == "" {
		return nil, domain.NewDomainError(domain.ErrorCodeSecretUnavailable, "secret is empty").
			WithDetail("path", secretPath)
	}

	return &ports.Secret{
		Value:   value,
		Version: localVersion,
	}, nil
}

// GetSecretVersion retrieves a specific version (local files only have v1)
func (m *localSecretManager) GetSecretVersion(ctx context.Context, secretPath, version string) (*ports.Secret, error) {
	if version != "" && version != localVersion {
		return nil, fmt.Errorf("local secret manager only supports version %s", localVersion)
	}
	return m.GetSecret(ctx, secretPath)
}
