package secrets

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/kevin07696/amwalpay-bridge/internal/domain"
	"github.com/kevin07696/amwalpay-bridge/test/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSecretFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0700))
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

func TestLocalSecretManager_PlainText(t *testing.T) {
	dir := t.TempDir()
	writeSecretFile(t, dir, "merchants/84131", "8570CEED656C8818\n")
	manager := NewLocalSecretManager(dir, mocks.NewMockLogger())

	secret, err := manager.GetSecret(context.Background(), "merchants/84131")

	require.NoError(t, err)
	assert.Equal(t, "8570CEED656C8818", secret.Value)
	assert.Equal(t, "v1", secret.Version)
}

func TestLocalSecretManager_JSON(t *testing.T) {
	dir := t.TempDir()
	writeSecretFile(t, dir, "84131.json", `{"value":"ABCDEF","tags":{"env":"UAT"},"created_at":"2026-01-01T00:00:00Z"}`)
	manager := NewLocalSecretManager(dir, mocks.NewMockLogger())

	secret, err := manager.GetSecret(context.Background(), "84131.json")

	require.NoError(t, err)
	assert.Equal(t, "ABCDEF", secret.Value)
	assert.Equal(t, "UAT", secret.Metadata["env"])
	assert.Equal(t, "2026-01-01T00:00:00Z", secret.CreatedAt)
}

func TestLocalSecretManager_NotFound(t *testing.T) {
	manager := NewLocalSecretManager(t.TempDir(), mocks.NewMockLogger())

	_, err := manager.GetSecret(context.Background(), "missing")

	assert.ErrorIs(t, err, domain.ErrSecretUnavailable)
}

func TestLocalSecretManager_StaysInsideBaseDir(t *testing.T) {
	root := t.TempDir()
	base := filepath.Join(root, "secrets")
	writeSecretFile(t, root, "outside", "AA")
	require.NoError(t, os.MkdirAll(base, 0700))
	manager := NewLocalSecretManager(base, mocks.NewMockLogger())

	_, err := manager.GetSecret(context.Background(), "../outside")

	assert.ErrorIs(t, err, domain.ErrSecretUnavailable)
}

func TestLocalSecretManager_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	writeSecretFile(t, dir, "empty", "  \n")
	manager := NewLocalSecretManager(dir, mocks.NewMockLogger())

	_, err := manager.GetSecret(context.Background(), "empty")

	assert.ErrorIs(t, err, domain.ErrSecretUnavailable)
}

func TestLocalSecretManager_GetSecretVersion(t *testing.T) {
	dir := t.TempDir()
	writeSecretFile(t, dir, "k", "AA")
	manager := NewLocalSecretManager(dir, mocks.NewMockLogger())

	secret, err := manager.GetSecretVersion(context.Background(), "k", "v1")
	require.NoError(t, err)
	assert.Equal(t, "AA", secret.Value)

	_, err = manager.GetSecretVersion(context.Background(), "k", "v2")
	assert.Error(t, err)
}
