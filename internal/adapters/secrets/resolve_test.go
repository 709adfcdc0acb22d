package secrets

import (
	"context"
	"testing"
	"time"

	"github.com/kevin07696/amwalpay-bridge/internal/config"
	"github.com/kevin07696/amwalpay-bridge/internal/domain"
	"github.com/kevin07696/amwalpay-bridge/internal/domain/ports"
	"github.com/kevin07696/amwalpay-bridge/pkg/resilience"
	"github.com/kevin07696/amwalpay-bridge/test/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_EnvSource(t *testing.T) {
	key, err := Resolve(context.Background(), config.SecretsConfig{
		Source: config.SecretSourceEnv,
		Key:    " 8570CEED ",
	}, mocks.NewMockLogger())

	require.NoError(t, err)
	assert.Equal(t, "8570CEED", key)
}

func TestResolve_EmptyEnvKey(t *testing.T) {
	_, err := Resolve(context.Background(), config.SecretsConfig{Source: config.SecretSourceEnv}, mocks.NewMockLogger())

	assert.ErrorIs(t, err, domain.ErrSecretUnavailable)
}

func TestResolve_LocalSource(t *testing.T) {
	dir := t.TempDir()
	writeSecretFile(t, dir, "84131", "ABCDEF\n")

	key, err := Resolve(context.Background(), config.SecretsConfig{
		Source:   config.SecretSourceLocal,
		LocalDir: dir,
		Path:     "84131",
	}, mocks.NewMockLogger())

	require.NoError(t, err)
	assert.Equal(t, "ABCDEF", key)
}

func TestResolve_LocalMissing(t *testing.T) {
	_, err := Resolve(context.Background(), config.SecretsConfig{
		Source:   config.SecretSourceLocal,
		LocalDir: t.TempDir(),
		Path:     "84131",
	}, mocks.NewMockLogger())

	assert.ErrorIs(t, err, domain.ErrSecretUnavailable)
}

func TestResolve_UnknownSource(t *testing.T) {
	_, err := Resolve(context.Background(), config.SecretsConfig{Source: "keychain"}, mocks.NewMockLogger())

	assert.ErrorIs(t, err, domain.ErrSecretUnavailable)
}

func TestNewSecretManager_EnvHasNoStore(t *testing.T) {
	manager, err := NewSecretManager(context.Background(), config.SecretsConfig{Source: config.SecretSourceEnv}, mocks.NewMockLogger())

	require.NoError(t, err)
	assert.Nil(t, manager)
}

type flakySecretManager struct {
	failures int
	calls    int
}

func (f *flakySecretManager) GetSecret(ctx context.Context, path string) (*ports.Secret, error) {
	f.calls++
	if f.calls <= f.failures {
		return nil, domain.NewDomainError(domain.ErrorCodeSecretUnavailable, "throttled")
	}
	return &ports.Secret{Value: "ABCDEF"}, nil
}

func (f *flakySecretManager) GetSecretVersion(ctx context.Context, path, version string) (*ports.Secret, error) {
	return f.GetSecret(ctx, path)
}

func TestResolveFrom(t *testing.T) {
	manager := &flakySecretManager{}

	key, err := ResolveFrom(context.Background(), manager, "amwal/84131")

	require.NoError(t, err)
	assert.Equal(t, "ABCDEF", key)
}

func TestResolveFrom_Error(t *testing.T) {
	manager := &flakySecretManager{failures: 1}

	_, err := ResolveFrom(context.Background(), manager, "amwal/84131")

	assert.ErrorIs(t, err, domain.ErrSecretUnavailable)
	assert.Equal(t, 1, manager.calls, "ResolveFrom does not retry")
}

func TestResolveWithRetry(t *testing.T) {
	manager := &flakySecretManager{failures: 2}

	key, err := resolveWithRetry(context.Background(), manager, "amwal/84131", &resilience.ExponentialBackoff{BaseDelay: time.Millisecond, MaxDelay: time.Millisecond, Multiplier: 1})

	require.NoError(t, err)
	assert.Equal(t, "ABCDEF", key)
	assert.Equal(t, 3, manager.calls)
}

func TestResolveWithRetry_GivesUp(t *testing.T) {
	manager := &flakySecretManager{failures: 5}

	_, err := resolveWithRetry(context.Background(), manager, "amwal/84131", &resilience.ExponentialBackoff{BaseDelay: time.Millisecond, MaxDelay: time.Millisecond, Multiplier: 1})

	assert.ErrorIs(t, err, domain.ErrSecretUnavailable)
	assert.Equal(t, remoteReadAttempts, manager.calls)
}
