package secrets

import (
	"testing"
	"time"

	"github.com/kevin07696/amwalpay-bridge/internal/domain/ports"
	"github.com/stretchr/testify/assert"
)

func TestSecretCache_Expiry(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cache := newSecretCache(true, time.Minute)
	cache.now = func() time.Time { return now }

	cache.set("amwal/84131", &ports.Secret{Value: "AA"})
	assert.Equal(t, "AA", cache.get("amwal/84131").Value)

	now = now.Add(2 * time.Minute)
	assert.Nil(t, cache.get("amwal/84131"))
}

func TestSecretCache_Disabled(t *testing.T) {
	for _, cache := range []*secretCache{newSecretCache(false, time.Minute), newSecretCache(true, 0)} {
		cache.set("k", &ports.Secret{Value: "AA"})
		assert.Nil(t, cache.get("k"))
	}
}

func TestSecretCache_Invalidate(t *testing.T) {
	cache := newSecretCache(true, time.Minute)
	cache.set("k", &ports.Secret{Value: "AA"})

	cache.invalidate("k")

	assert.Nil(t, cache.get("k"))
}
