package mocks

import (
	"context"
	"sync"

	"github.com/kevin07696/amwalpay-bridge/internal/domain"
)

// MockSessionTokenClient is a mock implementation of SessionTokenClient for testing
type MockSessionTokenClient struct {
	mu sync.Mutex

	token string
	err   error

	// Call tracking
	Calls         int
	LastEnv       domain.Environment
	LastMerchant  string
	LastCustomer  string
	LastSecretHex string
}

// NewMockSessionTokenClient creates a mock that returns token
func NewMockSessionTokenClient(token string) *MockSessionTokenClient {
	return &MockSessionTokenClient{token: token}
}

// SetError makes subsequent calls fail with err
func (m *MockSessionTokenClient) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// FetchSessionToken returns the canned token or error
func (m *MockSessionTokenClient) FetchSessionToken(ctx context.Context, env domain.Environment, merchantID, customerID, secretHex string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls++
	m.LastEnv = env
	m.LastMerchant = merchantID
	m.LastCustomer = customerID
	m.LastSecretHex = secretHex

	if m.err != nil {
		return "", m.err
	}
	return m.token, nil
}
