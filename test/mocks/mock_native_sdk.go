package mocks

import (
	"context"
	"sync"

	"github.com/kevin07696/amwalpay-bridge/internal/domain"
	"github.com/kevin07696/amwalpay-bridge/internal/domain/ports"
)

// MockNativeSDK captures presented sessions so tests can drive the callbacks by hand
type MockNativeSDK struct {
	mu sync.Mutex

	presentErr error

	Presented []domain.NativeConfig
	callbacks []ports.NativeCallbacks
	contexts  []context.Context
}

// NewMockNativeSDK creates a new mock native SDK
func NewMockNativeSDK() *MockNativeSDK {
	return &MockNativeSDK{}
}

// SetPresentError makes Present fail with err
func (m *MockNativeSDK) SetPresentError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.presentErr = err
}

// Present records the config and callbacks
func (m *MockNativeSDK) Present(ctx context.Context, cfg domain.NativeConfig, cb ports.NativeCallbacks) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.presentErr != nil {
		return m.presentErr
	}
	m.Presented = append(m.Presented, cfg)
	m.callbacks = append(m.callbacks, cb)
	m.contexts = append(m.contexts, ctx)
	return nil
}

// PresentCount returns how many sessions were presented
func (m *MockNativeSDK) PresentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Presented)
}

// LastConfig returns the most recently presented config
func (m *MockNativeSDK) LastConfig() domain.NativeConfig {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Presented[len(m.Presented)-1]
}

// LastContext returns the context the most recent session was presented with
func (m *MockNativeSDK) LastContext() context.Context {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.contexts[len(m.contexts)-1]
}

// Respond emits a terminal response for the presented session at index i
func (m *MockNativeSDK) Respond(i int, resp domain.PaymentResponse) {
	m.mu.Lock()
	cb := m.callbacks[i]
	txID := m.Presented[i].TransactionID
	m.mu.Unlock()

	cb.OnResponse(txID, resp)
}

// EmitCustomerID emits a customer ID for the presented session at index i
func (m *MockNativeSDK) EmitCustomerID(i int, customerID string) {
	m.mu.Lock()
	cb := m.callbacks[i]
	txID := m.Presented[i].TransactionID
	m.mu.Unlock()

	cb.OnCustomerID(txID, customerID)
}
