package mocks

import "sync"

// MockErrorSurface records every alert instead of showing it
type MockErrorSurface struct {
	mu     sync.Mutex
	Alerts []Alert
}

// Alert is a captured ShowError call
type Alert struct {
	Title   string
	Message string
}

// NewMockErrorSurface creates a new mock error surface
func NewMockErrorSurface() *MockErrorSurface {
	return &MockErrorSurface{}
}

// ShowError captures the alert
func (m *MockErrorSurface) ShowError(title, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Alerts = append(m.Alerts, Alert{Title: title, Message: message})
}

// Count returns how many alerts were shown
func (m *MockErrorSurface) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Alerts)
}
