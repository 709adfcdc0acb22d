package ports

import (
	"context"

	"github.com/kevin07696/amwalpay-bridge/internal/domain"
)

// NativeCallbacks receives the events of a native payment session.
// Every event carries the transaction ID of the attempt it belongs to.
type NativeCallbacks interface {
	// OnResponse delivers the terminal result. Only the first call per transaction counts.
	OnResponse(transactionID string, resp domain.PaymentResponse)
	// OnCustomerID may be called zero or more times before OnResponse
	OnCustomerID(transactionID, customerID string)
}

// NativeSDK is the opaque checkout capability provided by the platform.
// Present returns once the UI has been handed off; results arrive through cb.
// It returns a MISSING_ROOT_CONTEXT DomainError when there is nothing to present on.
type NativeSDK interface {
	Present(ctx context.Context, cfg domain.NativeConfig, cb NativeCallbacks) error
}
