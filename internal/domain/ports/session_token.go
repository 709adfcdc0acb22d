package ports

import (
	"context"

	"github.com/kevin07696/amwalpay-bridge/internal/domain"
)

// SessionTokenClient exchanges a merchant secret for a short-lived SDK session token.
// Implementations surface failures to the end user exactly once and return a
// DomainError coded INVALID_KEY_FORMAT, NETWORK_FAILURE or SERVER_REJECTED.
type SessionTokenClient interface {
	FetchSessionToken(ctx context.Context, env domain.Environment, merchantID, customerID, secretHex string) (string, error)
}
