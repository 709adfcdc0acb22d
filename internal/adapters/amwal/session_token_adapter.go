package amwal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/kevin07696/amwalpay-bridge/internal/domain"
	"github.com/kevin07696/amwalpay-bridge/internal/domain/ports"
	pkghttp "github.com/kevin07696/amwalpay-bridge/pkg/http"
	"github.com/kevin07696/amwalpay-bridge/pkg/observability"
)

const (
	// ErrorDialogTitle is the title of every alert raised by the token exchange
	ErrorDialogTitle = "Error"

	genericFailureMessage    = "Something Went Wrong"
	unknownErrorMessage      = "Unknown error"
	invalidKeyFailureMessage = "Invalid secret key format"

	maxResponseBytes = 1 << 20
)

// Outcome labels recorded for each token request
const (
	outcomeSuccess        = "success"
	outcomeInvalidKey     = "invalid_key"
	outcomeNetworkFailure = "network_failure"
	outcomeRejected       = "rejected"
	outcomeCancelled      = "cancelled"
)

// SessionTokenConfig configures the session token adapter
type SessionTokenConfig struct {
	// BaseURL overrides the environment mapping when set (staging proxies, tests).
	// Must end with a slash.
	BaseURL string
}

// SessionTokenRequest is the JSON body of Membership/GetSDKSessionToken
type SessionTokenRequest struct {
	MerchantID      string  `json:"merchantId"`
	SecureHashValue string  `json:"secureHashValue"`
	CustomerID      *string `json:"customerId"`
}

// SessionTokenResponse is the envelope returned by Membership/GetSDKSessionToken
type SessionTokenResponse struct {
	Success bool `json:"success"`
	Data    *struct {
		SessionToken string `json:"sessionToken"`
	} `json:"data"`
	ErrorList []string `json:"errorList"`
}

// SessionTokenAdapter implements ports.SessionTokenClient against the Amwal webhook service
type SessionTokenAdapter struct {
	config     SessionTokenConfig
	httpClient ports.HTTPClient
	surface    ports.ErrorSurface
	logger     ports.Logger
}

// NewSessionTokenAdapter creates a new session token adapter with dependency injection
func NewSessionTokenAdapter(config SessionTokenConfig, httpClient ports.HTTPClient, surface ports.ErrorSurface, logger ports.Logger) *SessionTokenAdapter {
	return &SessionTokenAdapter{
		config:     config,
		httpClient: httpClient,
		surface:    surface,
		logger:     logger,
	}
}

// NewSessionTokenAdapterWithDefaults creates a session token adapter on the Amwal HTTP client profile.
// timeout of zero leaves the request bounded only by ctx and the transport defaults.
func NewSessionTokenAdapterWithDefaults(config SessionTokenConfig, timeout time.Duration, surface ports.ErrorSurface, logger ports.Logger) *SessionTokenAdapter {
	return NewSessionTokenAdapter(config, pkghttp.NewHTTPClient(pkghttp.AmwalClientConfig(), timeout), surface, logger)
}

// FetchSessionToken signs {merchantId, customerId} with secretHex and exchanges it for a session token.
// Every failure is logged, shown once through the error surface and returned as a DomainError.
// A request ended by ctx is not a failure: it returns the context error and shows nothing.
func (a *SessionTokenAdapter) FetchSessionToken(ctx context.Context, env domain.Environment, merchantID, customerID, secretHex string) (string, error) {
	start := time.Now()

	secureHash, err := ClearSecureHash(secretHex, map[string]string{
		"merchantId": merchantID,
		"customerId": customerID,
	})
	if err != nil {
		return a.fail(env, start, outcomeInvalidKey, invalidKeyFailureMessage, err)
	}

	body, err := json.Marshal(SessionTokenRequest{
		MerchantID:      merchantID,
		SecureHashValue: secureHash,
		CustomerID:      optional(customerID),
	})
	if err != nil {
		return a.fail(env, start, outcomeNetworkFailure, genericFailureMessage,
			domain.WrapError(domain.ErrorCodeNetworkFailure, "failed to encode request", err))
	}

	endpoint := a.baseURL(env) + SessionTokenPath

	a.logger.Info("requesting session token",
		ports.String("environment", string(env)),
		ports.String("merchant_id", merchantID),
		ports.Bool("has_customer_id", customerID != ""),
	)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return a.fail(env, start, outcomeNetworkFailure, genericFailureMessage,
			domain.WrapError(domain.ErrorCodeNetworkFailure, "failed to create request", err))
	}
	httpReq.Header.Set("Accept", "text/plain")
	httpReq.Header.Set("Accept-Language", "en-US,en;q=0.9")
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := a.httpClient.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return a.abort(env, start, err)
		}
		return a.fail(env, start, outcomeNetworkFailure, genericFailureMessage,
			domain.WrapError(domain.ErrorCodeNetworkFailure, "session token request failed", err))
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseBytes))
	if err != nil {
		if ctx.Err() != nil {
			return a.abort(env, start, err)
		}
		return a.fail(env, start, outcomeNetworkFailure, genericFailureMessage,
			domain.WrapError(domain.ErrorCodeNetworkFailure, "failed to read response", err))
	}

	var resp SessionTokenResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return a.fail(env, start, outcomeRejected, genericFailureMessage,
			domain.WrapError(domain.ErrorCodeServerRejected, "malformed response body", err).
				WithDetail("status_code", httpResp.StatusCode))
	}

	if !isSuccessStatus(httpResp.StatusCode) || !resp.Success {
		message := unknownErrorMessage
		if len(resp.ErrorList) > 0 {
			message = strings.Join(resp.ErrorList, ",")
		}
		return a.fail(env, start, outcomeRejected, message,
			domain.NewDomainError(domain.ErrorCodeServerRejected, message).
				WithDetail("status_code", httpResp.StatusCode).
				WithDetail("errors", resp.ErrorList))
	}

	if resp.Data == nil || resp.Data.SessionToken == "" {
		return a.fail(env, start, outcomeRejected, genericFailureMessage,
			domain.NewDomainError(domain.ErrorCodeServerRejected, "response carried no session token").
				WithDetail("status_code", httpResp.StatusCode))
	}

	observability.RecordSessionTokenRequest(string(env), outcomeSuccess, time.Since(start))
	a.logger.Info("session token fetched",
		ports.String("environment", string(env)),
		ports.String("merchant_id", merchantID),
		ports.Duration("elapsed", time.Since(start)),
	)

	return resp.Data.SessionToken, nil
}

func (a *SessionTokenAdapter) baseURL(env domain.Environment) string {
	if a.config.BaseURL != "" {
		return a.config.BaseURL
	}
	return WebhookURL(env)
}

func (a *SessionTokenAdapter) fail(env domain.Environment, start time.Time, outcome, userMessage string, err error) (string, error) {
	observability.RecordSessionTokenRequest(string(env), outcome, time.Since(start))
	a.logger.Error("failed to fetch session token",
		ports.String("environment", string(env)),
		ports.String("outcome", outcome),
		ports.Duration("elapsed", time.Since(start)),
		ports.Err(err),
	)
	a.surface.ShowError(ErrorDialogTitle, userMessage)
	return "", fmt.Errorf("fetch session token: %w", err)
}

// abort ends a request whose context was cancelled without alerting the user
func (a *SessionTokenAdapter) abort(env domain.Environment, start time.Time, err error) (string, error) {
	observability.RecordSessionTokenRequest(string(env), outcomeCancelled, time.Since(start))
	a.logger.Info("session token request cancelled",
		ports.String("environment", string(env)),
		ports.Duration("elapsed", time.Since(start)),
		ports.Err(err),
	)
	return "", fmt.Errorf("fetch session token: %w", err)
}

func isSuccessStatus(code int) bool {
	return code >= 200 && code < 300
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
