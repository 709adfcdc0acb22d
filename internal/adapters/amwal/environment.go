package amwal

import (
	"fmt"
	"strings"

	"github.com/kevin07696/amwalpay-bridge/internal/domain"
)

// Base URLs of the Amwal webhook service per environment
const (
	SITWebhookURL  = "https://test.amwalpg.com:24443/"
	UATWebhookURL  = "https://test.amwalpg.com:14443/"
	PRODWebhookURL = "https://webhook.amwalpg.com/"
)

// SessionTokenPath is appended to the webhook base URL
const SessionTokenPath = "Membership/GetSDKSessionToken"

// WebhookURL returns the base URL for env. Unknown environments fall back to SIT.
func WebhookURL(env domain.Environment) string {
	switch env {
	case domain.EnvironmentSIT:
		return SITWebhookURL
	case domain.EnvironmentUAT:
		return UATWebhookURL
	case domain.EnvironmentPROD:
		return PRODWebhookURL
	default:
		return SITWebhookURL
	}
}

// ParseEnvironment converts a config or CLI value into an Environment
func ParseEnvironment(value string) (domain.Environment, error) {
	switch env := domain.Environment(strings.ToUpper(strings.TrimSpace(value))); env {
	case domain.EnvironmentSIT, domain.EnvironmentUAT, domain.EnvironmentPROD:
		return env, nil
	default:
		return "", fmt.Errorf("unknown environment %q (want SIT, UAT or PROD)", value)
	}
}
