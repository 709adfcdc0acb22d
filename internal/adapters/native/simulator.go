package native

import (
	"context"
	"encoding/json"
	"time"

	"github.com/kevin07696/amwalpay-bridge/internal/domain"
	"github.com/kevin07696/amwalpay-bridge/internal/domain/ports"
)

// SimulatorConfig controls how the simulated checkout behaves
type SimulatorConfig struct {
	// Delay before the session reports its result
	Delay time.Duration

	// CustomerIDs are emitted, in order, before the response
	CustomerIDs []string

	// Decline makes the session end with an error response
	Decline bool

	// Headless simulates a host without a presentable UI context
	Headless bool
}

// DefaultSimulatorConfig returns a simulator that approves after a short pause
func DefaultSimulatorConfig() SimulatorConfig {
	return SimulatorConfig{
		Delay: 500 * time.Millisecond,
	}
}

// Simulator is an in-process stand-in for the native Amwal checkout.
// It is what the example CLI and the service tests present against.
type Simulator struct {
	config SimulatorConfig
	logger ports.Logger
}

// NewSimulator creates a new simulated native SDK
func NewSimulator(config SimulatorConfig, logger ports.Logger) *Simulator {
	return &Simulator{
		config: config,
		logger: logger,
	}
}

// Present starts a simulated session and returns immediately
func (s *Simulator) Present(ctx context.Context, cfg domain.NativeConfig, cb ports.NativeCallbacks) error {
	if s.config.Headless {
		return domain.NewDomainError(domain.ErrorCodeMissingRootContext, "No root view controller found")
	}
	if cfg.SessionToken == "" {
		return domain.NewDomainError(domain.ErrorCodeNativeSDKFailed, "session token is required")
	}

	s.logger.Debug("presenting simulated checkout",
		ports.String("transaction_id", cfg.TransactionID),
		ports.String("transaction_type", string(cfg.TransactionType)),
		ports.String("amount", cfg.Amount),
	)

	go s.run(ctx, cfg, cb)
	return nil
}

func (s *Simulator) run(ctx context.Context, cfg domain.NativeConfig, cb ports.NativeCallbacks) {
	timer := time.NewTimer(s.config.Delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		cb.OnResponse(cfg.TransactionID, domain.FailureResponse(cfg.TransactionID, ctx.Err().Error()))
		return
	case <-timer.C:
	}

	for _, id := range s.config.CustomerIDs {
		cb.OnCustomerID(cfg.TransactionID, id)
	}

	cb.OnResponse(cfg.TransactionID, s.response(cfg))
}

func (s *Simulator) response(cfg domain.NativeConfig) domain.PaymentResponse {
	if s.config.Decline {
		return domain.PaymentResponse{
			TransactionID: cfg.TransactionID,
			Status:        domain.ResponseStatusError,
			Message:       "Transaction failed",
		}
	}

	data, _ := json.Marshal(map[string]string{
		"transactionId":     cfg.TransactionID,
		"amount":            cfg.Amount,
		"currency":          string(cfg.Currency),
		"merchantReference": cfg.MerchantReference,
	})

	return domain.PaymentResponse{
		TransactionID: cfg.TransactionID,
		Status:        domain.ResponseStatusSuccess,
		Message:       "Transaction completed",
		Data:          data,
	}
}
