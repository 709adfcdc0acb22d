package payment

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/kevin07696/amwalpay-bridge/internal/domain"
	"github.com/kevin07696/amwalpay-bridge/internal/domain/ports"
	"github.com/kevin07696/amwalpay-bridge/pkg/observability"
)

const (
	cancelledMessage = "cancelled"

	defaultCustomerIDBuffer = 8

	// Attempt outcomes recorded in amwal_payment_attempts_total
	statusSucceeded   = "success"
	statusDeclined    = "error"
	statusFailed      = "failed"
	statusTokenFailed = "token_failed"
	statusCancelled   = "cancelled"
)

// Option configures a Service
type Option func(*Service)

// WithTransactionIDGenerator replaces uuid.NewString for attempts that carry no transaction ID
func WithTransactionIDGenerator(fn func() string) Option {
	return func(s *Service) {
		s.newTransactionID = fn
	}
}

// WithCustomerIDBuffer sets how many customer IDs an attempt holds for a slow reader.
// Further IDs are dropped and logged.
func WithCustomerIDBuffer(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.customerIDBuffer = n
		}
	}
}

// WithValidator replaces the default PaymentConfig validator
func WithValidator(v *Validator) Option {
	return func(s *Service) {
		s.validator = v
	}
}

// Service starts native payment sessions and routes their callbacks back
// to the attempt that started them. It implements ports.NativeCallbacks.
type Service struct {
	tokens ports.SessionTokenClient
	sdk    ports.NativeSDK
	logger ports.Logger

	validator        *Validator
	newTransactionID func() string
	customerIDBuffer int

	mu       sync.Mutex
	attempts map[string]*Attempt
}

// NewService creates a new payment bridge service
func NewService(tokens ports.SessionTokenClient, sdk ports.NativeSDK, logger ports.Logger, opts ...Option) *Service {
	s := &Service{
		tokens:           tokens,
		sdk:              sdk,
		logger:           logger,
		newTransactionID: uuid.NewString,
		customerIDBuffer: defaultCustomerIDBuffer,
		attempts:         make(map[string]*Attempt),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.validator == nil {
		s.validator = NewValidator()
	}
	return s
}

// StartPayment validates cfg, exchanges the merchant secret for a session token
// and presents the native checkout.
//
// ctx bounds the token exchange only. The native session outlives it and ends
// with its response, Cancel or Dispose.
//
// Validation, registration and token failures return a nil Attempt. An attempt
// cancelled during the token exchange is returned resolved with a nil error.
// When the native SDK refuses to present, the returned Attempt is already
// resolved with an ERROR response and the error is returned alongside it.
func (s *Service) StartPayment(ctx context.Context, cfg domain.PaymentConfig) (*Attempt, error) {
	if err := s.validator.Validate(cfg); err != nil {
		s.logger.Warn("rejected payment config", ports.Err(err))
		return nil, err
	}

	transactionID := cfg.TransactionID
	if transactionID == "" {
		transactionID = s.newTransactionID()
	}

	attemptCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	attempt, err := s.register(transactionID, cfg.TransactionType, cancel)
	if err != nil {
		cancel()
		return nil, err
	}

	s.logger.Info("starting payment",
		ports.String("transaction_id", transactionID),
		ports.String("transaction_type", string(cfg.TransactionType)),
		ports.String("environment", string(cfg.Environment)),
		ports.String("amount", cfg.Amount),
	)

	token, err := s.fetchToken(ctx, attemptCtx, cfg)
	if err != nil {
		if !s.abandon(attempt, statusTokenFailed) {
			// resolved by Cancel or Dispose while the token was in flight
			return attempt, nil
		}
		return nil, fmt.Errorf("start payment: %w", err)
	}
	if attemptCtx.Err() != nil {
		return attempt, nil
	}

	native := domain.NewNativeConfig(cfg, token, transactionID)
	if err := s.sdk.Present(attemptCtx, native, s); err != nil {
		s.logger.Error("native checkout failed to present",
			ports.String("transaction_id", transactionID),
			ports.Err(err),
		)
		s.resolve(transactionID, domain.FailureResponse(transactionID, failureMessage(err)), statusFailed)
		return attempt, fmt.Errorf("present native checkout: %w", err)
	}

	return attempt, nil
}

// OnResponse delivers the terminal response of a native session
func (s *Service) OnResponse(transactionID string, resp domain.PaymentResponse) {
	if resp.TransactionID == "" {
		resp.TransactionID = transactionID
	}

	status := statusDeclined
	if resp.Succeeded() {
		status = statusSucceeded
	}

	if !s.resolve(transactionID, resp, status) {
		s.logger.Warn("dropped response for unknown or finished attempt",
			ports.String("transaction_id", transactionID),
			ports.String("status", resp.Status),
		)
	}
}

// OnCustomerID delivers a customer ID the native SDK created or selected
func (s *Service) OnCustomerID(transactionID, customerID string) {
	s.mu.Lock()
	attempt, ok := s.attempts[transactionID]
	s.mu.Unlock()

	if !ok {
		s.logger.Warn("dropped customer id for unknown attempt",
			ports.String("transaction_id", transactionID),
		)
		return
	}

	if !attempt.pushCustomerID(customerID) {
		s.logger.Warn("dropped customer id",
			ports.String("transaction_id", transactionID),
		)
	}
}

// Cancel resolves a pending attempt with an ERROR response and stops its native session
func (s *Service) Cancel(transactionID string) error {
	if !s.resolve(transactionID, domain.FailureResponse(transactionID, cancelledMessage), statusCancelled) {
		return domain.NewDomainError(domain.ErrorCodeAttemptNotFound, "payment attempt not found").
			WithDetail("transaction_id", transactionID)
	}
	s.logger.Info("payment cancelled", ports.String("transaction_id", transactionID))
	return nil
}

// Dispose cancels every pending attempt. The service stays usable afterwards.
func (s *Service) Dispose() {
	s.mu.Lock()
	ids := make([]string, 0, len(s.attempts))
	for id := range s.attempts {
		ids = append(ids, id)
	}
	s.mu.Unlock()

	for _, id := range ids {
		s.resolve(id, domain.FailureResponse(id, cancelledMessage), statusCancelled)
	}

	if len(ids) > 0 {
		s.logger.Info("disposed pending payments", ports.Int("count", len(ids)))
	}
}

// Pending returns the number of attempts still waiting for a response
func (s *Service) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.attempts)
}

func (s *Service) register(transactionID string, txType domain.TransactionType, cancel context.CancelFunc) (*Attempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.attempts[transactionID]; exists {
		return nil, domain.NewDomainError(domain.ErrorCodeAttemptInProgress, "payment attempt already in progress").
			WithDetail("transaction_id", transactionID)
	}

	attempt := newAttempt(transactionID, txType, s.customerIDBuffer, cancel)
	s.attempts[transactionID] = attempt
	observability.PaymentAttemptStarted()
	return attempt, nil
}

// fetchToken runs the token exchange until the caller's ctx or the attempt ends
func (s *Service) fetchToken(ctx, attemptCtx context.Context, cfg domain.PaymentConfig) (string, error) {
	fetchCtx, cancel := context.WithCancel(attemptCtx)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	return s.tokens.FetchSessionToken(fetchCtx, cfg.Environment, cfg.MerchantID, cfg.CustomerID, cfg.SecureHash)
}

// abandon removes an attempt that never reached the native SDK. It reports
// false when the attempt was already resolved.
func (s *Service) abandon(attempt *Attempt, status string) bool {
	s.mu.Lock()
	registered := s.attempts[attempt.transactionID] == attempt
	if registered {
		delete(s.attempts, attempt.transactionID)
	}
	s.mu.Unlock()

	if !registered {
		return false
	}
	attempt.cancel()
	observability.PaymentAttemptFinished(string(attempt.transactionType), status)
	return true
}

// resolve removes the attempt and delivers resp. It reports false when no
// pending attempt has this ID.
func (s *Service) resolve(transactionID string, resp domain.PaymentResponse, status string) bool {
	s.mu.Lock()
	attempt, ok := s.attempts[transactionID]
	delete(s.attempts, transactionID)
	s.mu.Unlock()

	if !ok || !attempt.finish(resp) {
		return false
	}

	observability.PaymentAttemptFinished(string(attempt.transactionType), status)
	s.logger.Info("payment finished",
		ports.String("transaction_id", transactionID),
		ports.String("status", resp.Status),
	)
	return true
}

func failureMessage(err error) string {
	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Message
	}
	return err.Error()
}
