package payment

import (
	"context"
	"sync"

	"github.com/kevin07696/amwalpay-bridge/internal/domain"
)

// Attempt is one in-flight payment. Its result channel receives exactly one
// response and is then closed.
type Attempt struct {
	transactionID   string
	transactionType domain.TransactionType
	cancel          context.CancelFunc

	mu          sync.Mutex
	finished    bool
	response    domain.PaymentResponse
	result      chan domain.PaymentResponse
	customerIDs chan string
	done        chan struct{}
}

func newAttempt(transactionID string, txType domain.TransactionType, customerIDBuffer int, cancel context.CancelFunc) *Attempt {
	return &Attempt{
		transactionID:   transactionID,
		transactionType: txType,
		cancel:          cancel,
		result:          make(chan domain.PaymentResponse, 1),
		customerIDs:     make(chan string, customerIDBuffer),
		done:            make(chan struct{}),
	}
}

// TransactionID returns the ID the native SDK was started with
func (a *Attempt) TransactionID() string {
	return a.transactionID
}

// Result receives the terminal response, then closes
func (a *Attempt) Result() <-chan domain.PaymentResponse {
	return a.result
}

// CustomerIDs receives customer IDs reported during the session. It is closed
// once the result is delivered.
func (a *Attempt) CustomerIDs() <-chan string {
	return a.customerIDs
}

// Done is closed when the attempt has a response
func (a *Attempt) Done() <-chan struct{} {
	return a.done
}

// Await blocks until the attempt resolves or ctx ends. Giving up on ctx does
// not cancel the attempt. Await may be called any number of times, including
// after Result has been drained.
func (a *Attempt) Await(ctx context.Context) (domain.PaymentResponse, error) {
	select {
	case <-a.done:
		a.mu.Lock()
		defer a.mu.Unlock()
		return a.response, nil
	case <-ctx.Done():
		return domain.PaymentResponse{}, ctx.Err()
	}
}

// finish delivers resp once. Later calls report false.
func (a *Attempt) finish(resp domain.PaymentResponse) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.finished {
		return false
	}
	a.finished = true
	a.response = resp

	a.result <- resp
	close(a.result)
	close(a.customerIDs)
	close(a.done)
	a.cancel()
	return true
}

// pushCustomerID queues id without blocking the native callback thread
func (a *Attempt) pushCustomerID(id string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.finished {
		return false
	}
	select {
	case a.customerIDs <- id:
		return true
	default:
		return false
	}
}
