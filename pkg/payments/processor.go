package payments

import (
	"context"
	"errors"
	"fmt"
)

// ErrorKind is the closed failure taxonomy of the payment processor.
type ErrorKind string

const (
	// KindNotConfigured: the counterparty account is missing prerequisite
	// onboarding. Not retryable until onboarding completes.
	KindNotConfigured ErrorKind = "not_configured"
	// KindNotFound: the referenced intent/resource does not exist.
	KindNotFound ErrorKind = "not_found"
	// KindProvider: transient provider failure, retryable on the next run.
	KindProvider ErrorKind = "provider_error"
)

type ProcessorError struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *ProcessorError) Error() string {
	return fmt.Sprintf("%s (%s): %v", e.Op, e.Kind, e.Err)
}

func (e *ProcessorError) Unwrap() error {
	return e.Err
}

// AsProcessorError unwraps err into a *ProcessorError if one is in the chain.
func AsProcessorError(err error) (*ProcessorError, bool) {
	var pErr *ProcessorError
	if errors.As(err, &pErr) {
		return pErr, true
	}
	return nil, false
}

type CaptureResult struct {
	PaymentIntentID string
	AmountCaptured  int64
}

type TransferInput struct {
	Amount          int64
	Currency        string
	Destination     string
	PaymentIntentID string
	BookingID       string
}

type TransferResult struct {
	TransferID string
}

// Processor performs the side-effecting money operations. Implementations
// must be safe to call again for the same booking: retries carry a
// deterministic idempotency key derived from the booking id.
type Processor interface {
	Capture(ctx context.Context, paymentIntentID, bookingID string) (*CaptureResult, error)
	Transfer(ctx context.Context, in TransferInput) (*TransferResult, error)
}
