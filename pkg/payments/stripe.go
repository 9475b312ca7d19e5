package payments

import (
	"context"
	"errors"
	"strings"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"go.uber.org/zap"
)

// StripeProcessor captures payment intents and transfers stylist payouts to
// connected accounts.
type StripeProcessor struct {
	api *client.API
	log *zap.Logger
}

func NewStripeProcessor(secretKey string, log *zap.Logger) *StripeProcessor {
	api := &client.API{}
	api.Init(secretKey, nil)

	return &StripeProcessor{
		api: api,
		log: log.With(zap.String("processor", "stripe")),
	}
}

func (p *StripeProcessor) Capture(ctx context.Context, paymentIntentID, bookingID string) (*CaptureResult, error) {
	params := &stripe.PaymentIntentCaptureParams{}
	params.Context = ctx
	params.SetIdempotencyKey(captureIdempotencyKey(bookingID))

	pi, err := p.api.PaymentIntents.Capture(paymentIntentID, params)
	if err != nil {
		return nil, p.wrapError("capture payment intent", err)
	}

	p.log.Info("Payment intent captured",
		zap.String("payment_intent_id", pi.ID),
		zap.String("booking_id", bookingID),
		zap.Int64("amount_received", pi.AmountReceived),
	)

	return &CaptureResult{
		PaymentIntentID: pi.ID,
		AmountCaptured:  pi.AmountReceived,
	}, nil
}

func (p *StripeProcessor) Transfer(ctx context.Context, in TransferInput) (*TransferResult, error) {
	params := &stripe.TransferParams{
		Amount:        stripe.Int64(in.Amount),
		Currency:      stripe.String(strings.ToLower(in.Currency)),
		Destination:   stripe.String(in.Destination),
		TransferGroup: stripe.String(in.BookingID),
	}
	params.Context = ctx
	params.SetIdempotencyKey(transferIdempotencyKey(in.BookingID))
	params.AddMetadata("booking_id", in.BookingID)
	params.AddMetadata("payment_intent_id", in.PaymentIntentID)

	tr, err := p.api.Transfers.New(params)
	if err != nil {
		return nil, p.wrapError("create transfer", err)
	}

	p.log.Info("Transfer created",
		zap.String("transfer_id", tr.ID),
		zap.String("booking_id", in.BookingID),
		zap.Int64("amount", in.Amount),
	)

	return &TransferResult{TransferID: tr.ID}, nil
}

func (p *StripeProcessor) wrapError(op string, err error) error {
	kind := classifyStripeError(err)

	p.log.Warn("Stripe call failed",
		zap.String("op", op),
		zap.String("kind", string(kind)),
		zap.Error(err),
	)

	return &ProcessorError{Kind: kind, Op: op, Err: err}
}

// captureIdempotencyKey and transferIdempotencyKey are deterministic per
// booking, so a retried batch run cannot create a duplicate charge or
// transfer upstream.
func captureIdempotencyKey(bookingID string) string {
	return "capture:" + bookingID
}

func transferIdempotencyKey(bookingID string) string {
	return "payout:" + bookingID
}

func classifyStripeError(err error) ErrorKind {
	var sErr *stripe.Error
	if !errors.As(err, &sErr) {
		return KindProvider
	}

	switch sErr.Code {
	case stripe.ErrorCodeResourceMissing:
		return KindNotFound
	case stripe.ErrorCodeAccountInvalid:
		// Destination account exists but cannot receive transfers yet.
		return KindNotConfigured
	}

	return KindProvider
}
