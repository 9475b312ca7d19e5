package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"salon-booking/internal/data/entity"
	"salon-booking/pkg/payments"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func makeStylist(accountID *string) *entity.Profile {
	return &entity.Profile{
		Base:            entity.Base{ID: uuid.New()},
		FullName:        "Kari Nordmann",
		Email:           strPtr("kari@example.com"),
		Role:            entity.RoleStylist,
		StripeAccountID: accountID,
	}
}

func TestPayoutRun_Success(t *testing.T) {
	b1 := makeBooking(entity.BookingStatusCompleted, time.Now().Add(-24*time.Hour))
	pays := paymentsByBooking(b1)
	stylist := makeStylist(strPtr("acct_123"))
	stylist.Base.ID = b1.StylistID

	bookingRepo := &mockBookingRepo{
		findEligibleForPayoutFunc: func(ctx context.Context) ([]*entity.Booking, error) {
			return []*entity.Booking{b1}, nil
		},
	}
	paymentRepo := &mockPaymentRepo{
		findByBookingIDFunc: func(ctx context.Context, bookingID uuid.UUID) (*entity.Payment, error) {
			return pays[bookingID], nil
		},
	}
	profileRepo := &mockProfileRepo{
		findByIDFunc: func(ctx context.Context, id uuid.UUID) (*entity.Profile, error) {
			return stylist, nil
		},
	}
	processor := &mockProcessor{}
	notifier := &mockNotifier{
		payoutProcessedFunc: func(ctx context.Context, booking *entity.Booking, payment *entity.Payment) int {
			return 1
		},
	}

	svc := NewPayoutService(testRepo(bookingRepo, paymentRepo, profileRepo, nil, nil), processor, notifier, zap.NewNop())

	summary, err := svc.Run(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !summary.Success {
		t.Error("expected success")
	}
	if summary.PayoutsProcessed != 1 {
		t.Errorf("expected 1 payout processed, got %d", summary.PayoutsProcessed)
	}
	if summary.EmailsSent != 1 {
		t.Errorf("expected 1 email sent, got %d", summary.EmailsSent)
	}
	if processor.transferCalls != 1 {
		t.Errorf("expected 1 transfer call, got %d", processor.transferCalls)
	}
	wantTransfer := "tr_" + b1.ID.String()
	if got := paymentRepo.completedPayouts[b1.ID]; got != wantTransfer {
		t.Errorf("expected transfer id %s recorded on the payment, got %q", wantTransfer, got)
	}
}

func TestPayoutRun_StylistNotOnboarded(t *testing.T) {
	b1 := makeBooking(entity.BookingStatusCompleted, time.Now().Add(-24*time.Hour))
	pays := paymentsByBooking(b1)

	bookingRepo := &mockBookingRepo{
		findEligibleForPayoutFunc: func(ctx context.Context) ([]*entity.Booking, error) {
			return []*entity.Booking{b1}, nil
		},
	}
	paymentRepo := &mockPaymentRepo{
		findByBookingIDFunc: func(ctx context.Context, bookingID uuid.UUID) (*entity.Payment, error) {
			return pays[bookingID], nil
		},
	}
	profileRepo := &mockProfileRepo{
		findByIDFunc: func(ctx context.Context, id uuid.UUID) (*entity.Profile, error) {
			return makeStylist(nil), nil
		},
	}
	processor := &mockProcessor{}

	svc := NewPayoutService(testRepo(bookingRepo, paymentRepo, profileRepo, nil, nil), processor, &mockNotifier{}, zap.NewNop())

	summary, err := svc.Run(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.Errors != 1 {
		t.Errorf("expected 1 error, got %d", summary.Errors)
	}
	if processor.transferCalls != 0 {
		t.Error("expected no transfer attempt without a payout account")
	}
	if !strings.Contains(summary.Message, "onboarding") {
		t.Errorf("expected message to mention onboarding, got %q", summary.Message)
	}
}

func TestPayoutRun_FailureIsolation(t *testing.T) {
	now := time.Now()
	b1 := makeBooking(entity.BookingStatusCompleted, now.Add(-48*time.Hour))
	b2 := makeBooking(entity.BookingStatusCompleted, now.Add(-36*time.Hour))
	b3 := makeBooking(entity.BookingStatusCompleted, now.Add(-24*time.Hour))
	pays := paymentsByBooking(b1, b2, b3)

	bookingRepo := &mockBookingRepo{
		findEligibleForPayoutFunc: func(ctx context.Context) ([]*entity.Booking, error) {
			return []*entity.Booking{b1, b2, b3}, nil
		},
	}
	paymentRepo := &mockPaymentRepo{
		findByBookingIDFunc: func(ctx context.Context, bookingID uuid.UUID) (*entity.Payment, error) {
			return pays[bookingID], nil
		},
	}
	profileRepo := &mockProfileRepo{
		findByIDFunc: func(ctx context.Context, id uuid.UUID) (*entity.Profile, error) {
			p := makeStylist(strPtr("acct_" + id.String()[:8]))
			p.Base.ID = id
			return p, nil
		},
	}
	processor := &mockProcessor{
		transferFunc: func(ctx context.Context, in payments.TransferInput) (*payments.TransferResult, error) {
			if in.BookingID == b2.ID.String() {
				return nil, &payments.ProcessorError{
					Kind: payments.KindProvider,
					Op:   "create transfer",
					Err:  errors.New("insufficient platform balance"),
				}
			}
			return &payments.TransferResult{TransferID: "tr_" + in.BookingID}, nil
		},
	}

	svc := NewPayoutService(testRepo(bookingRepo, paymentRepo, profileRepo, nil, nil), processor, &mockNotifier{}, zap.NewNop())

	summary, err := svc.Run(context.Background(), now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.Success {
		t.Error("expected success=false on partial failure")
	}
	if summary.BookingsProcessed != 3 {
		t.Errorf("expected 3 bookings processed, got %d", summary.BookingsProcessed)
	}
	if summary.PayoutsProcessed != 2 {
		t.Errorf("expected 2 payouts processed, got %d", summary.PayoutsProcessed)
	}
	if summary.Errors != 1 {
		t.Errorf("expected 1 error, got %d", summary.Errors)
	}
	if !strings.Contains(summary.Message, b2.ID.String()) {
		t.Errorf("expected message to name the failed booking, got %q", summary.Message)
	}
}

func TestPayoutRun_GuardAlreadySet(t *testing.T) {
	b1 := makeBooking(entity.BookingStatusCompleted, time.Now().Add(-24*time.Hour))
	pays := paymentsByBooking(b1)

	bookingRepo := &mockBookingRepo{
		findEligibleForPayoutFunc: func(ctx context.Context) ([]*entity.Booking, error) {
			return []*entity.Booking{b1}, nil
		},
		markPayoutProcessedFunc: func(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
			return false, nil
		},
	}
	paymentRepo := &mockPaymentRepo{
		findByBookingIDFunc: func(ctx context.Context, bookingID uuid.UUID) (*entity.Payment, error) {
			return pays[bookingID], nil
		},
	}
	profileRepo := &mockProfileRepo{
		findByIDFunc: func(ctx context.Context, id uuid.UUID) (*entity.Profile, error) {
			return makeStylist(strPtr("acct_123")), nil
		},
	}
	notifier := &mockNotifier{}

	svc := NewPayoutService(testRepo(bookingRepo, paymentRepo, profileRepo, nil, nil), &mockProcessor{}, notifier, zap.NewNop())

	summary, err := svc.Run(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.Errors != 0 {
		t.Errorf("expected 0 errors, got %d", summary.Errors)
	}
	if summary.PayoutsProcessed != 0 {
		t.Errorf("expected 0 payouts processed, got %d", summary.PayoutsProcessed)
	}
	if notifier.payoutProcessedCalls != 0 {
		t.Error("expected no notification when the guard was already set")
	}
	if len(paymentRepo.completedPayouts) != 0 {
		t.Error("expected no payment record update when the guard was already set")
	}
}

func TestPayoutRun_RecordFailureAfterTransfer(t *testing.T) {
	b1 := makeBooking(entity.BookingStatusCompleted, time.Now().Add(-24*time.Hour))
	pays := paymentsByBooking(b1)
	transferID := "tr_" + b1.ID.String()

	bookingRepo := &mockBookingRepo{
		findEligibleForPayoutFunc: func(ctx context.Context) ([]*entity.Booking, error) {
			return []*entity.Booking{b1}, nil
		},
		markPayoutProcessedFunc: func(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
			return false, errors.New("write timeout")
		},
	}
	paymentRepo := &mockPaymentRepo{
		findByBookingIDFunc: func(ctx context.Context, bookingID uuid.UUID) (*entity.Payment, error) {
			return pays[bookingID], nil
		},
	}
	profileRepo := &mockProfileRepo{
		findByIDFunc: func(ctx context.Context, id uuid.UUID) (*entity.Profile, error) {
			return makeStylist(strPtr("acct_123")), nil
		},
	}

	svc := NewPayoutService(testRepo(bookingRepo, paymentRepo, profileRepo, nil, nil), &mockProcessor{}, &mockNotifier{}, zap.NewNop())

	summary, err := svc.Run(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.Errors != 1 {
		t.Errorf("expected 1 error, got %d", summary.Errors)
	}
	if !strings.Contains(summary.Message, transferID) {
		t.Errorf("expected message to carry the transfer id %s, got %q", transferID, summary.Message)
	}
}

func TestPayoutRun_FetchFailure(t *testing.T) {
	bookingRepo := &mockBookingRepo{
		findEligibleForPayoutFunc: func(ctx context.Context) ([]*entity.Booking, error) {
			return nil, errors.New("connection refused")
		},
	}

	svc := NewPayoutService(testRepo(bookingRepo, nil, nil, nil, nil), &mockProcessor{}, &mockNotifier{}, zap.NewNop())

	summary, err := svc.Run(context.Background(), time.Now())
	if err == nil {
		t.Fatal("expected error on fetch failure")
	}
	if summary != nil {
		t.Error("expected nil summary on fetch failure")
	}
}
