package usecase

import (
	"context"
	"time"

	"salon-booking/internal/data/entity"
	"salon-booking/internal/data/repository"
	"salon-booking/pkg/mailer"
	"salon-booking/pkg/payments"

	"github.com/google/uuid"
)

// Mock repositories for testing

type mockBookingRepo struct {
	findByIDFunc               func(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	findEligibleForCaptureFunc func(ctx context.Context, from, to time.Time) ([]*entity.Booking, error)
	findUncapturedFunc         func(ctx context.Context) ([]*entity.Booking, error)
	findEligibleForPayoutFunc  func(ctx context.Context) ([]*entity.Booking, error)
	markPaymentCapturedFunc    func(ctx context.Context, id uuid.UUID, at time.Time) (bool, error)
	markPayoutProcessedFunc    func(ctx context.Context, id uuid.UUID, at time.Time) (bool, error)
	markPayoutEmailSentFunc    func(ctx context.Context, id uuid.UUID, at time.Time) error

	payoutEmailSent []uuid.UUID
}

func (m *mockBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockBookingRepo) FindEligibleForCapture(ctx context.Context, from, to time.Time) ([]*entity.Booking, error) {
	if m.findEligibleForCaptureFunc != nil {
		return m.findEligibleForCaptureFunc(ctx, from, to)
	}
	return nil, nil
}

func (m *mockBookingRepo) FindUncaptured(ctx context.Context) ([]*entity.Booking, error) {
	if m.findUncapturedFunc != nil {
		return m.findUncapturedFunc(ctx)
	}
	return nil, nil
}

func (m *mockBookingRepo) FindEligibleForPayout(ctx context.Context) ([]*entity.Booking, error) {
	if m.findEligibleForPayoutFunc != nil {
		return m.findEligibleForPayoutFunc(ctx)
	}
	return nil, nil
}

func (m *mockBookingRepo) MarkPaymentCaptured(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	if m.markPaymentCapturedFunc != nil {
		return m.markPaymentCapturedFunc(ctx, id, at)
	}
	return true, nil
}

func (m *mockBookingRepo) MarkPayoutProcessed(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	if m.markPayoutProcessedFunc != nil {
		return m.markPayoutProcessedFunc(ctx, id, at)
	}
	return true, nil
}

func (m *mockBookingRepo) MarkPayoutEmailSent(ctx context.Context, id uuid.UUID, at time.Time) error {
	m.payoutEmailSent = append(m.payoutEmailSent, id)
	if m.markPayoutEmailSentFunc != nil {
		return m.markPayoutEmailSentFunc(ctx, id, at)
	}
	return nil
}

type mockPaymentRepo struct {
	findByBookingIDFunc     func(ctx context.Context, bookingID uuid.UUID) (*entity.Payment, error)
	markCapturedFunc        func(ctx context.Context, bookingID uuid.UUID, at time.Time) error
	markPayoutCompletedFunc func(ctx context.Context, bookingID uuid.UUID, transferID string, at time.Time) error

	capturedBookings []uuid.UUID
	completedPayouts map[uuid.UUID]string
}

func (m *mockPaymentRepo) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Payment, error) {
	if m.findByBookingIDFunc != nil {
		return m.findByBookingIDFunc(ctx, bookingID)
	}
	return nil, nil
}

func (m *mockPaymentRepo) MarkCaptured(ctx context.Context, bookingID uuid.UUID, at time.Time) error {
	m.capturedBookings = append(m.capturedBookings, bookingID)
	if m.markCapturedFunc != nil {
		return m.markCapturedFunc(ctx, bookingID, at)
	}
	return nil
}

func (m *mockPaymentRepo) MarkPayoutCompleted(ctx context.Context, bookingID uuid.UUID, transferID string, at time.Time) error {
	if m.completedPayouts == nil {
		m.completedPayouts = make(map[uuid.UUID]string)
	}
	m.completedPayouts[bookingID] = transferID
	if m.markPayoutCompletedFunc != nil {
		return m.markPayoutCompletedFunc(ctx, bookingID, transferID, at)
	}
	return nil
}

type mockProfileRepo struct {
	findByIDFunc func(ctx context.Context, id uuid.UUID) (*entity.Profile, error)
}

func (m *mockProfileRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Profile, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, nil
}

type mockPreferenceRepo struct {
	findByProfileIDFunc func(ctx context.Context, profileID uuid.UUID) (*entity.NotificationPreference, error)
}

func (m *mockPreferenceRepo) FindByProfileID(ctx context.Context, profileID uuid.UUID) (*entity.NotificationPreference, error) {
	if m.findByProfileIDFunc != nil {
		return m.findByProfileIDFunc(ctx, profileID)
	}
	return nil, nil
}

type mockServiceItemRepo struct {
	findByBookingIDFunc func(ctx context.Context, bookingID uuid.UUID) ([]*entity.ServiceItem, error)
}

func (m *mockServiceItemRepo) FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.ServiceItem, error) {
	if m.findByBookingIDFunc != nil {
		return m.findByBookingIDFunc(ctx, bookingID)
	}
	return nil, nil
}

type mockSessionRepo struct {
	findValidSessionFunc func(ctx context.Context, token string) (*entity.Session, error)
}

func (m *mockSessionRepo) FindValidSession(ctx context.Context, token string) (*entity.Session, error) {
	if m.findValidSessionFunc != nil {
		return m.findValidSessionFunc(ctx, token)
	}
	return nil, nil
}

// Mock external clients

type mockProcessor struct {
	captureFunc  func(ctx context.Context, paymentIntentID, bookingID string) (*payments.CaptureResult, error)
	transferFunc func(ctx context.Context, in payments.TransferInput) (*payments.TransferResult, error)

	captureCalls  int
	transferCalls int
}

func (m *mockProcessor) Capture(ctx context.Context, paymentIntentID, bookingID string) (*payments.CaptureResult, error) {
	m.captureCalls++
	if m.captureFunc != nil {
		return m.captureFunc(ctx, paymentIntentID, bookingID)
	}
	return &payments.CaptureResult{PaymentIntentID: paymentIntentID, AmountCaptured: 10000}, nil
}

func (m *mockProcessor) Transfer(ctx context.Context, in payments.TransferInput) (*payments.TransferResult, error) {
	m.transferCalls++
	if m.transferFunc != nil {
		return m.transferFunc(ctx, in)
	}
	return &payments.TransferResult{TransferID: "tr_" + in.BookingID}, nil
}

type mockMailer struct {
	sendFunc func(msg mailer.Message) error

	sent []mailer.Message
}

func (m *mockMailer) Send(msg mailer.Message) error {
	if m.sendFunc != nil {
		if err := m.sendFunc(msg); err != nil {
			return err
		}
	}
	m.sent = append(m.sent, msg)
	return nil
}

type mockPublisher struct {
	publishFunc func(ctx context.Context, key string, v any) error

	published []publishedEvent
}

type publishedEvent struct {
	key     string
	payload any
}

func (m *mockPublisher) PublishJSON(ctx context.Context, key string, v any) error {
	if m.publishFunc != nil {
		if err := m.publishFunc(ctx, key, v); err != nil {
			return err
		}
	}
	m.published = append(m.published, publishedEvent{key: key, payload: v})
	return nil
}

func (m *mockPublisher) Close() error { return nil }

type mockNotifier struct {
	paymentCapturedFunc func(ctx context.Context, booking *entity.Booking, payment *entity.Payment) int
	payoutProcessedFunc func(ctx context.Context, booking *entity.Booking, payment *entity.Payment) int

	paymentCapturedCalls int
	payoutProcessedCalls int
}

func (m *mockNotifier) NotifyPaymentCaptured(ctx context.Context, booking *entity.Booking, payment *entity.Payment) int {
	m.paymentCapturedCalls++
	if m.paymentCapturedFunc != nil {
		return m.paymentCapturedFunc(ctx, booking, payment)
	}
	return 0
}

func (m *mockNotifier) NotifyPayoutProcessed(ctx context.Context, booking *entity.Booking, payment *entity.Payment) int {
	m.payoutProcessedCalls++
	if m.payoutProcessedFunc != nil {
		return m.payoutProcessedFunc(ctx, booking, payment)
	}
	return 0
}

// Test fixtures

func testRepo(booking *mockBookingRepo, payment *mockPaymentRepo, profile *mockProfileRepo, pref *mockPreferenceRepo, items *mockServiceItemRepo) *repository.Repository {
	if booking == nil {
		booking = &mockBookingRepo{}
	}
	if payment == nil {
		payment = &mockPaymentRepo{}
	}
	if profile == nil {
		profile = &mockProfileRepo{}
	}
	if pref == nil {
		pref = &mockPreferenceRepo{}
	}
	if items == nil {
		items = &mockServiceItemRepo{}
	}
	return &repository.Repository{
		Booking:     booking,
		Payment:     payment,
		Profile:     profile,
		Preference:  pref,
		ServiceItem: items,
		Session:     &mockSessionRepo{},
	}
}

func makeBooking(status entity.BookingStatus, start time.Time) *entity.Booking {
	now := time.Now()
	return &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		CustomerID: uuid.New(),
		StylistID:  uuid.New(),
		StartTime:  start,
		EndTime:    start.Add(time.Hour),
		Status:     status,
	}
}

func makePayment(bookingID uuid.UUID) *entity.Payment {
	now := time.Now()
	return &entity.Payment{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		BookingID:       bookingID,
		OriginalAmount:  100000,
		DiscountAmount:  10000,
		FinalAmount:     90000,
		PlatformFee:     18000,
		StylistPayout:   72000,
		Currency:        "nok",
		PaymentIntentID: "pi_" + bookingID.String()[:8],
	}
}

func strPtr(s string) *string { return &s }
