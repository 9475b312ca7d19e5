package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"salon-booking/internal/data/entity"
	"salon-booking/internal/data/repository"
	"salon-booking/pkg/events"
	"salon-booking/pkg/mailer"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NotificationService fans out emails and domain events after a completed
// state transition. It is strictly best-effort: delivery failures are
// logged and counted, never surfaced to the orchestrator, and nothing is
// retried (the guard timestamp is already set, so the next run will not
// resend).
type NotificationService interface {
	NotifyPaymentCaptured(ctx context.Context, booking *entity.Booking, payment *entity.Payment) int
	NotifyPayoutProcessed(ctx context.Context, booking *entity.Booking, payment *entity.Payment) int
}

type notificationService struct {
	repo   *repository.Repository
	mail   mailer.Mailer
	events events.Publisher // nil when event publishing is disabled
	log    *zap.Logger
}

func NewNotificationService(repo *repository.Repository, mail mailer.Mailer, pub events.Publisher, log *zap.Logger) NotificationService {
	return &notificationService{
		repo:   repo,
		mail:   mail,
		events: pub,
		log:    log.With(zap.String("service", "notification")),
	}
}

func (s *notificationService) NotifyPaymentCaptured(ctx context.Context, booking *entity.Booking, payment *entity.Payment) int {
	sent := 0
	services := s.serviceLine(ctx, booking.ID)
	amount := formatAmount(payment.FinalAmount, payment.Currency)
	when := booking.StartTime.Format("2 January 2006 at 15:04")

	if email, name, ok := s.recipient(ctx, booking.CustomerID, entity.CategoryBookingConfirmations); ok {
		body := fmt.Sprintf(
			"<p>Hi %s,</p><p>We have charged %s for your upcoming booking (%s) on %s. You are all set.</p>",
			name, amount, services, when,
		)
		if s.send(email, "Payment received for your booking", body, booking.ID) {
			sent++
		}
	}

	if email, name, ok := s.recipient(ctx, booking.StylistID, entity.CategoryPaymentNotifications); ok {
		body := fmt.Sprintf(
			"<p>Hi %s,</p><p>The customer's payment of %s for the booking on %s (%s) has been received. Your payout of %s will be transferred after the appointment is completed.</p>",
			name, amount, when, services, formatAmount(payment.StylistPayout, payment.Currency),
		)
		if s.send(email, "Customer payment received", body, booking.ID) {
			sent++
		}
	}

	s.publish(ctx, events.PaymentCaptured, map[string]any{
		"booking_id":        booking.ID.String(),
		"payment_intent_id": payment.PaymentIntentID,
		"amount":            payment.FinalAmount,
		"currency":          payment.Currency,
	})

	return sent
}

func (s *notificationService) NotifyPayoutProcessed(ctx context.Context, booking *entity.Booking, payment *entity.Payment) int {
	sent := 0
	services := s.serviceLine(ctx, booking.ID)

	if email, name, ok := s.recipient(ctx, booking.StylistID, entity.CategoryPaymentNotifications); ok {
		body := fmt.Sprintf(
			"<p>Hi %s,</p><p>Your payout of %s for the completed booking (%s) is on its way to your account. It usually arrives within 2-3 business days.</p>",
			name, formatAmount(payment.StylistPayout, payment.Currency), services,
		)
		if s.send(email, "Your payout is on the way", body, booking.ID) {
			sent++
			if err := s.repo.Booking.MarkPayoutEmailSent(ctx, booking.ID, time.Now()); err != nil {
				s.log.Warn("Failed to record payout email marker",
					zap.Error(err),
					zap.String("booking_id", booking.ID.String()))
			}
		}
	}

	if email, name, ok := s.recipient(ctx, booking.CustomerID, entity.CategoryBookingStatusUpdates); ok {
		body := fmt.Sprintf(
			"<p>Hi %s,</p><p>Your booking (%s) is now completed. Thank you for using our marketplace - we hope to see you again.</p>",
			name, services,
		)
		if s.send(email, "Your booking is completed", body, booking.ID) {
			sent++
		}
	}

	payload := map[string]any{
		"booking_id": booking.ID.String(),
		"amount":     payment.StylistPayout,
		"currency":   payment.Currency,
	}
	if payment.TransferID != nil {
		payload["transfer_id"] = *payment.TransferID
	}
	s.publish(ctx, events.PayoutProcessed, payload)

	return sent
}

// recipient resolves the profile's email and checks its preference gate for
// the category. A missing preference row means the profile never opted out,
// so delivery is allowed.
func (s *notificationService) recipient(ctx context.Context, profileID uuid.UUID, category entity.NotificationCategory) (string, string, bool) {
	profile, err := s.repo.Profile.FindByID(ctx, profileID)
	if err != nil {
		s.log.Warn("Failed to load notification recipient",
			zap.Error(err),
			zap.String("profile_id", profileID.String()))
		return "", "", false
	}
	if profile == nil || profile.Email == nil || *profile.Email == "" {
		return "", "", false
	}

	pref, err := s.repo.Preference.FindByProfileID(ctx, profileID)
	if err != nil {
		s.log.Warn("Failed to load notification preferences",
			zap.Error(err),
			zap.String("profile_id", profileID.String()))
		return "", "", false
	}
	if pref != nil && !pref.Allows(category) {
		s.log.Debug("Recipient opted out",
			zap.String("profile_id", profileID.String()),
			zap.String("category", string(category)))
		return "", "", false
	}

	return *profile.Email, profile.FullName, true
}

func (s *notificationService) send(to, subject, body string, bookingID uuid.UUID) bool {
	err := s.mail.Send(mailer.Message{To: to, Subject: subject, Body: body})
	if err != nil {
		s.log.Warn("Failed to send notification email",
			zap.Error(err),
			zap.String("subject", subject),
			zap.String("booking_id", bookingID.String()))
		return false
	}
	return true
}

func (s *notificationService) publish(ctx context.Context, key string, payload map[string]any) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishJSON(ctx, key, payload); err != nil {
		s.log.Warn("Failed to publish event",
			zap.Error(err),
			zap.String("key", key))
	}
}

func (s *notificationService) serviceLine(ctx context.Context, bookingID uuid.UUID) string {
	items, err := s.repo.ServiceItem.FindByBookingID(ctx, bookingID)
	if err != nil || len(items) == 0 {
		return "your services"
	}

	titles := make([]string, len(items))
	for i, item := range items {
		titles[i] = item.Title
	}
	return strings.Join(titles, ", ")
}

func formatAmount(minor int64, currency string) string {
	return fmt.Sprintf("%.2f %s", float64(minor)/100, strings.ToUpper(currency))
}
