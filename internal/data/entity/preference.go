package entity

import (
	"time"

	"github.com/google/uuid"
)

type NotificationCategory string

const (
	CategoryNewsletter           NotificationCategory = "newsletter"
	CategoryBookingConfirmations NotificationCategory = "booking_confirmations"
	CategoryBookingStatusUpdates NotificationCategory = "booking_status_updates"
	CategoryPaymentNotifications NotificationCategory = "payment_notifications"
	CategoryMarketingEmails      NotificationCategory = "marketing_emails"
)

// NotificationPreference holds per-profile opt-ins consulted before any
// email is sent. A profile without a row is treated as all-allowed
// (opt-out model), see NotificationPreferenceRepository.
type NotificationPreference struct {
	ProfileID            uuid.UUID `db:"profile_id"`
	Newsletter           bool      `db:"newsletter"`
	BookingConfirmations bool      `db:"booking_confirmations"`
	BookingStatusUpdates bool      `db:"booking_status_updates"`
	PaymentNotifications bool      `db:"payment_notifications"`
	MarketingEmails      bool      `db:"marketing_emails"`
	UpdatedAt            time.Time `db:"updated_at"`
}

func (p *NotificationPreference) Allows(category NotificationCategory) bool {
	switch category {
	case CategoryNewsletter:
		return p.Newsletter
	case CategoryBookingConfirmations:
		return p.BookingConfirmations
	case CategoryBookingStatusUpdates:
		return p.BookingStatusUpdates
	case CategoryPaymentNotifications:
		return p.PaymentNotifications
	case CategoryMarketingEmails:
		return p.MarketingEmails
	default:
		return false
	}
}
