package entity

import (
	"time"

	"github.com/google/uuid"
)

// Payment is the monetary transaction tied 1:1 to a booking. Amounts are
// in minor units (øre). FinalAmount = OriginalAmount - DiscountAmount and
// StylistPayout + PlatformFee = FinalAmount.
type Payment struct {
	Base
	BookingID         uuid.UUID  `db:"booking_id"`
	OriginalAmount    int64      `db:"original_amount"`
	DiscountAmount    int64      `db:"discount_amount"`
	FinalAmount       int64      `db:"final_amount"`
	PlatformFee       int64      `db:"platform_fee"`
	StylistPayout     int64      `db:"stylist_payout"`
	Currency          string     `db:"currency"`
	PaymentIntentID   string     `db:"payment_intent_id"`
	CapturedAt        *time.Time `db:"captured_at"`
	PayoutInitiatedAt *time.Time `db:"payout_initiated_at"`
	PayoutCompletedAt *time.Time `db:"payout_completed_at"`
	TransferID        *string    `db:"transfer_id"`
	RefundedAmount    int64      `db:"refunded_amount"`
}
