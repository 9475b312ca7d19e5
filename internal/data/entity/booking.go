package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Booking is one scheduled engagement between a customer and a stylist.
// The three *At markers are write-once: they are set exactly once by the
// batch engine and never cleared.
type Booking struct {
	Base
	CustomerID        uuid.UUID     `db:"customer_id"`
	StylistID         uuid.UUID     `db:"stylist_id"`
	StartTime         time.Time     `db:"start_time"`
	EndTime           time.Time     `db:"end_time"`
	Status            BookingStatus `db:"status"`
	PaymentCapturedAt *time.Time    `db:"payment_captured_at"`
	PayoutProcessedAt *time.Time    `db:"payout_processed_at"`
	PayoutEmailSentAt *time.Time    `db:"payout_email_sent_at"`
}
