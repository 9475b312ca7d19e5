package response

import (
	"time"

	"salon-booking/internal/data/entity"
)

type BookingDetailResponse struct {
	ID                string                `json:"id"`
	CustomerID        string                `json:"customer_id"`
	StylistID         string                `json:"stylist_id"`
	StartTime         time.Time             `json:"start_time"`
	EndTime           time.Time             `json:"end_time"`
	Status            entity.BookingStatus  `json:"status"`
	PaymentCapturedAt *time.Time            `json:"payment_captured_at,omitempty"`
	PayoutProcessedAt *time.Time            `json:"payout_processed_at,omitempty"`
	PayoutEmailSentAt *time.Time            `json:"payout_email_sent_at,omitempty"`
	Payment           *PaymentResponse      `json:"payment,omitempty"`
	Services          []ServiceItemResponse `json:"services,omitempty"`
	CreatedAt         time.Time             `json:"created_at"`
}

type PaymentResponse struct {
	ID                string     `json:"id"`
	OriginalAmount    int64      `json:"original_amount"`
	DiscountAmount    int64      `json:"discount_amount"`
	FinalAmount       int64      `json:"final_amount"`
	PlatformFee       int64      `json:"platform_fee"`
	StylistPayout     int64      `json:"stylist_payout"`
	Currency          string     `json:"currency"`
	PaymentIntentID   string     `json:"payment_intent_id"`
	CapturedAt        *time.Time `json:"captured_at,omitempty"`
	PayoutCompletedAt *time.Time `json:"payout_completed_at,omitempty"`
	TransferID        *string    `json:"transfer_id,omitempty"`
	RefundedAmount    int64      `json:"refunded_amount"`
}

type ServiceItemResponse struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Price int64  `json:"price"`
}
