package repository

import (
	"context"
	"fmt"
	"time"

	"salon-booking/internal/data/entity"
	"salon-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type PaymentRepository interface {
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Payment, error)

	// The batch engine mutates a payment exactly twice: once at capture,
	// once at payout.
	MarkCaptured(ctx context.Context, bookingID uuid.UUID, at time.Time) error
	MarkPayoutCompleted(ctx context.Context, bookingID uuid.UUID, transferID string, at time.Time) error
}

type paymentRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPaymentRepository(db database.PgxIface, log *zap.Logger) PaymentRepository {
	return &paymentRepository{
		db:  db,
		log: log.With(zap.String("repository", "payment")),
	}
}

func (r *paymentRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Payment, error) {
	query := `
		SELECT id, booking_id, original_amount, discount_amount, final_amount,
		       platform_fee, stylist_payout, currency, payment_intent_id,
		       captured_at, payout_initiated_at, payout_completed_at,
		       transfer_id, refunded_amount, created_at, updated_at
		FROM payments
		WHERE booking_id = $1
	`

	var payment entity.Payment
	err := r.db.QueryRow(ctx, query, bookingID).Scan(
		&payment.ID,
		&payment.BookingID,
		&payment.OriginalAmount,
		&payment.DiscountAmount,
		&payment.FinalAmount,
		&payment.PlatformFee,
		&payment.StylistPayout,
		&payment.Currency,
		&payment.PaymentIntentID,
		&payment.CapturedAt,
		&payment.PayoutInitiatedAt,
		&payment.PayoutCompletedAt,
		&payment.TransferID,
		&payment.RefundedAmount,
		&payment.CreatedAt,
		&payment.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find payment by booking ID",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("find payment by booking ID %s: %w", bookingID.String(), err)
	}

	return &payment, nil
}

func (r *paymentRepository) MarkCaptured(ctx context.Context, bookingID uuid.UUID, at time.Time) error {
	query := `
		UPDATE payments
		SET captured_at = $2, updated_at = $2
		WHERE booking_id = $1 AND captured_at IS NULL
	`

	result, err := r.db.Exec(ctx, query, bookingID, at)
	if err != nil {
		r.log.Error("Failed to mark payment captured",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return fmt.Errorf("mark payment captured for booking %s: %w", bookingID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("payment for booking %s not found or already captured", bookingID.String())
	}

	return nil
}

func (r *paymentRepository) MarkPayoutCompleted(ctx context.Context, bookingID uuid.UUID, transferID string, at time.Time) error {
	query := `
		UPDATE payments
		SET payout_initiated_at = $2, payout_completed_at = $2,
		    transfer_id = $3, updated_at = $2
		WHERE booking_id = $1 AND payout_completed_at IS NULL
	`

	result, err := r.db.Exec(ctx, query, bookingID, at, transferID)
	if err != nil {
		r.log.Error("Failed to mark payout completed",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
			zap.String("transfer_id", transferID),
		)
		return fmt.Errorf("mark payout completed for booking %s: %w", bookingID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("payment for booking %s not found or payout already recorded", bookingID.String())
	}

	return nil
}
