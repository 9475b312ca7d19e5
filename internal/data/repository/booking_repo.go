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

type BookingRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)

	// Eligibility queries for the batch engine
	FindEligibleForCapture(ctx context.Context, from, to time.Time) ([]*entity.Booking, error)
	FindUncaptured(ctx context.Context) ([]*entity.Booking, error)
	FindEligibleForPayout(ctx context.Context) ([]*entity.Booking, error)

	// Idempotent state-transition writes. The eligibility guard is part of
	// the UPDATE itself, so overlapping runs update zero rows instead of
	// double-recording. done=false means the marker was already set.
	MarkPaymentCaptured(ctx context.Context, id uuid.UUID, at time.Time) (bool, error)
	MarkPayoutProcessed(ctx context.Context, id uuid.UUID, at time.Time) (bool, error)
	MarkPayoutEmailSent(ctx context.Context, id uuid.UUID, at time.Time) error
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, customer_id, stylist_id, start_time, end_time, status,
	       payment_captured_at, payout_processed_at, payout_email_sent_at,
	       created_at, updated_at`

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var booking entity.Booking
	err := row.Scan(
		&booking.ID,
		&booking.CustomerID,
		&booking.StylistID,
		&booking.StartTime,
		&booking.EndTime,
		&booking.Status,
		&booking.PaymentCapturedAt,
		&booking.PayoutProcessedAt,
		&booking.PayoutEmailSentAt,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE id = $1
	`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

// FindEligibleForCapture returns confirmed, not-yet-captured bookings whose
// start time falls in [from, to). The lower bound is inclusive so a booking
// sitting exactly on the window edge is picked up.
func (r *bookingRepository) FindEligibleForCapture(ctx context.Context, from, to time.Time) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE status = 'confirmed'
		  AND payment_captured_at IS NULL
		  AND start_time >= $1
		  AND start_time < $2
		ORDER BY start_time
	`

	rows, err := r.db.Query(ctx, query, from, to)
	if err != nil {
		r.log.Error("Failed to find bookings eligible for capture",
			zap.Error(err),
			zap.Time("from", from),
			zap.Time("to", to),
		)
		return nil, fmt.Errorf("find bookings eligible for capture: %w", err)
	}
	defer rows.Close()

	return collectBookings(rows)
}

// FindUncaptured is the manual-trigger variant: every confirmed uncaptured
// booking regardless of scheduling window.
func (r *bookingRepository) FindUncaptured(ctx context.Context) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE status = 'confirmed'
		  AND payment_captured_at IS NULL
		ORDER BY start_time
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find uncaptured bookings", zap.Error(err))
		return nil, fmt.Errorf("find uncaptured bookings: %w", err)
	}
	defer rows.Close()

	return collectBookings(rows)
}

func (r *bookingRepository) FindEligibleForPayout(ctx context.Context) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE status = 'completed'
		  AND payment_captured_at IS NOT NULL
		  AND payout_processed_at IS NULL
		ORDER BY end_time
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find bookings eligible for payout", zap.Error(err))
		return nil, fmt.Errorf("find bookings eligible for payout: %w", err)
	}
	defer rows.Close()

	return collectBookings(rows)
}

func collectBookings(rows pgx.Rows) ([]*entity.Booking, error) {
	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}
	return bookings, rows.Err()
}

func (r *bookingRepository) MarkPaymentCaptured(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	query := `
		UPDATE bookings
		SET payment_captured_at = $2, updated_at = $2
		WHERE id = $1 AND payment_captured_at IS NULL
	`

	result, err := r.db.Exec(ctx, query, id, at)
	if err != nil {
		r.log.Error("Failed to mark payment captured",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return false, fmt.Errorf("mark payment captured for booking %s: %w", id.String(), err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *bookingRepository) MarkPayoutProcessed(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	query := `
		UPDATE bookings
		SET payout_processed_at = $2, updated_at = $2
		WHERE id = $1
		  AND status = 'completed'
		  AND payment_captured_at IS NOT NULL
		  AND payout_processed_at IS NULL
	`

	result, err := r.db.Exec(ctx, query, id, at)
	if err != nil {
		r.log.Error("Failed to mark payout processed",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return false, fmt.Errorf("mark payout processed for booking %s: %w", id.String(), err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *bookingRepository) MarkPayoutEmailSent(ctx context.Context, id uuid.UUID, at time.Time) error {
	query := `
		UPDATE bookings
		SET payout_email_sent_at = $2, updated_at = $2
		WHERE id = $1 AND payout_email_sent_at IS NULL
	`

	_, err := r.db.Exec(ctx, query, id, at)
	if err != nil {
		r.log.Error("Failed to mark payout email sent",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return fmt.Errorf("mark payout email sent for booking %s: %w", id.String(), err)
	}

	return nil
}
