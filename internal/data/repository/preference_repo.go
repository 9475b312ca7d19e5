package repository

import (
	"context"
	"fmt"

	"salon-booking/internal/data/entity"
	"salon-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type NotificationPreferenceRepository interface {
	// FindByProfileID returns nil, nil when the profile has no preference
	// row; callers treat that as all-allowed (opt-out model).
	FindByProfileID(ctx context.Context, profileID uuid.UUID) (*entity.NotificationPreference, error)
}

type notificationPreferenceRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewNotificationPreferenceRepository(db database.PgxIface, log *zap.Logger) NotificationPreferenceRepository {
	return &notificationPreferenceRepository{
		db:  db,
		log: log.With(zap.String("repository", "notification_preference")),
	}
}

func (r *notificationPreferenceRepository) FindByProfileID(ctx context.Context, profileID uuid.UUID) (*entity.NotificationPreference, error) {
	query := `
		SELECT profile_id, newsletter, booking_confirmations,
		       booking_status_updates, payment_notifications,
		       marketing_emails, updated_at
		FROM notification_preferences
		WHERE profile_id = $1
	`

	var pref entity.NotificationPreference
	err := r.db.QueryRow(ctx, query, profileID).Scan(
		&pref.ProfileID,
		&pref.Newsletter,
		&pref.BookingConfirmations,
		&pref.BookingStatusUpdates,
		&pref.PaymentNotifications,
		&pref.MarketingEmails,
		&pref.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find notification preferences",
			zap.Error(err),
			zap.String("profile_id", profileID.String()),
		)
		return nil, fmt.Errorf("find notification preferences for %s: %w", profileID.String(), err)
	}

	return &pref, nil
}
