package repository

import (
	"salon-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Booking     BookingRepository
	Payment     PaymentRepository
	Profile     ProfileRepository
	Preference  NotificationPreferenceRepository
	ServiceItem ServiceItemRepository
	Session     SessionRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Booking:     NewBookingRepository(db, log),
		Payment:     NewPaymentRepository(db, log),
		Profile:     NewProfileRepository(db, log),
		Preference:  NewNotificationPreferenceRepository(db, log),
		ServiceItem: NewServiceItemRepository(db, log),
		Session:     NewSessionRepository(db, log),
	}
}
