package usecase

import (
	"salon-booking/internal/data/repository"
	"salon-booking/pkg/events"
	"salon-booking/pkg/mailer"
	"salon-booking/pkg/payments"
	"salon-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Capture CaptureService
	Payout  PayoutService
	Booking BookingService
}

func NewService(repo *repository.Repository, processor payments.Processor, mail mailer.Mailer, pub events.Publisher, config *utils.Config, log *zap.Logger) *Service {
	notifier := NewNotificationService(repo, mail, pub, log)

	return &Service{
		Capture: NewCaptureService(repo, processor, notifier, config.Cron, log),
		Payout:  NewPayoutService(repo, processor, notifier, log),
		Booking: NewBookingService(repo, log),
	}
}
