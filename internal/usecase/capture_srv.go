package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"salon-booking/internal/data/entity"
	"salon-booking/internal/data/repository"
	"salon-booking/internal/dto/response"
	"salon-booking/pkg/payments"
	"salon-booking/pkg/utils"

	"go.uber.org/zap"
)

// CaptureService is the batch orchestrator that moves confirmed bookings to
// payment-captured. Run applies the scheduling window; RunAll is the
// manual/operational variant without it. Per-booking failures never abort
// the batch.
type CaptureService interface {
	Run(ctx context.Context, now time.Time) (*response.CaptureSummary, error)
	RunAll(ctx context.Context) (*response.CaptureSummary, error)
}

type captureService struct {
	repo      *repository.Repository
	processor payments.Processor
	notifier  NotificationService
	cron      utils.CronConfig
	log       *zap.Logger
}

func NewCaptureService(repo *repository.Repository, processor payments.Processor, notifier NotificationService, cron utils.CronConfig, log *zap.Logger) CaptureService {
	return &captureService{
		repo:      repo,
		processor: processor,
		notifier:  notifier,
		cron:      cron,
		log:       log.With(zap.String("service", "capture")),
	}
}

func (s *captureService) Run(ctx context.Context, now time.Time) (*response.CaptureSummary, error) {
	from, to := captureWindow(now, s.cron.CaptureLead(), s.cron.CaptureSpan())

	bookings, err := s.repo.Booking.FindEligibleForCapture(ctx, from, to)
	if err != nil {
		s.log.Error("Failed to fetch bookings eligible for capture", zap.Error(err))
		return nil, fmt.Errorf("fetch bookings eligible for capture: %w", err)
	}

	return s.process(ctx, bookings, now), nil
}

func (s *captureService) RunAll(ctx context.Context) (*response.CaptureSummary, error) {
	bookings, err := s.repo.Booking.FindUncaptured(ctx)
	if err != nil {
		s.log.Error("Failed to fetch uncaptured bookings", zap.Error(err))
		return nil, fmt.Errorf("fetch uncaptured bookings: %w", err)
	}

	return s.process(ctx, bookings, time.Now()), nil
}

func (s *captureService) process(ctx context.Context, bookings []*entity.Booking, at time.Time) *response.CaptureSummary {
	summary := &response.CaptureSummary{BookingsProcessed: len(bookings)}
	var failures []string

	for _, booking := range bookings {
		processed, sent, err := s.captureOne(ctx, booking, at)
		summary.EmailsSent += sent
		if err != nil {
			summary.Errors++
			failures = append(failures, fmt.Sprintf("booking %s: %v", booking.ID.String(), err))
			s.log.Error("Failed to capture booking payment",
				zap.Error(err),
				zap.String("booking_id", booking.ID.String()))
			continue
		}
		if processed {
			summary.PaymentsProcessed++
		}
	}

	summary.Success = summary.Errors == 0
	summary.Message = fmt.Sprintf("captured %d of %d eligible bookings", summary.PaymentsProcessed, summary.BookingsProcessed)
	if len(failures) > 0 {
		summary.Message += "; errors: " + strings.Join(failures, "; ")
	}

	s.log.Info("Capture batch completed",
		zap.Int("bookings", summary.BookingsProcessed),
		zap.Int("captured", summary.PaymentsProcessed),
		zap.Int("emails_sent", summary.EmailsSent),
		zap.Int("errors", summary.Errors),
	)

	return summary
}

func (s *captureService) captureOne(ctx context.Context, booking *entity.Booking, at time.Time) (bool, int, error) {
	payment, err := s.repo.Payment.FindByBookingID(ctx, booking.ID)
	if err != nil {
		return false, 0, err
	}
	if payment == nil {
		return false, 0, fmt.Errorf("no payment record")
	}

	result, err := s.processor.Capture(ctx, payment.PaymentIntentID, booking.ID.String())
	if err != nil {
		return false, 0, err
	}

	done, err := s.repo.Booking.MarkPaymentCaptured(ctx, booking.ID, at)
	if err != nil {
		// Money moved but the transition was not recorded. Surface the
		// external reference so an operator can reconcile by hand.
		return false, 0, fmt.Errorf("captured intent %s externally but failed to record: %w", result.PaymentIntentID, err)
	}
	if !done {
		s.log.Warn("Booking already marked captured, skipping",
			zap.String("booking_id", booking.ID.String()))
		return false, 0, nil
	}

	if err := s.repo.Payment.MarkCaptured(ctx, booking.ID, at); err != nil {
		return false, 0, fmt.Errorf("booking marked captured (intent %s) but payment record update failed: %w", result.PaymentIntentID, err)
	}

	capturedAt := at
	booking.PaymentCapturedAt = &capturedAt
	payment.CapturedAt = &capturedAt

	sent := s.notifier.NotifyPaymentCaptured(ctx, booking, payment)
	return true, sent, nil
}
