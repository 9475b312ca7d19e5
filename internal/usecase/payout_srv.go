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

	"go.uber.org/zap"
)

// PayoutService is the batch orchestrator that transfers the stylist's
// share of captured funds for completed bookings. Payout eligibility has no
// scheduling window, so Run and RunAll select the same set; RunAll exists
// for the manual trigger surface.
type PayoutService interface {
	Run(ctx context.Context, now time.Time) (*response.PayoutSummary, error)
	RunAll(ctx context.Context) (*response.PayoutSummary, error)
}

type payoutService struct {
	repo      *repository.Repository
	processor payments.Processor
	notifier  NotificationService
	log       *zap.Logger
}

func NewPayoutService(repo *repository.Repository, processor payments.Processor, notifier NotificationService, log *zap.Logger) PayoutService {
	return &payoutService{
		repo:      repo,
		processor: processor,
		notifier:  notifier,
		log:       log.With(zap.String("service", "payout")),
	}
}

func (s *payoutService) Run(ctx context.Context, now time.Time) (*response.PayoutSummary, error) {
	bookings, err := s.repo.Booking.FindEligibleForPayout(ctx)
	if err != nil {
		s.log.Error("Failed to fetch bookings eligible for payout", zap.Error(err))
		return nil, fmt.Errorf("fetch bookings eligible for payout: %w", err)
	}

	summary := &response.PayoutSummary{BookingsProcessed: len(bookings)}
	var failures []string

	for _, booking := range bookings {
		processed, sent, err := s.payoutOne(ctx, booking, now)
		summary.EmailsSent += sent
		if err != nil {
			summary.Errors++
			failures = append(failures, fmt.Sprintf("booking %s: %v", booking.ID.String(), err))
			s.log.Error("Failed to process booking payout",
				zap.Error(err),
				zap.String("booking_id", booking.ID.String()))
			continue
		}
		if processed {
			summary.PayoutsProcessed++
		}
	}

	summary.Success = summary.Errors == 0
	summary.Message = fmt.Sprintf("processed %d of %d eligible payouts", summary.PayoutsProcessed, summary.BookingsProcessed)
	if len(failures) > 0 {
		summary.Message += "; errors: " + strings.Join(failures, "; ")
	}

	s.log.Info("Payout batch completed",
		zap.Int("bookings", summary.BookingsProcessed),
		zap.Int("payouts", summary.PayoutsProcessed),
		zap.Int("emails_sent", summary.EmailsSent),
		zap.Int("errors", summary.Errors),
	)

	return summary, nil
}

func (s *payoutService) RunAll(ctx context.Context) (*response.PayoutSummary, error) {
	return s.Run(ctx, time.Now())
}

func (s *payoutService) payoutOne(ctx context.Context, booking *entity.Booking, at time.Time) (bool, int, error) {
	payment, err := s.repo.Payment.FindByBookingID(ctx, booking.ID)
	if err != nil {
		return false, 0, err
	}
	if payment == nil {
		return false, 0, fmt.Errorf("no payment record")
	}

	stylist, err := s.repo.Profile.FindByID(ctx, booking.StylistID)
	if err != nil {
		return false, 0, err
	}
	if stylist == nil {
		return false, 0, fmt.Errorf("stylist profile %s not found", booking.StylistID.String())
	}
	if stylist.StripeAccountID == nil || *stylist.StripeAccountID == "" {
		return false, 0, &payments.ProcessorError{
			Kind: payments.KindNotConfigured,
			Op:   "create transfer",
			Err:  fmt.Errorf("stylist %s has not completed payout onboarding", stylist.ID.String()),
		}
	}

	result, err := s.processor.Transfer(ctx, payments.TransferInput{
		Amount:          payment.StylistPayout,
		Currency:        payment.Currency,
		Destination:     *stylist.StripeAccountID,
		PaymentIntentID: payment.PaymentIntentID,
		BookingID:       booking.ID.String(),
	})
	if err != nil {
		return false, 0, err
	}

	done, err := s.repo.Booking.MarkPayoutProcessed(ctx, booking.ID, at)
	if err != nil {
		// Funds transferred but the transition was not recorded. Surface
		// the transfer id so an operator can reconcile by hand.
		return false, 0, fmt.Errorf("transfer %s created but failed to record: %w", result.TransferID, err)
	}
	if !done {
		s.log.Warn("Booking already marked paid out, skipping",
			zap.String("booking_id", booking.ID.String()))
		return false, 0, nil
	}

	if err := s.repo.Payment.MarkPayoutCompleted(ctx, booking.ID, result.TransferID, at); err != nil {
		return false, 0, fmt.Errorf("booking marked paid out (transfer %s) but payment record update failed: %w", result.TransferID, err)
	}

	processedAt := at
	booking.PayoutProcessedAt = &processedAt
	payment.PayoutInitiatedAt = &processedAt
	payment.PayoutCompletedAt = &processedAt
	payment.TransferID = &result.TransferID

	sent := s.notifier.NotifyPayoutProcessed(ctx, booking, payment)
	return true, sent, nil
}
