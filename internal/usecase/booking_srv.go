package usecase

import (
	"context"
	"fmt"

	"salon-booking/internal/data/entity"
	"salon-booking/internal/data/repository"
	"salon-booking/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BookingService serves the admin inspection surface: the lifecycle markers
// and financial record of a single booking.
type BookingService interface {
	GetBookingByID(ctx context.Context, bookingID string) (*response.BookingDetailResponse, error)
}

type bookingService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewBookingService(repo *repository.Repository, log *zap.Logger) BookingService {
	return &bookingService{
		repo: repo,
		log:  log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) GetBookingByID(ctx context.Context, bookingID string) (*response.BookingDetailResponse, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s not found", bookingID)
	}

	resp := &response.BookingDetailResponse{
		ID:                booking.ID.String(),
		CustomerID:        booking.CustomerID.String(),
		StylistID:         booking.StylistID.String(),
		StartTime:         booking.StartTime,
		EndTime:           booking.EndTime,
		Status:            booking.Status,
		PaymentCapturedAt: booking.PaymentCapturedAt,
		PayoutProcessedAt: booking.PayoutProcessedAt,
		PayoutEmailSentAt: booking.PayoutEmailSentAt,
		CreatedAt:         booking.CreatedAt,
	}

	payment, err := s.repo.Payment.FindByBookingID(ctx, id)
	if err != nil {
		s.log.Error("Failed to load payment for booking detail",
			zap.Error(err),
			zap.String("booking_id", bookingID))
		return nil, fmt.Errorf("get booking payment: %w", err)
	}
	if payment != nil {
		resp.Payment = buildPaymentResponse(payment)
	}

	items, err := s.repo.ServiceItem.FindByBookingID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get booking services: %w", err)
	}
	for _, item := range items {
		resp.Services = append(resp.Services, response.ServiceItemResponse{
			ID:    item.ID.String(),
			Title: item.Title,
			Price: item.Price,
		})
	}

	return resp, nil
}

func buildPaymentResponse(payment *entity.Payment) *response.PaymentResponse {
	return &response.PaymentResponse{
		ID:                payment.ID.String(),
		OriginalAmount:    payment.OriginalAmount,
		DiscountAmount:    payment.DiscountAmount,
		FinalAmount:       payment.FinalAmount,
		PlatformFee:       payment.PlatformFee,
		StylistPayout:     payment.StylistPayout,
		Currency:          payment.Currency,
		PaymentIntentID:   payment.PaymentIntentID,
		CapturedAt:        payment.CapturedAt,
		PayoutCompletedAt: payment.PayoutCompletedAt,
		TransferID:        payment.TransferID,
		RefundedAmount:    payment.RefundedAmount,
	}
}
