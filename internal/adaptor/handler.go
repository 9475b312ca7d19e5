package adaptor

import (
	"salon-booking/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Batch   *BatchHandler
	Booking *BookingHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Batch:   NewBatchHandler(service.Capture, service.Payout, log),
		Booking: NewBookingHandler(service.Booking, log),
	}
}
