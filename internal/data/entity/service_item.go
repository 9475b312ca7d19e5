package entity

import (
	"github.com/google/uuid"
)

// ServiceItem is one service line on a booking ("cut & color", ...).
type ServiceItem struct {
	BaseSimple
	BookingID uuid.UUID `db:"booking_id"`
	Title     string    `db:"title"`
	Price     int64     `db:"price"`
}
