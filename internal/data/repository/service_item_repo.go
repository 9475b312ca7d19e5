package repository

import (
	"context"
	"fmt"

	"salon-booking/internal/data/entity"
	"salon-booking/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ServiceItemRepository interface {
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.ServiceItem, error)
}

type serviceItemRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewServiceItemRepository(db database.PgxIface, log *zap.Logger) ServiceItemRepository {
	return &serviceItemRepository{
		db:  db,
		log: log.With(zap.String("repository", "service_item")),
	}
}

func (r *serviceItemRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.ServiceItem, error) {
	query := `
		SELECT id, booking_id, title, price, created_at
		FROM booking_services
		WHERE booking_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, bookingID)
	if err != nil {
		r.log.Error("Failed to find service items by booking ID",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("find service items by booking ID %s: %w", bookingID.String(), err)
	}
	defer rows.Close()

	var items []*entity.ServiceItem
	for rows.Next() {
		var item entity.ServiceItem
		err := rows.Scan(
			&item.ID,
			&item.BookingID,
			&item.Title,
			&item.Price,
			&item.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan service item row", zap.Error(err))
			return nil, fmt.Errorf("scan service item row: %w", err)
		}
		items = append(items, &item)
	}

	return items, rows.Err()
}
