package repository

import (
	"context"

	"rinkbook/internal/domain/booking"
	"rinkbook/internal/infra"
	"rinkbook/internal/infra/db"
)

type BookingEventRepository struct{}

func NewBookingEventRepository() *BookingEventRepository {
	return &BookingEventRepository{}
}

func (r *BookingEventRepository) Append(ctx context.Context, tx db.DBTX, e *booking.Event) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO booking_events (id, booking_id, user_id, event_type, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		e.ID(), e.BookingID(), e.UserID(), string(e.Type()), e.Message(), e.CreatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to append booking event", err)
	}
	return nil
}
