package repository

import (
	"context"

	"rinkbook/internal/domain/booking"
	"rinkbook/internal/infra"
	"rinkbook/internal/infra/db"

	"github.com/google/uuid"
)

type BookingRepository struct{}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{}
}

func (r *BookingRepository) Create(ctx context.Context, tx db.DBTX, b *booking.Booking) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, `
		INSERT INTO bookings (id, slot_id, user_id, organization_name, sport, payment_status, stripe_payment_intent_id, amount_paid_cents, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
		RETURNING id`,
		b.ID(), b.SlotID(), b.UserID(), b.OrganizationName(), b.Sport().String(),
		b.PaymentStatus().String(), b.StripePaymentIntentID(), b.AmountPaidCents(), b.CreatedAt(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create booking", err)
	}
	return id, nil
}

func (r *BookingRepository) DeleteBySlot(ctx context.Context, tx db.DBTX, slotID uuid.UUID) error {
	if _, err := tx.Exec(ctx, `DELETE FROM bookings WHERE slot_id = $1`, slotID); err != nil {
		return infra.WrapRepoErr("failed to delete booking", err)
	}
	return nil
}

func (r *BookingRepository) AttachPaymentIntent(ctx context.Context, tx db.DBTX, id uuid.UUID, intentID string) error {
	tag, err := tx.Exec(ctx,
		`UPDATE bookings SET stripe_payment_intent_id = $2, updated_at = now() WHERE id = $1`,
		id, intentID,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to attach payment intent", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *BookingRepository) MarkPaidByIntent(ctx context.Context, tx db.DBTX, intentID string) ([]uuid.UUID, error) {
	rows, err := tx.Query(ctx, `
		UPDATE bookings b
		SET payment_status = 'paid', amount_paid_cents = s.rate_cents, updated_at = now()
		FROM slots s
		WHERE s.id = b.slot_id AND b.stripe_payment_intent_id = $1 AND b.payment_status <> 'paid'
		RETURNING b.id`,
		intentID,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to mark bookings paid", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking id", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read paid booking ids", err)
	}
	return ids, nil
}
