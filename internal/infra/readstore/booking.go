package readstore

import (
	"context"

	"rinkbook/internal/infra"
	"rinkbook/internal/infra/db"
	"rinkbook/internal/pkg/pgconv"
	"rinkbook/internal/usecase/queries"
	"rinkbook/internal/usecase/shared"

	"github.com/google/uuid"
)

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(db db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: db}
}

const bookingViewSelect = `
	SELECT b.id, b.slot_id, i.name, f.id, f.name,
	       s.start_at, s.end_at, b.organization_name, b.sport,
	       b.payment_status, b.amount_paid_cents, s.rate_cents, b.created_at
	FROM bookings b
	JOIN slots s ON s.id = b.slot_id
	JOIN ice_surfaces i ON i.id = s.surface_id
	JOIN facilities f ON f.id = i.facility_id`

func (r *BookingReadStore) FindByUser(ctx context.Context, userID uuid.UUID) ([]*queries.BookingView, error) {
	rows, err := r.db.Query(ctx, bookingViewSelect+` WHERE b.user_id = $1 ORDER BY s.start_at`, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find bookings by user", err)
	}
	defer rows.Close()

	var views []*queries.BookingView
	for rows.Next() {
		v, err := scanBookingView(rows)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read booking views", err)
	}
	return views, nil
}

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	return scanBookingView(r.db.QueryRow(ctx, bookingViewSelect+` WHERE b.id = $1`, id))
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBookingView(row rowScanner) (*queries.BookingView, error) {
	v := &queries.BookingView{}
	err := row.Scan(
		&v.ID, &v.SlotID, &v.SurfaceName, &v.FacilityID, &v.FacilityName,
		&v.StartAt, &v.EndAt, &v.OrganizationName, &v.Sport,
		&v.PaymentStatus, &v.AmountPaidCents, &v.RateCents, &v.CreatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to scan booking view", err)
	}
	return v, nil
}

const bookingSnapshotSelect = `
	SELECT id, slot_id, user_id, organization_name, sport,
	       payment_status, stripe_payment_intent_id, amount_paid_cents, created_at
	FROM bookings`

func (r *BookingReadStore) SnapshotByID(ctx context.Context, id uuid.UUID) (*shared.BookingSnapshot, error) {
	return r.snapshot(ctx, bookingSnapshotSelect+` WHERE id = $1`, id)
}

func (r *BookingReadStore) SnapshotBySlotID(ctx context.Context, slotID uuid.UUID) (*shared.BookingSnapshot, error) {
	return r.snapshot(ctx, bookingSnapshotSelect+` WHERE slot_id = $1`, slotID)
}

func (r *BookingReadStore) snapshot(ctx context.Context, query string, arg any) (*shared.BookingSnapshot, error) {
	var s shared.BookingSnapshot
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&s.ID, &s.SlotID, &s.UserID, &s.OrganizationName, &s.Sport,
		&s.PaymentStatus, &s.StripePaymentIntentID, &s.AmountPaidCents, &s.CreatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}
	return &s, nil
}
