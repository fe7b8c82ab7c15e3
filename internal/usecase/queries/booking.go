package queries

import (
	"context"

	"rinkbook/internal/infra"
	"rinkbook/internal/pkg/clock"
	"rinkbook/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrBookingNotFound = errs.New("booking not found")

// MyBookingsView splits a customer's bookings around the current instant.
type MyBookingsView struct {
	Upcoming []*BookingView `json:"upcoming"`
	Past     []*BookingView `json:"past"`
}

type BookingQueries interface {
	MyBookings(ctx context.Context, userID uuid.UUID) (*MyBookingsView, error)
	GetBooking(ctx context.Context, bookingID uuid.UUID) (*BookingView, error)
}

type BookingReadStore interface {
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*BookingView, error)
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
}

type bookingQueriesImpl struct {
	readStore BookingReadStore
	clock     clock.Clock
}

func NewBookingQueries(readStore BookingReadStore, clock clock.Clock) BookingQueries {
	return &bookingQueriesImpl{
		readStore: readStore,
		clock:     clock,
	}
}

func (q *bookingQueriesImpl) MyBookings(ctx context.Context, userID uuid.UUID) (*MyBookingsView, error) {
	bookings, err := q.readStore.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := q.clock.Now()
	view := &MyBookingsView{
		Upcoming: []*BookingView{},
		Past:     []*BookingView{},
	}
	for _, b := range bookings {
		if b.StartAt.Before(now) {
			view.Past = append(view.Past, b)
		} else {
			view.Upcoming = append(view.Upcoming, b)
		}
	}
	return view, nil
}

func (q *bookingQueriesImpl) GetBooking(ctx context.Context, bookingID uuid.UUID) (*BookingView, error) {
	b, err := q.readStore.FindByID(ctx, bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return b, nil
}
