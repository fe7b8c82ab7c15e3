package queries

import (
	"context"
	"time"

	"rinkbook/internal/domain/facility"
	"rinkbook/internal/infra"
	"rinkbook/internal/pkg/clock"
	"rinkbook/internal/pkg/config"
	"rinkbook/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrSurfaceNotFound = errs.New("ice surface not found")

// SlotEnsurer lazily materializes a surface's slots for one civil day
// before availability is read. Implemented by the slot command side.
type SlotEnsurer interface {
	EnsureDay(ctx context.Context, surfaceID uuid.UUID, date time.Time) error
}

type AvailabilityQueries interface {
	// AvailableSlots is the customer view: only bookable slots.
	AvailableSlots(ctx context.Context, surfaceID uuid.UUID, date time.Time) ([]*SlotView, error)
	// DaySchedule is the staff view: every slot regardless of state.
	DaySchedule(ctx context.Context, surfaceID uuid.UUID, date time.Time) ([]*SlotView, error)
}

type SlotReadStore interface {
	FindBySurfaceAndRange(ctx context.Context, surfaceID uuid.UUID, from, to time.Time, onlyAvailable bool) ([]*SlotView, error)
}

type SurfaceReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*SurfaceView, string, error)
}

type availabilityQueriesImpl struct {
	slots    SlotReadStore
	surfaces SurfaceReadStore
	ensurer  SlotEnsurer
	clock    clock.Clock
	cfg      config.BookingConfig
}

func NewAvailabilityQueries(
	slots SlotReadStore,
	surfaces SurfaceReadStore,
	ensurer SlotEnsurer,
	clock clock.Clock,
	cfg config.BookingConfig,
) AvailabilityQueries {
	return &availabilityQueriesImpl{
		slots:    slots,
		surfaces: surfaces,
		ensurer:  ensurer,
		clock:    clock,
		cfg:      cfg,
	}
}

func (q *availabilityQueriesImpl) AvailableSlots(ctx context.Context, surfaceID uuid.UUID, date time.Time) ([]*SlotView, error) {
	return q.slotsForDay(ctx, surfaceID, date, true)
}

func (q *availabilityQueriesImpl) DaySchedule(ctx context.Context, surfaceID uuid.UUID, date time.Time) ([]*SlotView, error) {
	return q.slotsForDay(ctx, surfaceID, date, false)
}

func (q *availabilityQueriesImpl) slotsForDay(ctx context.Context, surfaceID uuid.UUID, date time.Time, onlyAvailable bool) ([]*SlotView, error) {
	_, tzName, err := q.surfaceWithTimezone(ctx, surfaceID)
	if err != nil {
		return nil, err
	}

	fallback, fbErr := time.LoadLocation(q.cfg.DefaultTimezone)
	if fbErr != nil {
		fallback = time.UTC
	}
	loc := facility.NewTimezone(tzName).Location(fallback)
	// A zero date means "today", which is only well defined once the
	// facility's timezone is known.
	if date.IsZero() {
		date = q.clock.Now().In(loc)
	}
	from, to := facility.DayBounds(date, loc)

	if err := q.ensurer.EnsureDay(ctx, surfaceID, from); err != nil {
		return nil, err
	}

	return q.slots.FindBySurfaceAndRange(ctx, surfaceID, from, to, onlyAvailable)
}

func (q *availabilityQueriesImpl) surfaceWithTimezone(ctx context.Context, surfaceID uuid.UUID) (*SurfaceView, string, error) {
	surface, tzName, err := q.surfaces.FindByID(ctx, surfaceID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, "", ErrSurfaceNotFound
		}
		return nil, "", err
	}
	return surface, tzName, nil
}
