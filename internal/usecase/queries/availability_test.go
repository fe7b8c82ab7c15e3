//go:build unit

package queries

import (
	"context"
	"testing"
	"time"

	"rinkbook/internal/infra"
	"rinkbook/internal/pkg/clock"
	"rinkbook/internal/pkg/config"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSlotReadStore struct {
	FindFn func(surfaceID uuid.UUID, from, to time.Time, onlyAvailable bool) ([]*SlotView, error)
}

func (s *stubSlotReadStore) FindBySurfaceAndRange(_ context.Context, surfaceID uuid.UUID, from, to time.Time, onlyAvailable bool) ([]*SlotView, error) {
	return s.FindFn(surfaceID, from, to, onlyAvailable)
}

type stubSurfaceReadStore struct {
	view   *SurfaceView
	tzName string
	err    error
}

func (s *stubSurfaceReadStore) FindByID(context.Context, uuid.UUID) (*SurfaceView, string, error) {
	return s.view, s.tzName, s.err
}

type stubEnsurer struct {
	EnsuredDays []time.Time
}

func (e *stubEnsurer) EnsureDay(_ context.Context, _ uuid.UUID, date time.Time) error {
	e.EnsuredDays = append(e.EnsuredDays, date)
	return nil
}

func TestAvailableSlots(t *testing.T) {
	surfaceID := uuid.New()
	cfg := config.BookingConfig{DefaultTimezone: "UTC"}
	clk := clock.NewMockClock(time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC))

	t.Run("queries the facility's civil day and ensures it first", func(t *testing.T) {
		nyc, err := time.LoadLocation("America/New_York")
		require.NoError(t, err)

		var gotFrom, gotTo time.Time
		var gotOnlyAvailable bool
		slots := &stubSlotReadStore{
			FindFn: func(_ uuid.UUID, from, to time.Time, onlyAvailable bool) ([]*SlotView, error) {
				gotFrom, gotTo, gotOnlyAvailable = from, to, onlyAvailable
				return []*SlotView{{ID: uuid.New()}}, nil
			},
		}
		ensurer := &stubEnsurer{}
		q := NewAvailabilityQueries(slots,
			&stubSurfaceReadStore{view: &SurfaceView{ID: surfaceID}, tzName: "America/New_York"},
			ensurer, clk, cfg)

		date := time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC)
		got, err := q.AvailableSlots(context.Background(), surfaceID, date)

		require.NoError(t, err)
		assert.Len(t, got, 1)
		assert.True(t, gotOnlyAvailable)
		assert.Equal(t, time.Date(2026, 1, 20, 0, 0, 0, 0, nyc), gotFrom)
		assert.Equal(t, time.Date(2026, 1, 21, 0, 0, 0, 0, nyc), gotTo)
		require.Len(t, ensurer.EnsuredDays, 1)
		assert.Equal(t, gotFrom, ensurer.EnsuredDays[0])
	})

	t.Run("a zero date resolves to today in the facility's timezone", func(t *testing.T) {
		nyc, err := time.LoadLocation("America/New_York")
		require.NoError(t, err)

		var gotFrom, gotTo time.Time
		slots := &stubSlotReadStore{
			FindFn: func(_ uuid.UUID, from, to time.Time, _ bool) ([]*SlotView, error) {
				gotFrom, gotTo = from, to
				return nil, nil
			},
		}
		// 03:30 UTC is already Jan 21 on the server but still the
		// evening of Jan 20 in New York.
		lateClk := clock.NewMockClock(time.Date(2026, 1, 21, 3, 30, 0, 0, time.UTC))
		q := NewAvailabilityQueries(slots,
			&stubSurfaceReadStore{view: &SurfaceView{ID: surfaceID}, tzName: "America/New_York"},
			&stubEnsurer{}, lateClk, cfg)

		_, err = q.AvailableSlots(context.Background(), surfaceID, time.Time{})

		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 1, 20, 0, 0, 0, 0, nyc), gotFrom)
		assert.Equal(t, time.Date(2026, 1, 21, 0, 0, 0, 0, nyc), gotTo)
	})

	t.Run("an unknown timezone falls back to the configured default", func(t *testing.T) {
		var gotFrom time.Time
		slots := &stubSlotReadStore{
			FindFn: func(_ uuid.UUID, from, _ time.Time, _ bool) ([]*SlotView, error) {
				gotFrom = from
				return nil, nil
			},
		}
		q := NewAvailabilityQueries(slots,
			&stubSurfaceReadStore{view: &SurfaceView{ID: surfaceID}, tzName: "Not/AZone"},
			&stubEnsurer{}, clk, cfg)

		date := time.Date(2026, 1, 20, 15, 30, 0, 0, time.UTC)
		_, err := q.AvailableSlots(context.Background(), surfaceID, date)

		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC), gotFrom)
	})

	t.Run("staff schedule includes every state", func(t *testing.T) {
		var gotOnlyAvailable = true
		slots := &stubSlotReadStore{
			FindFn: func(_ uuid.UUID, _, _ time.Time, onlyAvailable bool) ([]*SlotView, error) {
				gotOnlyAvailable = onlyAvailable
				return nil, nil
			},
		}
		q := NewAvailabilityQueries(slots,
			&stubSurfaceReadStore{view: &SurfaceView{ID: surfaceID}, tzName: "UTC"},
			&stubEnsurer{}, clk, cfg)

		_, err := q.DaySchedule(context.Background(), surfaceID, time.Now())

		require.NoError(t, err)
		assert.False(t, gotOnlyAvailable)
	})

	t.Run("unknown surface", func(t *testing.T) {
		q := NewAvailabilityQueries(&stubSlotReadStore{},
			&stubSurfaceReadStore{err: infra.WrapRepoErr("surface not found", pgx.ErrNoRows, infra.KindNotFound)},
			&stubEnsurer{}, clk, cfg)

		_, err := q.AvailableSlots(context.Background(), surfaceID, time.Now())

		assert.ErrorIs(t, err, ErrSurfaceNotFound)
	})
}
