//go:build unit

package facility_test

import (
	"testing"
	"time"

	"rinkbook/internal/domain/facility"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeOfDay(t *testing.T) {
	t.Run("valid time", func(t *testing.T) {
		tod, err := facility.NewTimeOfDay(9, 30)
		require.NoError(t, err)
		assert.Equal(t, 9, tod.Hour())
		assert.Equal(t, 30, tod.Minute())
		assert.Equal(t, 570, tod.Minutes())
		assert.Equal(t, "09:30", tod.String())
	})

	t.Run("out of range", func(t *testing.T) {
		_, err := facility.NewTimeOfDay(24, 0)
		assert.ErrorIs(t, err, facility.ErrInvalidTimeOfDay)
		_, err = facility.NewTimeOfDay(0, 60)
		assert.ErrorIs(t, err, facility.ErrInvalidTimeOfDay)
		_, err = facility.TimeOfDayFromMinutes(24 * 60)
		assert.ErrorIs(t, err, facility.ErrInvalidTimeOfDay)
	})

	t.Run("ordering", func(t *testing.T) {
		open, _ := facility.NewTimeOfDay(9, 0)
		close, _ := facility.NewTimeOfDay(17, 0)
		assert.True(t, open.Before(close))
		assert.False(t, close.Before(open))
	})
}

func TestHoursOfOperation(t *testing.T) {
	open, _ := facility.NewTimeOfDay(9, 0)
	close, _ := facility.NewTimeOfDay(17, 0)

	t.Run("valid window", func(t *testing.T) {
		h, err := facility.NewHoursOfOperation(time.Monday, open, close)
		require.NoError(t, err)
		assert.Equal(t, time.Monday, h.Weekday())
	})

	t.Run("inverted window", func(t *testing.T) {
		_, err := facility.NewHoursOfOperation(time.Monday, close, open)
		assert.ErrorIs(t, err, facility.ErrInvalidHours)
	})

	t.Run("empty window", func(t *testing.T) {
		_, err := facility.NewHoursOfOperation(time.Monday, open, open)
		assert.ErrorIs(t, err, facility.ErrInvalidHours)
	})
}

func TestTimezoneLocation(t *testing.T) {
	fallback := time.UTC

	t.Run("known zone", func(t *testing.T) {
		loc := facility.NewTimezone("America/Toronto").Location(fallback)
		assert.Equal(t, "America/Toronto", loc.String())
	})

	t.Run("unknown zone falls back", func(t *testing.T) {
		loc := facility.NewTimezone("Mars/Olympus").Location(fallback)
		assert.Equal(t, fallback, loc)
	})

	t.Run("empty zone falls back", func(t *testing.T) {
		loc := facility.NewTimezone("").Location(fallback)
		assert.Equal(t, fallback, loc)
	})
}

func TestDayBounds(t *testing.T) {
	t.Run("regular day spans 24 hours", func(t *testing.T) {
		start, end := facility.DayBounds(time.Date(2026, 9, 7, 15, 30, 0, 0, time.UTC), time.UTC)
		assert.Equal(t, time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC), start)
		assert.Equal(t, 24*time.Hour, end.Sub(start))
	})

	t.Run("fall-back day spans 25 hours", func(t *testing.T) {
		ny, err := time.LoadLocation("America/New_York")
		require.NoError(t, err)
		start, end := facility.DayBounds(time.Date(2026, 11, 1, 12, 0, 0, 0, ny), ny)
		assert.Equal(t, 25*time.Hour, end.Sub(start))
	})

	t.Run("spring-forward day spans 23 hours", func(t *testing.T) {
		ny, err := time.LoadLocation("America/New_York")
		require.NoError(t, err)
		start, end := facility.DayBounds(time.Date(2026, 3, 8, 12, 0, 0, 0, ny), ny)
		assert.Equal(t, 23*time.Hour, end.Sub(start))
	})
}
