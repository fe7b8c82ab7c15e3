package facility

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidTimeOfDay = errors.New("time of day out of range")
	ErrInvalidHours     = errors.New("opening time must precede closing time")
	ErrInvalidName      = errors.New("name must not be empty")
)

// TimeOfDay is a wall-clock time expressed as minutes from midnight,
// independent of any date or zone.
type TimeOfDay struct {
	minutes int
}

func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return TimeOfDay{}, ErrInvalidTimeOfDay
	}
	return TimeOfDay{minutes: hour*60 + minute}, nil
}

func TimeOfDayFromMinutes(minutes int) (TimeOfDay, error) {
	if minutes < 0 || minutes >= 24*60 {
		return TimeOfDay{}, ErrInvalidTimeOfDay
	}
	return TimeOfDay{minutes: minutes}, nil
}

func (t TimeOfDay) Hour() int    { return t.minutes / 60 }
func (t TimeOfDay) Minute() int  { return t.minutes % 60 }
func (t TimeOfDay) Minutes() int { return t.minutes }

func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t.minutes < other.minutes
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// On attaches the wall-clock time to a calendar date in the given zone.
// The result honors DST transitions for that zone.
func (t TimeOfDay) On(date time.Time, loc *time.Location) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, loc)
}

// Timezone is an IANA zone identifier stored per facility. An unknown or
// empty identifier is tolerated: lookups fall back to the given default so
// a bad facility record degrades the schedule rather than breaking it.
type Timezone struct {
	name string
}

func NewTimezone(name string) Timezone {
	return Timezone{name: name}
}

func (tz Timezone) Name() string { return tz.name }

func (tz Timezone) Location(fallback *time.Location) *time.Location {
	if tz.name == "" {
		return fallback
	}
	loc, err := time.LoadLocation(tz.name)
	if err != nil {
		return fallback
	}
	return loc
}

// DayBounds returns the half-open interval [start, end) covering one civil
// day in loc. The end is computed with AddDate so days shortened or
// stretched by DST keep their true length.
func DayBounds(date time.Time, loc *time.Location) (time.Time, time.Time) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}
