package slot

import (
	"time"

	"rinkbook/internal/domain/facility"

	"github.com/google/uuid"
)

// SlotDuration is the fixed length of every bookable slot.
const SlotDuration = time.Hour

// Seed is a slot to be inserted. Expansion is pure; persistence decides
// which seeds are new via the (surface, start) uniqueness rule.
type Seed struct {
	SurfaceID uuid.UUID
	StartAt   time.Time
	EndAt     time.Time
	RateCents int64
}

// Expand produces the seeds for every whole hour inside a surface's
// operating windows, for each civil day from first through last inclusive
// in loc. Weekdays without configured hours yield nothing, and a trailing
// window shorter than a full hour is dropped. Start times are built from
// wall-clock minutes so the schedule reads the same across DST changes.
func Expand(surface *facility.IceSurface, loc *time.Location, first, last time.Time) []Seed {
	var seeds []Seed

	day := time.Date(first.Year(), first.Month(), first.Day(), 0, 0, 0, 0, loc)
	end := time.Date(last.Year(), last.Month(), last.Day(), 0, 0, 0, 0, loc)

	for !day.After(end) {
		hours, ok := surface.HoursFor(day.Weekday())
		if ok {
			openMin := hours.Open().Minutes()
			closeMin := hours.Close().Minutes()
			for m := openMin; m+60 <= closeMin; m += 60 {
				start := time.Date(day.Year(), day.Month(), day.Day(), 0, m, 0, 0, loc)
				seeds = append(seeds, Seed{
					SurfaceID: surface.ID(),
					StartAt:   start,
					EndAt:     start.Add(SlotDuration),
					RateCents: surface.DefaultRateCents(),
				})
			}
		}
		day = day.AddDate(0, 0, 1)
	}

	return seeds
}
