package booking

import "time"

// CancellationPolicy decides whether a booking may be cancelled. The seam
// exists for a future rule rejecting cancellations that would orphan part
// of an adjacent multi-hour group.
type CancellationPolicy interface {
	CanCancel(b *Booking, now time.Time) bool
}

// AllowAllPolicy permits every cancellation.
type AllowAllPolicy struct{}

func (AllowAllPolicy) CanCancel(*Booking, time.Time) bool {
	return true
}
