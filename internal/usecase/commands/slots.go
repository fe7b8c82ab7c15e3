package commands

import (
	"context"
	"log/slog"
	"time"

	"rinkbook/internal/domain/booking"
	"rinkbook/internal/domain/facility"
	"rinkbook/internal/domain/slot"
	"rinkbook/internal/infra"
	"rinkbook/internal/pkg/clock"
	"rinkbook/internal/pkg/config"
	"rinkbook/internal/pkg/errs"
	"rinkbook/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrSlotNotFound   = errs.New("slot not found")
	ErrSlotNotBlocked = errs.New("slot is not blocked")
	ErrSurfaceUnknown = errs.New("ice surface not found")
)

type SlotCommands interface {
	// GenerateAhead materializes slots for every surface from today
	// through days ahead. Re-running it is harmless: existing
	// (surface, start) pairs are skipped.
	GenerateAhead(ctx context.Context, days int) (int64, error)
	// EnsureDay materializes one surface's slots for one civil day.
	EnsureDay(ctx context.Context, surfaceID uuid.UUID, date time.Time) error
	ManualReserve(ctx context.Context, slotID uuid.UUID, organizationName, notes string) (uuid.UUID, error)
	// Release returns any slot to available, undoing a booking, manual
	// reservation or block. Releasing an available slot is a no-op.
	Release(ctx context.Context, slotID uuid.UUID) error
	Block(ctx context.Context, slotID uuid.UUID) error
	Unblock(ctx context.Context, slotID uuid.UUID) error
}

type slotCommandsImpl struct {
	uow      shared.UnitOfWork
	gateway  PaymentGateway
	notifier Notifier
	clock    clock.Clock
	cfg      config.BookingConfig
}

func NewSlotCommands(
	uow shared.UnitOfWork,
	gateway PaymentGateway,
	notifier Notifier,
	clock clock.Clock,
	cfg config.BookingConfig,
) SlotCommands {
	return &slotCommandsImpl{
		uow:      uow,
		gateway:  gateway,
		notifier: notifier,
		clock:    clock,
		cfg:      cfg,
	}
}

func (c *slotCommandsImpl) GenerateAhead(ctx context.Context, days int) (int64, error) {
	surfaces, err := c.uow.CommandReads().AllSurfaces(ctx)
	if err != nil {
		return 0, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	var total int64
	for i := range surfaces {
		n, err := c.generateForSurface(ctx, &surfaces[i], days)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

func (c *slotCommandsImpl) generateForSurface(ctx context.Context, snap *shared.SurfaceSnapshot, days int) (int64, error) {
	surface, loc := c.surfaceFromSnapshot(snap)

	now := c.clock.Now().In(loc)
	first, _ := facility.DayBounds(now, loc)
	last := first.AddDate(0, 0, days-1)
	seeds := slot.Expand(surface, loc, first, last)
	if len(seeds) == 0 {
		return 0, nil
	}

	var inserted int64
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		inserted, err = tx.Slots().InsertGenerated(ctx, tx.DB(), seeds)
		return err
	})
	if err != nil {
		return 0, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return inserted, nil
}

func (c *slotCommandsImpl) EnsureDay(ctx context.Context, surfaceID uuid.UUID, date time.Time) error {
	snap, err := c.uow.CommandReads().SurfaceByID(ctx, surfaceID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrSurfaceUnknown
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	surface, loc := c.surfaceFromSnapshot(snap)
	seeds := slot.Expand(surface, loc, date.In(loc), date.In(loc))
	if len(seeds) == 0 {
		return nil
	}

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		_, err := tx.Slots().InsertGenerated(ctx, tx.DB(), seeds)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
}

func (c *slotCommandsImpl) surfaceFromSnapshot(snap *shared.SurfaceSnapshot) (*facility.IceSurface, *time.Location) {
	fallback, err := time.LoadLocation(c.cfg.DefaultTimezone)
	if err != nil {
		fallback = time.UTC
	}
	loc := facility.NewTimezone(snap.Timezone).Location(fallback)

	hours := make([]facility.HoursOfOperation, 0, len(snap.Hours))
	for _, h := range snap.Hours {
		open, err := facility.TimeOfDayFromMinutes(h.OpenMinutes)
		if err != nil {
			continue
		}
		close, err := facility.TimeOfDayFromMinutes(h.CloseMinutes)
		if err != nil {
			continue
		}
		window, err := facility.NewHoursOfOperation(h.Weekday, open, close)
		if err != nil {
			continue
		}
		hours = append(hours, window)
	}

	return facility.ReconstructIceSurface(
		snap.ID, snap.FacilityID, snap.Name, snap.DefaultRateCents, hours, time.Time{},
	), loc
}

func (c *slotCommandsImpl) ManualReserve(ctx context.Context, slotID uuid.UUID, organizationName, notes string) (uuid.UUID, error) {
	now := c.clock.Now()
	var reservationID uuid.UUID

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		locked, err := tx.Slots().FindAvailableForUpdate(ctx, tx.DB(), []uuid.UUID{slotID})
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if len(locked) != 1 {
			return ErrSlotsNoLongerAvailable
		}
		snap := locked[0]

		dom := slot.ReconstructSlot(
			snap.ID, snap.SurfaceID, snap.StartAt, snap.EndAt,
			slot.StateAvailable, snap.RateCents, now,
		)
		m, err := booking.NewManualReservation(dom, organizationName, notes, now)
		if err != nil {
			return errs.Mark(err, ErrDomainValidation)
		}

		if err := tx.Slots().UpdateState(ctx, tx.DB(), slotID, slot.StateAvailable, slot.StateManuallyReserved); err != nil {
			return errs.Mark(err, ErrSlotsNoLongerAvailable)
		}
		if _, err := tx.ManualReservations().Create(ctx, tx.DB(), m); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		reservationID = m.ID()
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return reservationID, nil
}

func (c *slotCommandsImpl) Release(ctx context.Context, slotID uuid.UUID) error {
	reads := c.uow.CommandReads()
	snap, err := reads.SlotByID(ctx, slotID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrSlotNotFound
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	state := slot.State(snap.State)
	if state == slot.StateAvailable {
		return nil
	}

	now := c.clock.Now()
	var bookingSnap *shared.BookingSnapshot
	if state == slot.StateBooked {
		bookingSnap, err = reads.BookingBySlotID(ctx, slotID)
		if err != nil && !infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
	}

	// Notify and refund the displaced customer before touching rows, the
	// same order a cancellation follows.
	if bookingSnap != nil {
		c.notifier.BookingCancelledByFacility(ctx, bookingSnap, snap)
		if bookingSnap.PaymentStatus == booking.PaymentPaid.String() && bookingSnap.StripePaymentIntentID != "" {
			if err := c.gateway.Refund(ctx, bookingSnap.StripePaymentIntentID); err != nil {
				slog.Warn("refund failed, releasing slot anyway",
					"slot_id", slotID, "intent_id", bookingSnap.StripePaymentIntentID, "error", err.Error())
			}
		}
	}

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if bookingSnap != nil {
			bookingID := bookingSnap.ID
			userID := bookingSnap.UserID
			event := booking.NewEvent(&bookingID, &userID, booking.EventCancelledByFacility,
				"booking cancelled by facility", now)
			if err := tx.Events().Append(ctx, tx.DB(), event); err != nil {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
			if err := tx.Bookings().DeleteBySlot(ctx, tx.DB(), slotID); err != nil {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
		}
		if state == slot.StateManuallyReserved {
			if err := tx.ManualReservations().DeleteBySlot(ctx, tx.DB(), slotID); err != nil {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
		}
		if err := tx.Slots().UpdateState(ctx, tx.DB(), slotID, state, slot.StateAvailable); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
}

func (c *slotCommandsImpl) Block(ctx context.Context, slotID uuid.UUID) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		locked, err := tx.Slots().FindAvailableForUpdate(ctx, tx.DB(), []uuid.UUID{slotID})
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if len(locked) != 1 {
			return ErrSlotsNoLongerAvailable
		}
		return tx.Slots().UpdateState(ctx, tx.DB(), slotID, slot.StateAvailable, slot.StateBlocked)
	})
}

func (c *slotCommandsImpl) Unblock(ctx context.Context, slotID uuid.UUID) error {
	snap, err := c.uow.CommandReads().SlotByID(ctx, slotID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrSlotNotFound
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if slot.State(snap.State) != slot.StateBlocked {
		return ErrSlotNotBlocked
	}

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Slots().UpdateState(ctx, tx.DB(), slotID, slot.StateBlocked, slot.StateAvailable)
	})
}
