package commands

import (
	"context"
	"log/slog"

	"rinkbook/internal/domain/booking"
	"rinkbook/internal/domain/slot"
	reqdto "rinkbook/internal/handler/dto/request"
	"rinkbook/internal/infra"
	"rinkbook/internal/pkg/clock"
	"rinkbook/internal/pkg/errs"
	"rinkbook/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrNoSlotsRequested        = errs.New("no slots requested")
	ErrNoAvailableSlots        = errs.New("no valid slots")
	ErrMixedFacilities         = errs.New("slots span multiple facilities")
	ErrSlotsNoLongerAvailable  = errs.New("slots no longer available")
	ErrBookingNotFound         = errs.New("booking not found")
	ErrNotBookingOwner         = errs.New("booking belongs to another user")
	ErrCancellationNotAllowed  = errs.New("cancellation not allowed")
	ErrDomainValidation        = errs.New("domain validation error")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

type CreateBookingsResult struct {
	BookingIDs          []uuid.UUID
	TotalCents          int64
	PaymentIntentID     string
	PaymentClientSecret string
}

type BookingCommands interface {
	CreateBookings(ctx context.Context, req reqdto.CreateBookingsRequest, userID uuid.UUID) (*CreateBookingsResult, error)
	CancelBooking(ctx context.Context, bookingID, userID uuid.UUID) error
}

type bookingCommandsImpl struct {
	uow      shared.UnitOfWork
	gateway  PaymentGateway
	notifier Notifier
	policy   booking.CancellationPolicy
	clock    clock.Clock
}

func NewBookingCommands(
	uow shared.UnitOfWork,
	gateway PaymentGateway,
	notifier Notifier,
	policy booking.CancellationPolicy,
	clock clock.Clock,
) BookingCommands {
	return &bookingCommandsImpl{
		uow:      uow,
		gateway:  gateway,
		notifier: notifier,
		policy:   policy,
		clock:    clock,
	}
}

// CreateBookings claims every requested slot or none. The initial read
// only prunes slots that are already taken; the race against concurrent
// requests is settled inside the transaction, where the re-fetch locks
// rows filtered by the exact id set and available state. A count mismatch
// there means another request won at least one slot, and the whole batch
// aborts.
func (c *bookingCommandsImpl) CreateBookings(
	ctx context.Context,
	req reqdto.CreateBookingsRequest,
	userID uuid.UUID,
) (*CreateBookingsResult, error) {
	if len(req.SlotIDs) == 0 {
		return nil, ErrNoSlotsRequested
	}

	sport, err := booking.NewSport(req.Sport)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	reads := c.uow.CommandReads()
	snapshots, err := reads.SlotsByIDs(ctx, req.SlotIDs)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	candidates := make([]shared.SlotSnapshot, 0, len(snapshots))
	for _, s := range snapshots {
		if s.State == slot.StateAvailable.String() {
			candidates = append(candidates, s)
		}
	}
	if len(candidates) == 0 {
		return nil, ErrNoAvailableSlots
	}

	facilityID := candidates[0].FacilityID
	for _, s := range candidates[1:] {
		if s.FacilityID != facilityID {
			return nil, ErrMixedFacilities
		}
	}

	candidateIDs := make([]uuid.UUID, len(candidates))
	for i, s := range candidates {
		candidateIDs[i] = s.ID
	}

	now := c.clock.Now()
	result := &CreateBookingsResult{}
	var created []*shared.BookingSnapshot
	var claimed []shared.SlotSnapshot

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		locked, err := tx.Slots().FindAvailableForUpdate(ctx, tx.DB(), candidateIDs)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if len(locked) != len(candidates) {
			return ErrSlotsNoLongerAvailable
		}

		for _, snap := range locked {
			dom := slot.ReconstructSlot(
				snap.ID, snap.SurfaceID, snap.StartAt, snap.EndAt,
				slot.StateAvailable, snap.RateCents, now,
			)
			b, err := booking.NewBooking(dom, userID, req.OrganizationName, sport, now)
			if err != nil {
				return errs.Mark(err, ErrDomainValidation)
			}

			if err := tx.Slots().UpdateState(ctx, tx.DB(), snap.ID, slot.StateAvailable, slot.StateBooked); err != nil {
				return errs.Mark(err, ErrSlotsNoLongerAvailable)
			}
			if _, err := tx.Bookings().Create(ctx, tx.DB(), b); err != nil {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}

			bookingID := b.ID()
			event := booking.NewEvent(&bookingID, &userID, booking.EventCreated,
				"booking created for "+snap.StartAt.Format("2006-01-02 15:04"), now)
			if err := tx.Events().Append(ctx, tx.DB(), event); err != nil {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}

			result.BookingIDs = append(result.BookingIDs, bookingID)
			result.TotalCents += snap.RateCents
			created = append(created, &shared.BookingSnapshot{
				ID:               bookingID,
				SlotID:           snap.ID,
				UserID:           userID,
				OrganizationName: req.OrganizationName,
				Sport:            sport.String(),
				PaymentStatus:    booking.PaymentPending.String(),
				CreatedAt:        now,
			})
			claimed = append(claimed, snap)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for i, b := range created {
		c.notifier.BookingCreated(ctx, b, &claimed[i])
	}

	if req.PayOnline {
		c.collectPayment(ctx, reads, result, candidates[0].SurfaceID, userID)
	}

	return result, nil
}

// collectPayment runs after the bookings are committed. Provider failure
// leaves them pending rather than rolling anything back; the customer
// settles at the facility instead.
func (c *bookingCommandsImpl) collectPayment(
	ctx context.Context,
	reads shared.CommandReads,
	result *CreateBookingsResult,
	surfaceID, userID uuid.UUID,
) {
	if !c.gateway.Configured() {
		return
	}

	surface, err := reads.SurfaceByID(ctx, surfaceID)
	if err != nil {
		slog.Warn("failed to load surface for payment", "surface_id", surfaceID, "error", err.Error())
		return
	}
	// A facility that never onboarded with the payment provider has no
	// account to route the charge to; the customer settles on site.
	if surface.StripeAccountID == "" {
		slog.Warn("facility has no payment account, bookings stay pending", "surface_id", surfaceID)
		return
	}

	intent, err := c.gateway.CreateIntent(ctx, result.TotalCents, surface.StripeAccountID, map[string]string{
		"user_id": userID.String(),
	})
	if err != nil {
		slog.Warn("payment intent creation failed, bookings stay pending",
			"user_id", userID, "amount_cents", result.TotalCents, "error", err.Error())
		return
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		for _, id := range result.BookingIDs {
			if err := tx.Bookings().AttachPaymentIntent(ctx, tx.DB(), id, intent.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		slog.Warn("failed to attach payment intent", "intent_id", intent.ID, "error", err.Error())
		return
	}

	result.PaymentIntentID = intent.ID
	result.PaymentClientSecret = intent.ClientSecret
}

// CancelBooking notifies, refunds when paid, then releases the slot. The
// refund call is best effort; its failure never blocks the release.
func (c *bookingCommandsImpl) CancelBooking(ctx context.Context, bookingID, userID uuid.UUID) error {
	reads := c.uow.CommandReads()

	snap, err := reads.BookingByID(ctx, bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrBookingNotFound
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if snap.UserID != userID {
		return ErrNotBookingOwner
	}

	now := c.clock.Now()
	if !c.policy.CanCancel(reconstructBooking(snap), now) {
		return ErrCancellationNotAllowed
	}

	slotSnap, err := reads.SlotByID(ctx, snap.SlotID)
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	c.notifier.BookingCancelledByCustomer(ctx, snap, slotSnap)

	if snap.PaymentStatus == booking.PaymentPaid.String() && snap.StripePaymentIntentID != "" {
		if err := c.gateway.Refund(ctx, snap.StripePaymentIntentID); err != nil {
			slog.Warn("refund failed, releasing slot anyway",
				"booking_id", bookingID, "intent_id", snap.StripePaymentIntentID, "error", err.Error())
		}
	}

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		event := booking.NewEvent(&bookingID, &userID, booking.EventCancelledByCustomer,
			"booking cancelled by customer", now)
		if err := tx.Events().Append(ctx, tx.DB(), event); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if err := tx.Bookings().DeleteBySlot(ctx, tx.DB(), snap.SlotID); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if err := tx.Slots().UpdateState(ctx, tx.DB(), snap.SlotID, slot.StateBooked, slot.StateAvailable); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
}

func reconstructBooking(s *shared.BookingSnapshot) *booking.Booking {
	return booking.ReconstructBooking(
		s.ID, s.SlotID, s.UserID,
		s.OrganizationName,
		booking.Sport(s.Sport),
		booking.PaymentStatus(s.PaymentStatus),
		s.StripePaymentIntentID,
		s.AmountPaidCents,
		s.CreatedAt, s.CreatedAt,
	)
}
