//go:build unit

package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"rinkbook/internal/domain/booking"
	"rinkbook/internal/domain/slot"
	reqdto "rinkbook/internal/handler/dto/request"
	"rinkbook/internal/infra"
	"rinkbook/internal/pkg/clock"
	"rinkbook/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func availableSlot(facilityID uuid.UUID, startAt time.Time, rateCents int64) shared.SlotSnapshot {
	return shared.SlotSnapshot{
		ID:         uuid.New(),
		SurfaceID:  uuid.New(),
		FacilityID: facilityID,
		StartAt:    startAt,
		EndAt:      startAt.Add(time.Hour),
		State:      slot.StateAvailable.String(),
		RateCents:  rateCents,
	}
}

func newBookingCommandsForTest(uow *stubUoW, gw *stubGateway, nt *stubNotifier) BookingCommands {
	return NewBookingCommands(uow, gw, nt, booking.AllowAllPolicy{},
		clock.NewMockClock(time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)))
}

func TestCreateBookings(t *testing.T) {
	userID := uuid.New()
	facilityID := uuid.New()
	base := time.Date(2026, 1, 20, 9, 0, 0, 0, time.UTC)

	t.Run("books every requested slot atomically", func(t *testing.T) {
		slots := []shared.SlotSnapshot{
			availableSlot(facilityID, base, 15000),
			availableSlot(facilityID, base.Add(time.Hour), 17500),
		}
		uow := newStubUoW()
		uow.reads.SlotsByIDsFn = func(_ context.Context, _ []uuid.UUID) ([]shared.SlotSnapshot, error) {
			return slots, nil
		}
		uow.tx.slots.FindAvailableForUpdateFn = func(_ []uuid.UUID) ([]shared.SlotSnapshot, error) {
			return slots, nil
		}
		nt := &stubNotifier{}
		cmd := newBookingCommandsForTest(uow, &stubGateway{}, nt)

		result, err := cmd.CreateBookings(context.Background(), reqdto.CreateBookingsRequest{
			SlotIDs:          []uuid.UUID{slots[0].ID, slots[1].ID},
			OrganizationName: "North Stars",
			Sport:            "hockey",
		}, userID)

		require.NoError(t, err)
		assert.Len(t, result.BookingIDs, 2)
		assert.Equal(t, int64(32500), result.TotalCents)
		assert.Len(t, uow.tx.books.Created, 2)
		assert.Len(t, uow.tx.events.Appended, 2)
		require.Len(t, uow.tx.slots.StateChanges, 2)
		for _, ch := range uow.tx.slots.StateChanges {
			assert.Equal(t, slot.StateAvailable, ch.From)
			assert.Equal(t, slot.StateBooked, ch.To)
		}
		require.Len(t, nt.Notices, 2)
		assert.Equal(t, "created", nt.Notices[0].Kind)
	})

	t.Run("rejects an empty slot list", func(t *testing.T) {
		cmd := newBookingCommandsForTest(newStubUoW(), &stubGateway{}, &stubNotifier{})

		_, err := cmd.CreateBookings(context.Background(), reqdto.CreateBookingsRequest{
			Sport: "hockey",
		}, userID)

		assert.ErrorIs(t, err, ErrNoSlotsRequested)
	})

	t.Run("rejects an unknown sport", func(t *testing.T) {
		cmd := newBookingCommandsForTest(newStubUoW(), &stubGateway{}, &stubNotifier{})

		_, err := cmd.CreateBookings(context.Background(), reqdto.CreateBookingsRequest{
			SlotIDs: []uuid.UUID{uuid.New()},
			Sport:   "curling",
		}, userID)

		assert.ErrorIs(t, err, ErrDomainValidation)
	})

	t.Run("fails when no requested slot is still available", func(t *testing.T) {
		taken := availableSlot(facilityID, base, 15000)
		taken.State = slot.StateBooked.String()
		uow := newStubUoW()
		uow.reads.SlotsByIDsFn = func(_ context.Context, _ []uuid.UUID) ([]shared.SlotSnapshot, error) {
			return []shared.SlotSnapshot{taken}, nil
		}
		cmd := newBookingCommandsForTest(uow, &stubGateway{}, &stubNotifier{})

		_, err := cmd.CreateBookings(context.Background(), reqdto.CreateBookingsRequest{
			SlotIDs: []uuid.UUID{taken.ID},
			Sport:   "hockey",
		}, userID)

		assert.ErrorIs(t, err, ErrNoAvailableSlots)
	})

	t.Run("rejects slots spanning two facilities", func(t *testing.T) {
		uow := newStubUoW()
		a := availableSlot(facilityID, base, 15000)
		b := availableSlot(uuid.New(), base.Add(time.Hour), 15000)
		uow.reads.SlotsByIDsFn = func(_ context.Context, _ []uuid.UUID) ([]shared.SlotSnapshot, error) {
			return []shared.SlotSnapshot{a, b}, nil
		}
		cmd := newBookingCommandsForTest(uow, &stubGateway{}, &stubNotifier{})

		_, err := cmd.CreateBookings(context.Background(), reqdto.CreateBookingsRequest{
			SlotIDs: []uuid.UUID{a.ID, b.ID},
			Sport:   "ringette",
		}, userID)

		assert.ErrorIs(t, err, ErrMixedFacilities)
	})

	t.Run("aborts the whole batch when a concurrent request wins a slot", func(t *testing.T) {
		slots := []shared.SlotSnapshot{
			availableSlot(facilityID, base, 15000),
			availableSlot(facilityID, base.Add(time.Hour), 15000),
		}
		uow := newStubUoW()
		uow.reads.SlotsByIDsFn = func(_ context.Context, _ []uuid.UUID) ([]shared.SlotSnapshot, error) {
			return slots, nil
		}
		// The locked re-fetch sees one slot already claimed.
		uow.tx.slots.FindAvailableForUpdateFn = func(_ []uuid.UUID) ([]shared.SlotSnapshot, error) {
			return slots[:1], nil
		}
		nt := &stubNotifier{}
		cmd := newBookingCommandsForTest(uow, &stubGateway{}, nt)

		_, err := cmd.CreateBookings(context.Background(), reqdto.CreateBookingsRequest{
			SlotIDs: []uuid.UUID{slots[0].ID, slots[1].ID},
			Sport:   "hockey",
		}, userID)

		assert.ErrorIs(t, err, ErrSlotsNoLongerAvailable)
		assert.Empty(t, uow.tx.books.Created)
		assert.Empty(t, nt.Notices)
	})

	t.Run("attaches a payment intent when paying online", func(t *testing.T) {
		s := availableSlot(facilityID, base, 20000)
		uow := newStubUoW()
		uow.reads.SlotsByIDsFn = func(_ context.Context, _ []uuid.UUID) ([]shared.SlotSnapshot, error) {
			return []shared.SlotSnapshot{s}, nil
		}
		uow.reads.SurfaceByIDFn = func(_ context.Context, _ uuid.UUID) (*shared.SurfaceSnapshot, error) {
			return &shared.SurfaceSnapshot{ID: s.SurfaceID, StripeAccountID: "acct_123"}, nil
		}
		uow.tx.slots.FindAvailableForUpdateFn = func(_ []uuid.UUID) ([]shared.SlotSnapshot, error) {
			return []shared.SlotSnapshot{s}, nil
		}
		gw := &stubGateway{
			ConfiguredVal: true,
			CreateIntentFn: func(amountCents int64, destinationAccount string) (*PaymentIntent, error) {
				assert.Equal(t, int64(20000), amountCents)
				assert.Equal(t, "acct_123", destinationAccount)
				return &PaymentIntent{ID: "pi_1", ClientSecret: "pi_1_secret"}, nil
			},
		}
		cmd := newBookingCommandsForTest(uow, gw, &stubNotifier{})

		result, err := cmd.CreateBookings(context.Background(), reqdto.CreateBookingsRequest{
			SlotIDs:   []uuid.UUID{s.ID},
			Sport:     "hockey",
			PayOnline: true,
		}, userID)

		require.NoError(t, err)
		assert.Equal(t, "pi_1", result.PaymentIntentID)
		assert.Equal(t, "pi_1_secret", result.PaymentClientSecret)
		assert.Equal(t, "pi_1", uow.tx.books.AttachedIntents[result.BookingIDs[0]])
	})

	t.Run("provider failure leaves bookings pending", func(t *testing.T) {
		s := availableSlot(facilityID, base, 20000)
		uow := newStubUoW()
		uow.reads.SlotsByIDsFn = func(_ context.Context, _ []uuid.UUID) ([]shared.SlotSnapshot, error) {
			return []shared.SlotSnapshot{s}, nil
		}
		uow.reads.SurfaceByIDFn = func(_ context.Context, _ uuid.UUID) (*shared.SurfaceSnapshot, error) {
			return &shared.SurfaceSnapshot{ID: s.SurfaceID, StripeAccountID: "acct_123"}, nil
		}
		uow.tx.slots.FindAvailableForUpdateFn = func(_ []uuid.UUID) ([]shared.SlotSnapshot, error) {
			return []shared.SlotSnapshot{s}, nil
		}
		gw := &stubGateway{
			ConfiguredVal: true,
			CreateIntentFn: func(int64, string) (*PaymentIntent, error) {
				return nil, errors.New("provider down")
			},
		}
		cmd := newBookingCommandsForTest(uow, gw, &stubNotifier{})

		result, err := cmd.CreateBookings(context.Background(), reqdto.CreateBookingsRequest{
			SlotIDs:   []uuid.UUID{s.ID},
			Sport:     "hockey",
			PayOnline: true,
		}, userID)

		require.NoError(t, err)
		assert.Len(t, result.BookingIDs, 1)
		assert.Empty(t, result.PaymentIntentID)
		assert.Empty(t, uow.tx.books.AttachedIntents)
	})

	t.Run("facility without a payment account skips the intent", func(t *testing.T) {
		s := availableSlot(facilityID, base, 20000)
		uow := newStubUoW()
		uow.reads.SlotsByIDsFn = func(_ context.Context, _ []uuid.UUID) ([]shared.SlotSnapshot, error) {
			return []shared.SlotSnapshot{s}, nil
		}
		uow.reads.SurfaceByIDFn = func(_ context.Context, _ uuid.UUID) (*shared.SurfaceSnapshot, error) {
			return &shared.SurfaceSnapshot{ID: s.SurfaceID, StripeAccountID: ""}, nil
		}
		uow.tx.slots.FindAvailableForUpdateFn = func(_ []uuid.UUID) ([]shared.SlotSnapshot, error) {
			return []shared.SlotSnapshot{s}, nil
		}
		gw := &stubGateway{
			ConfiguredVal: true,
			CreateIntentFn: func(int64, string) (*PaymentIntent, error) {
				t.Fatal("no intent should be created without a destination account")
				return nil, nil
			},
		}
		cmd := newBookingCommandsForTest(uow, gw, &stubNotifier{})

		result, err := cmd.CreateBookings(context.Background(), reqdto.CreateBookingsRequest{
			SlotIDs:   []uuid.UUID{s.ID},
			Sport:     "hockey",
			PayOnline: true,
		}, userID)

		require.NoError(t, err)
		assert.Len(t, result.BookingIDs, 1)
		assert.Empty(t, result.PaymentIntentID)
		assert.Empty(t, uow.tx.books.AttachedIntents)
	})
}

func TestCancelBooking(t *testing.T) {
	userID := uuid.New()
	bookingID := uuid.New()
	slotID := uuid.New()

	pendingBooking := &shared.BookingSnapshot{
		ID:            bookingID,
		SlotID:        slotID,
		UserID:        userID,
		Sport:         "hockey",
		PaymentStatus: booking.PaymentPending.String(),
	}
	slotSnap := &shared.SlotSnapshot{
		ID:    slotID,
		State: slot.StateBooked.String(),
	}

	t.Run("releases the slot and records the cancellation", func(t *testing.T) {
		uow := newStubUoW()
		uow.reads.BookingByIDFn = func(_ context.Context, _ uuid.UUID) (*shared.BookingSnapshot, error) {
			return pendingBooking, nil
		}
		uow.reads.SlotByIDFn = func(_ context.Context, _ uuid.UUID) (*shared.SlotSnapshot, error) {
			return slotSnap, nil
		}
		nt := &stubNotifier{}
		gw := &stubGateway{}
		cmd := newBookingCommandsForTest(uow, gw, nt)

		err := cmd.CancelBooking(context.Background(), bookingID, userID)

		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{slotID}, uow.tx.books.DeletedSlots)
		require.Len(t, uow.tx.slots.StateChanges, 1)
		assert.Equal(t, slot.StateBooked, uow.tx.slots.StateChanges[0].From)
		assert.Equal(t, slot.StateAvailable, uow.tx.slots.StateChanges[0].To)
		require.Len(t, uow.tx.events.Appended, 1)
		assert.Equal(t, booking.EventCancelledByCustomer, uow.tx.events.Appended[0].Type())
		assert.Empty(t, gw.Refunded, "pending booking needs no refund")
		require.Len(t, nt.Notices, 1)
		assert.Equal(t, "cancelled_by_customer", nt.Notices[0].Kind)
	})

	t.Run("refunds a paid booking", func(t *testing.T) {
		paid := *pendingBooking
		paid.PaymentStatus = booking.PaymentPaid.String()
		paid.StripePaymentIntentID = "pi_9"
		uow := newStubUoW()
		uow.reads.BookingByIDFn = func(_ context.Context, _ uuid.UUID) (*shared.BookingSnapshot, error) {
			return &paid, nil
		}
		uow.reads.SlotByIDFn = func(_ context.Context, _ uuid.UUID) (*shared.SlotSnapshot, error) {
			return slotSnap, nil
		}
		gw := &stubGateway{}
		cmd := newBookingCommandsForTest(uow, gw, &stubNotifier{})

		err := cmd.CancelBooking(context.Background(), bookingID, userID)

		require.NoError(t, err)
		assert.Equal(t, []string{"pi_9"}, gw.Refunded)
	})

	t.Run("a failed refund still releases the slot", func(t *testing.T) {
		paid := *pendingBooking
		paid.PaymentStatus = booking.PaymentPaid.String()
		paid.StripePaymentIntentID = "pi_9"
		uow := newStubUoW()
		uow.reads.BookingByIDFn = func(_ context.Context, _ uuid.UUID) (*shared.BookingSnapshot, error) {
			return &paid, nil
		}
		uow.reads.SlotByIDFn = func(_ context.Context, _ uuid.UUID) (*shared.SlotSnapshot, error) {
			return slotSnap, nil
		}
		gw := &stubGateway{RefundErr: errors.New("refund rejected")}
		cmd := newBookingCommandsForTest(uow, gw, &stubNotifier{})

		err := cmd.CancelBooking(context.Background(), bookingID, userID)

		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{slotID}, uow.tx.books.DeletedSlots)
		require.Len(t, uow.tx.slots.StateChanges, 1)
	})

	t.Run("unknown booking", func(t *testing.T) {
		uow := newStubUoW()
		uow.reads.BookingByIDFn = func(_ context.Context, _ uuid.UUID) (*shared.BookingSnapshot, error) {
			return nil, infra.WrapRepoErr("booking not found", pgx.ErrNoRows, infra.KindNotFound)
		}
		cmd := newBookingCommandsForTest(uow, &stubGateway{}, &stubNotifier{})

		err := cmd.CancelBooking(context.Background(), bookingID, userID)

		assert.ErrorIs(t, err, ErrBookingNotFound)
	})

	t.Run("someone else's booking", func(t *testing.T) {
		uow := newStubUoW()
		uow.reads.BookingByIDFn = func(_ context.Context, _ uuid.UUID) (*shared.BookingSnapshot, error) {
			return pendingBooking, nil
		}
		cmd := newBookingCommandsForTest(uow, &stubGateway{}, &stubNotifier{})

		err := cmd.CancelBooking(context.Background(), bookingID, uuid.New())

		assert.ErrorIs(t, err, ErrNotBookingOwner)
	})
}
