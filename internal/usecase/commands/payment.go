package commands

import (
	"context"
	"fmt"
	"log/slog"

	"rinkbook/internal/domain/booking"
	"rinkbook/internal/pkg/clock"
	"rinkbook/internal/pkg/errs"
	"rinkbook/internal/usecase/shared"
)

type PaymentCommands interface {
	// HandlePaymentSucceeded settles every booking attached to a payment
	// intent. An unknown intent is ignored: the provider retries webhook
	// deliveries, and the bookings may already be gone.
	HandlePaymentSucceeded(ctx context.Context, paymentIntentID string, amountCents int64) error
}

type paymentCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewPaymentCommands(uow shared.UnitOfWork, clock clock.Clock) PaymentCommands {
	return &paymentCommandsImpl{
		uow:   uow,
		clock: clock,
	}
}

func (p *paymentCommandsImpl) HandlePaymentSucceeded(ctx context.Context, paymentIntentID string, amountCents int64) error {
	now := p.clock.Now()

	return p.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		ids, err := tx.Bookings().MarkPaidByIntent(ctx, tx.DB(), paymentIntentID)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if len(ids) == 0 {
			slog.Info("payment succeeded for unknown intent", "intent_id", paymentIntentID)
			return nil
		}

		for _, id := range ids {
			bookingID := id
			event := booking.NewEvent(&bookingID, nil, booking.EventPaymentSucceeded,
				fmt.Sprintf("payment of %d cents confirmed by provider", amountCents), now)
			if err := tx.Events().Append(ctx, tx.DB(), event); err != nil {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
		}
		return nil
	})
}
