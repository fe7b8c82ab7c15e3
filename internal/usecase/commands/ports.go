package commands

import (
	"context"

	"rinkbook/internal/usecase/shared"
)

// PaymentIntent is the write-side view of a provider payment intent.
type PaymentIntent struct {
	ID           string
	ClientSecret string
}

// PaymentGateway abstracts the payment provider. A gateway may be
// unconfigured, in which case bookings stay pending and are settled at
// the facility.
type PaymentGateway interface {
	Configured() bool
	// CreateIntent charges amountCents with the funds routed to the
	// facility's connected account when destinationAccount is set.
	CreateIntent(ctx context.Context, amountCents int64, destinationAccount string, metadata map[string]string) (*PaymentIntent, error)
	Refund(ctx context.Context, paymentIntentID string) error
}

// Notifier delivers booking lifecycle notices. Delivery failures are the
// notifier's problem; commands never fail on them.
type Notifier interface {
	BookingCreated(ctx context.Context, b *shared.BookingSnapshot, s *shared.SlotSnapshot)
	BookingCancelledByCustomer(ctx context.Context, b *shared.BookingSnapshot, s *shared.SlotSnapshot)
	BookingCancelledByFacility(ctx context.Context, b *shared.BookingSnapshot, s *shared.SlotSnapshot)
}
