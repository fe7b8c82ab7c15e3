package notification

import (
	"context"
	"log/slog"

	"rinkbook/internal/usecase/commands"
	"rinkbook/internal/usecase/shared"
)

// LogNotifier records booking lifecycle notices in the structured log.
// It stands where an email or push sender would plug in; the command
// side only sees the Notifier port.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) commands.Notifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) BookingCreated(_ context.Context, b *shared.BookingSnapshot, s *shared.SlotSnapshot) {
	n.notify("booking created", b, s)
}

func (n *LogNotifier) BookingCancelledByCustomer(_ context.Context, b *shared.BookingSnapshot, s *shared.SlotSnapshot) {
	n.notify("booking cancelled by customer", b, s)
}

func (n *LogNotifier) BookingCancelledByFacility(_ context.Context, b *shared.BookingSnapshot, s *shared.SlotSnapshot) {
	n.notify("booking cancelled by facility", b, s)
}

func (n *LogNotifier) notify(msg string, b *shared.BookingSnapshot, s *shared.SlotSnapshot) {
	n.logger.Info(msg,
		"booking_id", b.ID,
		"user_id", b.UserID,
		"slot_id", s.ID,
		"start_at", s.StartAt,
		"payment_status", b.PaymentStatus,
	)
}
