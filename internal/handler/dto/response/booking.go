package response

import (
	"rinkbook/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateBookingsResponse struct {
	BookingIDs          []uuid.UUID `json:"booking_ids"`
	TotalCents          int64       `json:"total_cents"`
	PaymentIntentID     string      `json:"payment_intent_id,omitempty"`
	PaymentClientSecret string      `json:"payment_client_secret,omitempty"`
}

func FromCreateBookingsResult(r *commands.CreateBookingsResult) CreateBookingsResponse {
	return CreateBookingsResponse{
		BookingIDs:          r.BookingIDs,
		TotalCents:          r.TotalCents,
		PaymentIntentID:     r.PaymentIntentID,
		PaymentClientSecret: r.PaymentClientSecret,
	}
}

type ManualReserveResponse struct {
	ReservationID uuid.UUID `json:"reservation_id"`
}
