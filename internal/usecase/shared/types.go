package shared

import (
	"time"

	"github.com/google/uuid"
)

// Minimal snapshots for command-side reads. Queries have their own richer
// view types; these carry only what command validation needs.

type SlotSnapshot struct {
	ID         uuid.UUID
	SurfaceID  uuid.UUID
	FacilityID uuid.UUID
	StartAt    time.Time
	EndAt      time.Time
	State      string
	RateCents  int64
}

type BookingSnapshot struct {
	ID                    uuid.UUID
	SlotID                uuid.UUID
	UserID                uuid.UUID
	OrganizationName      string
	Sport                 string
	PaymentStatus         string
	StripePaymentIntentID string
	AmountPaidCents       *int64
	CreatedAt             time.Time
}

type HoursSnapshot struct {
	Weekday      time.Weekday
	OpenMinutes  int
	CloseMinutes int
}

type SurfaceSnapshot struct {
	ID               uuid.UUID
	FacilityID       uuid.UUID
	Name             string
	DefaultRateCents int64
	Timezone         string
	StripeAccountID  string
	Hours            []HoursSnapshot
}

type UserSnapshot struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}
