package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type SlotView struct {
	ID               uuid.UUID `json:"id"`
	SurfaceID        uuid.UUID `json:"surface_id"`
	SurfaceName      string    `json:"surface_name"`
	FacilityID       uuid.UUID `json:"facility_id"`
	FacilityName     string    `json:"facility_name"`
	StartAt          time.Time `json:"start_at"`
	EndAt            time.Time `json:"end_at"`
	State            string    `json:"state"`
	RateCents        int64     `json:"rate_cents"`
	OrganizationName *string   `json:"organization_name,omitempty"`
}

type BookingView struct {
	ID               uuid.UUID `json:"id"`
	SlotID           uuid.UUID `json:"slot_id"`
	SurfaceName      string    `json:"surface_name"`
	FacilityID       uuid.UUID `json:"facility_id"`
	FacilityName     string    `json:"facility_name"`
	StartAt          time.Time `json:"start_at"`
	EndAt            time.Time `json:"end_at"`
	OrganizationName string    `json:"organization_name"`
	Sport            string    `json:"sport"`
	PaymentStatus    string    `json:"payment_status"`
	AmountPaidCents  *int64    `json:"amount_paid_cents,omitempty"`
	RateCents        int64     `json:"rate_cents"`
	CreatedAt        time.Time `json:"created_at"`
}

type SurfaceView struct {
	ID               uuid.UUID   `json:"id"`
	FacilityID       uuid.UUID   `json:"facility_id"`
	Name             string      `json:"name"`
	DefaultRateCents int64       `json:"default_rate_cents"`
	Hours            []HoursView `json:"hours"`
}

type HoursView struct {
	Weekday      int    `json:"weekday"`
	Open         string `json:"open"`
	Close        string `json:"close"`
	OpenMinutes  int    `json:"-"`
	CloseMinutes int    `json:"-"`
}

type FacilityView struct {
	ID         uuid.UUID     `json:"id"`
	Name       string        `json:"name"`
	Address    string        `json:"address"`
	City       string        `json:"city"`
	Timezone   string        `json:"timezone"`
	Latitude   *float64      `json:"latitude"`
	Longitude  *float64      `json:"longitude"`
	DistanceKm *float64      `json:"distance_km,omitempty"`
	Surfaces   []SurfaceView `json:"surfaces,omitempty"`
}

type AuthorizedUserView struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Role  string    `json:"role"`
}
