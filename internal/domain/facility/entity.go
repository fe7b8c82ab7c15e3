package facility

import (
	"time"

	"github.com/google/uuid"
)

type Facility struct {
	id              uuid.UUID
	name            string
	address         string
	city            string
	timezone        Timezone
	latitude        float64
	longitude       float64
	stripeAccountID string
	createdAt       time.Time
}

func ReconstructFacility(
	id uuid.UUID,
	name, address, city string,
	timezone Timezone,
	latitude, longitude float64,
	stripeAccountID string,
	createdAt time.Time,
) *Facility {
	return &Facility{
		id:              id,
		name:            name,
		address:         address,
		city:            city,
		timezone:        timezone,
		latitude:        latitude,
		longitude:       longitude,
		stripeAccountID: stripeAccountID,
		createdAt:       createdAt,
	}
}

func (f *Facility) ID() uuid.UUID           { return f.id }
func (f *Facility) Name() string            { return f.name }
func (f *Facility) Address() string         { return f.address }
func (f *Facility) City() string            { return f.city }
func (f *Facility) Timezone() Timezone      { return f.timezone }
func (f *Facility) Latitude() float64       { return f.latitude }
func (f *Facility) Longitude() float64      { return f.longitude }
func (f *Facility) StripeAccountID() string { return f.stripeAccountID }
func (f *Facility) CreatedAt() time.Time    { return f.createdAt }

// HoursOfOperation is the bookable window for one weekday on one surface.
// A surface carries at most one row per weekday.
type HoursOfOperation struct {
	weekday time.Weekday
	open    TimeOfDay
	close   TimeOfDay
}

func NewHoursOfOperation(weekday time.Weekday, open, close TimeOfDay) (HoursOfOperation, error) {
	if !open.Before(close) {
		return HoursOfOperation{}, ErrInvalidHours
	}
	return HoursOfOperation{weekday: weekday, open: open, close: close}, nil
}

func (h HoursOfOperation) Weekday() time.Weekday { return h.weekday }
func (h HoursOfOperation) Open() TimeOfDay       { return h.open }
func (h HoursOfOperation) Close() TimeOfDay      { return h.close }

type IceSurface struct {
	id               uuid.UUID
	facilityID       uuid.UUID
	name             string
	defaultRateCents int64
	hours            []HoursOfOperation
	createdAt        time.Time
}

func ReconstructIceSurface(
	id, facilityID uuid.UUID,
	name string,
	defaultRateCents int64,
	hours []HoursOfOperation,
	createdAt time.Time,
) *IceSurface {
	return &IceSurface{
		id:               id,
		facilityID:       facilityID,
		name:             name,
		defaultRateCents: defaultRateCents,
		hours:            hours,
		createdAt:        createdAt,
	}
}

func (s *IceSurface) ID() uuid.UUID               { return s.id }
func (s *IceSurface) FacilityID() uuid.UUID       { return s.facilityID }
func (s *IceSurface) Name() string                { return s.name }
func (s *IceSurface) DefaultRateCents() int64     { return s.defaultRateCents }
func (s *IceSurface) Hours() []HoursOfOperation   { return s.hours }
func (s *IceSurface) CreatedAt() time.Time        { return s.createdAt }

// HoursFor reports the operating window for a weekday. Weekdays without a
// configured window are closed and produce no slots.
func (s *IceSurface) HoursFor(weekday time.Weekday) (HoursOfOperation, bool) {
	for _, h := range s.hours {
		if h.weekday == weekday {
			return h, true
		}
	}
	return HoursOfOperation{}, false
}
