package booking

import "errors"

var (
	ErrInvalidSport         = errors.New("invalid sport")
	ErrInvalidPaymentStatus = errors.New("invalid payment status")
	ErrSlotNotAvailable     = errors.New("slot is not available")
	ErrNotPaid              = errors.New("booking has not been paid")
	ErrEmptyOrganization    = errors.New("organization name must not be empty")
)

type Sport string

const (
	SportHockey   Sport = "hockey"
	SportRingette Sport = "ringette"
	SportOther    Sport = "other"
)

func (s Sport) String() string {
	return string(s)
}

func (s Sport) IsValid() bool {
	switch s {
	case SportHockey, SportRingette, SportOther:
		return true
	default:
		return false
	}
}

func NewSport(s string) (Sport, error) {
	sport := Sport(s)
	if !sport.IsValid() {
		return "", ErrInvalidSport
	}
	return sport, nil
}

// PaymentStatus tracks the money side independently of the booking's
// existence. A payment failure downgrades the status but never removes
// the booking; the slot stays claimed.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
	PaymentFailed   PaymentStatus = "failed"
)

func (p PaymentStatus) String() string {
	return string(p)
}

func (p PaymentStatus) IsValid() bool {
	switch p {
	case PaymentPending, PaymentPaid, PaymentRefunded, PaymentFailed:
		return true
	default:
		return false
	}
}

func NewPaymentStatus(s string) (PaymentStatus, error) {
	status := PaymentStatus(s)
	if !status.IsValid() {
		return "", ErrInvalidPaymentStatus
	}
	return status, nil
}

// EventType labels an append-only audit row. Events outlive the bookings
// they describe.
type EventType string

const (
	EventCreated              EventType = "created"
	EventCancelledByCustomer  EventType = "cancelled_by_customer"
	EventCancelledByFacility  EventType = "cancelled_by_facility"
	EventFacilityModified     EventType = "facility_modified"
	EventPaymentSucceeded     EventType = "payment_succeeded"
)
