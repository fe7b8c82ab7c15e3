package booking

import (
	"time"

	"rinkbook/internal/domain/slot"

	"github.com/google/uuid"
)

type Booking struct {
	id                    uuid.UUID
	slotID                uuid.UUID
	userID                uuid.UUID
	organizationName      string
	sport                 Sport
	paymentStatus         PaymentStatus
	stripePaymentIntentID string
	amountPaidCents       *int64
	createdAt             time.Time
	updatedAt             time.Time
}

// NewBooking claims an available slot for a customer. The caller is
// responsible for persisting the matching slot state transition in the
// same transaction.
func NewBooking(
	s *slot.Slot,
	userID uuid.UUID,
	organizationName string,
	sport Sport,
	now time.Time,
) (*Booking, error) {
	if !s.IsAvailable() {
		return nil, ErrSlotNotAvailable
	}
	if !sport.IsValid() {
		return nil, ErrInvalidSport
	}
	return &Booking{
		id:               uuid.New(),
		slotID:           s.ID(),
		userID:           userID,
		organizationName: organizationName,
		sport:            sport,
		paymentStatus:    PaymentPending,
		createdAt:        now,
		updatedAt:        now,
	}, nil
}

func ReconstructBooking(
	id, slotID, userID uuid.UUID,
	organizationName string,
	sport Sport,
	paymentStatus PaymentStatus,
	stripePaymentIntentID string,
	amountPaidCents *int64,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:                    id,
		slotID:                slotID,
		userID:                userID,
		organizationName:      organizationName,
		sport:                 sport,
		paymentStatus:         paymentStatus,
		stripePaymentIntentID: stripePaymentIntentID,
		amountPaidCents:       amountPaidCents,
		createdAt:             createdAt,
		updatedAt:             updatedAt,
	}
}

func (b *Booking) ID() uuid.UUID                 { return b.id }
func (b *Booking) SlotID() uuid.UUID             { return b.slotID }
func (b *Booking) UserID() uuid.UUID             { return b.userID }
func (b *Booking) OrganizationName() string      { return b.organizationName }
func (b *Booking) Sport() Sport                  { return b.sport }
func (b *Booking) PaymentStatus() PaymentStatus  { return b.paymentStatus }
func (b *Booking) StripePaymentIntentID() string { return b.stripePaymentIntentID }
func (b *Booking) AmountPaidCents() *int64       { return b.amountPaidCents }
func (b *Booking) CreatedAt() time.Time          { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time          { return b.updatedAt }

func (b *Booking) IsOwnedBy(userID uuid.UUID) bool {
	return b.userID == userID
}

func (b *Booking) AttachPaymentIntent(intentID string, now time.Time) {
	b.stripePaymentIntentID = intentID
	b.updatedAt = now
}

func (b *Booking) MarkPaid(amountCents int64, now time.Time) {
	b.paymentStatus = PaymentPaid
	b.amountPaidCents = &amountCents
	b.updatedAt = now
}

func (b *Booking) MarkPaymentFailed(now time.Time) {
	b.paymentStatus = PaymentFailed
	b.updatedAt = now
}

func (b *Booking) MarkRefunded(now time.Time) error {
	if b.paymentStatus != PaymentPaid {
		return ErrNotPaid
	}
	b.paymentStatus = PaymentRefunded
	b.updatedAt = now
	return nil
}
