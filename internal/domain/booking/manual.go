package booking

import (
	"strings"
	"time"

	"rinkbook/internal/domain/slot"

	"github.com/google/uuid"
)

// ManualReservation is a phone or walk-in reservation entered by staff.
// It has no customer account and never touches payments.
type ManualReservation struct {
	id               uuid.UUID
	slotID           uuid.UUID
	organizationName string
	notes            string
	createdAt        time.Time
}

func NewManualReservation(
	s *slot.Slot,
	organizationName, notes string,
	now time.Time,
) (*ManualReservation, error) {
	if !s.IsAvailable() {
		return nil, ErrSlotNotAvailable
	}
	if strings.TrimSpace(organizationName) == "" {
		return nil, ErrEmptyOrganization
	}
	return &ManualReservation{
		id:               uuid.New(),
		slotID:           s.ID(),
		organizationName: organizationName,
		notes:            notes,
		createdAt:        now,
	}, nil
}

func ReconstructManualReservation(
	id, slotID uuid.UUID,
	organizationName, notes string,
	createdAt time.Time,
) *ManualReservation {
	return &ManualReservation{
		id:               id,
		slotID:           slotID,
		organizationName: organizationName,
		notes:            notes,
		createdAt:        createdAt,
	}
}

func (m *ManualReservation) ID() uuid.UUID            { return m.id }
func (m *ManualReservation) SlotID() uuid.UUID        { return m.slotID }
func (m *ManualReservation) OrganizationName() string { return m.organizationName }
func (m *ManualReservation) Notes() string            { return m.notes }
func (m *ManualReservation) CreatedAt() time.Time     { return m.createdAt }
