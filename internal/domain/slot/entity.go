package slot

import (
	"time"

	"github.com/google/uuid"
)

type Slot struct {
	id        uuid.UUID
	surfaceID uuid.UUID
	startAt   time.Time
	endAt     time.Time
	state     State
	rateCents int64
	createdAt time.Time
}

func ReconstructSlot(
	id, surfaceID uuid.UUID,
	startAt, endAt time.Time,
	state State,
	rateCents int64,
	createdAt time.Time,
) *Slot {
	return &Slot{
		id:        id,
		surfaceID: surfaceID,
		startAt:   startAt,
		endAt:     endAt,
		state:     state,
		rateCents: rateCents,
		createdAt: createdAt,
	}
}

func (s *Slot) ID() uuid.UUID        { return s.id }
func (s *Slot) SurfaceID() uuid.UUID { return s.surfaceID }
func (s *Slot) StartAt() time.Time   { return s.startAt }
func (s *Slot) EndAt() time.Time     { return s.endAt }
func (s *Slot) State() State         { return s.state }
func (s *Slot) RateCents() int64     { return s.rateCents }
func (s *Slot) CreatedAt() time.Time { return s.createdAt }

func (s *Slot) IsAvailable() bool {
	return s.state == StateAvailable
}

// TransitionTo validates the move against the state machine and applies it.
func (s *Slot) TransitionTo(to State) error {
	if !s.state.CanTransitionTo(to) {
		return ErrInvalidTransition
	}
	s.state = to
	return nil
}
