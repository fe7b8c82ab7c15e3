package slot

import "errors"

var (
	ErrInvalidState      = errors.New("invalid slot state")
	ErrInvalidTransition = errors.New("invalid slot state transition")
	ErrInvalidInterval   = errors.New("slot end must be after start")
	ErrNegativeRate      = errors.New("slot rate must not be negative")
)

// State is the lifecycle of a slot. available is the only state a customer
// can book from; every other state is terminal until staff releases it.
type State string

const (
	StateAvailable        State = "available"
	StateBooked           State = "booked"
	StateBlocked          State = "blocked"
	StateManuallyReserved State = "manually_reserved"
)

func (s State) String() string {
	return string(s)
}

func (s State) IsValid() bool {
	switch s {
	case StateAvailable, StateBooked, StateBlocked, StateManuallyReserved:
		return true
	default:
		return false
	}
}

func NewState(s string) (State, error) {
	state := State(s)
	if !state.IsValid() {
		return "", ErrInvalidState
	}
	return state, nil
}

// CanTransitionTo encodes the allowed lifecycle moves. Any occupied state
// may return to available (a release); available may move to any occupied
// state; occupied states never move directly between each other.
func (s State) CanTransitionTo(to State) bool {
	if s == to {
		return false
	}
	if s == StateAvailable {
		return true
	}
	return to == StateAvailable
}
