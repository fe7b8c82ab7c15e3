package booking

import (
	"time"

	"github.com/google/uuid"
)

// Event is one append-only audit row. Booking and user references are
// nullable so the log survives booking deletion.
type Event struct {
	id        uuid.UUID
	bookingID *uuid.UUID
	userID    *uuid.UUID
	eventType EventType
	message   string
	createdAt time.Time
}

func NewEvent(bookingID, userID *uuid.UUID, eventType EventType, message string, now time.Time) *Event {
	return &Event{
		id:        uuid.New(),
		bookingID: bookingID,
		userID:    userID,
		eventType: eventType,
		message:   message,
		createdAt: now,
	}
}

func ReconstructEvent(
	id uuid.UUID,
	bookingID, userID *uuid.UUID,
	eventType EventType,
	message string,
	createdAt time.Time,
) *Event {
	return &Event{
		id:        id,
		bookingID: bookingID,
		userID:    userID,
		eventType: eventType,
		message:   message,
		createdAt: createdAt,
	}
}

func (e *Event) ID() uuid.UUID         { return e.id }
func (e *Event) BookingID() *uuid.UUID { return e.bookingID }
func (e *Event) UserID() *uuid.UUID    { return e.userID }
func (e *Event) Type() EventType       { return e.eventType }
func (e *Event) Message() string       { return e.message }
func (e *Event) CreatedAt() time.Time  { return e.createdAt }
