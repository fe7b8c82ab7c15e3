package shared

import (
	"context"

	"rinkbook/internal/domain/booking"
	"rinkbook/internal/domain/slot"
	"rinkbook/internal/domain/user"
	"rinkbook/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Slots() SlotRepository
	Bookings() BookingRepository
	ManualReservations() ManualReservationRepository
	Events() BookingEventRepository
	Users() UserRepository
	Reads() CommandReads
	DB() db.DBTX
}

type CommandReads interface {
	SlotsByIDs(ctx context.Context, ids []uuid.UUID) ([]SlotSnapshot, error)
	SlotByID(ctx context.Context, id uuid.UUID) (*SlotSnapshot, error)
	BookingByID(ctx context.Context, id uuid.UUID) (*BookingSnapshot, error)
	BookingBySlotID(ctx context.Context, slotID uuid.UUID) (*BookingSnapshot, error)
	SurfaceByID(ctx context.Context, id uuid.UUID) (*SurfaceSnapshot, error)
	AllSurfaces(ctx context.Context) ([]SurfaceSnapshot, error)
	UserByEmail(ctx context.Context, email string) (*UserSnapshot, error)
}

type SlotRepository interface {
	// InsertGenerated persists seeds, silently skipping any (surface, start)
	// pair that already exists. Returns the number actually inserted.
	InsertGenerated(ctx context.Context, tx db.DBTX, seeds []slot.Seed) (int64, error)
	// FindAvailableForUpdate re-fetches slots by exact id set, filtered to
	// available state, taking row locks for the remainder of the transaction.
	FindAvailableForUpdate(ctx context.Context, tx db.DBTX, ids []uuid.UUID) ([]SlotSnapshot, error)
	// UpdateState is a compare-and-set: the row moves to the target state
	// only if it is still in the expected one.
	UpdateState(ctx context.Context, tx db.DBTX, id uuid.UUID, from, to slot.State) error
}

type BookingRepository interface {
	Create(ctx context.Context, tx db.DBTX, b *booking.Booking) (uuid.UUID, error)
	DeleteBySlot(ctx context.Context, tx db.DBTX, slotID uuid.UUID) error
	AttachPaymentIntent(ctx context.Context, tx db.DBTX, id uuid.UUID, intentID string) error
	// MarkPaidByIntent settles every booking holding the intent, recording
	// each booking's slot rate as the amount paid. Returns the ids touched.
	MarkPaidByIntent(ctx context.Context, tx db.DBTX, intentID string) ([]uuid.UUID, error)
}

type ManualReservationRepository interface {
	Create(ctx context.Context, tx db.DBTX, m *booking.ManualReservation) (uuid.UUID, error)
	DeleteBySlot(ctx context.Context, tx db.DBTX, slotID uuid.UUID) error
}

type BookingEventRepository interface {
	Append(ctx context.Context, tx db.DBTX, e *booking.Event) error
}

type UserRepository interface {
	Create(ctx context.Context, tx db.DBTX, u *user.User) (uuid.UUID, error)
}
