//go:build unit

package commands

import (
	"context"

	"rinkbook/internal/domain/booking"
	"rinkbook/internal/domain/slot"
	"rinkbook/internal/domain/user"
	"rinkbook/internal/infra/db"
	"rinkbook/internal/usecase/shared"

	"github.com/google/uuid"
)

// Hand-rolled doubles for the write-side ports. Function fields default to
// benign no-ops so each test only wires what it asserts on.

type stubUoW struct {
	tx    *stubTx
	reads *stubReads
	// withinErr short-circuits Within before fn runs
	withinErr error
}

func newStubUoW() *stubUoW {
	return &stubUoW{
		tx:    newStubTx(),
		reads: &stubReads{},
	}
}

func (u *stubUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	if u.withinErr != nil {
		return u.withinErr
	}
	return fn(ctx, u.tx)
}

func (u *stubUoW) WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	return fn(ctx, nil)
}

func (u *stubUoW) CommandReads() shared.CommandReads {
	return u.reads
}

type stubTx struct {
	slots   *stubSlotRepo
	books   *stubBookingRepo
	manuals *stubManualRepo
	events  *stubEventRepo
	users   *stubUserRepo
	reads   *stubReads
}

func newStubTx() *stubTx {
	return &stubTx{
		slots:   &stubSlotRepo{},
		books:   &stubBookingRepo{},
		manuals: &stubManualRepo{},
		events:  &stubEventRepo{},
		users:   &stubUserRepo{},
		reads:   &stubReads{},
	}
}

func (t *stubTx) Slots() shared.SlotRepository                         { return t.slots }
func (t *stubTx) Bookings() shared.BookingRepository                   { return t.books }
func (t *stubTx) ManualReservations() shared.ManualReservationRepository { return t.manuals }
func (t *stubTx) Events() shared.BookingEventRepository                { return t.events }
func (t *stubTx) Users() shared.UserRepository                         { return t.users }
func (t *stubTx) Reads() shared.CommandReads                           { return t.reads }
func (t *stubTx) DB() db.DBTX                                          { return nil }

type stubReads struct {
	SlotsByIDsFn      func(ctx context.Context, ids []uuid.UUID) ([]shared.SlotSnapshot, error)
	SlotByIDFn        func(ctx context.Context, id uuid.UUID) (*shared.SlotSnapshot, error)
	BookingByIDFn     func(ctx context.Context, id uuid.UUID) (*shared.BookingSnapshot, error)
	BookingBySlotIDFn func(ctx context.Context, slotID uuid.UUID) (*shared.BookingSnapshot, error)
	SurfaceByIDFn     func(ctx context.Context, id uuid.UUID) (*shared.SurfaceSnapshot, error)
	AllSurfacesFn     func(ctx context.Context) ([]shared.SurfaceSnapshot, error)
	UserByEmailFn     func(ctx context.Context, email string) (*shared.UserSnapshot, error)
}

func (r *stubReads) SlotsByIDs(ctx context.Context, ids []uuid.UUID) ([]shared.SlotSnapshot, error) {
	return r.SlotsByIDsFn(ctx, ids)
}

func (r *stubReads) SlotByID(ctx context.Context, id uuid.UUID) (*shared.SlotSnapshot, error) {
	return r.SlotByIDFn(ctx, id)
}

func (r *stubReads) BookingByID(ctx context.Context, id uuid.UUID) (*shared.BookingSnapshot, error) {
	return r.BookingByIDFn(ctx, id)
}

func (r *stubReads) BookingBySlotID(ctx context.Context, slotID uuid.UUID) (*shared.BookingSnapshot, error) {
	return r.BookingBySlotIDFn(ctx, slotID)
}

func (r *stubReads) SurfaceByID(ctx context.Context, id uuid.UUID) (*shared.SurfaceSnapshot, error) {
	return r.SurfaceByIDFn(ctx, id)
}

func (r *stubReads) AllSurfaces(ctx context.Context) ([]shared.SurfaceSnapshot, error) {
	return r.AllSurfacesFn(ctx)
}

func (r *stubReads) UserByEmail(ctx context.Context, email string) (*shared.UserSnapshot, error) {
	return r.UserByEmailFn(ctx, email)
}

type stateChange struct {
	ID       uuid.UUID
	From, To slot.State
}

type stubSlotRepo struct {
	InsertGeneratedFn        func(seeds []slot.Seed) (int64, error)
	FindAvailableForUpdateFn func(ids []uuid.UUID) ([]shared.SlotSnapshot, error)
	UpdateStateErr           error

	InsertedSeeds []slot.Seed
	StateChanges  []stateChange
}

func (r *stubSlotRepo) InsertGenerated(_ context.Context, _ db.DBTX, seeds []slot.Seed) (int64, error) {
	r.InsertedSeeds = append(r.InsertedSeeds, seeds...)
	if r.InsertGeneratedFn != nil {
		return r.InsertGeneratedFn(seeds)
	}
	return int64(len(seeds)), nil
}

func (r *stubSlotRepo) FindAvailableForUpdate(_ context.Context, _ db.DBTX, ids []uuid.UUID) ([]shared.SlotSnapshot, error) {
	return r.FindAvailableForUpdateFn(ids)
}

func (r *stubSlotRepo) UpdateState(_ context.Context, _ db.DBTX, id uuid.UUID, from, to slot.State) error {
	if r.UpdateStateErr != nil {
		return r.UpdateStateErr
	}
	r.StateChanges = append(r.StateChanges, stateChange{ID: id, From: from, To: to})
	return nil
}

type stubBookingRepo struct {
	CreateErr          error
	AttachErr          error
	MarkPaidByIntentFn func(intentID string) ([]uuid.UUID, error)

	Created         []*booking.Booking
	DeletedSlots    []uuid.UUID
	AttachedIntents map[uuid.UUID]string
}

func (r *stubBookingRepo) Create(_ context.Context, _ db.DBTX, b *booking.Booking) (uuid.UUID, error) {
	if r.CreateErr != nil {
		return uuid.Nil, r.CreateErr
	}
	r.Created = append(r.Created, b)
	return b.ID(), nil
}

func (r *stubBookingRepo) DeleteBySlot(_ context.Context, _ db.DBTX, slotID uuid.UUID) error {
	r.DeletedSlots = append(r.DeletedSlots, slotID)
	return nil
}

func (r *stubBookingRepo) AttachPaymentIntent(_ context.Context, _ db.DBTX, id uuid.UUID, intentID string) error {
	if r.AttachErr != nil {
		return r.AttachErr
	}
	if r.AttachedIntents == nil {
		r.AttachedIntents = map[uuid.UUID]string{}
	}
	r.AttachedIntents[id] = intentID
	return nil
}

func (r *stubBookingRepo) MarkPaidByIntent(_ context.Context, _ db.DBTX, intentID string) ([]uuid.UUID, error) {
	return r.MarkPaidByIntentFn(intentID)
}

type stubManualRepo struct {
	Created      []*booking.ManualReservation
	DeletedSlots []uuid.UUID
}

func (r *stubManualRepo) Create(_ context.Context, _ db.DBTX, m *booking.ManualReservation) (uuid.UUID, error) {
	r.Created = append(r.Created, m)
	return m.ID(), nil
}

func (r *stubManualRepo) DeleteBySlot(_ context.Context, _ db.DBTX, slotID uuid.UUID) error {
	r.DeletedSlots = append(r.DeletedSlots, slotID)
	return nil
}

type stubEventRepo struct {
	Appended []*booking.Event
}

func (r *stubEventRepo) Append(_ context.Context, _ db.DBTX, e *booking.Event) error {
	r.Appended = append(r.Appended, e)
	return nil
}

type stubUserRepo struct {
	CreateFn func(u *user.User) (uuid.UUID, error)
	Created  []*user.User
}

func (r *stubUserRepo) Create(_ context.Context, _ db.DBTX, u *user.User) (uuid.UUID, error) {
	if r.CreateFn != nil {
		return r.CreateFn(u)
	}
	r.Created = append(r.Created, u)
	return u.ID(), nil
}

type stubGateway struct {
	ConfiguredVal  bool
	CreateIntentFn func(amountCents int64, destinationAccount string) (*PaymentIntent, error)
	RefundErr      error

	Refunded []string
}

func (g *stubGateway) Configured() bool { return g.ConfiguredVal }

func (g *stubGateway) CreateIntent(_ context.Context, amountCents int64, destinationAccount string, _ map[string]string) (*PaymentIntent, error) {
	return g.CreateIntentFn(amountCents, destinationAccount)
}

func (g *stubGateway) Refund(_ context.Context, paymentIntentID string) error {
	g.Refunded = append(g.Refunded, paymentIntentID)
	return g.RefundErr
}

type notice struct {
	Kind    string
	Booking *shared.BookingSnapshot
	Slot    *shared.SlotSnapshot
}

type stubNotifier struct {
	Notices []notice
}

func (n *stubNotifier) BookingCreated(_ context.Context, b *shared.BookingSnapshot, s *shared.SlotSnapshot) {
	n.Notices = append(n.Notices, notice{Kind: "created", Booking: b, Slot: s})
}

func (n *stubNotifier) BookingCancelledByCustomer(_ context.Context, b *shared.BookingSnapshot, s *shared.SlotSnapshot) {
	n.Notices = append(n.Notices, notice{Kind: "cancelled_by_customer", Booking: b, Slot: s})
}

func (n *stubNotifier) BookingCancelledByFacility(_ context.Context, b *shared.BookingSnapshot, s *shared.SlotSnapshot) {
	n.Notices = append(n.Notices, notice{Kind: "cancelled_by_facility", Booking: b, Slot: s})
}
