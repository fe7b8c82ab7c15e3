package repository

import (
	"context"

	"rinkbook/internal/domain/booking"
	"rinkbook/internal/infra"
	"rinkbook/internal/infra/db"

	"github.com/google/uuid"
)

type ManualReservationRepository struct{}

func NewManualReservationRepository() *ManualReservationRepository {
	return &ManualReservationRepository{}
}

func (r *ManualReservationRepository) Create(ctx context.Context, tx db.DBTX, m *booking.ManualReservation) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, `
		INSERT INTO manual_reservations (id, slot_id, organization_name, notes, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		m.ID(), m.SlotID(), m.OrganizationName(), m.Notes(), m.CreatedAt(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create manual reservation", err)
	}
	return id, nil
}

func (r *ManualReservationRepository) DeleteBySlot(ctx context.Context, tx db.DBTX, slotID uuid.UUID) error {
	if _, err := tx.Exec(ctx, `DELETE FROM manual_reservations WHERE slot_id = $1`, slotID); err != nil {
		return infra.WrapRepoErr("failed to delete manual reservation", err)
	}
	return nil
}
