package repository

import (
	"context"
	"time"

	"rinkbook/internal/domain/slot"
	"rinkbook/internal/infra"
	"rinkbook/internal/infra/db"
	"rinkbook/internal/usecase/shared"

	"github.com/google/uuid"
)

type SlotRepository struct{}

func NewSlotRepository() *SlotRepository {
	return &SlotRepository{}
}

// InsertGenerated is a single atomic statement: concurrent generation of
// the same day relies on the (surface_id, start_at) unique constraint,
// with losers silently skipped.
func (r *SlotRepository) InsertGenerated(ctx context.Context, tx db.DBTX, seeds []slot.Seed) (int64, error) {
	surfaceIDs := make([]uuid.UUID, len(seeds))
	starts := make([]time.Time, len(seeds))
	ends := make([]time.Time, len(seeds))
	rates := make([]int64, len(seeds))
	for i, s := range seeds {
		surfaceIDs[i] = s.SurfaceID
		starts[i] = s.StartAt
		ends[i] = s.EndAt
		rates[i] = s.RateCents
	}

	tag, err := tx.Exec(ctx, `
		INSERT INTO slots (surface_id, start_at, end_at, rate_cents)
		SELECT * FROM unnest($1::uuid[], $2::timestamptz[], $3::timestamptz[], $4::bigint[])
		ON CONFLICT (surface_id, start_at) DO NOTHING`,
		surfaceIDs, starts, ends, rates,
	)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to insert generated slots", err)
	}
	return tag.RowsAffected(), nil
}

func (r *SlotRepository) FindAvailableForUpdate(ctx context.Context, tx db.DBTX, ids []uuid.UUID) ([]shared.SlotSnapshot, error) {
	rows, err := tx.Query(ctx, `
		SELECT s.id, s.surface_id, i.facility_id, s.start_at, s.end_at, s.state, s.rate_cents
		FROM slots s
		JOIN ice_surfaces i ON i.id = s.surface_id
		WHERE s.id = ANY($1) AND s.state = 'available'
		ORDER BY s.start_at
		FOR UPDATE OF s`,
		ids,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to lock slots", err)
	}
	defer rows.Close()

	var snapshots []shared.SlotSnapshot
	for rows.Next() {
		var s shared.SlotSnapshot
		if err := rows.Scan(&s.ID, &s.SurfaceID, &s.FacilityID, &s.StartAt, &s.EndAt, &s.State, &s.RateCents); err != nil {
			return nil, infra.WrapRepoErr("failed to scan locked slot", err)
		}
		snapshots = append(snapshots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read locked slots", err)
	}
	return snapshots, nil
}

// UpdateState is the compare-and-set guarding every lifecycle transition.
// Zero rows affected means some other writer moved the slot first.
func (r *SlotRepository) UpdateState(ctx context.Context, tx db.DBTX, id uuid.UUID, from, to slot.State) error {
	tag, err := tx.Exec(ctx,
		`UPDATE slots SET state = $3 WHERE id = $1 AND state = $2`,
		id, from.String(), to.String(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update slot state", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("slot not in expected state", nil, infra.KindNotFound)
	}
	return nil
}
