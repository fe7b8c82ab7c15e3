package readstore

import (
	"context"
	"time"

	"rinkbook/internal/infra"
	"rinkbook/internal/infra/db"
	"rinkbook/internal/pkg/pgconv"
	"rinkbook/internal/usecase/queries"
	"rinkbook/internal/usecase/shared"

	"github.com/google/uuid"
)

type SlotReadStore struct {
	db db.DBTX
}

func NewSlotReadStore(db db.DBTX) *SlotReadStore {
	return &SlotReadStore{db: db}
}

const slotViewSelect = `
	SELECT s.id, s.surface_id, i.name, i.facility_id, f.name,
	       s.start_at, s.end_at, s.state, s.rate_cents,
	       CASE
	           WHEN b.id IS NOT NULL THEN b.organization_name
	           WHEN m.id IS NOT NULL THEN m.organization_name
	       END AS organization_name
	FROM slots s
	JOIN ice_surfaces i ON i.id = s.surface_id
	JOIN facilities f ON f.id = i.facility_id
	LEFT JOIN bookings b ON b.slot_id = s.id
	LEFT JOIN manual_reservations m ON m.slot_id = s.id`

func (r *SlotReadStore) FindBySurfaceAndRange(ctx context.Context, surfaceID uuid.UUID, from, to time.Time, onlyAvailable bool) ([]*queries.SlotView, error) {
	query := slotViewSelect + `
	WHERE s.surface_id = $1 AND s.start_at >= $2 AND s.start_at < $3`
	if onlyAvailable {
		query += ` AND s.state = 'available'`
	}
	query += ` ORDER BY s.start_at`

	rows, err := r.db.Query(ctx, query, surfaceID, from, to)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find slots by range", err)
	}
	defer rows.Close()

	var views []*queries.SlotView
	for rows.Next() {
		v := &queries.SlotView{}
		if err := rows.Scan(
			&v.ID, &v.SurfaceID, &v.SurfaceName, &v.FacilityID, &v.FacilityName,
			&v.StartAt, &v.EndAt, &v.State, &v.RateCents, &v.OrganizationName,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan slot view", err)
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read slot views", err)
	}
	return views, nil
}

const slotSnapshotSelect = `
	SELECT s.id, s.surface_id, i.facility_id, s.start_at, s.end_at, s.state, s.rate_cents
	FROM slots s
	JOIN ice_surfaces i ON i.id = s.surface_id`

func (r *SlotReadStore) SnapshotsByIDs(ctx context.Context, ids []uuid.UUID) ([]shared.SlotSnapshot, error) {
	rows, err := r.db.Query(ctx, slotSnapshotSelect+` WHERE s.id = ANY($1) ORDER BY s.start_at`, ids)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find slots by ids", err)
	}
	defer rows.Close()

	var snapshots []shared.SlotSnapshot
	for rows.Next() {
		var s shared.SlotSnapshot
		if err := rows.Scan(&s.ID, &s.SurfaceID, &s.FacilityID, &s.StartAt, &s.EndAt, &s.State, &s.RateCents); err != nil {
			return nil, infra.WrapRepoErr("failed to scan slot snapshot", err)
		}
		snapshots = append(snapshots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read slot snapshots", err)
	}
	return snapshots, nil
}

func (r *SlotReadStore) SnapshotByID(ctx context.Context, id uuid.UUID) (*shared.SlotSnapshot, error) {
	var s shared.SlotSnapshot
	err := r.db.QueryRow(ctx, slotSnapshotSelect+` WHERE s.id = $1`, id).
		Scan(&s.ID, &s.SurfaceID, &s.FacilityID, &s.StartAt, &s.EndAt, &s.State, &s.RateCents)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("slot not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find slot by id", err)
	}
	return &s, nil
}
