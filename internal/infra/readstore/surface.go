package readstore

import (
	"context"
	"fmt"
	"time"

	"rinkbook/internal/infra"
	"rinkbook/internal/infra/db"
	"rinkbook/internal/pkg/pgconv"
	"rinkbook/internal/usecase/queries"
	"rinkbook/internal/usecase/shared"

	"github.com/google/uuid"
)

type SurfaceReadStore struct {
	db db.DBTX
}

func NewSurfaceReadStore(db db.DBTX) *SurfaceReadStore {
	return &SurfaceReadStore{db: db}
}

// FindByID returns the surface view plus its facility's timezone name,
// which availability queries need to resolve civil days.
func (r *SurfaceReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.SurfaceView, string, error) {
	var v queries.SurfaceView
	var tzName string
	err := r.db.QueryRow(ctx, `
		SELECT i.id, i.facility_id, i.name, i.default_rate_cents, f.timezone
		FROM ice_surfaces i
		JOIN facilities f ON f.id = i.facility_id
		WHERE i.id = $1`,
		id,
	).Scan(&v.ID, &v.FacilityID, &v.Name, &v.DefaultRateCents, &tzName)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, "", infra.WrapRepoErr("ice surface not found", err, infra.KindNotFound)
		}
		return nil, "", infra.WrapRepoErr("failed to find ice surface", err)
	}

	hours, err := r.hoursForSurface(ctx, id)
	if err != nil {
		return nil, "", err
	}
	for _, h := range hours {
		v.Hours = append(v.Hours, queries.HoursView{
			Weekday:      int(h.Weekday),
			Open:         minutesToClock(h.OpenMinutes),
			Close:        minutesToClock(h.CloseMinutes),
			OpenMinutes:  h.OpenMinutes,
			CloseMinutes: h.CloseMinutes,
		})
	}
	return &v, tzName, nil
}

func (r *SurfaceReadStore) Snapshot(ctx context.Context, id uuid.UUID) (*shared.SurfaceSnapshot, error) {
	var s shared.SurfaceSnapshot
	err := r.db.QueryRow(ctx, `
		SELECT i.id, i.facility_id, i.name, i.default_rate_cents, f.timezone, f.stripe_account_id
		FROM ice_surfaces i
		JOIN facilities f ON f.id = i.facility_id
		WHERE i.id = $1`,
		id,
	).Scan(&s.ID, &s.FacilityID, &s.Name, &s.DefaultRateCents, &s.Timezone, &s.StripeAccountID)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("ice surface not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find ice surface", err)
	}

	hours, err := r.hoursForSurface(ctx, id)
	if err != nil {
		return nil, err
	}
	s.Hours = hours
	return &s, nil
}

func (r *SurfaceReadStore) AllSnapshots(ctx context.Context) ([]shared.SurfaceSnapshot, error) {
	rows, err := r.db.Query(ctx, `
		SELECT i.id, i.facility_id, i.name, i.default_rate_cents, f.timezone, f.stripe_account_id
		FROM ice_surfaces i
		JOIN facilities f ON f.id = i.facility_id
		ORDER BY f.name, i.name`,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list ice surfaces", err)
	}
	defer rows.Close()

	var snapshots []shared.SurfaceSnapshot
	for rows.Next() {
		var s shared.SurfaceSnapshot
		if err := rows.Scan(&s.ID, &s.FacilityID, &s.Name, &s.DefaultRateCents, &s.Timezone, &s.StripeAccountID); err != nil {
			return nil, infra.WrapRepoErr("failed to scan ice surface", err)
		}
		snapshots = append(snapshots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read ice surfaces", err)
	}

	for i := range snapshots {
		hours, err := r.hoursForSurface(ctx, snapshots[i].ID)
		if err != nil {
			return nil, err
		}
		snapshots[i].Hours = hours
	}
	return snapshots, nil
}

func (r *SurfaceReadStore) hoursForSurface(ctx context.Context, surfaceID uuid.UUID) ([]shared.HoursSnapshot, error) {
	rows, err := r.db.Query(ctx, `
		SELECT weekday, open_minutes, close_minutes
		FROM hours_of_operation
		WHERE surface_id = $1
		ORDER BY weekday`,
		surfaceID,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find hours of operation", err)
	}
	defer rows.Close()

	var hours []shared.HoursSnapshot
	for rows.Next() {
		var h shared.HoursSnapshot
		var weekday int
		if err := rows.Scan(&weekday, &h.OpenMinutes, &h.CloseMinutes); err != nil {
			return nil, infra.WrapRepoErr("failed to scan hours of operation", err)
		}
		h.Weekday = time.Weekday(weekday)
		hours = append(hours, h)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read hours of operation", err)
	}
	return hours, nil
}

func minutesToClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
