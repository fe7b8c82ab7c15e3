package readstore

import (
	"context"

	"rinkbook/internal/infra"
	"rinkbook/internal/infra/db"
	"rinkbook/internal/pkg/pgconv"
	"rinkbook/internal/usecase/queries"

	"github.com/google/uuid"
)

type FacilityReadStore struct {
	db db.DBTX
}

func NewFacilityReadStore(db db.DBTX) *FacilityReadStore {
	return &FacilityReadStore{db: db}
}

func (r *FacilityReadStore) Search(ctx context.Context, search string) ([]*queries.FacilityView, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, address, city, timezone, latitude, longitude
		FROM facilities
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%' OR city ILIKE '%' || $1 || '%')
		ORDER BY name`,
		search,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to search facilities", err)
	}
	defer rows.Close()

	var views []*queries.FacilityView
	for rows.Next() {
		v := &queries.FacilityView{}
		if err := rows.Scan(&v.ID, &v.Name, &v.Address, &v.City, &v.Timezone, &v.Latitude, &v.Longitude); err != nil {
			return nil, infra.WrapRepoErr("failed to scan facility", err)
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read facilities", err)
	}
	return views, nil
}

func (r *FacilityReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.FacilityView, error) {
	v := &queries.FacilityView{}
	err := r.db.QueryRow(ctx, `
		SELECT id, name, address, city, timezone, latitude, longitude
		FROM facilities
		WHERE id = $1`,
		id,
	).Scan(&v.ID, &v.Name, &v.Address, &v.City, &v.Timezone, &v.Latitude, &v.Longitude)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("facility not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find facility", err)
	}

	surfaces, err := r.surfacesForFacility(ctx, id)
	if err != nil {
		return nil, err
	}
	v.Surfaces = surfaces
	return v, nil
}

func (r *FacilityReadStore) surfacesForFacility(ctx context.Context, facilityID uuid.UUID) ([]queries.SurfaceView, error) {
	rows, err := r.db.Query(ctx, `
		SELECT i.id, i.facility_id, i.name, i.default_rate_cents,
		       h.weekday, h.open_minutes, h.close_minutes
		FROM ice_surfaces i
		LEFT JOIN hours_of_operation h ON h.surface_id = i.id
		WHERE i.facility_id = $1
		ORDER BY i.name, h.weekday`,
		facilityID,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find surfaces for facility", err)
	}
	defer rows.Close()

	var surfaces []queries.SurfaceView
	index := map[uuid.UUID]int{}
	for rows.Next() {
		var (
			sv       queries.SurfaceView
			weekday  *int
			openMin  *int
			closeMin *int
		)
		if err := rows.Scan(&sv.ID, &sv.FacilityID, &sv.Name, &sv.DefaultRateCents, &weekday, &openMin, &closeMin); err != nil {
			return nil, infra.WrapRepoErr("failed to scan surface", err)
		}

		i, seen := index[sv.ID]
		if !seen {
			surfaces = append(surfaces, sv)
			i = len(surfaces) - 1
			index[sv.ID] = i
		}
		if weekday != nil && openMin != nil && closeMin != nil {
			surfaces[i].Hours = append(surfaces[i].Hours, queries.HoursView{
				Weekday:      *weekday,
				Open:         minutesToClock(*openMin),
				Close:        minutesToClock(*closeMin),
				OpenMinutes:  *openMin,
				CloseMinutes: *closeMin,
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read surfaces", err)
	}
	return surfaces, nil
}
