package queries

import (
	"context"
	"math"
	"sort"

	"rinkbook/internal/infra"
	"rinkbook/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrFacilityNotFound = errs.New("facility not found")

const earthRadiusKm = 6371.0

type FacilityQueries interface {
	// ListFacilities filters by a free-text search over name and city.
	// When the caller supplies coordinates the results gain a distance
	// and are ordered nearest first.
	ListFacilities(ctx context.Context, search string, lat, lng *float64) ([]*FacilityView, error)
	GetFacility(ctx context.Context, id uuid.UUID) (*FacilityView, error)
}

type FacilityReadStore interface {
	Search(ctx context.Context, search string) ([]*FacilityView, error)
	FindByID(ctx context.Context, id uuid.UUID) (*FacilityView, error)
}

type facilityQueriesImpl struct {
	readStore FacilityReadStore
}

func NewFacilityQueries(readStore FacilityReadStore) FacilityQueries {
	return &facilityQueriesImpl{
		readStore: readStore,
	}
}

func (q *facilityQueriesImpl) ListFacilities(ctx context.Context, search string, lat, lng *float64) ([]*FacilityView, error) {
	facilities, err := q.readStore.Search(ctx, search)
	if err != nil {
		return nil, err
	}

	if lat == nil || lng == nil {
		return facilities, nil
	}

	for _, f := range facilities {
		// Facilities without coordinates get no distance and sort last.
		if f.Latitude == nil || f.Longitude == nil {
			continue
		}
		d := equirectangularKm(*lat, *lng, *f.Latitude, *f.Longitude)
		f.DistanceKm = &d
	}
	sort.SliceStable(facilities, func(i, j int) bool {
		di, dj := facilities[i].DistanceKm, facilities[j].DistanceKm
		if di == nil || dj == nil {
			return di != nil
		}
		return *di < *dj
	})
	return facilities, nil
}

func (q *facilityQueriesImpl) GetFacility(ctx context.Context, id uuid.UUID) (*FacilityView, error) {
	f, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrFacilityNotFound
		}
		return nil, err
	}
	return f, nil
}

// equirectangularKm approximates great-circle distance. Accurate to well
// under a percent at city scale, which is all the nearest-rink sort needs.
func equirectangularKm(lat1, lng1, lat2, lng2 float64) float64 {
	rad := math.Pi / 180
	x := (lng2 - lng1) * rad * math.Cos((lat1+lat2)/2*rad)
	y := (lat2 - lat1) * rad
	return math.Sqrt(x*x+y*y) * earthRadiusKm
}
