//go:build e2e

// Package dbtest seeds reference rows that e2e suites build on.
package dbtest

import (
	"context"
	"time"

	"rinkbook/internal/pkg/password"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SeededRink struct {
	FacilityID uuid.UUID
	SurfaceID  uuid.UUID
}

// SeedRink inserts one facility with a single surface open 09:00-17:00
// every day of the week.
func SeedRink(pool *pgxpool.Pool, timezone string, rateCents int64) (*SeededRink, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	rink := &SeededRink{
		FacilityID: uuid.New(),
		SurfaceID:  uuid.New(),
	}

	_, err := pool.Exec(ctx, `
		INSERT INTO facilities (id, name, address, city, timezone, latitude, longitude)
		VALUES ($1, 'Test Ice Centre', '1 Rink Way', 'Toronto', $2, 43.65, -79.38)`,
		rink.FacilityID, timezone,
	)
	if err != nil {
		return nil, err
	}

	_, err = pool.Exec(ctx, `
		INSERT INTO ice_surfaces (id, facility_id, name, default_rate_cents)
		VALUES ($1, $2, 'Rink A', $3)`,
		rink.SurfaceID, rink.FacilityID, rateCents,
	)
	if err != nil {
		return nil, err
	}

	for weekday := 0; weekday < 7; weekday++ {
		_, err = pool.Exec(ctx, `
			INSERT INTO hours_of_operation (surface_id, weekday, open_minutes, close_minutes)
			VALUES ($1, $2, $3, $4)`,
			rink.SurfaceID, weekday, 9*60, 17*60,
		)
		if err != nil {
			return nil, err
		}
	}

	return rink, nil
}

// SeedUser inserts a user directly, bypassing the register endpoint. Staff
// accounts have no signup flow, so suites needing one start here.
func SeedUser(pool *pgxpool.Pool, email, plainPassword, role string) (uuid.UUID, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	hash, err := password.Hash(plainPassword)
	if err != nil {
		return uuid.Nil, err
	}

	id := uuid.New()
	_, err = pool.Exec(ctx, `
		INSERT INTO users (id, email, password_hash, role)
		VALUES ($1, $2, $3, $4)`,
		id, email, hash, role,
	)
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}
