package readstore

import (
	"context"

	"rinkbook/internal/infra"
	"rinkbook/internal/infra/db"
	"rinkbook/internal/pkg/pgconv"
	"rinkbook/internal/usecase/queries"
	"rinkbook/internal/usecase/shared"

	"github.com/google/uuid"
)

type UserReadStore struct {
	db db.DBTX
}

func NewUserReadStore(db db.DBTX) *UserReadStore {
	return &UserReadStore{db: db}
}

func (r *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error) {
	v := &queries.AuthorizedUserView{}
	err := r.db.QueryRow(ctx,
		`SELECT id, email, role FROM users WHERE id = $1`,
		id,
	).Scan(&v.ID, &v.Email, &v.Role)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by id", err)
	}
	return v, nil
}

func (r *UserReadStore) SnapshotByEmail(ctx context.Context, email string) (*shared.UserSnapshot, error) {
	var s shared.UserSnapshot
	err := r.db.QueryRow(ctx,
		`SELECT id, email, password_hash, role, created_at FROM users WHERE email = $1`,
		email,
	).Scan(&s.ID, &s.Email, &s.PasswordHash, &s.Role, &s.CreatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by email", err)
	}
	return &s, nil
}
