//go:build unit

package commands

import (
	"context"
	"testing"
	"time"

	"rinkbook/internal/domain/user"
	reqdto "rinkbook/internal/handler/dto/request"
	"rinkbook/internal/infra"
	"rinkbook/internal/pkg/clock"
	"rinkbook/internal/pkg/jwt"
	"rinkbook/internal/pkg/password"
	"rinkbook/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthCommandsForTest(uow *stubUoW) AuthCommands {
	return NewAuthCommands(uow,
		jwt.NewService("test-secret", time.Hour),
		clock.NewMockClock(time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)))
}

func TestRegister(t *testing.T) {
	t.Run("creates a customer account", func(t *testing.T) {
		uow := newStubUoW()
		cmd := newAuthCommandsForTest(uow)

		id, err := cmd.Register(context.Background(), reqdto.RegisterRequest{
			Email:    "skater@example.com",
			Password: "password123",
		})

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, id)
		require.Len(t, uow.tx.users.Created, 1)
		assert.Equal(t, user.RoleCustomer, uow.tx.users.Created[0].Role())
	})

	t.Run("rejects a malformed email", func(t *testing.T) {
		cmd := newAuthCommandsForTest(newStubUoW())

		_, err := cmd.Register(context.Background(), reqdto.RegisterRequest{
			Email:    "not-an-email",
			Password: "password123",
		})

		assert.ErrorIs(t, err, ErrDomainValidation)
	})

	t.Run("duplicate email", func(t *testing.T) {
		uow := newStubUoW()
		uow.tx.users.CreateFn = func(_ *user.User) (uuid.UUID, error) {
			return uuid.Nil, infra.WrapRepoErr("duplicate email", nil, infra.KindDuplicateKey)
		}
		cmd := newAuthCommandsForTest(uow)

		_, err := cmd.Register(context.Background(), reqdto.RegisterRequest{
			Email:    "skater@example.com",
			Password: "password123",
		})

		assert.ErrorIs(t, err, ErrEmailTaken)
	})
}

func TestLogin(t *testing.T) {
	hash, err := password.Hash("password123")
	require.NoError(t, err)

	snap := &shared.UserSnapshot{
		ID:           uuid.New(),
		Email:        "skater@example.com",
		PasswordHash: hash,
		Role:         "customer",
	}

	t.Run("issues a token for valid credentials", func(t *testing.T) {
		uow := newStubUoW()
		uow.reads.UserByEmailFn = func(_ context.Context, _ string) (*shared.UserSnapshot, error) {
			return snap, nil
		}
		cmd := newAuthCommandsForTest(uow)

		result, err := cmd.Login(context.Background(), reqdto.LoginRequest{
			Email:    "skater@example.com",
			Password: "password123",
		})

		require.NoError(t, err)
		assert.Equal(t, snap.ID, result.UserID)
		assert.Equal(t, user.RoleCustomer, result.Role)
		assert.NotEmpty(t, result.AccessToken)

		claims, err := jwt.NewService("test-secret", time.Hour).ValidateToken(result.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, snap.ID, claims.UserID)
	})

	t.Run("wrong password", func(t *testing.T) {
		uow := newStubUoW()
		uow.reads.UserByEmailFn = func(_ context.Context, _ string) (*shared.UserSnapshot, error) {
			return snap, nil
		}
		cmd := newAuthCommandsForTest(uow)

		_, err := cmd.Login(context.Background(), reqdto.LoginRequest{
			Email:    "skater@example.com",
			Password: "wrong-password",
		})

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email maps to the same error as a wrong password", func(t *testing.T) {
		uow := newStubUoW()
		uow.reads.UserByEmailFn = func(_ context.Context, _ string) (*shared.UserSnapshot, error) {
			return nil, infra.WrapRepoErr("user not found", pgx.ErrNoRows, infra.KindNotFound)
		}
		cmd := newAuthCommandsForTest(uow)

		_, err := cmd.Login(context.Background(), reqdto.LoginRequest{
			Email:    "nobody@example.com",
			Password: "password123",
		})

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
