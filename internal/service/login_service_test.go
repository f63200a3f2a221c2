package service_test

import (
	"testing"
	"time"

	"swmanager/internal/apperror"
	"swmanager/internal/auth"
	"swmanager/internal/model"
	"swmanager/internal/repository"
	"swmanager/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	hasher := auth.SHA256Hasher{}
	hashed, err := hasher.Hash("s3cret")
	require.NoError(t, err)
	require.NoError(t, env.db.Create(&model.User{
		Username: "mgr", Password: hashed, Role: model.RoleManager, FullName: "Manager M",
	}).Error)

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	tokens := auth.NewTokenService([]byte("test-secret"), auth.WithClock(func() time.Time { return now }))
	login := service.NewLoginService(repository.NewTransactionManager(), repository.NewUserRepository(), hasher, tokens)

	t.Run("valid credentials", func(t *testing.T) {
		res, err := login.Login(env.ctx, service.LoginRequest{Username: "mgr", Password: "s3cret"})
		require.NoError(t, err)
		require.NotEmpty(t, res.Token)

		claims, err := tokens.Validate(res.Token)
		require.NoError(t, err)
		assert.Equal(t, "mgr", claims.Username)
		assert.Equal(t, model.RoleManager, claims.Role)
		assert.Equal(t, "Manager M", claims.FullName)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := login.Login(env.ctx, service.LoginRequest{Username: "mgr", Password: "nope"})
		assert.ErrorIs(t, err, apperror.ErrForbidden)
		assert.EqualError(t, err, "Incorrect username or password")
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := login.Login(env.ctx, service.LoginRequest{Username: "ghost", Password: "s3cret"})
		assert.ErrorIs(t, err, apperror.ErrForbidden)
		assert.EqualError(t, err, "Incorrect username or password")
	})

	t.Run("login is not audited", func(t *testing.T) {
		assert.Zero(t, env.auditCount(t))
	})
}
