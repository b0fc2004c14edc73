package services

import (
	"context"
	"testing"
	"time"

	"cvbuilder_backend/internal/auth"
	"cvbuilder_backend/internal/models"
	"cvbuilder_backend/internal/repositories"
	"cvbuilder_backend/internal/services/dto"
	"cvbuilder_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthFixture(t *testing.T) (AuthService, *auth.TokenManager) {
	t.Helper()
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	return NewAuthService(repositories.NewUserRepository(), tokens, auth.NewMemoryBlacklist(), dto.Features{PremiumModal: true, Plan: "free"}), tokens
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	db := newTestDB(t)
	svc, tokens := newAuthFixture(t)
	ctx := context.Background()

	reg, err := svc.Register(ctx, db, &dto.RegisterRequest{Email: "An@Example.com", Password: "Secret1!", FirstName: "An"})
	require.NoError(t, err)
	assert.Equal(t, "an@example.com", reg.User.Email)
	assert.Equal(t, models.UserRoleUser, reg.User.Role)

	claims, err := tokens.ParseToken(reg.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, claims.UserID)

	_, err = svc.Register(ctx, db, &dto.RegisterRequest{Email: "an@example.com", Password: "Secret1!"})
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)

	login, err := svc.Login(ctx, db, &dto.LoginRequest{Email: "AN@example.com", Password: "Secret1!"})
	require.NoError(t, err)
	assert.NotEmpty(t, login.Token)

	_, err = svc.Login(ctx, db, &dto.LoginRequest{Email: "an@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = svc.Login(ctx, db, &dto.LoginRequest{Email: "nobody@example.com", Password: "Secret1!"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestAuthService_MeCarriesFeatures(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newAuthFixture(t)
	user := createUser(t, db, "me@example.com", models.UserRoleUser)

	me, err := svc.Me(context.Background(), db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, me.User.ID)
	assert.True(t, me.Features.PremiumModal)

	_, err = svc.Me(context.Background(), db, "missing")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestAuthService_UpdateProfileAndChangePassword(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	reg, err := svc.Register(ctx, db, &dto.RegisterRequest{Email: "an@example.com", Password: "Secret1!"})
	require.NoError(t, err)

	first, phone := " An ", "+84 900"
	resp, err := svc.UpdateProfile(ctx, db, reg.User.ID, &dto.UpdateProfileRequest{FirstName: &first, PhoneNumber: &phone})
	require.NoError(t, err)
	assert.Equal(t, "An", resp.FirstName)
	assert.Equal(t, "+84 900", resp.PhoneNumber)

	err = svc.ChangePassword(ctx, db, reg.User.ID, &dto.ChangePasswordRequest{CurrentPassword: "nope", NewPassword: "Newer2@"})
	assert.ErrorIs(t, err, apperrors.ErrWrongPassword)

	require.NoError(t, svc.ChangePassword(ctx, db, reg.User.ID, &dto.ChangePasswordRequest{CurrentPassword: "Secret1!", NewPassword: "Newer2@"}))
	_, err = svc.Login(ctx, db, &dto.LoginRequest{Email: "an@example.com", Password: "Newer2@"})
	assert.NoError(t, err)
}

func TestAuthService_LogoutIgnoresInvalidToken(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	assert.NoError(t, svc.Logout(ctx, ""))
	assert.NoError(t, svc.Logout(ctx, "garbage"))
}
