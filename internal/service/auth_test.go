package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pageza/harvestplan/backend/internal/apperr"
	"github.com/pageza/harvestplan/backend/internal/service"
	"github.com/pageza/harvestplan/backend/internal/testhelpers"
	"github.com/pageza/harvestplan/backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_RegisterAndLogin(t *testing.T) {
	db := testhelpers.SetupSQLiteDB(t)
	svc := service.NewAuthService(db, "test-secret", time.Hour)
	ctx := context.Background()

	user, token, err := svc.Register(ctx, &types.RegisterRequest{
		Name: "Sam", Email: "Sam@Example.com", Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, "sam@example.com", user.Email)
	assert.NotEqual(t, "password123", user.PasswordHash)
	assert.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)

	loggedIn, token, err := svc.Login(ctx, "sam@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
	assert.NotEmpty(t, token)
}

func TestAuthService_RegisterDuplicateEmail(t *testing.T) {
	db := testhelpers.SetupSQLiteDB(t)
	svc := service.NewAuthService(db, "test-secret", time.Hour)
	req := &types.RegisterRequest{Name: "Sam", Email: "sam@example.com", Password: "password123"}

	_, _, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	_, _, err = svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, service.ErrEmailTaken)
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestAuthService_LoginFailures(t *testing.T) {
	db := testhelpers.SetupSQLiteDB(t)
	svc := service.NewAuthService(db, "test-secret", time.Hour)
	_, _, err := svc.Register(context.Background(), &types.RegisterRequest{
		Name: "Sam", Email: "sam@example.com", Password: "password123",
	})
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), "sam@example.com", "wrong-password")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	_, _, err = svc.Login(context.Background(), "nobody@example.com", "password123")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestAuthService_ValidateTokenRejects(t *testing.T) {
	db := testhelpers.SetupSQLiteDB(t)
	svc := service.NewAuthService(db, "test-secret", time.Hour)
	other := service.NewAuthService(db, "other-secret", time.Hour)

	token, err := other.GenerateToken(&types.TokenClaims{Email: "x@example.com"})
	require.NoError(t, err)
	_, err = svc.ValidateToken(token)
	assert.Error(t, err)

	expired, err := svc.GenerateToken(&types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute))},
	})
	require.NoError(t, err)
	_, err = svc.ValidateToken(expired)
	assert.Error(t, err)

	_, err = svc.ValidateToken("not-a-token")
	assert.Error(t, err)
}
