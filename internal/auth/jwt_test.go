package auth_test

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quizmaster-app/backend/internal/auth"
)

const testSecret = "a-long-and-secure-secret-for-tests"

func TestInit(t *testing.T) {
	t.Run("MissingSecret", func(t *testing.T) {
		os.Unsetenv("JWT_SECRET")
		assert.Panics(t, auth.Init)
	})

	t.Run("ValidSecret", func(t *testing.T) {
		os.Setenv("JWT_SECRET", testSecret)
		assert.NotPanics(t, auth.Init)
	})
}

func TestGenerateAndValidateJWT(t *testing.T) {
	os.Setenv("JWT_SECRET", testSecret)
	auth.Init()

	t.Run("ValidToken", func(t *testing.T) {
		tokenStr, err := auth.GenerateJWT(42, auth.RoleAdmin, 5*time.Minute)
		require.NoError(t, err)

		claims, err := auth.ValidateJWT(tokenStr)
		require.NoError(t, err)
		assert.Equal(t, uint(42), claims.ID)
		assert.Equal(t, auth.RoleAdmin, claims.Role)
		assert.True(t, claims.IsAdmin())
	})

	t.Run("UserRoleIsNotAdmin", func(t *testing.T) {
		tokenStr, err := auth.GenerateJWT(7, auth.RoleUser, 5*time.Minute)
		require.NoError(t, err)

		claims, err := auth.ValidateJWT(tokenStr)
		require.NoError(t, err)
		assert.False(t, claims.IsAdmin())
	})

	t.Run("ExpiredToken", func(t *testing.T) {
		tokenStr, err := auth.GenerateJWT(42, auth.RoleUser, -time.Minute)
		require.NoError(t, err)

		_, err = auth.ValidateJWT(tokenStr)
		require.Error(t, err)
		assert.True(t, errors.Is(err, jwt.ErrTokenExpired))
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := auth.ValidateJWT("not-a-token")
		assert.Error(t, err)
	})
}
