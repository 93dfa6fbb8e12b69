package auth_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trendwave/connect/internal/auth"
)

func TestJWTService_GenerateToken(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret", 24*time.Hour)

	tenantID := uuid.New()
	code := "TWC0042"
	email := "admin@example.com"
	name := "Excel Academy"

	t.Run("generates valid token", func(t *testing.T) {
		token, err := jwtService.GenerateToken(tenantID, code, email, name)
		require.NoError(t, err)
		assert.NotEmpty(t, token)

		// Should be parseable
		claims, err := jwtService.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, tenantID, claims.TenantID)
		assert.Equal(t, code, claims.TenantCode)
		assert.Equal(t, email, claims.Email)
		assert.Equal(t, name, claims.Name)
	})

	t.Run("token contains correct issuer", func(t *testing.T) {
		token, err := jwtService.GenerateToken(tenantID, code, email, name)
		require.NoError(t, err)

		claims, err := jwtService.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, "trendwave-connect", claims.Issuer)
	})

	t.Run("token contains correct subject", func(t *testing.T) {
		token, err := jwtService.GenerateToken(tenantID, code, email, name)
		require.NoError(t, err)

		claims, err := jwtService.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, tenantID.String(), claims.Subject)
	})
}

func TestJWTService_ValidateToken(t *testing.T) {
	tenantID := uuid.New()
	code := "TWCA1234"
	email := "secretary@example.org"
	name := "Riverside Traders Association"

	t.Run("validates correct token", func(t *testing.T) {
		jwtService := auth.NewJWTService("test-secret", 24*time.Hour)

		token, err := jwtService.GenerateToken(tenantID, code, email, name)
		require.NoError(t, err)

		claims, err := jwtService.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, tenantID, claims.TenantID)
	})

	t.Run("rejects expired token", func(t *testing.T) {
		jwtService := auth.NewJWTService("test-secret", 1*time.Millisecond)

		token, err := jwtService.GenerateToken(tenantID, code, email, name)
		require.NoError(t, err)

		time.Sleep(10 * time.Millisecond)

		_, err = jwtService.ValidateToken(token)
		assert.ErrorIs(t, err, auth.ErrExpiredToken)
	})

	t.Run("rejects token signed with different secret", func(t *testing.T) {
		signer := auth.NewJWTService("secret-one", 24*time.Hour)
		verifier := auth.NewJWTService("secret-two", 24*time.Hour)

		token, err := signer.GenerateToken(tenantID, code, email, name)
		require.NoError(t, err)

		_, err = verifier.ValidateToken(token)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("rejects malformed token", func(t *testing.T) {
		jwtService := auth.NewJWTService("test-secret", 24*time.Hour)

		_, err := jwtService.ValidateToken("not.a.token")
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})
}
