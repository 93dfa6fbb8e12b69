package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/trendwave/connect/internal/api/middleware"
	"github.com/trendwave/connect/internal/database/models"
	"github.com/trendwave/connect/internal/testutil"
)

func TestAuthMiddleware(t *testing.T) {
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })

	jwtService := testutil.CreateTestJWTService()
	tenant := testutil.CreateTestTenant(t, db, models.TenantTypeSchool)
	token := testutil.GenerateTestToken(t, jwtService, tenant)

	var gotCode string
	handler := middleware.Auth(jwtService)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCode = middleware.GetTenantCode(r.Context())
		assert.Equal(t, tenant.ID, middleware.GetTenantID(r.Context()))
		assert.Equal(t, tenant.ContactEmail, middleware.GetTenantEmail(r.Context()))
		assert.Equal(t, tenant.Name, middleware.GetTenantName(r.Context()))
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("accepts bearer token", func(t *testing.T) {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, testutil.AuthenticatedRequest(t, http.MethodGet, "/me", nil, token))
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, tenant.Code, gotCode)
	})

	t.Run("accepts session cookie", func(t *testing.T) {
		req := testutil.UnauthenticatedRequest(t, http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: "token", Value: token})

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("rejects missing token", func(t *testing.T) {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, testutil.UnauthenticatedRequest(t, http.MethodGet, "/me", nil))
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("rejects garbage token", func(t *testing.T) {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, testutil.AuthenticatedRequest(t, http.MethodGet, "/me", nil, "not.a.token"))
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}
