package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trendwave/connect/internal/api/dto"
	"github.com/trendwave/connect/internal/api/handlers"
	"github.com/trendwave/connect/internal/api/middleware"
	"github.com/trendwave/connect/internal/database/models"
	"github.com/trendwave/connect/internal/testutil"
	"gorm.io/gorm"
)

type tenantListResponse struct {
	Data       []dto.TenantDTO `json:"data"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	PerPage    int             `json:"per_page"`
	TotalPages int             `json:"total_pages"`
}

func setupTenantRouter(t *testing.T) (*chi.Mux, *gorm.DB, string) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })

	jwtService := testutil.CreateTestJWTService()
	caller := testutil.CreateTestTenant(t, db, models.TenantTypeSchool)
	token := testutil.GenerateTestToken(t, jwtService, caller)

	handler := handlers.NewTenantHandler(db)

	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(jwtService))
		r.Get("/tenants", handler.List)
		r.Get("/tenants/{id}", handler.Get)
		r.Put("/tenants/{id}/status", handler.UpdateStatus)
	})

	return r, db, token
}

func TestTenantList(t *testing.T) {
	router, db, token := setupTenantRouter(t)

	testutil.CreateTestTenant(t, db, models.TenantTypeAssociation)
	hospital := testutil.CreateTestTenant(t, db, models.TenantTypeHospital)
	require.NoError(t, db.Model(hospital).Update("status", models.TenantStatusSuspended).Error)

	t.Run("requires authentication", func(t *testing.T) {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, testutil.UnauthenticatedRequest(t, http.MethodGet, "/tenants", nil))
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("lists all tenants", func(t *testing.T) {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, testutil.AuthenticatedRequest(t, http.MethodGet, "/tenants", nil, token))
		require.Equal(t, http.StatusOK, rr.Code)

		var resp tenantListResponse
		testutil.ParseJSONResponse(t, rr, &resp)
		assert.Equal(t, int64(3), resp.Total)
		assert.Len(t, resp.Data, 3)
	})

	t.Run("filters by type", func(t *testing.T) {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, testutil.AuthenticatedRequest(t, http.MethodGet, "/tenants?type=hospital", nil, token))
		require.Equal(t, http.StatusOK, rr.Code)

		var resp tenantListResponse
		testutil.ParseJSONResponse(t, rr, &resp)
		require.Len(t, resp.Data, 1)
		assert.Equal(t, "hospital", resp.Data[0].Type)
	})

	t.Run("filters by status", func(t *testing.T) {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, testutil.AuthenticatedRequest(t, http.MethodGet, "/tenants?status=suspended", nil, token))
		require.Equal(t, http.StatusOK, rr.Code)

		var resp tenantListResponse
		testutil.ParseJSONResponse(t, rr, &resp)
		require.Len(t, resp.Data, 1)
		assert.Equal(t, hospital.Code, resp.Data[0].Code)
	})

	t.Run("paginates", func(t *testing.T) {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, testutil.AuthenticatedRequest(t, http.MethodGet, "/tenants?page=1&per_page=2", nil, token))
		require.Equal(t, http.StatusOK, rr.Code)

		var resp tenantListResponse
		testutil.ParseJSONResponse(t, rr, &resp)
		assert.Len(t, resp.Data, 2)
		assert.Equal(t, int64(3), resp.Total)
		assert.Equal(t, 2, resp.TotalPages)
	})
}

func TestTenantGet(t *testing.T) {
	router, db, token := setupTenantRouter(t)
	tenant := testutil.CreateTestTenant(t, db, models.TenantTypeChurch)

	t.Run("returns the tenant", func(t *testing.T) {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, testutil.AuthenticatedRequest(t, http.MethodGet, "/tenants/"+tenant.ID.String(), nil, token))
		require.Equal(t, http.StatusOK, rr.Code)

		var resp dto.TenantDTO
		testutil.ParseJSONResponse(t, rr, &resp)
		assert.Equal(t, tenant.Code, resp.Code)
		assert.Equal(t, "church", resp.Type)
	})

	t.Run("unknown id yields 404", func(t *testing.T) {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, testutil.AuthenticatedRequest(t, http.MethodGet, "/tenants/"+uuid.NewString(), nil, token))
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("malformed id yields 400", func(t *testing.T) {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, testutil.AuthenticatedRequest(t, http.MethodGet, "/tenants/not-a-uuid", nil, token))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestTenantUpdateStatus(t *testing.T) {
	router, db, token := setupTenantRouter(t)

	tenant := testutil.CreateTestTenant(t, db, models.TenantTypeFactory)
	require.NoError(t, db.Model(tenant).Update("status", models.TenantStatusPending).Error)

	t.Run("activates a pending tenant", func(t *testing.T) {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, testutil.AuthenticatedRequest(t,
			http.MethodPut, "/tenants/"+tenant.ID.String()+"/status",
			dto.UpdateStatusRequest{Status: "active"}, token))
		require.Equal(t, http.StatusOK, rr.Code)

		var stored models.Tenant
		require.NoError(t, db.First(&stored, "id = ?", tenant.ID).Error)
		assert.Equal(t, models.TenantStatusActive, stored.Status)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, testutil.AuthenticatedRequest(t,
			http.MethodPut, "/tenants/"+tenant.ID.String()+"/status",
			dto.UpdateStatusRequest{Status: "frozen"}, token))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
