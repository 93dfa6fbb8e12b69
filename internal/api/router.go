package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"
	"github.com/trendwave/connect/internal/api/dto"
	"github.com/trendwave/connect/internal/api/handlers"
	"github.com/trendwave/connect/internal/api/middleware"
	"github.com/trendwave/connect/internal/auth"
	"github.com/trendwave/connect/internal/registry"
	"gorm.io/gorm"
)

type Router struct {
	chi.Router
}

type RouterConfig struct {
	DB              *gorm.DB
	Redis           *redis.Client
	Logger          *slog.Logger
	JWTService      *auth.JWTService
	AuthService     *auth.Service
	RegistryService *registry.Service
	AllowedOrigins  []string // CORS allowed origins
	RateLimitReqs   int      // Rate limit requests per window
	RateLimitSecs   int      // Rate limit window in seconds
}

func NewRouter(cfg RouterConfig) *Router {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))

	// Rate limiting - applied globally, the login endpoint is a
	// brute-force target even with per-account lockout
	if cfg.RateLimitReqs > 0 {
		r.Use(middleware.RateLimit(cfg.RateLimitReqs, cfg.RateLimitSecs))
	}

	allowedOrigins := cfg.AllowedOrigins
	if len(allowedOrigins) == 0 {
		// Default to localhost for development - configure in production
		allowedOrigins = []string{"http://localhost:3000", "http://localhost:8080"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(cfg.DB, cfg.Redis)
	registerHandler := handlers.NewRegisterHandler(cfg.RegistryService)
	authHandler := handlers.NewAuthHandler(cfg.AuthService)
	tenantHandler := handlers.NewTenantHandler(cfg.DB)

	csrfStore := middleware.NewCSRFStore()

	// Health endpoints (no auth required)
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public auth endpoints
		r.Post("/auth/register", registerHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/logout", authHandler.Logout)
		r.Post("/auth/password-reset/request", authHandler.RequestPasswordReset)
		r.Post("/auth/password-reset/confirm", authHandler.ConfirmPasswordReset)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWTService))
			r.Use(middleware.CSRF(csrfStore))
			if cfg.RateLimitReqs > 0 {
				r.Use(middleware.RateLimitByTenant(cfg.RateLimitReqs, cfg.RateLimitSecs))
			}

			r.Get("/me", func(w http.ResponseWriter, r *http.Request) {
				tenantID := middleware.GetTenantID(r.Context())
				tenant, err := cfg.AuthService.GetTenantByID(r.Context(), tenantID)
				if err != nil {
					http.Error(w, "Tenant not found", http.StatusNotFound)
					return
				}
				writeJSON(w, http.StatusOK, dto.NewTenantDTO(tenant))
			})

			// Tenant admin endpoints
			r.Route("/tenants", func(r chi.Router) {
				r.Get("/", tenantHandler.List)
				r.Get("/{id}", tenantHandler.Get)
				r.Put("/{id}/status", tenantHandler.UpdateStatus)
			})
		})
	})

	return &Router{r}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
