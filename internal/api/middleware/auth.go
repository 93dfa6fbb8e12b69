package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/trendwave/connect/internal/auth"
)

type contextKey string

const (
	TenantIDKey    contextKey = "tenant_id"
	TenantCodeKey  contextKey = "tenant_code"
	TenantEmailKey contextKey = "tenant_email"
	TenantNameKey  contextKey = "tenant_name"
)

func Auth(jwtService *auth.JWTService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var token string

			// 1. Check Authorization header (API requests)
			authHeader := r.Header.Get("Authorization")
			if strings.HasPrefix(authHeader, "Bearer ") {
				token = strings.TrimPrefix(authHeader, "Bearer ")
			}

			// 2. Check cookie (dashboard)
			if token == "" {
				if cookie, err := r.Cookie("token"); err == nil && cookie.Value != "" {
					token = cookie.Value
				}
			}

			if token == "" {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			claims, err := jwtService.ValidateToken(token)
			if err != nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := r.Context()
			ctx = context.WithValue(ctx, TenantIDKey, claims.TenantID)
			ctx = context.WithValue(ctx, TenantCodeKey, claims.TenantCode)
			ctx = context.WithValue(ctx, TenantEmailKey, claims.Email)
			ctx = context.WithValue(ctx, TenantNameKey, claims.Name)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Helper functions to extract values from context
func GetTenantID(ctx context.Context) uuid.UUID {
	if id, ok := ctx.Value(TenantIDKey).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

func GetTenantCode(ctx context.Context) string {
	if code, ok := ctx.Value(TenantCodeKey).(string); ok {
		return code
	}
	return ""
}

func GetTenantEmail(ctx context.Context) string {
	if email, ok := ctx.Value(TenantEmailKey).(string); ok {
		return email
	}
	return ""
}

func GetTenantName(ctx context.Context) string {
	if name, ok := ctx.Value(TenantNameKey).(string); ok {
		return name
	}
	return ""
}
