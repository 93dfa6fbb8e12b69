package auth

import (
	"context"

	"github.com/google/uuid"
	"github.com/trendwave/connect/internal/database/models"
)

// Authenticator defines the interface for tenant credential operations.
type Authenticator interface {
	Login(ctx context.Context, input LoginInput) (*AuthResponse, error)
	RequestPasswordReset(ctx context.Context, tenantCode, email string) (*ResetIssue, error)
	ResetPassword(ctx context.Context, token, newPassword string) error
	GetTenantByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error)
}

// TokenService defines the interface for JWT token operations.
type TokenService interface {
	GenerateToken(tenantID uuid.UUID, code, email, name string) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

// Compile-time interface satisfaction checks
var (
	_ Authenticator = (*Service)(nil)
	_ TokenService  = (*JWTService)(nil)
)
