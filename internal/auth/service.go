package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/trendwave/connect/internal/database/models"
	"github.com/trendwave/connect/internal/tasks"
	"gorm.io/gorm"
)

var (
	ErrTenantNotFound     = errors.New("tenant not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSuspendedTenant    = errors.New("tenant is suspended")
	ErrAccountLocked      = errors.New("account locked")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
)

// AccountLockedError reports an active lockout window and how long the
// caller must wait before retrying.
type AccountLockedError struct {
	RetryAfter time.Duration
}

func (e *AccountLockedError) Error() string {
	return fmt.Sprintf("account locked, retry in %s", e.RetryAfter.Round(time.Second))
}

func (e *AccountLockedError) Unwrap() error { return ErrAccountLocked }

// LockoutPolicy controls the failed-attempt threshold and how long an
// account stays locked once it is crossed.
type LockoutPolicy struct {
	Threshold int
	Window    time.Duration
}

func DefaultLockoutPolicy() LockoutPolicy {
	return LockoutPolicy{Threshold: 5, Window: 30 * time.Minute}
}

const resetTokenTTL = time.Hour

type Service struct {
	db     *gorm.DB
	jwt    *JWTService
	queue  *asynq.Client // optional, nil disables notification enqueue
	policy LockoutPolicy
}

func NewService(db *gorm.DB, jwt *JWTService, queue *asynq.Client, policy LockoutPolicy) *Service {
	if policy.Threshold <= 0 {
		policy.Threshold = DefaultLockoutPolicy().Threshold
	}
	if policy.Window <= 0 {
		policy.Window = DefaultLockoutPolicy().Window
	}
	return &Service{db: db, jwt: jwt, queue: queue, policy: policy}
}

type LoginInput struct {
	TenantCode string
	Email      string
	Password   string
}

type AuthResponse struct {
	Token  string         `json:"token"`
	Tenant *models.Tenant `json:"tenant"`
}

// Login verifies tenant credentials and issues a session token.
//
// Credential state machine: a tenant is Active while its failed-attempt
// counter is below the threshold; crossing it sets a lockout deadline.
// The lock clears on deadline expiry, successful login or password reset,
// and every success zeroes the counter.
func (s *Service) Login(ctx context.Context, input LoginInput) (*AuthResponse, error) {
	tenant, err := s.findByCodeAndEmail(ctx, input.TenantCode, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if tenant.Status == models.TenantStatusSuspended {
		return nil, ErrSuspendedTenant
	}

	now := time.Now()
	if tenant.Locked(now) {
		return nil, &AccountLockedError{RetryAfter: tenant.LockedUntil.Sub(now)}
	}

	if !CheckPassword(input.Password, tenant.PasswordHash) {
		return nil, s.recordFailure(ctx, tenant, now)
	}

	if err := s.recordSuccess(ctx, tenant, now); err != nil {
		return nil, err
	}

	token, err := s.jwt.GenerateToken(tenant.ID, tenant.Code, tenant.ContactEmail, tenant.Name)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{Token: token, Tenant: tenant}, nil
}

// recordFailure bumps the failed-attempt counter with a single atomic
// UPDATE so concurrent failures cannot under-count, then applies the
// lockout once the threshold is crossed.
func (s *Service) recordFailure(ctx context.Context, tenant *models.Tenant, now time.Time) error {
	if err := s.db.WithContext(ctx).Model(&models.Tenant{}).
		Where("id = ?", tenant.ID).
		UpdateColumn("failed_attempts", gorm.Expr("failed_attempts + ?", 1)).Error; err != nil {
		return err
	}

	var attempts int
	if err := s.db.WithContext(ctx).Model(&models.Tenant{}).
		Where("id = ?", tenant.ID).
		Pluck("failed_attempts", &attempts).Error; err != nil {
		return err
	}

	if attempts >= s.policy.Threshold {
		lockedUntil := now.Add(s.policy.Window)
		if err := s.db.WithContext(ctx).Model(&models.Tenant{}).
			Where("id = ?", tenant.ID).
			Update("locked_until", lockedUntil).Error; err != nil {
			return err
		}
		return &AccountLockedError{RetryAfter: s.policy.Window}
	}

	return ErrInvalidCredentials
}

// recordSuccess clears lockout state and activates pending tenants on
// their first login.
func (s *Service) recordSuccess(ctx context.Context, tenant *models.Tenant, now time.Time) error {
	updates := map[string]any{
		"failed_attempts": 0,
		"locked_until":    nil,
		"last_login_at":   now,
	}
	if tenant.Status == models.TenantStatusPending {
		updates["status"] = models.TenantStatusActive
		tenant.Status = models.TenantStatusActive
	}

	if err := s.db.WithContext(ctx).Model(&models.Tenant{}).
		Where("id = ?", tenant.ID).
		Updates(updates).Error; err != nil {
		return err
	}

	tenant.FailedAttempts = 0
	tenant.LockedUntil = nil
	tenant.LastLoginAt = &now
	return nil
}

type ResetIssue struct {
	Token     string
	ExpiresAt time.Time
	Tenant    *models.Tenant
}

// RequestPasswordReset issues a single-use reset token, overwriting any
// prior one, and enqueues the reset email.
func (s *Service) RequestPasswordReset(ctx context.Context, tenantCode, email string) (*ResetIssue, error) {
	tenant, err := s.findByCodeAndEmail(ctx, tenantCode, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTenantNotFound
		}
		return nil, err
	}

	token, err := generateResetToken()
	if err != nil {
		return nil, err
	}
	expiresAt := time.Now().Add(resetTokenTTL)

	if err := s.db.WithContext(ctx).Model(&models.Tenant{}).
		Where("id = ?", tenant.ID).
		Updates(map[string]any{
			"reset_token":         token,
			"reset_token_expires": expiresAt,
		}).Error; err != nil {
		return nil, err
	}

	if s.queue != nil {
		task, err := tasks.NewResetEmailTask(tasks.ResetEmailPayload{
			TenantID:   tenant.ID,
			TenantCode: tenant.Code,
			Email:      tenant.ContactEmail,
			Token:      token,
		})
		if err == nil {
			_, err = s.queue.EnqueueContext(ctx, task, asynq.Queue("critical"))
		}
		if err != nil {
			return nil, fmt.Errorf("enqueue reset email: %w", err)
		}
	}

	return &ResetIssue{Token: token, ExpiresAt: expiresAt, Tenant: tenant}, nil
}

// ResetPassword consumes a reset token. The token is cleared on success,
// so a second use fails, and the lockout state is wiped.
func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < 8 {
		return ErrWeakPassword
	}
	if token == "" {
		return ErrInvalidResetToken
	}

	var tenant models.Tenant
	if err := s.db.WithContext(ctx).
		Where("reset_token = ?", token).
		First(&tenant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidResetToken
		}
		return err
	}

	if tenant.ResetTokenExpires == nil || time.Now().After(*tenant.ResetTokenExpires) {
		return ErrInvalidResetToken
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Model(&models.Tenant{}).
		Where("id = ?", tenant.ID).
		Updates(map[string]any{
			"password_hash":       hash,
			"reset_token":         "",
			"reset_token_expires": nil,
			"failed_attempts":     0,
			"locked_until":        nil,
		}).Error
}

func (s *Service) GetTenantByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	var tenant models.Tenant
	if err := s.db.WithContext(ctx).First(&tenant, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTenantNotFound
		}
		return nil, err
	}
	return &tenant, nil
}

func (s *Service) findByCodeAndEmail(ctx context.Context, code, email string) (*models.Tenant, error) {
	var tenant models.Tenant
	err := s.db.WithContext(ctx).
		Where("code = ? AND contact_email = ?", strings.ToUpper(strings.TrimSpace(code)), normalizeEmail(email)).
		First(&tenant).Error
	if err != nil {
		return nil, err
	}
	return &tenant, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func generateResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating reset token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
