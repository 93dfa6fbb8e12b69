package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"github.com/trendwave/connect/internal/database/models"
	"github.com/trendwave/connect/internal/mail"
	"github.com/trendwave/connect/pkg/crypto"
	"gorm.io/gorm"
)

type Handler struct {
	db        *gorm.DB
	logger    *slog.Logger
	mailer    mail.Mailer
	encryptor *crypto.Encryptor
	mailFrom  string
	baseURL   string
}

func NewHandler(db *gorm.DB, logger *slog.Logger, mailer mail.Mailer, encryptor *crypto.Encryptor, mailFrom, baseURL string) *Handler {
	return &Handler{
		db:        db,
		logger:    logger,
		mailer:    mailer,
		encryptor: encryptor,
		mailFrom:  mailFrom,
		baseURL:   baseURL,
	}
}

func (h *Handler) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(TypeWelcomeEmail, h.HandleWelcomeEmail)
	mux.HandleFunc(TypeResetEmail, h.HandleResetEmail)
	mux.HandleFunc(TypePurgeResetToken, h.HandlePurgeResetTokens)
}

func (h *Handler) HandleWelcomeEmail(ctx context.Context, t *asynq.Task) error {
	var payload WelcomeEmailPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	tempPassword, err := h.encryptor.DecryptString(payload.SealedTempPassword)
	if err != nil {
		return fmt.Errorf("unseal temp password: %w", err)
	}

	body := fmt.Sprintf(
		"Welcome to TrendWave Connect, %s!\n\n"+
			"Your organization ID is %s.\n"+
			"Your temporary password is %s.\n\n"+
			"Sign in at %s/login and change your password.\n",
		payload.TenantName, payload.TenantCode, tempPassword, h.baseURL,
	)

	err = h.mailer.SendMail(ctx, &mail.Email{
		Subject: "Welcome to TrendWave Connect",
		Body:    body,
		From:    h.mailFrom,
		To:      []string{payload.Email},
	})
	if err != nil {
		return fmt.Errorf("send welcome email: %w", err)
	}

	h.logger.Info("welcome email sent",
		"tenant_id", payload.TenantID,
		"tenant_code", payload.TenantCode,
	)
	return nil
}

func (h *Handler) HandleResetEmail(ctx context.Context, t *asynq.Task) error {
	var payload ResetEmailPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	body := fmt.Sprintf(
		"A password reset was requested for organization %s.\n\n"+
			"Reset your password within one hour:\n%s/reset-password?token=%s\n\n"+
			"If you did not request this, ignore this email.\n",
		payload.TenantCode, h.baseURL, payload.Token,
	)

	err := h.mailer.SendMail(ctx, &mail.Email{
		Subject: "TrendWave Connect password reset",
		Body:    body,
		From:    h.mailFrom,
		To:      []string{payload.Email},
	})
	if err != nil {
		return fmt.Errorf("send reset email: %w", err)
	}

	h.logger.Info("reset email sent",
		"tenant_id", payload.TenantID,
		"tenant_code", payload.TenantCode,
	)
	return nil
}

// HandlePurgeResetTokens clears expired reset tokens so stale tokens do
// not linger in the table. Consuming an expired token already fails, this
// is housekeeping only.
func (h *Handler) HandlePurgeResetTokens(ctx context.Context, t *asynq.Task) error {
	res := h.db.WithContext(ctx).Model(&models.Tenant{}).
		Where("reset_token <> '' AND reset_token_expires < ?", time.Now()).
		Updates(map[string]any{
			"reset_token":         "",
			"reset_token_expires": nil,
		})
	if res.Error != nil {
		return fmt.Errorf("purge reset tokens: %w", res.Error)
	}

	if res.RowsAffected > 0 {
		h.logger.Info("purged expired reset tokens", "count", res.RowsAffected)
	}
	return nil
}
