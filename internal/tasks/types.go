package tasks

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// Task type names
const (
	TypeWelcomeEmail    = "notify:welcome_email"
	TypeResetEmail      = "notify:reset_email"
	TypePurgeResetToken = "maintenance:purge_reset_tokens"
)

// WelcomeEmailPayload carries the onboarding email data. The temporary
// password is sealed with the process encryption key before it is placed
// on the queue, so plaintext credentials never sit in Redis.
type WelcomeEmailPayload struct {
	TenantID           uuid.UUID `json:"tenant_id"`
	TenantCode         string    `json:"tenant_code"`
	TenantName         string    `json:"tenant_name"`
	Email              string    `json:"email"`
	SealedTempPassword string    `json:"sealed_temp_password"`
}

func NewWelcomeEmailTask(payload WelcomeEmailPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeWelcomeEmail, data), nil
}

// ResetEmailPayload carries the password-reset email data.
type ResetEmailPayload struct {
	TenantID   uuid.UUID `json:"tenant_id"`
	TenantCode string    `json:"tenant_code"`
	Email      string    `json:"email"`
	Token      string    `json:"token"`
}

func NewResetEmailTask(payload ResetEmailPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeResetEmail, data), nil
}

// NewPurgeResetTokenTask clears reset tokens whose expiry has passed.
func NewPurgeResetTokenTask() *asynq.Task {
	return asynq.NewTask(TypePurgeResetToken, nil)
}
