package tasks_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trendwave/connect/internal/database/models"
	"github.com/trendwave/connect/internal/mail"
	"github.com/trendwave/connect/internal/tasks"
	"github.com/trendwave/connect/internal/testutil"
	"github.com/trendwave/connect/pkg/crypto"
	"gorm.io/gorm"
)

// fakeMailer records outgoing mail instead of sending it.
type fakeMailer struct {
	sent []*mail.Email
}

func (m *fakeMailer) SendMail(_ context.Context, e *mail.Email) error {
	m.sent = append(m.sent, e)
	return nil
}

func setupTaskHandler(t *testing.T) (*tasks.Handler, *fakeMailer, *crypto.Encryptor, *gorm.DB) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })

	encryptor, err := crypto.NewEncryptor("")
	require.NoError(t, err)

	mailer := &fakeMailer{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := tasks.NewHandler(db, logger, mailer, encryptor, "no-reply@trendwave.example", "https://connect.trendwave.example")

	return handler, mailer, encryptor, db
}

func TestHandleWelcomeEmail(t *testing.T) {
	handler, mailer, encryptor, db := setupTaskHandler(t)
	tenant := testutil.CreateTestTenant(t, db, models.TenantTypeSchool)

	sealed, err := encryptor.EncryptString("temp-pass-xyz")
	require.NoError(t, err)

	task, err := tasks.NewWelcomeEmailTask(tasks.WelcomeEmailPayload{
		TenantID:           tenant.ID,
		TenantCode:         tenant.Code,
		TenantName:         tenant.Name,
		Email:              tenant.ContactEmail,
		SealedTempPassword: sealed,
	})
	require.NoError(t, err)

	require.NoError(t, handler.HandleWelcomeEmail(context.Background(), task))

	require.Len(t, mailer.sent, 1)
	sent := mailer.sent[0]
	assert.Equal(t, []string{tenant.ContactEmail}, sent.To)
	assert.Equal(t, "no-reply@trendwave.example", sent.From)
	assert.Contains(t, sent.Body, tenant.Code)
	// The sealed password is delivered in plaintext only in the mail body
	assert.Contains(t, sent.Body, "temp-pass-xyz")
	assert.NotContains(t, sent.Body, sealed)
}

func TestHandleResetEmail(t *testing.T) {
	handler, mailer, _, db := setupTaskHandler(t)
	tenant := testutil.CreateTestTenant(t, db, models.TenantTypeNGO)

	task, err := tasks.NewResetEmailTask(tasks.ResetEmailPayload{
		TenantID:   tenant.ID,
		TenantCode: tenant.Code,
		Email:      tenant.ContactEmail,
		Token:      "aabbccdd",
	})
	require.NoError(t, err)

	require.NoError(t, handler.HandleResetEmail(context.Background(), task))

	require.Len(t, mailer.sent, 1)
	sent := mailer.sent[0]
	assert.Equal(t, []string{tenant.ContactEmail}, sent.To)
	assert.Contains(t, sent.Body, "reset-password?token=aabbccdd")
}

func TestHandlePurgeResetTokens(t *testing.T) {
	handler, _, _, db := setupTaskHandler(t)

	expired := testutil.CreateTestTenant(t, db, models.TenantTypeSchool)
	past := time.Now().Add(-time.Minute)
	require.NoError(t, db.Model(expired).Updates(map[string]any{
		"reset_token":         "expired-token",
		"reset_token_expires": past,
	}).Error)

	fresh := testutil.CreateTestTenant(t, db, models.TenantTypeBusiness)
	future := time.Now().Add(time.Hour)
	require.NoError(t, db.Model(fresh).Updates(map[string]any{
		"reset_token":         "fresh-token",
		"reset_token_expires": future,
	}).Error)

	require.NoError(t, handler.HandlePurgeResetTokens(context.Background(), tasks.NewPurgeResetTokenTask()))

	var stored models.Tenant
	require.NoError(t, db.First(&stored, "id = ?", expired.ID).Error)
	assert.Empty(t, stored.ResetToken)
	assert.Nil(t, stored.ResetTokenExpires)

	stored = models.Tenant{}
	require.NoError(t, db.First(&stored, "id = ?", fresh.ID).Error)
	assert.Equal(t, "fresh-token", stored.ResetToken)
	require.NotNil(t, stored.ResetTokenExpires)
}
