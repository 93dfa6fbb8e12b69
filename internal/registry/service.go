package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hibiken/asynq"
	"github.com/trendwave/connect/internal/auth"
	"github.com/trendwave/connect/internal/database/models"
	"github.com/trendwave/connect/internal/tasks"
	"github.com/trendwave/connect/pkg/crypto"
	"gorm.io/gorm"
)

var ErrConflict = errors.New("tenant already exists")

// ConflictError names the field that collided with an existing tenant.
type ConflictError struct {
	Field string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("tenant with this %s already exists", e.Field)
}

func (e *ConflictError) Unwrap() error { return ErrConflict }

const tempPasswordLength = 12

type Service struct {
	db        *gorm.DB
	logger    *slog.Logger
	queue     *asynq.Client // optional, nil disables notification enqueue
	encryptor *crypto.Encryptor
}

func NewService(db *gorm.DB, logger *slog.Logger, queue *asynq.Client, encryptor *crypto.Encryptor) *Service {
	return &Service{db: db, logger: logger, queue: queue, encryptor: encryptor}
}

type RegisterInput struct {
	Name               string
	RegistrationNumber string
	ContactEmail       string
	AdminName          string
	Type               models.TenantType
	Profile            models.JSONMap
}

type RegisterResult struct {
	Tenant       *models.Tenant
	TempPassword string
	NextSteps    []string
}

// Register creates a tenant record with a freshly minted code and a
// temporary password, and enqueues the welcome email. The record starts
// in pending status until the first successful login.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*RegisterResult, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.RegistrationNumber = strings.TrimSpace(input.RegistrationNumber)
	input.ContactEmail = strings.ToLower(strings.TrimSpace(input.ContactEmail))

	tempPassword, err := crypto.GenerateRandomString(tempPasswordLength)
	if err != nil {
		return nil, fmt.Errorf("generating temporary password: %w", err)
	}

	hash, err := auth.HashPassword(tempPassword)
	if err != nil {
		return nil, err
	}

	tenant := &models.Tenant{
		Name:               input.Name,
		RegistrationNumber: input.RegistrationNumber,
		ContactEmail:       input.ContactEmail,
		AdminName:          strings.TrimSpace(input.AdminName),
		Type:               input.Type,
		Profile:            input.Profile,
		Status:             models.TenantStatusPending,
		PasswordHash:       hash,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.checkUniqueness(tx, input); err != nil {
			return err
		}

		code, err := generateCode(tx, input.Type)
		if err != nil {
			return err
		}
		tenant.Code = code

		return tx.Create(tenant).Error
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("tenant registered",
		"tenant_id", tenant.ID,
		"tenant_code", tenant.Code,
		"type", tenant.Type,
	)

	if err := s.enqueueWelcomeEmail(ctx, tenant, tempPassword); err != nil {
		// The tenant exists, credentials can be re-delivered. Don't fail
		// the registration over a queue hiccup.
		s.logger.Error("failed to enqueue welcome email",
			"tenant_id", tenant.ID,
			"error", err,
		)
	}

	return &RegisterResult{
		Tenant:       tenant,
		TempPassword: tempPassword,
		NextSteps: []string{
			fmt.Sprintf("Sign in with organization ID %s and your temporary password", tenant.Code),
			"Change your temporary password after first login",
			"Complete your organization profile in the dashboard",
		},
	}, nil
}

func (s *Service) checkUniqueness(tx *gorm.DB, input RegisterInput) error {
	var existing models.Tenant
	err := tx.Where(
		"name = ? OR registration_number = ? OR contact_email = ?",
		input.Name, input.RegistrationNumber, input.ContactEmail,
	).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	switch {
	case existing.RegistrationNumber == input.RegistrationNumber:
		return &ConflictError{Field: "registration number"}
	case existing.ContactEmail == input.ContactEmail:
		return &ConflictError{Field: "contact email"}
	default:
		return &ConflictError{Field: "name"}
	}
}

func (s *Service) enqueueWelcomeEmail(ctx context.Context, tenant *models.Tenant, tempPassword string) error {
	if s.queue == nil {
		return nil
	}

	sealed, err := s.encryptor.EncryptString(tempPassword)
	if err != nil {
		return fmt.Errorf("sealing temp password: %w", err)
	}

	task, err := tasks.NewWelcomeEmailTask(tasks.WelcomeEmailPayload{
		TenantID:           tenant.ID,
		TenantCode:         tenant.Code,
		TenantName:         tenant.Name,
		Email:              tenant.ContactEmail,
		SealedTempPassword: sealed,
	})
	if err != nil {
		return err
	}

	_, err = s.queue.EnqueueContext(ctx, task, asynq.Queue("critical"))
	return err
}
