package dto

import (
	"github.com/trendwave/connect/internal/api/validation"
	"github.com/trendwave/connect/internal/database/models"
)

type RegisterRequest struct {
	Name               string         `json:"name"`
	RegistrationNumber string         `json:"registration_number"`
	ContactEmail       string         `json:"contact_email"`
	AdminName          string         `json:"admin_name"`
	Type               string         `json:"type"`
	Profile            map[string]any `json:"profile,omitempty"`
}

func (r RegisterRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Name == "" {
		errors["name"] = "Organization name is required"
	}
	if r.RegistrationNumber == "" {
		errors["registration_number"] = "Registration number is required"
	} else if !validation.IsValidRegistrationNumber(r.RegistrationNumber) {
		errors["registration_number"] = "Registration number contains invalid characters"
	}
	if r.ContactEmail == "" {
		errors["contact_email"] = "Contact email is required"
	} else if !validation.IsValidEmail(r.ContactEmail) {
		errors["contact_email"] = "Contact email is not a valid email address"
	}
	if r.AdminName == "" {
		errors["admin_name"] = "Administrator name is required"
	}
	if r.Type == "" {
		errors["type"] = "Organization type is required"
	} else if !models.TenantType(r.Type).Valid() {
		errors["type"] = "Unknown organization type"
	}

	return errors
}

type LoginRequest struct {
	TenantID string `json:"tenant_id"`
	// SchoolID is a legacy alias for TenantID kept for older school
	// registration clients.
	SchoolID string `json:"school_id,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Code returns the tenant code, honoring the legacy school_id alias.
func (r LoginRequest) Code() string {
	if r.TenantID != "" {
		return r.TenantID
	}
	return r.SchoolID
}

func (r LoginRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Code() == "" {
		errors["tenant_id"] = "Organization ID is required"
	}
	if r.Email == "" {
		errors["email"] = "Email is required"
	}
	if r.Password == "" {
		errors["password"] = "Password is required"
	}

	return errors
}

type ResetRequestRequest struct {
	TenantID string `json:"tenant_id"`
	Email    string `json:"email"`
}

func (r ResetRequestRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.TenantID == "" {
		errors["tenant_id"] = "Organization ID is required"
	}
	if r.Email == "" {
		errors["email"] = "Email is required"
	}

	return errors
}

type ResetConfirmRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

func (r ResetConfirmRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Token == "" {
		errors["token"] = "Reset token is required"
	}
	if r.NewPassword == "" {
		errors["new_password"] = "New password is required"
	} else if len(r.NewPassword) < 8 {
		errors["new_password"] = "Password must be at least 8 characters"
	}

	return errors
}

type RegisterResponse struct {
	TenantCode   string   `json:"tenant_code"`
	Status       string   `json:"status"`
	TempPassword string   `json:"temp_password,omitempty"`
	NextSteps    []string `json:"next_steps"`
}

type AuthResponse struct {
	Token  string    `json:"token"`
	Tenant TenantDTO `json:"tenant"`
}

type TenantDTO struct {
	ID           string `json:"id"`
	Code         string `json:"code"`
	Name         string `json:"name"`
	ContactEmail string `json:"contact_email"`
	AdminName    string `json:"admin_name"`
	Type         string `json:"type"`
	Status       string `json:"status"`
}

func NewTenantDTO(t *models.Tenant) TenantDTO {
	return TenantDTO{
		ID:           t.ID.String(),
		Code:         t.Code,
		Name:         t.Name,
		ContactEmail: t.ContactEmail,
		AdminName:    t.AdminName,
		Type:         string(t.Type),
		Status:       string(t.Status),
	}
}

type ResetRequestResponse struct {
	Message    string `json:"message"`
	ResetToken string `json:"reset_token,omitempty"`
	ExpiresAt  string `json:"expires_at,omitempty"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

func (r UpdateStatusRequest) Validate() map[string]string {
	errors := make(map[string]string)

	switch models.TenantStatus(r.Status) {
	case models.TenantStatusPending, models.TenantStatusActive, models.TenantStatusSuspended:
	default:
		errors["status"] = "Status must be one of: pending, active, suspended"
	}

	return errors
}
