package models

import "time"

type TenantType string

const (
	TenantTypeSchool      TenantType = "school"
	TenantTypeBusiness    TenantType = "business"
	TenantTypeHospital    TenantType = "hospital"
	TenantTypeAgency      TenantType = "agency"
	TenantTypeNGO         TenantType = "ngo"
	TenantTypeChurch      TenantType = "church"
	TenantTypeFactory     TenantType = "factory"
	TenantTypeAssociation TenantType = "association"
)

// Valid reports whether t is one of the known organization categories.
func (t TenantType) Valid() bool {
	switch t {
	case TenantTypeSchool, TenantTypeBusiness, TenantTypeHospital,
		TenantTypeAgency, TenantTypeNGO, TenantTypeChurch,
		TenantTypeFactory, TenantTypeAssociation:
		return true
	}
	return false
}

type TenantStatus string

const (
	TenantStatusPending   TenantStatus = "pending"
	TenantStatusActive    TenantStatus = "active"
	TenantStatusSuspended TenantStatus = "suspended"
)

// Tenant is a registered organization. The shared base record holds
// identity, status and credential state; category-specific fields live in
// the Profile payload keyed by Type.
type Tenant struct {
	Base
	Code               string     `gorm:"uniqueIndex;not null" json:"code"`
	Name               string     `gorm:"uniqueIndex;not null" json:"name"`
	RegistrationNumber string     `gorm:"uniqueIndex;not null" json:"registration_number"`
	ContactEmail       string     `gorm:"uniqueIndex;not null" json:"contact_email"`
	AdminName          string     `json:"admin_name"`
	Type               TenantType `gorm:"not null;index" json:"type"`
	Profile            JSONMap    `gorm:"type:jsonb" json:"profile,omitempty"`

	Status TenantStatus `gorm:"not null;index;default:'pending'" json:"status"`

	// Credential state
	PasswordHash      string     `gorm:"not null" json:"-"`
	FailedAttempts    int        `gorm:"not null;default:0" json:"-"`
	LockedUntil       *time.Time `json:"-"`
	ResetToken        string     `gorm:"index" json:"-"`
	ResetTokenExpires *time.Time `json:"-"`
	LastLoginAt       *time.Time `json:"last_login_at,omitempty"`
}

func (Tenant) TableName() string {
	return "tenants"
}

// Locked reports whether the tenant is inside an active lockout window.
func (t *Tenant) Locked(now time.Time) bool {
	return t.LockedUntil != nil && now.Before(*t.LockedUntil)
}
