package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuthProvider identifies where a user's identity originates.
type AuthProvider string

const (
	ProviderLocal  AuthProvider = "LOCAL"
	ProviderGoogle AuthProvider = "GOOGLE"
	ProviderGithub AuthProvider = "GITHUB"
)

func (p AuthProvider) Valid() bool {
	switch p {
	case ProviderLocal, ProviderGoogle, ProviderGithub:
		return true
	}
	return false
}

// Role is the authorization level of a user.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// User is the canonical identity record. Email is the unique business key;
// (provider, provider_id) is unique for OAuth users. Users are soft-deleted only.
type User struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email        string         `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Username     *string        `gorm:"size:100;uniqueIndex" json:"username,omitempty"`
	PasswordHash string         `gorm:"size:255" json:"-"`
	FirstName    *string        `gorm:"size:100" json:"first_name,omitempty"`
	LastName     *string        `gorm:"size:100" json:"last_name,omitempty"`
	AvatarURL    *string        `gorm:"type:text" json:"avatar_url,omitempty"`
	Provider     AuthProvider   `gorm:"size:20;not null;default:'LOCAL';uniqueIndex:idx_users_provider_identity" json:"provider"`
	ProviderID   *string        `gorm:"size:255;uniqueIndex:idx_users_provider_identity" json:"-"`
	Role         Role           `gorm:"size:20;not null;default:'USER'" json:"role"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
