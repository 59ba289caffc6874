package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// User represents a registered user.
type User struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	Name      string    `json:"name" gorm:"not null"`
	AvatarURL string    `json:"avatar_url,omitempty" gorm:"column:avatar_url"`

	// Authentication
	PasswordHash *string `json:"-" gorm:"column:password_hash"`

	// Timestamps
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at"`
}

// TableName returns the database table name.
func (User) TableName() string {
	return "users"
}

// IsEmailUser returns true if the user has a password credential.
func (u *User) IsEmailUser() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}

// AccountProvider identifies an external login provider.
type AccountProvider string

const (
	AccountProviderGoogle AccountProvider = "google"
)

// IsValid checks if the provider is supported.
func (p AccountProvider) IsValid() bool {
	return p == AccountProviderGoogle
}

// Account represents an external login account linked to a user.
type Account struct {
	ID                uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID            uuid.UUID       `json:"user_id" gorm:"type:uuid;not null;index"`
	Provider          AccountProvider `json:"provider" gorm:"not null"`
	ProviderAccountID string          `json:"provider_account_id" gorm:"not null"`
	Scopes            pq.StringArray  `json:"scopes" gorm:"type:text[]"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// TableName returns the database table name.
func (Account) TableName() string {
	return "accounts"
}

// UserResponse represents a user in API responses.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ToResponse converts a User to UserResponse.
func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		AvatarURL: u.AvatarURL,
		CreatedAt: u.CreatedAt,
	}
}
