package models

import (
	"time"
)

const (
	ProviderPassword = "password"
	ProviderGoogle   = "google"
	ProviderGitHub   = "github"
)

type User struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	FullName    string     `json:"full_name" gorm:"not null"`
	Email       string     `json:"email" gorm:"unique;not null"`
	Password    string     `json:"-"` // empty for OAuth-only accounts
	Company     string     `json:"company"`
	Role        string     `json:"role"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	Provider    string     `json:"provider" gorm:"not null;default:'password'"`
	IsVerified  bool       `json:"is_verified" gorm:"default:false"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Principal is the identity resolved from a bearer token for a single
// request. It is never persisted.
type Principal struct {
	UserID uint
	Email  string
}
