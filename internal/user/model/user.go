// Package model defines user domain models.
package model

import (
	"strings"
	"time"
	"unicode/utf8"

	invitationModel "github.com/leaguehq/league-service/internal/invitation/model"
)

// User represents a registered account.
type User struct {
	ID           string    `gorm:"primaryKey;column:id" json:"id"`
	Username     string    `gorm:"column:username;not null" json:"username"`
	Email        string    `gorm:"column:email;not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"column:password_hash;not null" json:"-"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName overrides the table name used by gorm.
func (User) TableName() string {
	return "users"
}

const minPasswordLength = 8

// ValidateUsername checks that a username is non-empty after trimming.
func ValidateUsername(username string) error {
	if strings.TrimSpace(username) == "" {
		return ErrInvalidUsername
	}
	return nil
}

// ValidatePassword enforces the minimum password length.
func ValidatePassword(password string) error {
	if utf8.RuneCountInString(password) < minPasswordLength {
		return ErrInvalidPassword
	}
	return nil
}

// NormalizeEmail canonicalizes an email the same way invitations do, so
// invitation matching by email works across both tables.
func NormalizeEmail(email string) string {
	return invitationModel.NormalizeEmail(email)
}
