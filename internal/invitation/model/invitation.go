package model

import (
	"net/mail"
	"strings"
	"time"
)

// Role is the role an invitation grants once accepted.
type Role string

// Roles an invitation can carry.
const (
	RoleAdmin  Role = "Admin"
	RoleMember Role = "Member"
)

// Status is the lifecycle state of an invitation. Transitions are one-way:
// pending moves to accepted or declined, and nothing moves out of either.
type Status string

// Invitation statuses.
const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusDeclined Status = "declined"
)

// Invitation records one email's relationship to one league.
// Matches the invitations table schema.
type Invitation struct {
	ID        string    `gorm:"primaryKey;column:id;type:uuid" json:"id"`
	LeagueID  string    `gorm:"column:league_id;type:uuid;not null;index:idx_invitations_league" json:"league_id"`
	Email     string    `gorm:"column:email;type:varchar(255);not null" json:"email"`
	UserID    *string   `gorm:"column:user_id;type:uuid" json:"user_id,omitempty"`
	Role      Role      `gorm:"column:role;type:varchar(16);not null" json:"role"`
	Status    Status    `gorm:"column:status;type:varchar(16);not null;default:'pending'" json:"status"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz;not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz;not null;default:now()" json:"-"`
}

// TableName specifies the table name for GORM.
func (Invitation) TableName() string {
	return "invitations"
}

// IsActive reports whether the invitation still binds its email to the
// league (pending or accepted, not declined).
func (i Invitation) IsActive() bool {
	return i.Status == StatusPending || i.Status == StatusAccepted
}

// Identity is an authenticated caller: a stable user id plus the email the
// identity provider vouched for. UserID may be empty for invitees that were
// not registered when invited.
type Identity struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// ParseRole validates and normalizes a role string.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleMember:
		return Role(s), nil
	default:
		return "", ErrInvalidRole
	}
}

// ParseStatus validates and normalizes a status string.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusAccepted, StatusDeclined:
		return Status(s), nil
	default:
		return "", ErrInvalidStatus
	}
}

// ValidateEmail rejects empty or malformed invitation addresses.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ErrInvalidEmail
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return ErrInvalidEmail
	}
	return nil
}

// NormalizeEmail lowercases an address so lookups and uniqueness are
// case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
