// Package repository provides data access layer for the user module.
package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	userModel "github.com/leaguehq/league-service/internal/user/model"
)

// Repository defines the interface for user data access operations.
type Repository interface {
	// Create stores a new user. Email must already be normalized.
	Create(ctx context.Context, username, email, passwordHash string) (*userModel.User, error)

	// GetByID finds a user by id.
	GetByID(ctx context.Context, id string) (*userModel.User, error)

	// GetByEmail finds a user by normalized email.
	GetByEmail(ctx context.Context, email string) (*userModel.User, error)
}

type repository struct {
	db *gorm.DB
}

// New creates a new user repository instance.
func New(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Create stores a new user.
func (r *repository) Create(ctx context.Context, username, email, passwordHash string) (*userModel.User, error) {
	now := time.Now()
	user := &userModel.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        userModel.NormalizeEmail(email),
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isDuplicateError(err) {
			return nil, userModel.ErrUserExists
		}
		return nil, err
	}
	return user, nil
}

// GetByID finds a user by id.
func (r *repository) GetByID(ctx context.Context, id string) (*userModel.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

// GetByEmail finds a user by normalized email.
func (r *repository) GetByEmail(ctx context.Context, email string) (*userModel.User, error) {
	return r.findOne(ctx, "email = ?", userModel.NormalizeEmail(email))
}

func (r *repository) findOne(ctx context.Context, query string, args ...interface{}) (*userModel.User, error) {
	var user userModel.User
	err := r.db.WithContext(ctx).
		Where(query, args...).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, userModel.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// isDuplicateError checks if error is a unique constraint violation.
func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint")
}
