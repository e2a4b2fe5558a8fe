// Package service provides business logic for accounts: registration, login
// and email lookups for invitation resolution.
package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/leaguehq/league-service/internal/auth"
	userModel "github.com/leaguehq/league-service/internal/user/model"
	"github.com/leaguehq/league-service/internal/user/repository"
)

// Service defines the interface for user operations.
type Service interface {
	// Register creates an account and returns a signed token for it.
	Register(ctx context.Context, req *userModel.RegisterRequest) (*userModel.AuthResponse, error)

	// Login verifies credentials and returns a signed token.
	Login(ctx context.Context, req *userModel.LoginRequest) (*userModel.AuthResponse, error)

	// CheckEmail reports whether an email belongs to a registered user.
	CheckEmail(ctx context.Context, email string) (*userModel.CheckEmailResponse, error)

	// ResolveEmail returns the user id for an email, or "" when unknown.
	ResolveEmail(ctx context.Context, email string) (string, error)
}

type service struct {
	users  repository.Repository
	tokens *auth.Manager
	logger *zap.SugaredLogger
}

// New creates a new user service instance.
func New(users repository.Repository, tokens *auth.Manager, logger *zap.SugaredLogger) Service {
	return &service{users: users, tokens: tokens, logger: logger}
}

// Register creates an account and returns a signed token for it.
func (s *service) Register(ctx context.Context, req *userModel.RegisterRequest) (*userModel.AuthResponse, error) {
	if err := userModel.ValidateUsername(req.Username); err != nil {
		return nil, err
	}
	if err := userModel.ValidatePassword(req.Password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.users.Create(ctx, req.Username, req.Email, string(hash))
	if err != nil {
		return nil, err
	}
	s.logger.Infow("user registered", "user_id", user.ID)

	return s.authResponse(user)
}

// Login verifies credentials and returns a signed token.
func (s *service) Login(ctx context.Context, req *userModel.LoginRequest) (*userModel.AuthResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, userModel.ErrUserNotFound) {
			return nil, userModel.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, userModel.ErrInvalidCredentials
	}

	return s.authResponse(user)
}

// CheckEmail reports whether an email belongs to a registered user.
func (s *service) CheckEmail(ctx context.Context, email string) (*userModel.CheckEmailResponse, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, userModel.ErrUserNotFound) {
			return &userModel.CheckEmailResponse{Exists: false}, nil
		}
		return nil, err
	}
	return &userModel.CheckEmailResponse{Exists: true, UserID: user.ID}, nil
}

// ResolveEmail returns the user id for an email, or "" when unknown.
func (s *service) ResolveEmail(ctx context.Context, email string) (string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, userModel.ErrUserNotFound) {
			return "", nil
		}
		return "", err
	}
	return user.ID, nil
}

func (s *service) authResponse(user *userModel.User) (*userModel.AuthResponse, error) {
	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	return &userModel.AuthResponse{Token: token, User: *user}, nil
}
