package model

import "errors"

var (
	// ErrUserExists is returned when registering an already used email.
	ErrUserExists = errors.New("email already registered")

	// ErrUserNotFound is returned when a user lookup finds nothing.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidCredentials is returned for a failed login. Deliberately the
	// same for unknown email and wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidUsername is returned for an empty username.
	ErrInvalidUsername = errors.New("username is required")

	// ErrInvalidPassword is returned for a password below the minimum length.
	ErrInvalidPassword = errors.New("password must be at least 8 characters")
)
