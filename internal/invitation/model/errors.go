package model

import "errors"

var (
	// ErrInvalidEmail indicates an empty or malformed invitation email.
	ErrInvalidEmail = errors.New("invalid email address")
	// ErrInvalidRole indicates a role outside Admin/Member.
	ErrInvalidRole = errors.New("invalid role")
	// ErrInvalidStatus indicates a status outside pending/accepted/declined.
	ErrInvalidStatus = errors.New("invalid status")
	// ErrInvitationNotFound indicates the requested invitation does not exist.
	ErrInvitationNotFound = errors.New("invitation not found")
	// ErrNoPendingInvitation indicates no pending invitation exists for the
	// identity in the league.
	ErrNoPendingInvitation = errors.New("no pending invitation found for this user")
	// ErrDuplicateInvitation indicates an active invitation already exists
	// for the (league, email) pair.
	ErrDuplicateInvitation = errors.New("active invitation already exists for this email")
	// ErrInvitationNotPending indicates a status transition was attempted on
	// an invitation that already left the pending state.
	ErrInvitationNotPending = errors.New("invitation no longer pending")
)
