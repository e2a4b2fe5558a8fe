package model

import (
	invitationModel "github.com/leaguehq/league-service/internal/invitation/model"
)

// InviteInput is one invitee in a create or update request.
type InviteInput struct {
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role" binding:"required"`
}

// CreateLeagueRequest represents the request to create a league.
type CreateLeagueRequest struct {
	Name        string        `json:"name" binding:"required"`
	Invitations []InviteInput `json:"invitations"`
}

// UpdateLeagueRequest represents the request to rename a league and edit
// its invitations.
type UpdateLeagueRequest struct {
	Name        string        `json:"name" binding:"required"`
	Invitations []InviteInput `json:"invitations"`
}

// InviteRequest represents the request to invite a single email.
type InviteRequest struct {
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role" binding:"required"`
}

// Member is one entry of the derived roster: a user referenced by an
// accepted invitation.
type Member struct {
	UserID string               `json:"user_id,omitempty"`
	Email  string               `json:"email"`
	Role   invitationModel.Role `json:"role"`
}

// LeagueResponse represents a league with its invitations and derived
// roster.
type LeagueResponse struct {
	League      League                      `json:"league"`
	Invitations []invitationModel.Invitation `json:"invitations"`
	Members     []Member                    `json:"members"`
}

// PendingInvite is one entry of the current user's invitation feed.
type PendingInvite struct {
	InvitationID string       `json:"invitation_id"`
	League       LeagueSummary `json:"league"`
}

// LeagueSummary is the league reference embedded in feeds.
type LeagueSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Roster derives the member list from an invitation snapshot.
func Roster(invitations []invitationModel.Invitation) []Member {
	members := make([]Member, 0, len(invitations))
	for _, inv := range invitations {
		if inv.Status != invitationModel.StatusAccepted {
			continue
		}
		m := Member{Email: inv.Email, Role: inv.Role}
		if inv.UserID != nil {
			m.UserID = *inv.UserID
		}
		members = append(members, m)
	}
	return members
}
