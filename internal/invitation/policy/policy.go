// Package policy answers authorization questions over invitation snapshots.
// All predicates are pure: callers fetch a league's invitations once and
// evaluate as many checks as they need without further I/O.
package policy

import (
	"strings"

	"github.com/leaguehq/league-service/internal/invitation/model"
)

// Matches reports whether an invitation addresses the given identity.
// A resolved user id wins; otherwise the email is compared
// case-insensitively, so invitees who registered after being invited still
// match.
func Matches(inv model.Invitation, identity model.Identity) bool {
	if identity.UserID != "" && inv.UserID != nil && *inv.UserID == identity.UserID {
		return true
	}
	return identity.Email != "" && strings.EqualFold(inv.Email, identity.Email)
}

// IsMember reports whether the identity holds an accepted invitation.
func IsMember(invitations []model.Invitation, identity model.Identity) bool {
	for _, inv := range invitations {
		if inv.Status == model.StatusAccepted && Matches(inv, identity) {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the identity holds an accepted Admin invitation.
func IsAdmin(invitations []model.Invitation, identity model.Identity) bool {
	for _, inv := range invitations {
		if inv.Status == model.StatusAccepted && inv.Role == model.RoleAdmin && Matches(inv, identity) {
			return true
		}
	}
	return false
}

// IsInvited reports whether the identity has a pending invitation. The match
// is by email only: a pending invitation targets an address, not a resolved
// account.
func IsInvited(invitations []model.Invitation, identity model.Identity) bool {
	for _, inv := range invitations {
		if inv.Status == model.StatusPending && identity.Email != "" &&
			strings.EqualFold(inv.Email, identity.Email) {
			return true
		}
	}
	return false
}

// CanViewInvitations reports whether the identity may see a league's
// invitation list: members always, plus anyone currently invited.
func CanViewInvitations(invitations []model.Invitation, identity model.Identity) bool {
	return IsMember(invitations, identity) || IsInvited(invitations, identity)
}
