// Package service provides business logic for league membership: creating
// leagues, inviting users, and executing join/decline transitions.
package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	invitationModel "github.com/leaguehq/league-service/internal/invitation/model"
	"github.com/leaguehq/league-service/internal/invitation/policy"
	invitationRepo "github.com/leaguehq/league-service/internal/invitation/repository"
	leagueModel "github.com/leaguehq/league-service/internal/league/model"
	leagueRepo "github.com/leaguehq/league-service/internal/league/repository"
)

// UserDirectory resolves an email to a user id. An unknown email is not an
// error: invitees do not have to be registered yet.
type UserDirectory interface {
	ResolveEmail(ctx context.Context, email string) (string, error)
}

// Service defines the interface for league membership operations.
type Service interface {
	// CreateLeague creates a league with a pre-accepted Admin invitation for
	// the creator, then invites the given emails best-effort.
	CreateLeague(ctx context.Context, creator invitationModel.Identity, req *leagueModel.CreateLeagueRequest) (*leagueModel.LeagueResponse, error)

	// GetLeague returns a league with invitations and roster. Visible to
	// members and current invitees only.
	GetLeague(ctx context.Context, identity invitationModel.Identity, leagueID string) (*leagueModel.LeagueResponse, error)

	// UpdateLeague renames a league and applies invitation edits. Admins only.
	UpdateLeague(ctx context.Context, actingUser invitationModel.Identity, leagueID string, req *leagueModel.UpdateLeagueRequest) (*leagueModel.LeagueResponse, error)

	// Invite creates a pending invitation. Admins only.
	Invite(ctx context.Context, actingUser invitationModel.Identity, leagueID string, req *leagueModel.InviteRequest) (*invitationModel.Invitation, error)

	// Join accepts the identity's pending invitation.
	Join(ctx context.Context, identity invitationModel.Identity, leagueID string) (*leagueModel.LeagueResponse, error)

	// Decline declines the identity's pending invitation.
	Decline(ctx context.Context, identity invitationModel.Identity, leagueID string) (*invitationModel.Invitation, error)

	// ListLeaguesForUser returns leagues where the identity has an
	// invitation with the given status.
	ListLeaguesForUser(ctx context.Context, identity invitationModel.Identity, status string) ([]leagueModel.League, error)

	// PendingInvitations returns the identity's pending invitation feed.
	PendingInvitations(ctx context.Context, identity invitationModel.Identity) ([]leagueModel.PendingInvite, error)
}

type service struct {
	leagues     leagueRepo.Repository
	invitations invitationRepo.Repository
	directory   UserDirectory
	db          *gorm.DB
	logger      *zap.SugaredLogger
}

// New creates a new league service instance.
func New(
	leagues leagueRepo.Repository,
	invitations invitationRepo.Repository,
	directory UserDirectory,
	db *gorm.DB,
	logger *zap.SugaredLogger,
) Service {
	return &service{
		leagues:     leagues,
		invitations: invitations,
		directory:   directory,
		db:          db,
		logger:      logger,
	}
}

// CreateLeague creates the league and its founder invitation atomically.
// Invitee creation happens after the transaction, one attempt per invitee:
// a duplicate or failed invitee never rolls back the league itself.
func (s *service) CreateLeague(
	ctx context.Context,
	creator invitationModel.Identity,
	req *leagueModel.CreateLeagueRequest,
) (*leagueModel.LeagueResponse, error) {
	if req.Name == "" {
		return nil, leagueModel.ErrInvalidLeagueName
	}

	// Reject malformed invitees before anything is written.
	roles := make([]invitationModel.Role, len(req.Invitations))
	for i, invitee := range req.Invitations {
		if err := invitationModel.ValidateEmail(invitee.Email); err != nil {
			return nil, err
		}
		role, err := invitationModel.ParseRole(invitee.Role)
		if err != nil {
			return nil, err
		}
		roles[i] = role
	}

	var league *leagueModel.League
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var txErr error
		league, txErr = leagueRepo.New(tx).Create(ctx, req.Name)
		if txErr != nil {
			return txErr
		}

		var founderID *string
		if creator.UserID != "" {
			founderID = &creator.UserID
		}
		_, txErr = invitationRepo.New(tx).CreateAccepted(
			ctx, league.ID, creator.Email, invitationModel.RoleAdmin, founderID)
		return txErr
	})
	if err != nil {
		return nil, err
	}

	for i, invitee := range req.Invitations {
		if err := s.createInvitation(ctx, league.ID, invitee.Email, roles[i]); err != nil {
			if errors.Is(err, invitationModel.ErrDuplicateInvitation) {
				s.logger.Infow("skipping duplicate invitee",
					"league_id", league.ID, "email", invitee.Email)
				continue
			}
			return nil, err
		}
	}

	return s.buildResponse(ctx, league)
}

// createInvitation resolves the email and creates a pending invitation.
func (s *service) createInvitation(ctx context.Context, leagueID, email string, role invitationModel.Role) error {
	var userID *string
	resolved, err := s.directory.ResolveEmail(ctx, email)
	if err != nil {
		return err
	}
	if resolved != "" {
		userID = &resolved
	}

	_, err = s.invitations.Create(ctx, leagueID, email, role, userID)
	return err
}

func (s *service) GetLeague(
	ctx context.Context,
	identity invitationModel.Identity,
	leagueID string,
) (*leagueModel.LeagueResponse, error) {
	league, err := s.leagues.GetByID(ctx, leagueID)
	if err != nil {
		return nil, err
	}

	invitations, err := s.invitations.ListByLeague(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	if !policy.CanViewInvitations(invitations, identity) {
		return nil, leagueModel.ErrNotMember
	}

	return &leagueModel.LeagueResponse{
		League:      *league,
		Invitations: invitations,
		Members:     leagueModel.Roster(invitations),
	}, nil
}

func (s *service) UpdateLeague(
	ctx context.Context,
	actingUser invitationModel.Identity,
	leagueID string,
	req *leagueModel.UpdateLeagueRequest,
) (*leagueModel.LeagueResponse, error) {
	league, err := s.leagues.GetByID(ctx, leagueID)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.invitations.ListByLeague(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	if !policy.IsAdmin(snapshot, actingUser) {
		return nil, leagueModel.ErrNotAdmin
	}

	roles := make([]invitationModel.Role, len(req.Invitations))
	for i, edit := range req.Invitations {
		if err := invitationModel.ValidateEmail(edit.Email); err != nil {
			return nil, err
		}
		role, err := invitationModel.ParseRole(edit.Role)
		if err != nil {
			return nil, err
		}
		roles[i] = role
	}

	if err := s.leagues.Rename(ctx, leagueID, req.Name); err != nil {
		return nil, err
	}
	league.Name = req.Name

	for i, edit := range req.Invitations {
		existing, err := s.invitations.FindActiveByEmail(ctx, leagueID, edit.Email)
		switch {
		case err == nil:
			if existing.Role != roles[i] {
				if _, err := s.invitations.UpdateRole(ctx, existing.ID, roles[i]); err != nil {
					return nil, err
				}
			}
		case errors.Is(err, invitationModel.ErrInvitationNotFound):
			if err := s.createInvitation(ctx, leagueID, edit.Email, roles[i]); err != nil &&
				!errors.Is(err, invitationModel.ErrDuplicateInvitation) {
				return nil, err
			}
		default:
			return nil, err
		}
	}

	return s.buildResponse(ctx, league)
}

func (s *service) Invite(
	ctx context.Context,
	actingUser invitationModel.Identity,
	leagueID string,
	req *leagueModel.InviteRequest,
) (*invitationModel.Invitation, error) {
	if _, err := s.leagues.GetByID(ctx, leagueID); err != nil {
		return nil, err
	}

	snapshot, err := s.invitations.ListByLeague(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	if !policy.IsAdmin(snapshot, actingUser) {
		return nil, leagueModel.ErrNotAdmin
	}

	role, err := invitationModel.ParseRole(req.Role)
	if err != nil {
		return nil, err
	}

	var userID *string
	resolved, err := s.directory.ResolveEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if resolved != "" {
		userID = &resolved
	}

	return s.invitations.Create(ctx, leagueID, req.Email, role, userID)
}

func (s *service) Join(
	ctx context.Context,
	identity invitationModel.Identity,
	leagueID string,
) (*leagueModel.LeagueResponse, error) {
	league, err := s.leagues.GetByID(ctx, leagueID)
	if err != nil {
		return nil, err
	}

	invitation, err := s.findPending(ctx, leagueID, identity)
	if err != nil {
		return nil, err
	}

	if _, err := s.invitations.Transition(ctx, invitation.ID, invitationModel.StatusAccepted, identity); err != nil {
		return nil, err
	}

	return s.buildResponse(ctx, league)
}

func (s *service) Decline(
	ctx context.Context,
	identity invitationModel.Identity,
	leagueID string,
) (*invitationModel.Invitation, error) {
	if _, err := s.leagues.GetByID(ctx, leagueID); err != nil {
		return nil, err
	}

	invitation, err := s.findPending(ctx, leagueID, identity)
	if err != nil {
		return nil, err
	}

	return s.invitations.Transition(ctx, invitation.ID, invitationModel.StatusDeclined, identity)
}

// findPending maps a missing invitation to the caller-facing error: a second
// join or decline fails cleanly instead of double-transitioning.
func (s *service) findPending(
	ctx context.Context,
	leagueID string,
	identity invitationModel.Identity,
) (*invitationModel.Invitation, error) {
	invitation, err := s.invitations.FindPendingFor(ctx, leagueID, identity)
	if err != nil {
		if errors.Is(err, invitationModel.ErrInvitationNotFound) {
			return nil, invitationModel.ErrNoPendingInvitation
		}
		return nil, err
	}
	return invitation, nil
}

func (s *service) ListLeaguesForUser(
	ctx context.Context,
	identity invitationModel.Identity,
	status string,
) ([]leagueModel.League, error) {
	parsed, err := invitationModel.ParseStatus(status)
	if err != nil {
		return nil, err
	}

	invitations, err := s.invitations.ListByIdentity(ctx, identity, parsed)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(invitations))
	ids := make([]string, 0, len(invitations))
	for _, inv := range invitations {
		if !seen[inv.LeagueID] {
			seen[inv.LeagueID] = true
			ids = append(ids, inv.LeagueID)
		}
	}

	return s.leagues.ListByIDs(ctx, ids)
}

func (s *service) PendingInvitations(
	ctx context.Context,
	identity invitationModel.Identity,
) ([]leagueModel.PendingInvite, error) {
	invitations, err := s.invitations.ListByIdentity(ctx, identity, invitationModel.StatusPending)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(invitations))
	for _, inv := range invitations {
		ids = append(ids, inv.LeagueID)
	}
	leagues, err := s.leagues.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(leagues))
	for _, l := range leagues {
		names[l.ID] = l.Name
	}

	feed := make([]leagueModel.PendingInvite, 0, len(invitations))
	for _, inv := range invitations {
		name, ok := names[inv.LeagueID]
		if !ok {
			// League vanished under the invitation; skip rather than fail the feed.
			s.logger.Warnw("pending invitation references missing league",
				"invitation_id", inv.ID, "league_id", inv.LeagueID)
			continue
		}
		feed = append(feed, leagueModel.PendingInvite{
			InvitationID: inv.ID,
			League:       leagueModel.LeagueSummary{ID: inv.LeagueID, Name: name},
		})
	}
	return feed, nil
}

func (s *service) buildResponse(ctx context.Context, league *leagueModel.League) (*leagueModel.LeagueResponse, error) {
	invitations, err := s.invitations.ListByLeague(ctx, league.ID)
	if err != nil {
		return nil, err
	}
	return &leagueModel.LeagueResponse{
		League:      *league,
		Invitations: invitations,
		Members:     leagueModel.Roster(invitations),
	}, nil
}
