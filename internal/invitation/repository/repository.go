// Package repository provides data access layer for the invitation module.
package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/leaguehq/league-service/internal/invitation/model"
)

// Repository defines the interface for invitation data access operations.
// Status writes only happen through Create/CreateAccepted and Transition;
// there is deliberately no way to set a status field directly.
type Repository interface {
	// Create creates a pending invitation for (leagueID, email).
	Create(ctx context.Context, leagueID, email string, role model.Role, userID *string) (*model.Invitation, error)

	// CreateAccepted creates an invitation already in the accepted state.
	// Used for the founder invitation at league creation.
	CreateAccepted(ctx context.Context, leagueID, email string, role model.Role, userID *string) (*model.Invitation, error)

	// GetByID finds an invitation by id.
	GetByID(ctx context.Context, id string) (*model.Invitation, error)

	// FindActiveFor returns the active (pending or accepted) invitation for
	// the identity in the league: user id match first, email fallback.
	FindActiveFor(ctx context.Context, leagueID string, identity model.Identity) (*model.Invitation, error)

	// FindPendingFor returns the pending invitation the identity may act on.
	// Email match comes first: an invitee may not have been a resolved user
	// when the invitation was created.
	FindPendingFor(ctx context.Context, leagueID string, identity model.Identity) (*model.Invitation, error)

	// FindActiveByEmail returns the active invitation for an email address.
	FindActiveByEmail(ctx context.Context, leagueID, email string) (*model.Invitation, error)

	// Transition moves an invitation from pending to accepted or declined as
	// a single conditional update. Fails with ErrInvitationNotPending if the
	// stored status is no longer pending.
	Transition(ctx context.Context, id string, to model.Status, actor model.Identity) (*model.Invitation, error)

	// UpdateRole changes the role of an existing invitation.
	UpdateRole(ctx context.Context, id string, role model.Role) (*model.Invitation, error)

	// ListByLeague returns all invitations of a league.
	ListByLeague(ctx context.Context, leagueID string) ([]model.Invitation, error)

	// ListByIdentity returns invitations addressing the identity, optionally
	// filtered by status (empty status means all).
	ListByIdentity(ctx context.Context, identity model.Identity, status model.Status) ([]model.Invitation, error)
}

type repository struct {
	db *gorm.DB
}

// New creates a new invitation repository instance.
func New(db *gorm.DB) Repository {
	return &repository{db: db}
}

var activeStatuses = []model.Status{model.StatusPending, model.StatusAccepted}

func (r *repository) Create(
	ctx context.Context,
	leagueID, email string,
	role model.Role,
	userID *string,
) (*model.Invitation, error) {
	return r.insert(ctx, leagueID, email, role, userID, model.StatusPending)
}

func (r *repository) CreateAccepted(
	ctx context.Context,
	leagueID, email string,
	role model.Role,
	userID *string,
) (*model.Invitation, error) {
	return r.insert(ctx, leagueID, email, role, userID, model.StatusAccepted)
}

func (r *repository) insert(
	ctx context.Context,
	leagueID, email string,
	role model.Role,
	userID *string,
	status model.Status,
) (*model.Invitation, error) {
	if err := model.ValidateEmail(email); err != nil {
		return nil, err
	}
	if _, err := model.ParseRole(string(role)); err != nil {
		return nil, err
	}

	email = model.NormalizeEmail(email)

	// Friendly pre-check; the partial unique index stays authoritative
	// under concurrent inserts.
	if _, err := r.FindActiveByEmail(ctx, leagueID, email); err == nil {
		return nil, model.ErrDuplicateInvitation
	} else if !errors.Is(err, model.ErrInvitationNotFound) {
		return nil, err
	}

	now := time.Now()
	inv := &model.Invitation{
		ID:        uuid.NewString(),
		LeagueID:  leagueID,
		Email:     email,
		UserID:    userID,
		Role:      role,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := r.db.WithContext(ctx).Create(inv).Error; err != nil {
		if isDuplicateError(err) {
			return nil, model.ErrDuplicateInvitation
		}
		return nil, err
	}

	return inv, nil
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

func (r *repository) GetByID(ctx context.Context, id string) (*model.Invitation, error) {
	var inv model.Invitation
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&inv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrInvitationNotFound
		}
		return nil, err
	}
	return &inv, nil
}

func (r *repository) FindActiveFor(
	ctx context.Context,
	leagueID string,
	identity model.Identity,
) (*model.Invitation, error) {
	if identity.UserID != "" {
		inv, err := r.findOne(ctx, "league_id = ? AND user_id = ? AND status IN ?",
			leagueID, identity.UserID, activeStatuses)
		if err == nil || !errors.Is(err, model.ErrInvitationNotFound) {
			return inv, err
		}
	}
	if identity.Email != "" {
		return r.FindActiveByEmail(ctx, leagueID, identity.Email)
	}
	return nil, model.ErrInvitationNotFound
}

func (r *repository) FindPendingFor(
	ctx context.Context,
	leagueID string,
	identity model.Identity,
) (*model.Invitation, error) {
	if identity.Email != "" {
		inv, err := r.findOne(ctx, "league_id = ? AND email = ? AND status = ?",
			leagueID, model.NormalizeEmail(identity.Email), model.StatusPending)
		if err == nil || !errors.Is(err, model.ErrInvitationNotFound) {
			return inv, err
		}
	}
	if identity.UserID != "" {
		return r.findOne(ctx, "league_id = ? AND user_id = ? AND status = ?",
			leagueID, identity.UserID, model.StatusPending)
	}
	return nil, model.ErrInvitationNotFound
}

func (r *repository) FindActiveByEmail(ctx context.Context, leagueID, email string) (*model.Invitation, error) {
	return r.findOne(ctx, "league_id = ? AND email = ? AND status IN ?",
		leagueID, model.NormalizeEmail(email), activeStatuses)
}

func (r *repository) findOne(ctx context.Context, query string, args ...interface{}) (*model.Invitation, error) {
	var inv model.Invitation
	err := r.db.WithContext(ctx).
		Where(query, args...).
		First(&inv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrInvitationNotFound
		}
		return nil, err
	}
	return &inv, nil
}

// Transition performs the compare-and-swap on status. The WHERE clause keys
// on the current pending status, so of two concurrent transitions exactly
// one sees RowsAffected == 1. When the actor carries a resolved user id and
// the row was created before the invitee registered, the id is backfilled in
// the same update.
func (r *repository) Transition(
	ctx context.Context,
	id string,
	to model.Status,
	actor model.Identity,
) (*model.Invitation, error) {
	if to != model.StatusAccepted && to != model.StatusDeclined {
		return nil, model.ErrInvalidStatus
	}

	updates := map[string]interface{}{
		"status":     to,
		"updated_at": time.Now(),
	}
	if actor.UserID != "" {
		updates["user_id"] = gorm.Expr("COALESCE(user_id, ?)", actor.UserID)
	}

	result := r.db.WithContext(ctx).
		Model(&model.Invitation{}).
		Where("id = ? AND status = ?", id, model.StatusPending).
		Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		// Absent row and already-settled row are different failures.
		if _, err := r.GetByID(ctx, id); err != nil {
			return nil, err
		}
		return nil, model.ErrInvitationNotPending
	}

	return r.GetByID(ctx, id)
}

func (r *repository) UpdateRole(ctx context.Context, id string, role model.Role) (*model.Invitation, error) {
	if _, err := model.ParseRole(string(role)); err != nil {
		return nil, err
	}

	result := r.db.WithContext(ctx).
		Model(&model.Invitation{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"role":       role,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, model.ErrInvitationNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *repository) ListByLeague(ctx context.Context, leagueID string) ([]model.Invitation, error) {
	var invitations []model.Invitation
	err := r.db.WithContext(ctx).
		Where("league_id = ?", leagueID).
		Order("created_at ASC").
		Find(&invitations).Error
	if err != nil {
		return nil, err
	}
	if invitations == nil {
		return []model.Invitation{}, nil
	}
	return invitations, nil
}

func (r *repository) ListByIdentity(
	ctx context.Context,
	identity model.Identity,
	status model.Status,
) ([]model.Invitation, error) {
	query := r.db.WithContext(ctx)

	email := model.NormalizeEmail(identity.Email)
	switch {
	case identity.UserID != "" && email != "":
		query = query.Where("user_id = ? OR email = ?", identity.UserID, email)
	case identity.UserID != "":
		query = query.Where("user_id = ?", identity.UserID)
	case email != "":
		query = query.Where("email = ?", email)
	default:
		return []model.Invitation{}, nil
	}

	if status != "" {
		query = query.Where("status = ?", status)
	}

	var invitations []model.Invitation
	if err := query.Order("created_at ASC").Find(&invitations).Error; err != nil {
		return nil, err
	}
	if invitations == nil {
		return []model.Invitation{}, nil
	}
	return invitations, nil
}
