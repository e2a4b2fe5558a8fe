// Package repository provides data access layer for the league module.
package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	leagueModel "github.com/leaguehq/league-service/internal/league/model"
)

// Repository defines the interface for league data access operations.
type Repository interface {
	// Create creates a new league.
	Create(ctx context.Context, name string) (*leagueModel.League, error)

	// GetByID finds a league by id.
	GetByID(ctx context.Context, id string) (*leagueModel.League, error)

	// Rename changes a league's name.
	Rename(ctx context.Context, id, name string) error

	// ListByIDs returns the leagues with the given ids, in input order.
	ListByIDs(ctx context.Context, ids []string) ([]leagueModel.League, error)
}

type repository struct {
	db *gorm.DB
}

// New creates a new league repository instance.
func New(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Create creates a new league.
func (r *repository) Create(ctx context.Context, name string) (*leagueModel.League, error) {
	if strings.TrimSpace(name) == "" {
		return nil, leagueModel.ErrInvalidLeagueName
	}

	now := time.Now()
	league := &leagueModel.League{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := r.db.WithContext(ctx).Create(league).Error; err != nil {
		return nil, err
	}

	return league, nil
}

// GetByID finds a league by id.
func (r *repository) GetByID(ctx context.Context, id string) (*leagueModel.League, error) {
	var league leagueModel.League
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&league).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, leagueModel.ErrLeagueNotFound
		}
		return nil, err
	}
	return &league, nil
}

// Rename changes a league's name.
func (r *repository) Rename(ctx context.Context, id, name string) error {
	if strings.TrimSpace(name) == "" {
		return leagueModel.ErrInvalidLeagueName
	}

	result := r.db.WithContext(ctx).
		Model(&leagueModel.League{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"name":       name,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return leagueModel.ErrLeagueNotFound
	}
	return nil
}

// ListByIDs returns the leagues with the given ids, in input order.
func (r *repository) ListByIDs(ctx context.Context, ids []string) ([]leagueModel.League, error) {
	if len(ids) == 0 {
		return []leagueModel.League{}, nil
	}

	var leagues []leagueModel.League
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&leagues).Error
	if err != nil {
		return nil, err
	}

	byID := make(map[string]leagueModel.League, len(leagues))
	for _, l := range leagues {
		byID[l.ID] = l
	}

	ordered := make([]leagueModel.League, 0, len(leagues))
	for _, id := range ids {
		if l, ok := byID[id]; ok {
			ordered = append(ordered, l)
		}
	}
	return ordered, nil
}
