// Package router provides league module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/leaguehq/league-service/internal/auth"
	invitationRepo "github.com/leaguehq/league-service/internal/invitation/repository"
	"github.com/leaguehq/league-service/internal/league/handler"
	leagueRepo "github.com/leaguehq/league-service/internal/league/repository"
	"github.com/leaguehq/league-service/internal/league/service"
)

// RegisterRoutes registers league module routes. All routes require an
// authenticated identity.
func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	manager *auth.Manager,
	directory service.UserDirectory,
	logger *zap.SugaredLogger,
) {
	svc := service.New(leagueRepo.New(db), invitationRepo.New(db), directory, db, logger)
	h := handler.New(svc, logger)

	leagues := r.Group("/leagues", auth.Middleware(manager))
	leagues.POST("", h.CreateLeague)
	leagues.GET("", h.ListLeagues)
	leagues.GET("/invitations", h.PendingInvitations)
	leagues.GET("/:leagueId", h.GetLeague)
	leagues.PUT("/:leagueId", h.UpdateLeague)
	leagues.PUT("/:leagueId/join", h.Join)
	leagues.PUT("/:leagueId/decline", h.Decline)
	leagues.POST("/:leagueId/invitations", h.Invite)
}
