// Package handler provides HTTP handlers for league endpoints.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/leaguehq/league-service/internal/auth"
	leagueModel "github.com/leaguehq/league-service/internal/league/model"
	"github.com/leaguehq/league-service/internal/league/service"
)

// Handler handles HTTP requests for league endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new league handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// CreateLeague handles POST /leagues request.
// @Summary Create a league and invite initial members
// @Tags Leagues
// @Accept json
// @Produce json
// @Param request body leagueModel.CreateLeagueRequest true "Request"
// @Success 201 {object} leagueModel.LeagueResponse "Created league"
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /leagues [post] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) CreateLeague(c *gin.Context) {
	identity, ok := auth.IdentityFrom(c)
	if !ok {
		unauthorizedResponse(c)
		return
	}

	var req leagueModel.CreateLeagueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.CreateLeague(c.Request.Context(), identity, &req)
	if err != nil {
		h.respondError(c, err, "error creating league")
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// ListLeagues handles GET /leagues request.
// @Summary List the current user's leagues by invitation status
// @Tags Leagues
// @Produce json
// @Param status query string true "Invitation status (pending, accepted, declined)"
// @Success 200 {array} leagueModel.League "Leagues"
// @Failure 400 {object} ErrorResponse "Bad request (unknown status)"
// @Router /leagues [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) ListLeagues(c *gin.Context) {
	identity, ok := auth.IdentityFrom(c)
	if !ok {
		unauthorizedResponse(c)
		return
	}

	status := c.Query("status")
	if status == "" {
		errorResponse(c, "INVALID_REQUEST", "status parameter is required", http.StatusBadRequest)
		return
	}

	leagues, err := h.service.ListLeaguesForUser(c.Request.Context(), identity, status)
	if err != nil {
		h.respondError(c, err, "error listing leagues")
		return
	}

	c.JSON(http.StatusOK, leagues)
}

// PendingInvitations handles GET /leagues/invitations request.
// @Summary List the current user's pending invitations
// @Tags Leagues
// @Produce json
// @Success 200 {array} leagueModel.PendingInvite "Pending invitations"
// @Router /leagues/invitations [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) PendingInvitations(c *gin.Context) {
	identity, ok := auth.IdentityFrom(c)
	if !ok {
		unauthorizedResponse(c)
		return
	}

	feed, err := h.service.PendingInvitations(c.Request.Context(), identity)
	if err != nil {
		h.respondError(c, err, "error listing pending invitations")
		return
	}

	c.JSON(http.StatusOK, feed)
}

// GetLeague handles GET /leagues/:leagueId request.
// @Summary Get a league with invitations and roster
// @Tags Leagues
// @Produce json
// @Param leagueId path string true "League ID"
// @Success 200 {object} leagueModel.LeagueResponse "League"
// @Failure 403 {object} ErrorResponse "Not a member or invitee"
// @Failure 404 {object} ErrorResponse "League not found"
// @Router /leagues/{leagueId} [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) GetLeague(c *gin.Context) {
	identity, ok := auth.IdentityFrom(c)
	if !ok {
		unauthorizedResponse(c)
		return
	}

	resp, err := h.service.GetLeague(c.Request.Context(), identity, c.Param("leagueId"))
	if err != nil {
		h.respondError(c, err, "error getting league")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// UpdateLeague handles PUT /leagues/:leagueId request.
// @Summary Rename a league and edit its invitations
// @Tags Leagues
// @Accept json
// @Produce json
// @Param leagueId path string true "League ID"
// @Param request body leagueModel.UpdateLeagueRequest true "Request"
// @Success 200 {object} leagueModel.LeagueResponse "Updated league"
// @Failure 403 {object} ErrorResponse "Admin role required"
// @Failure 404 {object} ErrorResponse "League not found"
// @Router /leagues/{leagueId} [put] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) UpdateLeague(c *gin.Context) {
	identity, ok := auth.IdentityFrom(c)
	if !ok {
		unauthorizedResponse(c)
		return
	}

	var req leagueModel.UpdateLeagueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.UpdateLeague(c.Request.Context(), identity, c.Param("leagueId"), &req)
	if err != nil {
		h.respondError(c, err, "error updating league")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Invite handles POST /leagues/:leagueId/invitations request.
// @Summary Invite an email to a league
// @Tags Leagues
// @Accept json
// @Produce json
// @Param leagueId path string true "League ID"
// @Param request body leagueModel.InviteRequest true "Request"
// @Success 201 {object} invitationModel.Invitation "Created invitation"
// @Failure 403 {object} ErrorResponse "Admin role required"
// @Failure 409 {object} ErrorResponse "Active invitation already exists"
// @Router /leagues/{leagueId}/invitations [post] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) Invite(c *gin.Context) {
	identity, ok := auth.IdentityFrom(c)
	if !ok {
		unauthorizedResponse(c)
		return
	}

	var req leagueModel.InviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	invitation, err := h.service.Invite(c.Request.Context(), identity, c.Param("leagueId"), &req)
	if err != nil {
		h.respondError(c, err, "error creating invitation")
		return
	}

	c.JSON(http.StatusCreated, invitation)
}

// Join handles PUT /leagues/:leagueId/join request.
// @Summary Accept the current user's pending invitation
// @Tags Leagues
// @Produce json
// @Param leagueId path string true "League ID"
// @Success 200 {object} leagueModel.LeagueResponse "League after joining"
// @Failure 404 {object} ErrorResponse "No pending invitation"
// @Failure 409 {object} ErrorResponse "Invitation no longer pending"
// @Router /leagues/{leagueId}/join [put] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) Join(c *gin.Context) {
	identity, ok := auth.IdentityFrom(c)
	if !ok {
		unauthorizedResponse(c)
		return
	}

	resp, err := h.service.Join(c.Request.Context(), identity, c.Param("leagueId"))
	if err != nil {
		h.respondError(c, err, "error joining league")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Decline handles PUT /leagues/:leagueId/decline request.
// @Summary Decline the current user's pending invitation
// @Tags Leagues
// @Produce json
// @Param leagueId path string true "League ID"
// @Success 200 {object} invitationModel.Invitation "Declined invitation"
// @Failure 404 {object} ErrorResponse "No pending invitation"
// @Router /leagues/{leagueId}/decline [put] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) Decline(c *gin.Context) {
	identity, ok := auth.IdentityFrom(c)
	if !ok {
		unauthorizedResponse(c)
		return
	}

	invitation, err := h.service.Decline(c.Request.Context(), identity, c.Param("leagueId"))
	if err != nil {
		h.respondError(c, err, "error declining invitation")
		return
	}

	c.JSON(http.StatusOK, invitation)
}
