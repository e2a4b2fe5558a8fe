package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	invitationModel "github.com/leaguehq/league-service/internal/invitation/model"
	leagueModel "github.com/leaguehq/league-service/internal/league/model"
)

// ErrorResponse represents error response structure matching OpenAPI spec.
type ErrorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// errorResponse creates error response matching OpenAPI spec.
func errorResponse(c *gin.Context, code string, message string, statusCode int) {
	resp := ErrorResponse{}
	resp.Error.Code = code
	resp.Error.Message = message
	c.JSON(statusCode, resp)
}

// notFoundResponse creates 404 error response.
func notFoundResponse(c *gin.Context, message string) {
	errorResponse(c, "NOT_FOUND", message, http.StatusNotFound)
}

// unauthorizedResponse creates 401 error response.
func unauthorizedResponse(c *gin.Context) {
	errorResponse(c, "UNAUTHORIZED", "authentication required", http.StatusUnauthorized)
}

// respondError maps domain errors to HTTP responses. Anything unmapped is a
// logged 500.
func (h *Handler) respondError(c *gin.Context, err error, logMessage string) {
	switch {
	case errors.Is(err, invitationModel.ErrInvalidEmail),
		errors.Is(err, invitationModel.ErrInvalidRole),
		errors.Is(err, invitationModel.ErrInvalidStatus),
		errors.Is(err, leagueModel.ErrInvalidLeagueName):
		errorResponse(c, "INVALID_REQUEST", err.Error(), http.StatusBadRequest)

	case errors.Is(err, leagueModel.ErrNotAdmin),
		errors.Is(err, leagueModel.ErrNotMember):
		errorResponse(c, "FORBIDDEN", err.Error(), http.StatusForbidden)

	case errors.Is(err, leagueModel.ErrLeagueNotFound),
		errors.Is(err, invitationModel.ErrInvitationNotFound),
		errors.Is(err, invitationModel.ErrNoPendingInvitation):
		notFoundResponse(c, err.Error())

	case errors.Is(err, invitationModel.ErrDuplicateInvitation),
		errors.Is(err, invitationModel.ErrInvitationNotPending):
		errorResponse(c, "CONFLICT", err.Error(), http.StatusConflict)

	default:
		h.logger.Errorw(logMessage, "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
	}
}
