// Package handler provides HTTP handlers for user endpoints.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	userModel "github.com/leaguehq/league-service/internal/user/model"
	"github.com/leaguehq/league-service/internal/user/service"
)

// Handler handles HTTP requests for user endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new user handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// Register handles POST /users/register request.
// @Summary Create an account
// @Tags Users
// @Accept json
// @Produce json
// @Param request body userModel.RegisterRequest true "Request"
// @Success 201 {object} userModel.AuthResponse "Account with token"
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 409 {object} ErrorResponse "Email already registered"
// @Router /users/register [post] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) Register(c *gin.Context) {
	var req userModel.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, userModel.ErrUserExists):
			errorResponse(c, "CONFLICT", err.Error(), http.StatusConflict)
		case errors.Is(err, userModel.ErrInvalidUsername),
			errors.Is(err, userModel.ErrInvalidPassword):
			errorResponse(c, "INVALID_REQUEST", err.Error(), http.StatusBadRequest)
		default:
			h.logger.Errorw("error registering user", "error", err)
			errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Login handles POST /users/login request.
// @Summary Authenticate and receive a token
// @Tags Users
// @Accept json
// @Produce json
// @Param request body userModel.LoginRequest true "Request"
// @Success 200 {object} userModel.AuthResponse "Account with token"
// @Failure 401 {object} ErrorResponse "Invalid credentials"
// @Router /users/login [post] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) Login(c *gin.Context) {
	var req userModel.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, userModel.ErrInvalidCredentials) {
			errorResponse(c, "UNAUTHORIZED", err.Error(), http.StatusUnauthorized)
			return
		}
		h.logger.Errorw("error logging in", "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// CheckEmail handles GET /users/check-email/:email request.
// @Summary Check whether an email belongs to a registered user
// @Tags Users
// @Produce json
// @Param email path string true "Email"
// @Success 200 {object} userModel.CheckEmailResponse "Lookup result"
// @Router /users/check-email/{email} [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) CheckEmail(c *gin.Context) {
	email := c.Param("email")
	if email == "" {
		errorResponse(c, "INVALID_REQUEST", "email parameter is required", http.StatusBadRequest)
		return
	}

	resp, err := h.service.CheckEmail(c.Request.Context(), email)
	if err != nil {
		h.logger.Errorw("error checking email", "email", email, "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, resp)
}
