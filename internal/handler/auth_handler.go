package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/lms-ai-api/internal/dto"
	"github.com/noah-isme/lms-ai-api/internal/middleware"
	"github.com/noah-isme/lms-ai-api/internal/models"
	appErrors "github.com/noah-isme/lms-ai-api/pkg/errors"
	"github.com/noah-isme/lms-ai-api/pkg/response"
)

type authService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Logout(ctx context.Context, claims *models.JWTClaims)
}

// AuthHandler wires HTTP endpoints to the auth service.
type AuthHandler struct {
	base
	service authService
}

// NewAuthHandler creates a new handler.
func NewAuthHandler(svc authService, notes notificationLister) *AuthHandler {
	return &AuthHandler{base: base{notes: notes}, service: svc}
}

// Login godoc
// @Summary Authenticate user
// @Description Authenticate user by username and password
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body dto.LoginRequest true "Login payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid login payload"))
		return
	}

	res, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, res)
}

// Logout godoc
// @Summary Logout current session
// @Description Clear the session behind the access token
// @Tags Authentication
// @Produce json
// @Success 204 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	claims, ok := c.Get(middleware.ContextUserKey)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	h.service.Logout(c.Request.Context(), claims.(*models.JWTClaims))
	response.NoContent(c)
}

// Me godoc
// @Summary Get current user
// @Description Returns the session user
// @Tags Authentication
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	session, err := currentSession(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, http.StatusOK, dto.NewUserInfo(session.User))
}
