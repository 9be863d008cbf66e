package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/lms-ai-api/internal/dto"
	"github.com/noah-isme/lms-ai-api/internal/models"
)

type userManager interface {
	Users() []models.User
	AddUser(ctx context.Context, actor models.User, username string, role models.Role, password string) (models.User, error)
	RemoveUser(ctx context.Context, actor models.User, id string, confirmed bool) error
	UpdateUser(ctx context.Context, actor models.User, sessionID, id string, details models.UserDetails) (models.User, error)
}

// UserHandler handles roster management and profile editing.
type UserHandler struct {
	base
	users userManager
}

// NewUserHandler creates a new user handler.
func NewUserHandler(users userManager, notes notificationLister) *UserHandler {
	return &UserHandler{base: base{notes: notes}, users: users}
}

// List godoc
// @Summary List users
// @Description List every user without passwords
// @Tags Users
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /users [get]
func (h *UserHandler) List(c *gin.Context) {
	h.ok(c, http.StatusOK, dto.NewUserInfoList(h.users.Users()))
}

// Create godoc
// @Summary Create user
// @Description Add a user; usernames are unique case-insensitively
// @Tags Users
// @Accept json
// @Produce json
// @Param payload body dto.CreateUserRequest true "User payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /users [post]
func (h *UserHandler) Create(c *gin.Context) {
	session, err := currentSession(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	var req dto.CreateUserRequest
	if err := bindJSON(c, &req, "invalid user payload"); err != nil {
		h.fail(c, err)
		return
	}

	user, err := h.users.AddUser(c.Request.Context(), session.User, req.Username, req.Role, req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, http.StatusCreated, dto.NewUserInfo(user))
}

// Update godoc
// @Summary Update user
// @Description Change username, password or role of a user
// @Tags Users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param payload body dto.UpdateUserRequest true "Update payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /users/{id} [put]
func (h *UserHandler) Update(c *gin.Context) {
	session, err := currentSession(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	var req dto.UpdateUserRequest
	if err := bindJSON(c, &req, "invalid user payload"); err != nil {
		h.fail(c, err)
		return
	}

	user, err := h.users.UpdateUser(c.Request.Context(), session.User, session.ID, c.Param("id"), req.Details())
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, http.StatusOK, dto.NewUserInfo(user))
}

// Delete godoc
// @Summary Remove user
// @Description Remove a user; requires confirm=true
// @Tags Users
// @Produce json
// @Param id path string true "User ID"
// @Param confirm query bool true "Confirm removal"
// @Success 200 {object} response.Envelope
// @Failure 428 {object} response.Envelope
// @Router /users/{id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	session, err := currentSession(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := h.users.RemoveUser(c.Request.Context(), session.User, c.Param("id"), confirmed(c)); err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, http.StatusOK, gin.H{"removed": c.Param("id")})
}

// UpdateProfile godoc
// @Summary Edit own profile
// @Description Change own username and/or password; the password must be confirmed
// @Tags Users
// @Accept json
// @Produce json
// @Param payload body dto.UpdateProfileRequest true "Profile payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /profile [put]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	session, err := currentSession(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	var req dto.UpdateProfileRequest
	if err := bindJSON(c, &req, "invalid profile payload"); err != nil {
		h.fail(c, err)
		return
	}
	details, err := req.Details(session.User)
	if err != nil {
		h.fail(c, err)
		return
	}
	if details.Empty() {
		h.ok(c, http.StatusOK, dto.NewUserInfo(session.User))
		return
	}

	user, err := h.users.UpdateUser(c.Request.Context(), session.User, session.ID, session.User.ID, details)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, http.StatusOK, dto.NewUserInfo(user))
}
