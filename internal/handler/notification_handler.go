package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/lms-ai-api/internal/models"
	appErrors "github.com/noah-isme/lms-ai-api/pkg/errors"
	"github.com/noah-isme/lms-ai-api/pkg/response"
)

type notificationStore interface {
	notificationLister
	Dismiss(sessionID, id string) bool
}

// NotificationHandler exposes the session's toast notifications.
type NotificationHandler struct {
	notes notificationStore
}

// NewNotificationHandler constructs a NotificationHandler.
func NewNotificationHandler(notes notificationStore) *NotificationHandler {
	return &NotificationHandler{notes: notes}
}

// List godoc
// @Summary Pending notifications
// @Tags Notifications
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /notifications [get]
func (h *NotificationHandler) List(c *gin.Context) {
	session, err := currentSession(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	pending := h.notes.List(session.ID)
	if pending == nil {
		pending = []models.Notification{}
	}
	response.JSON(c, http.StatusOK, pending)
}

// Dismiss godoc
// @Summary Dismiss notification
// @Tags Notifications
// @Param id path string true "Notification ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /notifications/{id} [delete]
func (h *NotificationHandler) Dismiss(c *gin.Context) {
	session, err := currentSession(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !h.notes.Dismiss(session.ID, c.Param("id")) {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "notification not found"))
		return
	}
	response.NoContent(c)
}
