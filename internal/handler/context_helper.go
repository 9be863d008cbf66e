package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/lms-ai-api/internal/middleware"
	"github.com/noah-isme/lms-ai-api/internal/models"
	appErrors "github.com/noah-isme/lms-ai-api/pkg/errors"
	"github.com/noah-isme/lms-ai-api/pkg/response"
)

// NotificationsMetaKey is the response meta entry carrying pending notifications.
const NotificationsMetaKey = "notifications"

type notificationLister interface {
	List(sessionID string) []models.Notification
}

var validate = validator.New()

// base carries what every handler needs to answer a request.
type base struct {
	notes notificationLister
}

func (b base) ok(c *gin.Context, status int, data interface{}) {
	b.attachNotifications(c)
	response.JSON(c, status, data)
}

func (b base) fail(c *gin.Context, err error) {
	b.attachNotifications(c)
	response.Error(c, err)
}

func (b base) attachNotifications(c *gin.Context) {
	if b.notes == nil {
		return
	}
	session, ok := middleware.CurrentSession(c)
	if !ok {
		return
	}
	if pending := b.notes.List(session.ID); len(pending) > 0 {
		response.AddMeta(c, NotificationsMetaKey, pending)
	}
}

func currentSession(c *gin.Context) (models.Session, error) {
	session, ok := middleware.CurrentSession(c)
	if !ok {
		return models.Session{}, appErrors.ErrUnauthorized
	}
	return session, nil
}

func bindJSON(c *gin.Context, dst interface{}, message string) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, message)
	}
	if err := validate.Struct(dst); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, message)
	}
	return nil
}

func confirmed(c *gin.Context) bool {
	return c.Query("confirm") == "true"
}
