package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/lms-ai-api/internal/models"
	"github.com/noah-isme/lms-ai-api/internal/service"
	appErrors "github.com/noah-isme/lms-ai-api/pkg/errors"
	"github.com/noah-isme/lms-ai-api/pkg/logger"
	"github.com/noah-isme/lms-ai-api/pkg/response"
)

// ContextUserKey is the gin context key storing JWT claims.
const ContextUserKey = "currentUser"

// ContextSessionKey is the gin context key storing the live session.
const ContextSessionKey = "currentSession"

type authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.JWTClaims, models.Session, error)
}

// JWT protects routes by requiring a valid access token bound to a live session.
func JWT(auth authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "invalid authorization header"))
			c.Abort()
			return
		}

		claims, session, err := auth.Authenticate(c.Request.Context(), strings.TrimSpace(parts[1]))
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(ContextUserKey, claims)
		c.Set(ContextSessionKey, session)
		c.Set(logger.ActorKey, session.User.ID)
		c.Request = c.Request.WithContext(service.ContextWithSession(c.Request.Context(), session.ID))
		c.Next()
	}
}

// CurrentSession returns the session attached by JWT.
func CurrentSession(c *gin.Context) (models.Session, bool) {
	value, exists := c.Get(ContextSessionKey)
	if !exists {
		return models.Session{}, false
	}
	session, ok := value.(models.Session)
	return session, ok
}
