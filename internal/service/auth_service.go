package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/noah-isme/lms-ai-api/internal/dto"
	"github.com/noah-isme/lms-ai-api/internal/models"
	appErrors "github.com/noah-isme/lms-ai-api/pkg/errors"
	"github.com/noah-isme/lms-ai-api/pkg/logger"
)

type sessionManager interface {
	Login(ctx context.Context, username, password string) (models.Session, error)
	Logout(ctx context.Context, sessionID string)
	Session(ctx context.Context, sessionID string) (models.Session, error)
}

type notificationClearer interface {
	Clear(sessionID string)
}

// AuthConfig defines configuration for session tokens.
type AuthConfig struct {
	Secret     string
	SessionTTL time.Duration
	Issuer     string
}

// AuthService issues and verifies session tokens. A token is only honoured while the session
// it names is still present in the store.
type AuthService struct {
	sessions      sessionManager
	notifications notificationClearer
	validator     *validator.Validate
	logger        *zap.Logger
	config        AuthConfig
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(sessions sessionManager, notifications notificationClearer, validate *validator.Validate, logger *zap.Logger, config AuthConfig) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if config.SessionTTL <= 0 {
		config.SessionTTL = 48 * time.Hour
	}
	return &AuthService{sessions: sessions, notifications: notifications, validator: validate, logger: logger, config: config}
}

// Login authenticates a user and returns a signed session token.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "username and password are required")
	}

	session, err := s.sessions.Login(ctx, req.Username, req.Password)
	if err != nil {
		return nil, err
	}

	token, expiresAt, err := s.generateAccessToken(session)
	if err != nil {
		s.sessions.Logout(ctx, session.ID)
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create access token")
	}

	return &dto.LoginResponse{
		AccessToken: token,
		ExpiresIn:   int64(s.config.SessionTTL.Seconds()),
		ExpiresAt:   expiresAt,
		User:        dto.NewUserInfo(session.User),
	}, nil
}

// Logout drops the session and any pending notifications for it.
func (s *AuthService) Logout(ctx context.Context, claims *models.JWTClaims) {
	if claims == nil {
		return
	}
	s.sessions.Logout(ctx, claims.SessionID)
	if s.notifications != nil {
		s.notifications.Clear(claims.SessionID)
	}
	logger.For(ctx, s.logger).Info("session closed", zap.String("session_id", claims.SessionID), zap.String("user_id", claims.UserID))
}

// ValidateToken parses and validates an access token returning the claims.
func (s *AuthService) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
	}

	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok || !token.Valid || claims.SessionID == "" {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}

	return claims, nil
}

// Authenticate validates the token and resolves the live session it belongs to.
func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (*models.JWTClaims, models.Session, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, models.Session{}, err
	}
	session, err := s.sessions.Session(ctx, claims.SessionID)
	if err != nil {
		return nil, models.Session{}, err
	}
	if session.User.ID != claims.UserID {
		return nil, models.Session{}, appErrors.Clone(appErrors.ErrUnauthorized, "session does not match token")
	}
	return claims, session, nil
}

func (s *AuthService) generateAccessToken(session models.Session) (string, time.Time, error) {
	issuedAt := session.CreatedAt
	if issuedAt.IsZero() {
		issuedAt = time.Now().UTC()
	}
	expiresAt := issuedAt.Add(s.config.SessionTTL)
	claims := &models.JWTClaims{
		SessionID: session.ID,
		UserID:    session.User.ID,
		Username:  session.User.Username,
		Role:      session.User.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   session.User.ID,
			ID:        session.ID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}
