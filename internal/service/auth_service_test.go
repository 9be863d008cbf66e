package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lms-ai-api/internal/dto"
	"github.com/noah-isme/lms-ai-api/internal/models"
	appErrors "github.com/noah-isme/lms-ai-api/pkg/errors"
)

type fakeSessions struct {
	user      models.User
	loginErr  error
	sessions  map[string]models.Session
	loggedOut []string
}

func newFakeSessions(user models.User) *fakeSessions {
	return &fakeSessions{user: user, sessions: map[string]models.Session{}}
}

func (f *fakeSessions) Login(ctx context.Context, username, password string) (models.Session, error) {
	if f.loginErr != nil {
		return models.Session{}, f.loginErr
	}
	session := models.Session{ID: "sess-" + username, User: f.user, CreatedAt: time.Now().UTC()}
	f.sessions[session.ID] = session
	return session, nil
}

func (f *fakeSessions) Logout(ctx context.Context, sessionID string) {
	delete(f.sessions, sessionID)
	f.loggedOut = append(f.loggedOut, sessionID)
}

func (f *fakeSessions) Session(ctx context.Context, sessionID string) (models.Session, error) {
	session, ok := f.sessions[sessionID]
	if !ok {
		return models.Session{}, appErrors.ErrUnauthorized
	}
	return session, nil
}

type recordingClearer struct {
	cleared []string
}

func (r *recordingClearer) Clear(sessionID string) {
	r.cleared = append(r.cleared, sessionID)
}

func newTestAuthService(sessions *fakeSessions, clearer *recordingClearer) *AuthService {
	return NewAuthService(sessions, clearer, nil, nil, AuthConfig{Secret: "secret", SessionTTL: 48 * time.Hour, Issuer: "lms-test"})
}

func TestAuthServiceLoginIssuesSessionToken(t *testing.T) {
	sessions := newFakeSessions(models.User{ID: "teacher-01", Username: "teacher", Password: "password", Role: models.RoleTeacher})
	svc := newTestAuthService(sessions, &recordingClearer{})

	res, err := svc.Login(context.Background(), dto.LoginRequest{Username: "teacher", Password: "password"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)
	assert.Equal(t, int64((48 * time.Hour).Seconds()), res.ExpiresIn)
	assert.Equal(t, dto.UserInfo{ID: "teacher-01", Username: "teacher", Role: models.RoleTeacher}, res.User)

	claims, err := svc.ValidateToken(res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "sess-teacher", claims.SessionID)
	assert.Equal(t, "teacher-01", claims.UserID)
	assert.Equal(t, models.RoleTeacher, claims.Role)
	assert.Equal(t, "lms-test", claims.Issuer)
}

func TestAuthServiceLoginValidatesPayload(t *testing.T) {
	svc := newTestAuthService(newFakeSessions(models.User{}), &recordingClearer{})

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "student"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
}

func TestAuthServiceLoginPropagatesCredentialErrors(t *testing.T) {
	sessions := newFakeSessions(models.User{})
	sessions.loginErr = appErrors.Clone(appErrors.ErrInvalidCredentials, "Invalid password.")
	svc := newTestAuthService(sessions, &recordingClearer{})

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "student", Password: "nope"})
	require.Error(t, err)
	assert.Equal(t, "Invalid password.", appErrors.FromError(err).Message)
}

func TestAuthServiceAuthenticateRequiresLiveSession(t *testing.T) {
	sessions := newFakeSessions(models.User{ID: "student-01", Username: "student", Role: models.RoleStudent})
	clearer := &recordingClearer{}
	svc := newTestAuthService(sessions, clearer)

	res, err := svc.Login(context.Background(), dto.LoginRequest{Username: "student", Password: "password"})
	require.NoError(t, err)

	claims, session, err := svc.Authenticate(context.Background(), res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "student-01", session.User.ID)

	svc.Logout(context.Background(), claims)
	assert.Equal(t, []string{"sess-student"}, sessions.loggedOut)
	assert.Equal(t, []string{"sess-student"}, clearer.cleared)

	_, _, err = svc.Authenticate(context.Background(), res.AccessToken)
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrUnauthorized))
}

func TestAuthServiceValidateTokenRejectsForeignSignature(t *testing.T) {
	svc := newTestAuthService(newFakeSessions(models.User{}), &recordingClearer{})

	claims := &models.JWTClaims{
		SessionID: "sess",
		UserID:    "student-01",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-secret"))
	require.NoError(t, err)

	_, err = svc.ValidateToken(forged)
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrUnauthorized))
}

func TestAuthServiceValidateTokenRejectsExpiredToken(t *testing.T) {
	svc := newTestAuthService(newFakeSessions(models.User{}), &recordingClearer{})

	claims := &models.JWTClaims{
		SessionID: "sess",
		UserID:    "student-01",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = svc.ValidateToken(expired)
	require.Error(t, err)
}
