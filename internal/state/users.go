package state

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/lms-ai-api/internal/models"
	appErrors "github.com/noah-isme/lms-ai-api/pkg/errors"
)

var (
	errUserNotFound    = appErrors.Clone(appErrors.ErrInvalidCredentials, "User not found. Check the username.")
	errInvalidPassword = appErrors.Clone(appErrors.ErrInvalidCredentials, "Invalid password.")
	errUsernameTaken   = appErrors.Clone(appErrors.ErrConflict, "Username already exists.")
	errSessionExpired  = appErrors.Clone(appErrors.ErrUnauthorized, "session expired or not found")
)

// Login matches the username case-insensitively and the password exactly, then opens a session.
func (c *Container) Login(ctx context.Context, username, password string) (models.Session, error) {
	c.mu.Lock()
	var (
		user  models.User
		found bool
	)
	for _, u := range c.users {
		if models.SameUsername(u.Username, strings.TrimSpace(username)) {
			user, found = u, true
			break
		}
	}
	c.mu.Unlock()

	if !found {
		return models.Session{}, errUserNotFound
	}
	if user.Password != password {
		return models.Session{}, errInvalidPassword
	}

	session := models.Session{ID: uuid.NewString(), User: user, CreatedAt: c.now().UTC()}
	c.stores.Sessions.Put(ctx, session)
	c.log(ctx).Info("session opened", zap.String("session_id", session.ID), zap.String("user_id", user.ID))
	return session, nil
}

// Logout clears the session entry.
func (c *Container) Logout(ctx context.Context, sessionID string) {
	c.stores.Sessions.Delete(ctx, sessionID)
}

// Session returns a live session. A session whose user has since been removed, or whose
// stored role is not recognised, is deleted and reported as expired.
func (c *Container) Session(ctx context.Context, sessionID string) (models.Session, error) {
	session, ok := c.stores.Sessions.Get(ctx, sessionID)
	if !ok {
		return models.Session{}, errSessionExpired
	}
	role, err := models.ParseRole(string(session.User.Role))
	if _, exists := c.User(session.User.ID); !exists || err != nil {
		c.stores.Sessions.Delete(ctx, sessionID)
		c.log(ctx).Info("stale session closed", zap.String("session_id", sessionID), zap.String("user_id", session.User.ID))
		return models.Session{}, errSessionExpired
	}
	session.User.Role = role
	return session, nil
}

// AddUser appends a new user unless the username is already taken (case-insensitively).
func (c *Container) AddUser(ctx context.Context, actor models.User, username string, role models.Role, password string) (models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return models.User{}, appErrors.Clone(appErrors.ErrValidation, "username and password are required")
	}
	if !role.Valid() {
		return models.User{}, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown role %q", role))
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.usernameTaken(username, "") {
		return models.User{}, errUsernameTaken
	}

	user := models.User{ID: c.ids.New(PrefixUser), Username: username, Password: password, Role: role}
	users := append(c.copyUsers(), user)
	c.setUsers(ctx, users)

	if actor.Role == models.RoleAdministrator {
		c.notifier.Notify(ctx, models.NotificationSuccess, fmt.Sprintf("User \"%s\" created successfully.", username))
	}
	return user, nil
}

// RemoveUser deletes a user after explicit confirmation. Courses and submissions that
// reference the user are left in place.
func (c *Container) RemoveUser(ctx context.Context, actor models.User, id string, confirmed bool) error {
	if !confirmed {
		return appErrors.Clone(appErrors.ErrConfirmationRequired, "Are you sure you want to remove this user?")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	users := make([]models.User, 0, len(c.users))
	for _, u := range c.users {
		if u.ID != id {
			users = append(users, u)
		}
	}
	c.setUsers(ctx, users)
	c.log(ctx).Info("user removed", zap.String("user_id", id), zap.String("actor_id", actor.ID))
	return nil
}

// UpdateUser merges details into the user. When the user is the actor, the session copy
// identified by sessionID is updated too.
func (c *Container) UpdateUser(ctx context.Context, actor models.User, sessionID, id string, details models.UserDetails) (models.User, error) {
	if details.Username != nil {
		trimmed := strings.TrimSpace(*details.Username)
		if trimmed == "" {
			return models.User{}, appErrors.Clone(appErrors.ErrValidation, "username cannot be empty")
		}
		details.Username = &trimmed
	}
	if details.Password != nil && *details.Password == "" {
		return models.User{}, appErrors.Clone(appErrors.ErrValidation, "password cannot be empty")
	}
	if details.Role != nil && !details.Role.Valid() {
		return models.User{}, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown role %q", *details.Role))
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	idx := -1
	for i, u := range c.users {
		if u.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.User{}, appErrors.Clone(appErrors.ErrNotFound, "user not found")
	}
	if details.Username != nil && c.usernameTaken(*details.Username, id) {
		return models.User{}, errUsernameTaken
	}

	updated := details.Apply(c.users[idx])
	users := c.copyUsers()
	users[idx] = updated
	c.setUsers(ctx, users)

	if actor.ID == id {
		if session, ok := c.stores.Sessions.Get(ctx, sessionID); ok {
			session.User = details.Apply(session.User)
			c.stores.Sessions.Put(ctx, session)
		}
		c.notifier.Notify(ctx, models.NotificationSuccess, "Your profile has been updated successfully.")
	} else if actor.Role == models.RoleAdministrator {
		c.notifier.Notify(ctx, models.NotificationSuccess, fmt.Sprintf("User \"%s\" updated successfully.", updated.Username))
	}
	return updated, nil
}

func (c *Container) usernameTaken(username, exceptID string) bool {
	for _, u := range c.users {
		if u.ID != exceptID && models.SameUsername(u.Username, username) {
			return true
		}
	}
	return false
}
