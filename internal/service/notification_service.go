package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/lms-ai-api/internal/models"
)

// DefaultNotificationTTL is how long a toast stays visible before auto-dismissal.
const DefaultNotificationTTL = 5 * time.Second

type sessionCtxKey struct{}

// ContextWithSession tags ctx with the session that should receive notifications.
func ContextWithSession(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionCtxKey{}, sessionID)
}

// SessionFromContext returns the session id carried by ctx.
func SessionFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(sessionCtxKey{}).(string)
	return id
}

// NotificationService keeps short-lived per-session notifications in memory.
type NotificationService struct {
	mu     sync.Mutex
	items  map[string][]models.Notification
	ttl    time.Duration
	now    func() time.Time
	logger *zap.Logger
}

// NewNotificationService creates the service; a non-positive ttl uses DefaultNotificationTTL.
func NewNotificationService(ttl time.Duration, logger *zap.Logger) *NotificationService {
	if ttl <= 0 {
		ttl = DefaultNotificationTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{
		items:  make(map[string][]models.Notification),
		ttl:    ttl,
		now:    time.Now,
		logger: logger,
	}
}

// Notify queues a notification for the session carried by ctx.
func (s *NotificationService) Notify(ctx context.Context, kind models.NotificationType, message string) {
	sessionID := SessionFromContext(ctx)
	if sessionID == "" {
		s.logger.Debug("notification dropped, no session in context", zap.String("message", message))
		return
	}

	now := s.now()
	n := models.Notification{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Message:   message,
		Type:      kind,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for id := range s.items {
		if id != sessionID {
			s.prune(id, now)
		}
	}
	s.items[sessionID] = append(s.prune(sessionID, now), n)
	s.logger.Debug("notification queued", zap.String("session_id", sessionID), zap.String("message", message))
}

// List returns the live notifications for a session, oldest first.
func (s *NotificationService) List(sessionID string) []models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	live := s.prune(sessionID, s.now())
	out := append([]models.Notification{}, live...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

// Dismiss removes one notification. It reports whether anything was removed.
func (s *NotificationService) Dismiss(sessionID, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	live := s.prune(sessionID, s.now())
	for i, n := range live {
		if n.ID == id {
			s.items[sessionID] = append(live[:i:i], live[i+1:]...)
			return true
		}
	}
	return false
}

// Clear drops every notification for a session, e.g. on logout.
func (s *NotificationService) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, sessionID)
}

func (s *NotificationService) prune(sessionID string, now time.Time) []models.Notification {
	current := s.items[sessionID]
	live := current[:0:0]
	for _, n := range current {
		if now.Before(n.ExpiresAt) {
			live = append(live, n)
		}
	}
	if len(live) == 0 {
		delete(s.items, sessionID)
		return nil
	}
	s.items[sessionID] = live
	return live
}
