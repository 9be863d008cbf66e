package repository

import (
	"context"
	"time"

	"github.com/noah-isme/lms-ai-api/internal/models"
	"github.com/noah-isme/lms-ai-api/pkg/kvstore"
)

// DefaultSessionTTL is how long a login stays valid.
const DefaultSessionTTL = 48 * time.Hour

// SessionRepository stores sessions under their own expiring keys, independent of the
// permanent collections.
type SessionRepository struct {
	store *kvstore.Store
	ttl   time.Duration
}

// NewSessionRepository creates a session repository; a non-positive ttl uses DefaultSessionTTL.
func NewSessionRepository(store *kvstore.Store, ttl time.Duration) *SessionRepository {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionRepository{store: store, ttl: ttl}
}

// TTL reports the session lifetime.
func (r *SessionRepository) TTL() time.Duration {
	return r.ttl
}

// Get returns a live session. Expired or unknown sessions report false.
func (r *SessionRepository) Get(ctx context.Context, id string) (models.Session, bool) {
	if id == "" {
		return models.Session{}, false
	}
	session := kvstore.Load(ctx, r.store, SessionKeyPrefix+id, models.Session{}, r.ttl)
	if session.ID == "" {
		return models.Session{}, false
	}
	return session, true
}

// Put writes the session with a fresh expiry.
func (r *SessionRepository) Put(ctx context.Context, session models.Session) {
	kvstore.Save(ctx, r.store, SessionKeyPrefix+session.ID, session, r.ttl)
}

// Delete clears the session.
func (r *SessionRepository) Delete(ctx context.Context, id string) {
	r.store.Delete(ctx, SessionKeyPrefix+id)
}
