// Package kvstore persists JSON snapshots of application state in a string key-value
// backend. Reads and writes fail soft: a broken or unreachable backend degrades to the
// supplied default on load and to a logged no-op on save, so in-memory state stays
// authoritative for the running process.
package kvstore

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"
)

// Backend is a plain string key-value store.
type Backend interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// FailureHook observes swallowed failures, e.g. to feed metrics.
type FailureHook func(op, key string, err error)

// Option customises a Store.
type Option func(*Store)

// WithClock overrides the time source used for expiry bookkeeping.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithFailureHook registers an observer for swallowed failures.
func WithFailureHook(hook FailureHook) Option {
	return func(s *Store) {
		s.onFailure = hook
	}
}

// Store wraps a Backend with JSON encoding and optional expiry metadata.
type Store struct {
	backend   Backend
	logger    *zap.Logger
	now       func() time.Time
	onFailure FailureHook
}

// New constructs a Store over the given backend.
func New(backend Backend, logger *zap.Logger, opts ...Option) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{backend: backend, logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// expiringEntry is the stored shape of values saved with an expiry.
type expiringEntry struct {
	Value  json.RawMessage `json:"value"`
	Expiry *int64          `json:"expiry"`
}

// Load reads key into a T. Missing entries yield def. Malformed entries and entries whose
// expiry has passed are removed and yield def. When expiry is positive the entry must carry
// the {value, expiry} wrapper written by Save.
func Load[T any](ctx context.Context, s *Store, key string, def T, expiry time.Duration) T {
	raw, found, err := s.backend.Get(ctx, key)
	if err != nil {
		s.fail("load", key, err)
		return def
	}
	if !found {
		return def
	}

	payload := []byte(raw)
	if expiry > 0 {
		var entry expiringEntry
		if err := json.Unmarshal(payload, &entry); err != nil || entry.Expiry == nil || entry.Value == nil {
			s.logger.Warn("kvstore entry missing expiry wrapper, clearing", zap.String("key", key))
			s.Delete(ctx, key)
			return def
		}
		if s.now().UnixMilli() > *entry.Expiry {
			s.logger.Debug("kvstore entry expired", zap.String("key", key))
			s.Delete(ctx, key)
			return def
		}
		payload = entry.Value
	}

	var out T
	if err := json.Unmarshal(payload, &out); err != nil {
		s.logger.Error("kvstore entry malformed, clearing", zap.String("key", key), zap.Error(err))
		s.Delete(ctx, key)
		return def
	}
	reviveInto(&out)
	return out
}

// Save writes value under key, wrapping it with an absolute expiry when expiry is positive.
// Failures are logged and swallowed.
func Save[T any](ctx context.Context, s *Store, key string, value T, expiry time.Duration) {
	payload, err := json.Marshal(value)
	if err != nil {
		s.fail("encode", key, err)
		return
	}
	if expiry > 0 {
		deadline := s.now().Add(expiry).UnixMilli()
		payload, err = json.Marshal(expiringEntry{Value: payload, Expiry: &deadline})
		if err != nil {
			s.fail("encode", key, err)
			return
		}
	}
	if err := s.backend.Set(ctx, key, string(payload)); err != nil {
		s.fail("save", key, err)
	}
}

// Delete removes key, logging any backend failure.
func (s *Store) Delete(ctx context.Context, key string) {
	if err := s.backend.Delete(ctx, key); err != nil {
		s.fail("delete", key, err)
	}
}

func (s *Store) fail(op, key string, err error) {
	s.logger.Error("kvstore operation failed", zap.String("op", op), zap.String("key", key), zap.Error(err))
	if s.onFailure != nil {
		s.onFailure(op, key, err)
	}
}
