package repository

import (
	"context"

	"github.com/noah-isme/lms-ai-api/pkg/kvstore"
)

// Store keys for the persisted collections.
const (
	KeyUsers         = "lms_users"
	KeyCourses       = "lms_courses"
	KeySubmissions   = "lms_submissions"
	SessionKeyPrefix = "lms_session:"
)

// collection persists a whole slice under one key; writes always replace the full value.
type collection[T any] struct {
	store *kvstore.Store
	key   string
}

func (c collection[T]) load(ctx context.Context, def []T) []T {
	items := kvstore.Load(ctx, c.store, c.key, def, 0)
	if items == nil {
		return []T{}
	}
	return items
}

func (c collection[T]) save(ctx context.Context, items []T) {
	if items == nil {
		items = []T{}
	}
	kvstore.Save(ctx, c.store, c.key, items, 0)
}
