package repository

import (
	"context"

	"github.com/noah-isme/lms-ai-api/internal/models"
	"github.com/noah-isme/lms-ai-api/pkg/kvstore"
)

// UserRepository persists the user roster.
type UserRepository struct {
	collection[models.User]
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(store *kvstore.Store) *UserRepository {
	return &UserRepository{collection[models.User]{store: store, key: KeyUsers}}
}

// Load returns the stored roster, or seed when nothing has been stored yet. Role names are
// normalised case-insensitively; entries whose role is not recognised are dropped.
func (r *UserRepository) Load(ctx context.Context, seed []models.User) []models.User {
	stored := r.load(ctx, seed)
	users := make([]models.User, 0, len(stored))
	for _, u := range stored {
		role, err := models.ParseRole(string(u.Role))
		if err != nil {
			continue
		}
		u.Role = role
		users = append(users, u)
	}
	return users
}

// Save replaces the stored roster.
func (r *UserRepository) Save(ctx context.Context, users []models.User) {
	r.save(ctx, users)
}
