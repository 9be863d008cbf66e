package repository

import (
	"context"

	"github.com/noah-isme/lms-ai-api/internal/models"
	"github.com/noah-isme/lms-ai-api/pkg/kvstore"
)

// SubmissionRepository persists student submissions.
type SubmissionRepository struct {
	collection[models.Submission]
}

// NewSubmissionRepository creates a new instance of SubmissionRepository.
func NewSubmissionRepository(store *kvstore.Store) *SubmissionRepository {
	return &SubmissionRepository{collection[models.Submission]{store: store, key: KeySubmissions}}
}

// Load returns the stored submissions or an empty list.
func (r *SubmissionRepository) Load(ctx context.Context) []models.Submission {
	return r.load(ctx, nil)
}

// Save replaces the stored submissions.
func (r *SubmissionRepository) Save(ctx context.Context, submissions []models.Submission) {
	r.save(ctx, submissions)
}
