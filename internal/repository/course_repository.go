package repository

import (
	"context"

	"github.com/noah-isme/lms-ai-api/internal/models"
	"github.com/noah-isme/lms-ai-api/pkg/kvstore"
)

// CourseRepository persists the course catalogue including modules and enrollments.
type CourseRepository struct {
	collection[models.Course]
}

// NewCourseRepository creates a new instance of CourseRepository.
func NewCourseRepository(store *kvstore.Store) *CourseRepository {
	return &CourseRepository{collection[models.Course]{store: store, key: KeyCourses}}
}

// Load returns the stored courses or an empty list.
func (r *CourseRepository) Load(ctx context.Context) []models.Course {
	return r.load(ctx, nil)
}

// Save replaces the stored courses.
func (r *CourseRepository) Save(ctx context.Context, courses []models.Course) {
	r.save(ctx, courses)
}
