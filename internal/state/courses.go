package state

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/lms-ai-api/internal/models"
	appErrors "github.com/noah-isme/lms-ai-api/pkg/errors"
)

func errCourseNotFound() *appErrors.Error {
	return appErrors.Clone(appErrors.ErrNotFound, "Course not found.")
}

// CreateCourseManual adds a course authored by actor, assigning ids to every module and
// assignment.
func (c *Container) CreateCourseManual(ctx context.Context, actor models.User, draft models.CourseDraft) (models.Course, error) {
	if actor.Role == models.RoleStudent {
		return models.Course{}, appErrors.Clone(appErrors.ErrForbidden, "students cannot create courses")
	}
	if strings.TrimSpace(draft.Title) == "" {
		return models.Course{}, appErrors.Clone(appErrors.ErrValidation, "course title is required")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	course := c.materialize(actor, draft)
	c.setCourses(ctx, append(c.copyCourses(), course))
	c.log(ctx).Info("course created", zap.String("course_id", course.ID), zap.String("teacher_id", actor.ID))
	return course.Clone(), nil
}

// CreateCourseAI generates course content for topic and adds it as a course owned by actor.
// The generator runs without holding the container lock.
func (c *Container) CreateCourseAI(ctx context.Context, actor models.User, topic string) (models.Course, error) {
	if actor.Role == models.RoleStudent {
		return models.Course{}, appErrors.Clone(appErrors.ErrForbidden, "students cannot create courses")
	}
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return models.Course{}, appErrors.Clone(appErrors.ErrValidation, "topic is required")
	}

	draft, err := c.ai.GenerateCourse(ctx, topic)
	if err != nil {
		return models.Course{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	course := c.materialize(actor, draft)
	c.setCourses(ctx, append(c.copyCourses(), course))
	c.log(ctx).Info("course generated", zap.String("course_id", course.ID), zap.String("topic", topic))
	return course.Clone(), nil
}

func (c *Container) materialize(actor models.User, draft models.CourseDraft) models.Course {
	course := models.Course{
		ID:                 c.ids.New(PrefixCourse),
		Title:              draft.Title,
		Description:        draft.Description,
		TeacherID:          actor.ID,
		Modules:            make([]models.Module, 0, len(draft.Modules)),
		EnrolledStudentIDs: []string{},
	}
	for _, md := range draft.Modules {
		module := models.Module{
			ID:          c.ids.New(PrefixModule),
			Title:       md.Title,
			Description: md.Description,
			Content:     md.Content,
			Assignments: make([]models.Assignment, 0, len(md.Assignments)),
		}
		for _, ad := range md.Assignments {
			module.Assignments = append(module.Assignments, models.Assignment{
				ID:     c.ids.New(PrefixAssignment),
				Title:  ad.Title,
				Prompt: ad.Prompt,
			})
		}
		course.Modules = append(course.Modules, module)
	}
	return course
}

// Enroll adds actor to the course. Enrolling twice leaves a single entry.
func (c *Container) Enroll(ctx context.Context, actor models.User, courseID string) (models.Course, error) {
	return c.updateEnrollment(ctx, actor, courseID, func(ids []string) []string {
		for _, id := range ids {
			if id == actor.ID {
				return ids
			}
		}
		return append(ids, actor.ID)
	})
}

// Unenroll removes actor from the course.
func (c *Container) Unenroll(ctx context.Context, actor models.User, courseID string) (models.Course, error) {
	return c.updateEnrollment(ctx, actor, courseID, func(ids []string) []string {
		out := make([]string, 0, len(ids))
		for _, id := range ids {
			if id != actor.ID {
				out = append(out, id)
			}
		}
		return out
	})
}

func (c *Container) updateEnrollment(ctx context.Context, actor models.User, courseID string, apply func([]string) []string) (models.Course, error) {
	if actor.Role != models.RoleStudent {
		return models.Course{}, appErrors.Clone(appErrors.ErrForbidden, "only students can change enrollment")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.courseIndex(courseID)
	if idx < 0 {
		return models.Course{}, errCourseNotFound()
	}
	courses := c.copyCourses()
	courses[idx].EnrolledStudentIDs = apply(courses[idx].EnrolledStudentIDs)
	c.setCourses(ctx, courses)
	return courses[idx].Clone(), nil
}

// DeleteCourse removes the course and every submission that references it. Only the owning
// teacher or an administrator may delete, and only after confirmation.
func (c *Container) DeleteCourse(ctx context.Context, actor models.User, courseID string, confirmed bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.courseIndex(courseID)
	if idx < 0 {
		return errCourseNotFound()
	}
	course := c.courses[idx]

	allowed := models.MatchRole(actor.Role,
		func() bool { return false },
		func() bool { return course.TeacherID == actor.ID },
		func() bool { return true },
	)
	if !allowed {
		return appErrors.Clone(appErrors.ErrForbidden, "You do not have permission to delete this course.")
	}
	if !confirmed {
		return appErrors.Clone(appErrors.ErrConfirmationRequired,
			fmt.Sprintf("Are you sure you want to delete the course \"%s\"? This action cannot be undone.", course.Title))
	}

	courses := make([]models.Course, 0, len(c.courses))
	for _, existing := range c.courses {
		if existing.ID != courseID {
			courses = append(courses, existing)
		}
	}
	submissions := make([]models.Submission, 0, len(c.submissions))
	removed := 0
	for _, s := range c.submissions {
		if s.CourseID == courseID {
			removed++
			continue
		}
		submissions = append(submissions, s)
	}

	c.setCourses(ctx, courses)
	c.setSubmissions(ctx, submissions)
	c.log(ctx).Info("course deleted",
		zap.String("course_id", courseID),
		zap.String("actor_id", actor.ID),
		zap.Int("submissions_removed", removed),
	)
	return nil
}
