package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/lms-ai-api/internal/dto"
	"github.com/noah-isme/lms-ai-api/internal/models"
	appErrors "github.com/noah-isme/lms-ai-api/pkg/errors"
)

type courseManager interface {
	Courses() []models.Course
	Course(id string) (models.Course, bool)
	CreateCourseManual(ctx context.Context, actor models.User, draft models.CourseDraft) (models.Course, error)
	CreateCourseAI(ctx context.Context, actor models.User, topic string) (models.Course, error)
	Enroll(ctx context.Context, actor models.User, courseID string) (models.Course, error)
	Unenroll(ctx context.Context, actor models.User, courseID string) (models.Course, error)
	DeleteCourse(ctx context.Context, actor models.User, courseID string, confirmed bool) error
}

type studyHelper interface {
	StudyHelp(ctx context.Context, actor models.User, courseID, question string) (*dto.StudyHelpResponse, error)
}

// CourseHandler exposes course authoring, enrollment and the study assistant.
type CourseHandler struct {
	base
	courses courseManager
	helper  studyHelper
}

// NewCourseHandler constructs a CourseHandler.
func NewCourseHandler(courses courseManager, helper studyHelper, notes notificationLister) *CourseHandler {
	return &CourseHandler{base: base{notes: notes}, courses: courses, helper: helper}
}

// List godoc
// @Summary List courses
// @Description Teachers get their own courses, everyone else the full catalogue
// @Tags Courses
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /courses [get]
func (h *CourseHandler) List(c *gin.Context) {
	session, err := currentSession(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	all := h.courses.Courses()
	if session.User.Role != models.RoleTeacher {
		h.ok(c, http.StatusOK, all)
		return
	}
	own := make([]models.Course, 0, len(all))
	for _, course := range all {
		if course.TeacherID == session.User.ID {
			own = append(own, course)
		}
	}
	h.ok(c, http.StatusOK, own)
}

// Get godoc
// @Summary Get course
// @Description Teachers may only open their own courses; students must be enrolled
// @Tags Courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /courses/{id} [get]
func (h *CourseHandler) Get(c *gin.Context) {
	session, err := currentSession(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	course, err := h.visibleCourse(c.Param("id"), session.User)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, http.StatusOK, course)
}

// visibleCourse resolves a course the actor may read: students need an enrollment and
// teachers must own it.
func (h *CourseHandler) visibleCourse(id string, actor models.User) (models.Course, error) {
	course, ok := h.courses.Course(id)
	if !ok {
		return models.Course{}, appErrors.Clone(appErrors.ErrNotFound, "Course not found.")
	}
	denied := models.MatchRole(actor.Role,
		func() error {
			if !course.IsEnrolled(actor.ID) {
				return appErrors.Clone(appErrors.ErrForbidden, "You are not enrolled in this course.")
			}
			return nil
		},
		func() error {
			if course.TeacherID != actor.ID {
				return appErrors.Clone(appErrors.ErrForbidden, "You do not have permission to view this course.")
			}
			return nil
		},
		func() error { return nil },
	)
	if denied != nil {
		return models.Course{}, denied
	}
	return course, nil
}

// Create godoc
// @Summary Create course manually
// @Tags Courses
// @Accept json
// @Produce json
// @Param payload body dto.CreateCourseRequest true "Course content"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /courses [post]
func (h *CourseHandler) Create(c *gin.Context) {
	session, err := currentSession(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	var req dto.CreateCourseRequest
	if err := bindJSON(c, &req, "invalid course payload"); err != nil {
		h.fail(c, err)
		return
	}
	course, err := h.courses.CreateCourseManual(c.Request.Context(), session.User, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, http.StatusCreated, course)
}

// Generate godoc
// @Summary Generate course with AI
// @Tags Courses
// @Accept json
// @Produce json
// @Param payload body dto.GenerateCourseRequest true "Topic"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /courses/generate [post]
func (h *CourseHandler) Generate(c *gin.Context) {
	session, err := currentSession(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	var req dto.GenerateCourseRequest
	if err := bindJSON(c, &req, "topic is required"); err != nil {
		h.fail(c, err)
		return
	}
	course, err := h.courses.CreateCourseAI(c.Request.Context(), session.User, req.Topic)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, http.StatusCreated, course)
}

// Delete godoc
// @Summary Delete course
// @Description Removes the course and its submissions; requires confirm=true
// @Tags Courses
// @Produce json
// @Param id path string true "Course ID"
// @Param confirm query bool true "Confirm deletion"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 428 {object} response.Envelope
// @Router /courses/{id} [delete]
func (h *CourseHandler) Delete(c *gin.Context) {
	session, err := currentSession(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := h.courses.DeleteCourse(c.Request.Context(), session.User, c.Param("id"), confirmed(c)); err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, http.StatusOK, gin.H{"deleted": c.Param("id")})
}

// Enroll godoc
// @Summary Enroll in course
// @Tags Courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /courses/{id}/enroll [post]
func (h *CourseHandler) Enroll(c *gin.Context) {
	h.enrollment(c, h.courses.Enroll)
}

// Unenroll godoc
// @Summary Leave course
// @Tags Courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /courses/{id}/unenroll [post]
func (h *CourseHandler) Unenroll(c *gin.Context) {
	h.enrollment(c, h.courses.Unenroll)
}

func (h *CourseHandler) enrollment(c *gin.Context, apply func(context.Context, models.User, string) (models.Course, error)) {
	session, err := currentSession(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	course, err := apply(c.Request.Context(), session.User, c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, http.StatusOK, course)
}

// StudyHelp godoc
// @Summary Ask the AI study assistant
// @Tags Courses
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param payload body dto.StudyHelpRequest true "Question"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /courses/{id}/study-help [post]
func (h *CourseHandler) StudyHelp(c *gin.Context) {
	session, err := currentSession(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	course, err := h.visibleCourse(c.Param("id"), session.User)
	if err != nil {
		h.fail(c, err)
		return
	}
	var req dto.StudyHelpRequest
	if err := bindJSON(c, &req, "question is required"); err != nil {
		h.fail(c, err)
		return
	}
	res, err := h.helper.StudyHelp(c.Request.Context(), session.User, course.ID, req.Question)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, http.StatusOK, res)
}
