package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lms-ai-api/internal/dto"
	"github.com/noah-isme/lms-ai-api/internal/middleware"
	"github.com/noah-isme/lms-ai-api/internal/models"
	appErrors "github.com/noah-isme/lms-ai-api/pkg/errors"
)

type responseEnvelope struct {
	Data  json.RawMessage        `json:"data"`
	Error *appErrors.Error       `json:"error"`
	Meta  map[string]interface{} `json:"meta"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) responseEnvelope {
	t.Helper()
	var env responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func performRequest(r http.Handler, method, path string, body interface{}, headers ...string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

// asSession mimics the JWT middleware for handler-level tests.
func asSession(user models.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextSessionKey, models.Session{ID: "session-" + user.ID, User: user, CreatedAt: time.Now()})
		c.Next()
	}
}

func testRouter(session gin.HandlerFunc, register func(r *gin.Engine)) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if session != nil {
		r.Use(session)
	}
	register(r)
	return r
}

var (
	adminUser   = models.User{ID: "admin-01", Username: "admin", Role: models.RoleAdministrator}
	teacherUser = models.User{ID: "teacher-01", Username: "teacher", Role: models.RoleTeacher}
	otherUser   = models.User{ID: "teacher-02", Username: "rival", Role: models.RoleTeacher}
	studentUser = models.User{ID: "student-01", Username: "student", Role: models.RoleStudent}
)

type staticNotes struct {
	pending   []models.Notification
	dismissed []string
}

func (s *staticNotes) List(string) []models.Notification { return s.pending }

func (s *staticNotes) Dismiss(_ string, id string) bool {
	s.dismissed = append(s.dismissed, id)
	for _, n := range s.pending {
		if n.ID == id {
			return true
		}
	}
	return false
}

type fakeUsers struct {
	users      []models.User
	removed    string
	confirmed  bool
	lastUpdate *models.UserDetails
	updateErr  error
}

func (f *fakeUsers) Users() []models.User { return f.users }

func (f *fakeUsers) AddUser(_ context.Context, _ models.User, username string, role models.Role, _ string) (models.User, error) {
	return models.User{ID: "user-1", Username: username, Role: role}, nil
}

func (f *fakeUsers) RemoveUser(_ context.Context, _ models.User, id string, confirmed bool) error {
	if !confirmed {
		return appErrors.ErrConfirmationRequired
	}
	f.removed, f.confirmed = id, confirmed
	return nil
}

func (f *fakeUsers) UpdateUser(_ context.Context, actor models.User, _ string, id string, details models.UserDetails) (models.User, error) {
	f.lastUpdate = &details
	if f.updateErr != nil {
		return models.User{}, f.updateErr
	}
	updated := actor
	updated.ID = id
	if details.Username != nil {
		updated.Username = *details.Username
	}
	return updated, nil
}

func TestUserHandlerListHidesPasswords(t *testing.T) {
	users := &fakeUsers{users: []models.User{{ID: "u1", Username: "amy", Password: "secret", Role: models.RoleStudent}}}
	h := NewUserHandler(users, nil)
	r := testRouter(asSession(adminUser), func(r *gin.Engine) { r.GET("/users", h.List) })

	rec := performRequest(r, http.MethodGet, "/users", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "secret")
	var list []dto.UserInfo
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &list))
	assert.Equal(t, []dto.UserInfo{{ID: "u1", Username: "amy", Role: models.RoleStudent}}, list)
}

func TestUserHandlerDeleteRequiresConfirmation(t *testing.T) {
	users := &fakeUsers{}
	h := NewUserHandler(users, nil)
	r := testRouter(asSession(adminUser), func(r *gin.Engine) { r.DELETE("/users/:id", h.Delete) })

	rec := performRequest(r, http.MethodDelete, "/users/u1", nil)
	assert.Equal(t, http.StatusPreconditionRequired, rec.Code)

	rec = performRequest(r, http.MethodDelete, "/users/u1?confirm=true", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u1", users.removed)
}

func TestUserHandlerProfilePasswordMismatch(t *testing.T) {
	users := &fakeUsers{}
	h := NewUserHandler(users, nil)
	r := testRouter(asSession(studentUser), func(r *gin.Engine) { r.PUT("/profile", h.UpdateProfile) })

	rec := performRequest(r, http.MethodPut, "/profile", map[string]string{
		"username": "student", "password": "one", "confirmPassword": "two",
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, "Passwords do not match.", env.Error.Message)
	assert.Nil(t, users.lastUpdate)
}

func TestUserHandlerProfileWithoutChangesSkipsUpdate(t *testing.T) {
	users := &fakeUsers{}
	h := NewUserHandler(users, nil)
	r := testRouter(asSession(studentUser), func(r *gin.Engine) { r.PUT("/profile", h.UpdateProfile) })

	rec := performRequest(r, http.MethodPut, "/profile", map[string]string{"username": "student"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, users.lastUpdate)
}

func TestUserHandlerProfileRename(t *testing.T) {
	users := &fakeUsers{}
	h := NewUserHandler(users, nil)
	r := testRouter(asSession(studentUser), func(r *gin.Engine) { r.PUT("/profile", h.UpdateProfile) })

	rec := performRequest(r, http.MethodPut, "/profile", map[string]string{"username": "pupil"})

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, users.lastUpdate)
	require.NotNil(t, users.lastUpdate.Username)
	assert.Equal(t, "pupil", *users.lastUpdate.Username)
	assert.Nil(t, users.lastUpdate.Password)
}

type fakeCourses struct {
	courses  []models.Course
	deleted  string
	enrolled string
}

func (f *fakeCourses) Courses() []models.Course { return f.courses }

func (f *fakeCourses) Course(id string) (models.Course, bool) {
	for _, c := range f.courses {
		if c.ID == id {
			return c, true
		}
	}
	return models.Course{}, false
}

func (f *fakeCourses) CreateCourseManual(_ context.Context, actor models.User, draft models.CourseDraft) (models.Course, error) {
	return models.Course{ID: "course-new", Title: draft.Title, TeacherID: actor.ID}, nil
}

func (f *fakeCourses) CreateCourseAI(_ context.Context, _ models.User, _ string) (models.Course, error) {
	return models.Course{}, appErrors.Clone(appErrors.ErrAIUnavailable, "Failed to generate course. Please try again.")
}

func (f *fakeCourses) Enroll(_ context.Context, actor models.User, courseID string) (models.Course, error) {
	f.enrolled = courseID
	course, _ := f.Course(courseID)
	course.EnrolledStudentIDs = append(course.EnrolledStudentIDs, actor.ID)
	return course, nil
}

func (f *fakeCourses) Unenroll(_ context.Context, _ models.User, courseID string) (models.Course, error) {
	course, _ := f.Course(courseID)
	return course, nil
}

func (f *fakeCourses) DeleteCourse(_ context.Context, _ models.User, courseID string, confirmed bool) error {
	if !confirmed {
		return appErrors.ErrConfirmationRequired
	}
	f.deleted = courseID
	return nil
}

type fakeHelper struct{ question string }

func (f *fakeHelper) StudyHelp(_ context.Context, _ models.User, _ string, question string) (*dto.StudyHelpResponse, error) {
	f.question = question
	return &dto.StudyHelpResponse{Answer: "Read module one."}, nil
}

func courseFixture() *fakeCourses {
	return &fakeCourses{courses: []models.Course{
		{ID: "c1", Title: "Go", TeacherID: teacherUser.ID, EnrolledStudentIDs: []string{studentUser.ID}},
		{ID: "c2", Title: "Rust", TeacherID: otherUser.ID, EnrolledStudentIDs: []string{}},
	}}
}

func TestCourseHandlerListScopesTeachers(t *testing.T) {
	h := NewCourseHandler(courseFixture(), &fakeHelper{}, nil)
	r := testRouter(asSession(teacherUser), func(r *gin.Engine) { r.GET("/courses", h.List) })

	rec := performRequest(r, http.MethodGet, "/courses", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var courses []models.Course
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &courses))
	require.Len(t, courses, 1)
	assert.Equal(t, "c1", courses[0].ID)
}

func TestCourseHandlerGetAccessRules(t *testing.T) {
	cases := []struct {
		name   string
		user   models.User
		course string
		status int
	}{
		{"enrolled student", studentUser, "c1", http.StatusOK},
		{"not enrolled student", studentUser, "c2", http.StatusForbidden},
		{"owner teacher", teacherUser, "c1", http.StatusOK},
		{"other teacher", teacherUser, "c2", http.StatusForbidden},
		{"administrator", adminUser, "c2", http.StatusOK},
		{"missing course", adminUser, "nope", http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewCourseHandler(courseFixture(), &fakeHelper{}, nil)
			r := testRouter(asSession(tc.user), func(r *gin.Engine) { r.GET("/courses/:id", h.Get) })

			rec := performRequest(r, http.MethodGet, "/courses/"+tc.course, nil)
			assert.Equal(t, tc.status, rec.Code)
		})
	}
}

func TestCourseHandlerCreateValidatesDraft(t *testing.T) {
	h := NewCourseHandler(courseFixture(), &fakeHelper{}, nil)
	r := testRouter(asSession(teacherUser), func(r *gin.Engine) { r.POST("/courses", h.Create) })

	rec := performRequest(r, http.MethodPost, "/courses", map[string]interface{}{
		"title":   "Go",
		"modules": []map[string]string{{"description": "no title"}},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = performRequest(r, http.MethodPost, "/courses", map[string]string{"title": "Go"})
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestCourseHandlerGenerateSurfacesAIFailure(t *testing.T) {
	h := NewCourseHandler(courseFixture(), &fakeHelper{}, nil)
	r := testRouter(asSession(teacherUser), func(r *gin.Engine) { r.POST("/courses/generate", h.Generate) })

	rec := performRequest(r, http.MethodPost, "/courses/generate", map[string]string{"topic": "Physics"})

	require.Equal(t, http.StatusBadGateway, rec.Code)
	env := decodeEnvelope(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, "Failed to generate course. Please try again.", env.Error.Message)
}

func TestCourseHandlerDeleteAndStudyHelp(t *testing.T) {
	courses := courseFixture()
	helper := &fakeHelper{}
	h := NewCourseHandler(courses, helper, nil)
	r := testRouter(asSession(teacherUser), func(r *gin.Engine) {
		r.DELETE("/courses/:id", h.Delete)
		r.POST("/courses/:id/study-help", h.StudyHelp)
	})

	assert.Equal(t, http.StatusPreconditionRequired, performRequest(r, http.MethodDelete, "/courses/c1", nil).Code)
	assert.Equal(t, http.StatusOK, performRequest(r, http.MethodDelete, "/courses/c1?confirm=true", nil).Code)
	assert.Equal(t, "c1", courses.deleted)

	rec := performRequest(r, http.MethodPost, "/courses/c1/study-help", map[string]string{"question": "What is a goroutine?"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "What is a goroutine?", helper.question)
	assert.Contains(t, rec.Body.String(), "Read module one.")
}

func TestCourseHandlerStudyHelpRequiresCourseAccess(t *testing.T) {
	cases := []struct {
		name   string
		user   models.User
		course string
		status int
	}{
		{"enrolled student", studentUser, "c1", http.StatusOK},
		{"student not enrolled", studentUser, "c2", http.StatusForbidden},
		{"teacher not owner", teacherUser, "c2", http.StatusForbidden},
		{"administrator", adminUser, "c2", http.StatusOK},
		{"unknown course", adminUser, "missing", http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			helper := &fakeHelper{}
			h := NewCourseHandler(courseFixture(), helper, nil)
			r := testRouter(asSession(tc.user), func(r *gin.Engine) { r.POST("/courses/:id/study-help", h.StudyHelp) })

			rec := performRequest(r, http.MethodPost, "/courses/"+tc.course+"/study-help", map[string]string{"question": "Why?"})
			assert.Equal(t, tc.status, rec.Code, rec.Body.String())
			if tc.status != http.StatusOK {
				assert.Empty(t, helper.question)
			}
		})
	}
}

func TestResponsesCarryPendingNotifications(t *testing.T) {
	notes := &staticNotes{pending: []models.Notification{{ID: "n1", Message: "Enrolled.", Type: models.NotificationSuccess}}}
	courses := courseFixture()
	h := NewCourseHandler(courses, &fakeHelper{}, notes)
	r := testRouter(asSession(studentUser), func(r *gin.Engine) { r.POST("/courses/:id/enroll", h.Enroll) })

	rec := performRequest(r, http.MethodPost, "/courses/c2/enroll", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "c2", courses.enrolled)
	env := decodeEnvelope(t, rec)
	require.Contains(t, env.Meta, NotificationsMetaKey)
	assert.Contains(t, rec.Body.String(), "Enrolled.")
}

func TestNotificationHandlerDismiss(t *testing.T) {
	notes := &staticNotes{pending: []models.Notification{{ID: "n1", Message: "Saved."}}}
	h := NewNotificationHandler(notes)
	r := testRouter(asSession(studentUser), func(r *gin.Engine) {
		r.GET("/notifications", h.List)
		r.DELETE("/notifications/:id", h.Dismiss)
	})

	rec := performRequest(r, http.MethodGet, "/notifications", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Saved.")

	assert.Equal(t, http.StatusNoContent, performRequest(r, http.MethodDelete, "/notifications/n1", nil).Code)
	assert.Equal(t, http.StatusNotFound, performRequest(r, http.MethodDelete, "/notifications/zz", nil).Code)
}

func TestHandlersRejectMissingSession(t *testing.T) {
	h := NewCourseHandler(courseFixture(), &fakeHelper{}, nil)
	r := testRouter(nil, func(r *gin.Engine) { r.GET("/courses", h.List) })

	assert.Equal(t, http.StatusUnauthorized, performRequest(r, http.MethodGet, "/courses", nil).Code)
}
