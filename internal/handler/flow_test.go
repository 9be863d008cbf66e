package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/lms-ai-api/internal/dto"
	"github.com/noah-isme/lms-ai-api/internal/middleware"
	"github.com/noah-isme/lms-ai-api/internal/models"
	"github.com/noah-isme/lms-ai-api/internal/repository"
	"github.com/noah-isme/lms-ai-api/internal/service"
	"github.com/noah-isme/lms-ai-api/internal/state"
	"github.com/noah-isme/lms-ai-api/pkg/export"
	"github.com/noah-isme/lms-ai-api/pkg/kvstore"
)

type scriptedAI struct {
	grade int
}

func (s scriptedAI) GenerateCourse(context.Context, string) (models.CourseDraft, error) {
	return models.CourseDraft{Title: "Generated"}, nil
}

func (s scriptedAI) EvaluateSubmission(context.Context, models.Assignment, models.Submission) (models.Evaluation, error) {
	return models.Evaluation{Grade: s.grade, Feedback: "Well structured."}, nil
}

func (s scriptedAI) GenerateProgressReport(context.Context, string, []models.Course, []models.Submission) (string, error) {
	return "Steady progress.", nil
}

func (s scriptedAI) GenerateAdminPerformanceSummary(context.Context, string, int, *int) (models.PerformanceSummary, error) {
	return models.PerformanceSummary{Summary: "Consistent.", Performance: "Good"}, nil
}

func (s scriptedAI) GetStudyHelp(context.Context, models.Course, string) (string, error) {
	return "Review the module content.", nil
}

func newAPI(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logr := zap.NewNop()
	store := kvstore.New(kvstore.NewMemoryBackend(), logr)
	ai := scriptedAI{grade: 85}
	notes := service.NewNotificationService(time.Minute, logr)

	container := state.New(context.Background(), state.Stores{
		Users:       repository.NewUserRepository(store),
		Courses:     repository.NewCourseRepository(store),
		Submissions: repository.NewSubmissionRepository(store),
		Sessions:    repository.NewSessionRepository(store, 48*time.Hour),
	}, ai, state.WithNotifier(notes))

	auth := service.NewAuthService(container, notes, validator.New(), logr, service.AuthConfig{Secret: "test-secret", Issuer: "lms-test"})
	reports := service.NewReportService(ai, container, logr)
	exports := service.NewExportService(container, logr, export.NewCSVExporter(), export.NewPDFExporter())

	r := gin.New()
	RegisterRoutes(r.Group("/api/v1"), middleware.JWT(auth), Handlers{
		Auth:          NewAuthHandler(auth, notes),
		Users:         NewUserHandler(container, notes),
		Courses:       NewCourseHandler(container, reports, notes),
		Submissions:   NewSubmissionHandler(container, notes),
		Reports:       NewReportHandler(reports, exports, notes),
		Views:         NewViewHandler(container, notes),
		Notifications: NewNotificationHandler(notes),
	})
	return r
}

func login(t *testing.T, r *gin.Engine, username string) string {
	t.Helper()
	rec := performRequest(r, http.MethodPost, "/api/v1/auth/login", map[string]string{"username": username, "password": "password"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var res dto.LoginResponse
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &res))
	require.NotEmpty(t, res.AccessToken)
	return "Bearer " + res.AccessToken
}

func TestCourseLifecycleEndToEnd(t *testing.T) {
	r := newAPI(t)
	teacher := login(t, r, "teacher")
	student := login(t, r, "student")

	rec := performRequest(r, http.MethodPost, "/api/v1/courses", map[string]interface{}{
		"title":       "Go Basics",
		"description": "Learn Go",
		"modules": []map[string]interface{}{{
			"title":       "Intro",
			"description": "Getting started",
			"content":     "Hello, world.",
			"assignments": []map[string]string{{"title": "Hello", "prompt": "Print hello"}},
		}},
	}, "Authorization", teacher)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var course models.Course
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &course))
	require.Len(t, course.Modules, 1)
	require.Len(t, course.Modules[0].Assignments, 1)
	assignmentID := course.Modules[0].Assignments[0].ID

	rec = performRequest(r, http.MethodPost, "/api/v1/courses", map[string]string{"title": "Nope"}, "Authorization", student)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = performRequest(r, http.MethodPost, "/api/v1/courses/"+course.ID+"/enroll", nil, "Authorization", student)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = performRequest(r, http.MethodPost, "/api/v1/submissions", map[string]string{
		"assignmentId": assignmentID, "courseId": course.ID, "content": "fmt.Println(\"hello\")",
	}, "Authorization", student)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var submission models.Submission
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &submission))
	assert.Equal(t, "teacher-01", submission.TeacherID)
	assert.Nil(t, submission.Grade)

	evaluate := "/api/v1/submissions/" + submission.ID + "/evaluate"
	assert.Equal(t, http.StatusForbidden, performRequest(r, http.MethodPost, evaluate, nil, "Authorization", student).Code)

	rec = performRequest(r, http.MethodPost, evaluate, nil, "Authorization", teacher)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &submission))
	require.NotNil(t, submission.Grade)
	assert.Equal(t, 85, *submission.Grade)

	assert.Equal(t, http.StatusConflict, performRequest(r, http.MethodPost, evaluate, nil, "Authorization", teacher).Code)

	rec = performRequest(r, http.MethodGet, "/api/v1/views/course-detail?courseId="+course.ID, nil, "Authorization", student)
	require.Equal(t, http.StatusOK, rec.Code)
	var detail struct {
		View    string `json:"view"`
		Content struct {
			Mode    string `json:"mode"`
			Modules []struct {
				Assignments []struct {
					Status string `json:"status"`
				} `json:"assignments"`
			} `json:"modules"`
		} `json:"content"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &detail))
	assert.Equal(t, "course-detail", detail.View)
	assert.Equal(t, dto.CourseDetailFull, detail.Content.Mode)
	require.Len(t, detail.Content.Modules, 1)
	assert.Equal(t, "Graded: 85/100", detail.Content.Modules[0].Assignments[0].Status)

	rec = performRequest(r, http.MethodGet, "/api/v1/grades/export?format=csv", nil, "Authorization", student)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Go Basics,Hello,Graded,85 / 100")

	rec = performRequest(r, http.MethodDelete, "/api/v1/courses/"+course.ID, nil, "Authorization", teacher)
	assert.Equal(t, http.StatusPreconditionRequired, rec.Code)
	rec = performRequest(r, http.MethodDelete, "/api/v1/courses/"+course.ID+"?confirm=true", nil, "Authorization", teacher)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, http.StatusNotFound, performRequest(r, http.MethodGet, "/api/v1/courses/"+course.ID, nil, "Authorization", teacher).Code)
}

func TestAdminUserManagementEndToEnd(t *testing.T) {
	r := newAPI(t)
	admin := login(t, r, "admin")

	rec := performRequest(r, http.MethodPost, "/api/v1/users", map[string]string{
		"username": "dave", "password": "pw", "role": string(models.RoleStudent),
	}, "Authorization", admin)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `User \"dave\" created successfully.`)
	var created dto.UserInfo
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &created))

	rec = performRequest(r, http.MethodPost, "/api/v1/users", map[string]string{
		"username": "DAVE", "password": "pw", "role": string(models.RoleTeacher),
	}, "Authorization", admin)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = performRequest(r, http.MethodGet, "/api/v1/reports/performance/"+created.ID, nil, "Authorization", admin)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Consistent. Overall Performance: Good.")

	assert.Equal(t, http.StatusPreconditionRequired,
		performRequest(r, http.MethodDelete, "/api/v1/users/"+created.ID, nil, "Authorization", admin).Code)
	assert.Equal(t, http.StatusOK,
		performRequest(r, http.MethodDelete, "/api/v1/users/"+created.ID+"?confirm=true", nil, "Authorization", admin).Code)

	dave := performRequest(r, http.MethodPost, "/api/v1/auth/login", map[string]string{"username": "dave", "password": "pw"})
	assert.Equal(t, http.StatusUnauthorized, dave.Code)

	student := login(t, r, "student")
	assert.Equal(t, http.StatusForbidden, performRequest(r, http.MethodGet, "/api/v1/users", nil, "Authorization", student).Code)
	assert.Equal(t, http.StatusForbidden,
		performRequest(r, http.MethodGet, "/api/v1/views/user-management", nil, "Authorization", student).Code)
}

func TestLogoutInvalidatesToken(t *testing.T) {
	r := newAPI(t)
	token := login(t, r, "student")

	rec := performRequest(r, http.MethodGet, "/api/v1/auth/me", nil, "Authorization", token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"role":"Student"`)

	assert.Equal(t, http.StatusNoContent, performRequest(r, http.MethodPost, "/api/v1/auth/logout", nil, "Authorization", token).Code)
	assert.Equal(t, http.StatusUnauthorized, performRequest(r, http.MethodGet, "/api/v1/auth/me", nil, "Authorization", token).Code)
	assert.Equal(t, http.StatusUnauthorized, performRequest(r, http.MethodGet, "/api/v1/navigation", nil).Code)
}

func TestStudyHelpForEnrolledStudent(t *testing.T) {
	r := newAPI(t)
	teacher := login(t, r, "teacher")
	student := login(t, r, "student")

	rec := performRequest(r, http.MethodPost, "/api/v1/courses/generate", map[string]string{"topic": "Physics"}, "Authorization", teacher)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var course models.Course
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &course))
	assert.Equal(t, "Generated", course.Title)

	studyHelp := "/api/v1/courses/" + course.ID + "/study-help"
	question := map[string]string{"question": "Where do I start?"}

	rec = performRequest(r, http.MethodPost, studyHelp, question, "Authorization", student)
	assert.Equal(t, http.StatusForbidden, rec.Code, rec.Body.String())

	rec = performRequest(r, http.MethodPost, "/api/v1/courses/"+course.ID+"/enroll", nil, "Authorization", student)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = performRequest(r, http.MethodPost, studyHelp, question, "Authorization", student)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "Review the module content.")

	rec = performRequest(r, http.MethodPost, studyHelp, map[string]string{"question": ""}, "Authorization", student)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStudyHelpDeniedToOtherTeacher(t *testing.T) {
	r := newAPI(t)
	admin := login(t, r, "admin")
	owner := login(t, r, "teacher")

	rec := performRequest(r, http.MethodPost, "/api/v1/users", map[string]string{
		"username": "erin", "password": "pw", "role": string(models.RoleTeacher),
	}, "Authorization", admin)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	other := performRequest(r, http.MethodPost, "/api/v1/auth/login", map[string]string{"username": "erin", "password": "pw"})
	require.Equal(t, http.StatusOK, other.Code, other.Body.String())
	var res dto.LoginResponse
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, other).Data, &res))

	rec = performRequest(r, http.MethodPost, "/api/v1/courses/generate", map[string]string{"topic": "Physics"}, "Authorization", owner)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var course models.Course
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &course))

	studyHelp := "/api/v1/courses/" + course.ID + "/study-help"
	question := map[string]string{"question": "Where do I start?"}
	assert.Equal(t, http.StatusForbidden, performRequest(r, http.MethodPost, studyHelp, question, "Authorization", "Bearer "+res.AccessToken).Code)
	assert.Equal(t, http.StatusOK, performRequest(r, http.MethodPost, studyHelp, question, "Authorization", owner).Code)
}

func TestRemovedUserTokenIsRejected(t *testing.T) {
	r := newAPI(t)
	admin := login(t, r, "admin")
	student := login(t, r, "student")

	require.Equal(t, http.StatusOK, performRequest(r, http.MethodGet, "/api/v1/auth/me", nil, "Authorization", student).Code)

	rec := performRequest(r, http.MethodDelete, "/api/v1/users/student-01?confirm=true", nil, "Authorization", admin)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	assert.Equal(t, http.StatusUnauthorized, performRequest(r, http.MethodGet, "/api/v1/auth/me", nil, "Authorization", student).Code)
	assert.Equal(t, http.StatusUnauthorized, performRequest(r, http.MethodGet, "/api/v1/views/courses", nil, "Authorization", student).Code)
	assert.Equal(t, http.StatusOK, performRequest(r, http.MethodGet, "/api/v1/auth/me", nil, "Authorization", admin).Code)
}
