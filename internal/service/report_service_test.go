package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lms-ai-api/internal/models"
	"github.com/noah-isme/lms-ai-api/internal/state"
	appErrors "github.com/noah-isme/lms-ai-api/pkg/errors"
)

type staticSnapshot struct {
	snap state.Snapshot
}

func (s staticSnapshot) Snapshot() state.Snapshot { return s.snap }

type fakeNarrator struct {
	reportSubs  []models.Submission
	summaryArgs struct {
		name     string
		enrolled int
		avg      *int
	}
	studyCourse string
	err         error
}

func (f *fakeNarrator) GenerateProgressReport(ctx context.Context, name string, courses []models.Course, subs []models.Submission) (string, error) {
	f.reportSubs = subs
	return "Keep going, " + name, f.err
}

func (f *fakeNarrator) GenerateAdminPerformanceSummary(ctx context.Context, name string, enrolled int, avg *int) (models.PerformanceSummary, error) {
	f.summaryArgs.name, f.summaryArgs.enrolled, f.summaryArgs.avg = name, enrolled, avg
	return models.PerformanceSummary{Summary: name + " is doing well.", Performance: "Good"}, f.err
}

func (f *fakeNarrator) GetStudyHelp(ctx context.Context, course models.Course, question string) (string, error) {
	f.studyCourse = course.ID
	return "Read module one.", f.err
}

func reportSnapshot() state.Snapshot {
	return state.Snapshot{
		Users: []models.User{
			{ID: "admin-01", Username: "admin", Role: models.RoleAdministrator},
			{ID: "student-01", Username: "student", Role: models.RoleStudent},
			{ID: "teacher-01", Username: "teacher", Role: models.RoleTeacher},
		},
		Courses: []models.Course{{ID: "course-1", Title: "Go", TeacherID: "teacher-01", EnrolledStudentIDs: []string{"student-01"}}},
		Submissions: []models.Submission{
			{ID: "s1", StudentID: "student-01", CourseID: "course-1", Grade: intPtr(90)},
			{ID: "s2", StudentID: "student-01", CourseID: "course-1", Grade: intPtr(71)},
			{ID: "s3", StudentID: "someone-else", CourseID: "course-1", Grade: intPtr(10)},
		},
	}
}

func TestReportServiceProgressReportUsesOwnSubmissions(t *testing.T) {
	ai := &fakeNarrator{}
	svc := NewReportService(ai, staticSnapshot{reportSnapshot()}, nil)

	res, err := svc.ProgressReport(context.Background(), models.User{ID: "student-01", Username: "student", Role: models.RoleStudent})
	require.NoError(t, err)
	assert.Equal(t, "Keep going, student", res.Report)
	assert.Len(t, ai.reportSubs, 2)

	_, err = svc.ProgressReport(context.Background(), models.User{ID: "teacher-01", Role: models.RoleTeacher})
	assert.True(t, errors.Is(err, appErrors.ErrForbidden))
}

func TestReportServicePerformanceSummary(t *testing.T) {
	ai := &fakeNarrator{}
	svc := NewReportService(ai, staticSnapshot{reportSnapshot()}, nil)
	admin := models.User{ID: "admin-01", Role: models.RoleAdministrator}

	res, err := svc.PerformanceSummary(context.Background(), admin, "student-01")
	require.NoError(t, err)
	assert.Equal(t, "student is doing well. Overall Performance: Good.", res.Text)
	assert.Equal(t, 1, ai.summaryArgs.enrolled)
	require.NotNil(t, ai.summaryArgs.avg)
	assert.Equal(t, 81, *ai.summaryArgs.avg)

	_, err = svc.PerformanceSummary(context.Background(), admin, "teacher-01")
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))

	_, err = svc.PerformanceSummary(context.Background(), models.User{Role: models.RoleStudent}, "student-01")
	assert.True(t, errors.Is(err, appErrors.ErrForbidden))
}

func TestReportServiceStudyHelp(t *testing.T) {
	ai := &fakeNarrator{}
	svc := NewReportService(ai, staticSnapshot{reportSnapshot()}, nil)
	student := models.User{ID: "student-01", Role: models.RoleStudent}

	res, err := svc.StudyHelp(context.Background(), student, "course-1", "what is a goroutine?")
	require.NoError(t, err)
	assert.Equal(t, "Read module one.", res.Answer)
	assert.Equal(t, "course-1", ai.studyCourse)

	_, err = svc.StudyHelp(context.Background(), student, "course-1", "  ")
	assert.True(t, errors.Is(err, appErrors.ErrValidation))

	_, err = svc.StudyHelp(context.Background(), student, "missing", "why?")
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))
}

func TestReportServicePropagatesAIFailure(t *testing.T) {
	failure := appErrors.Clone(appErrors.ErrAIUnavailable, MsgStudyHelpFailed)
	svc := NewReportService(&fakeNarrator{err: failure}, staticSnapshot{reportSnapshot()}, nil)

	_, err := svc.StudyHelp(context.Background(), models.User{ID: "student-01"}, "course-1", "why?")
	require.Error(t, err)
	assert.Equal(t, MsgStudyHelpFailed, appErrors.FromError(err).Message)
}
