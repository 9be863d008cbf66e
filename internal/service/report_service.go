package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/lms-ai-api/internal/dto"
	"github.com/noah-isme/lms-ai-api/internal/models"
	"github.com/noah-isme/lms-ai-api/internal/state"
	appErrors "github.com/noah-isme/lms-ai-api/pkg/errors"
)

type narrativeGenerator interface {
	GenerateProgressReport(ctx context.Context, studentName string, courses []models.Course, submissions []models.Submission) (string, error)
	GenerateAdminPerformanceSummary(ctx context.Context, studentName string, enrolledCount int, averageGrade *int) (models.PerformanceSummary, error)
	GetStudyHelp(ctx context.Context, course models.Course, question string) (string, error)
}

type snapshotSource interface {
	Snapshot() state.Snapshot
}

// ReportService gathers the state an AI narrative needs and enforces who may ask for it.
type ReportService struct {
	ai     narrativeGenerator
	state  snapshotSource
	logger *zap.Logger
}

// NewReportService constructs a ReportService.
func NewReportService(ai narrativeGenerator, src snapshotSource, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{ai: ai, state: src, logger: logger}
}

// ProgressReport writes the acting student's progress report over their own submissions.
func (s *ReportService) ProgressReport(ctx context.Context, actor models.User) (*dto.ProgressReportResponse, error) {
	if actor.Role != models.RoleStudent {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "progress reports are available to students only")
	}
	snap := s.state.Snapshot()
	report, err := s.ai.GenerateProgressReport(ctx, actor.Username, snap.Courses, snap.SubmissionsByStudent(actor.ID))
	if err != nil {
		return nil, err
	}
	return &dto.ProgressReportResponse{StudentID: actor.ID, Report: report}, nil
}

// PerformanceSummary produces the administrator's summary of one student.
func (s *ReportService) PerformanceSummary(ctx context.Context, actor models.User, studentID string) (*dto.PerformanceSummaryResponse, error) {
	if actor.Role != models.RoleAdministrator {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "administrator access required")
	}
	snap := s.state.Snapshot()
	student, ok := snap.FindUser(studentID)
	if !ok || student.Role != models.RoleStudent {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}

	enrolled, avg := snap.StudentStats(student.ID)
	summary, err := s.ai.GenerateAdminPerformanceSummary(ctx, student.Username, enrolled, avg)
	if err != nil {
		return nil, err
	}
	return &dto.PerformanceSummaryResponse{
		StudentID:    student.ID,
		Summary:      summary.Summary,
		Performance:  summary.Performance,
		Text:         summary.Text(),
		Enrolled:     enrolled,
		AverageGrade: avg,
	}, nil
}

// StudyHelp answers a question about a course from its content.
func (s *ReportService) StudyHelp(ctx context.Context, actor models.User, courseID, question string) (*dto.StudyHelpResponse, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "question is required")
	}
	course, ok := s.state.Snapshot().FindCourse(courseID)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "Course not found.")
	}
	answer, err := s.ai.GetStudyHelp(ctx, course, question)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("study help answered", zap.String("course_id", courseID), zap.String("actor_id", actor.ID))
	return &dto.StudyHelpResponse{Answer: answer}, nil
}
