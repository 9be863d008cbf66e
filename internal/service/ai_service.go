package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/lms-ai-api/internal/models"
	appErrors "github.com/noah-isme/lms-ai-api/pkg/errors"
	"github.com/noah-isme/lms-ai-api/pkg/gemini"
)

const (
	aiOutcomeSuccess = "success"
	aiOutcomeError   = "error"
	aiOutcomeSkipped = "skipped"
)

// User-facing failure messages, one per operation.
const (
	MsgCourseGenerationFailed = "Failed to generate course content. Please check the topic and try again."
	MsgEvaluationFailed       = "Failed to evaluate submission. The AI evaluator might be temporarily unavailable."
	MsgProgressReportFailed   = "Failed to generate progress report."
	MsgSummaryFailed          = "Failed to generate AI summary."
	MsgStudyHelpFailed        = "Failed to get a response from the AI study assistant."
	MsgNoGradedAssignments    = "No graded assignments available to generate a report."
)

var errAINotConfigured = errors.New("AI client not configured")

type aiMetrics interface {
	ObserveAIRequest(operation, outcome string, duration time.Duration)
}

// AIService is the boundary to the generative model. Every call is a single round trip;
// any transport or decode failure collapses into the operation's generic message.
type AIService struct {
	client    gemini.Client
	metrics   aiMetrics
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAIService constructs the AI Content Service. A nil client makes every external call fail.
func NewAIService(client gemini.Client, metrics aiMetrics, validate *validator.Validate, logger *zap.Logger) *AIService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &AIService{client: client, metrics: metrics, validator: validate, logger: logger}
}

// GenerateCourse asks the model for a full course structure about topic.
func (s *AIService) GenerateCourse(ctx context.Context, topic string) (models.CourseDraft, error) {
	var draft models.CourseDraft
	err := s.structured(ctx, "generate_course", courseGenerationPrompt(topic), courseSchema, &draft)
	if err == nil {
		err = s.validator.Struct(draft)
	}
	if err != nil {
		return models.CourseDraft{}, s.fail("generate_course", err, MsgCourseGenerationFailed)
	}
	return draft, nil
}

// EvaluateSubmission grades a submission against its assignment.
func (s *AIService) EvaluateSubmission(ctx context.Context, assignment models.Assignment, submission models.Submission) (models.Evaluation, error) {
	var evaluation models.Evaluation
	err := s.structured(ctx, "evaluate_submission", evaluationPrompt(assignment, submission), evaluationSchema, &evaluation)
	if err == nil && (evaluation.Grade < 0 || evaluation.Grade > 100) {
		err = fmt.Errorf("grade %d out of range", evaluation.Grade)
	}
	if err != nil {
		return models.Evaluation{}, s.fail("evaluate_submission", err, MsgEvaluationFailed)
	}
	return evaluation, nil
}

// GenerateProgressReport writes a narrative over the student's graded submissions. Without
// any graded submission it answers locally.
func (s *AIService) GenerateProgressReport(ctx context.Context, studentName string, courses []models.Course, submissions []models.Submission) (string, error) {
	graded := make([]models.Submission, 0, len(submissions))
	for _, sub := range submissions {
		if sub.IsGraded() {
			graded = append(graded, sub)
		}
	}
	if len(graded) == 0 {
		s.observe("progress_report", aiOutcomeSkipped, 0)
		return MsgNoGradedAssignments, nil
	}

	text, err := s.narrative(ctx, "progress_report", progressReportPrompt(studentName, courses, graded))
	if err != nil {
		return "", s.fail("progress_report", err, MsgProgressReportFailed)
	}
	return text, nil
}

// GenerateAdminPerformanceSummary labels a student's performance. A nil average answers
// locally with the N/A label.
func (s *AIService) GenerateAdminPerformanceSummary(ctx context.Context, studentName string, enrolledCount int, averageGrade *int) (models.PerformanceSummary, error) {
	if averageGrade == nil {
		s.observe("performance_summary", aiOutcomeSkipped, 0)
		return models.PerformanceSummary{
			Summary:     fmt.Sprintf("%s is enrolled in %d course(s) but has no graded assignments yet.", studentName, enrolledCount),
			Performance: models.PerformanceNotAvailable,
		}, nil
	}

	var summary models.PerformanceSummary
	err := s.structured(ctx, "performance_summary", performanceSummaryPrompt(studentName, enrolledCount, *averageGrade), performanceSchema, &summary)
	if err != nil {
		return models.PerformanceSummary{}, s.fail("performance_summary", err, MsgSummaryFailed)
	}
	return summary, nil
}

// GetStudyHelp answers a question using only the course content.
func (s *AIService) GetStudyHelp(ctx context.Context, course models.Course, question string) (string, error) {
	text, err := s.narrative(ctx, "study_help", studyHelpPrompt(course, question))
	if err != nil {
		return "", s.fail("study_help", err, MsgStudyHelpFailed)
	}
	return text, nil
}

func (s *AIService) structured(ctx context.Context, operation, prompt string, schema gemini.Schema, out interface{}) error {
	if s.client == nil {
		return errAINotConfigured
	}
	start := time.Now()
	raw, err := s.client.GenerateJSON(ctx, prompt, schema)
	if err == nil {
		err = json.Unmarshal([]byte(strings.TrimSpace(raw)), out)
	}
	s.observe(operation, outcomeOf(err), time.Since(start))
	return err
}

func (s *AIService) narrative(ctx context.Context, operation, prompt string) (string, error) {
	if s.client == nil {
		return "", errAINotConfigured
	}
	start := time.Now()
	text, err := s.client.GenerateText(ctx, prompt)
	s.observe(operation, outcomeOf(err), time.Since(start))
	return text, err
}

func (s *AIService) fail(operation string, err error, message string) error {
	s.logger.Error("ai request failed", zap.String("operation", operation), zap.Error(err))
	return appErrors.Wrap(err, appErrors.ErrAIUnavailable.Code, appErrors.ErrAIUnavailable.Status, message)
}

func (s *AIService) observe(operation, outcome string, duration time.Duration) {
	if s.metrics != nil {
		s.metrics.ObserveAIRequest(operation, outcome, duration)
	}
}

func outcomeOf(err error) string {
	if err != nil {
		return aiOutcomeError
	}
	return aiOutcomeSuccess
}
