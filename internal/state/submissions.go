package state

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/lms-ai-api/internal/models"
	appErrors "github.com/noah-isme/lms-ai-api/pkg/errors"
)

// SubmitAssignment records actor's answer. The submission starts ungraded and inherits the
// course's current teacher.
func (c *Container) SubmitAssignment(ctx context.Context, actor models.User, draft models.SubmissionDraft) (models.Submission, error) {
	if actor.Role != models.RoleStudent {
		return models.Submission{}, appErrors.Clone(appErrors.ErrForbidden, "only students can submit assignments")
	}
	if strings.TrimSpace(draft.Content) == "" {
		return models.Submission{}, appErrors.Clone(appErrors.ErrValidation, "submission content is required")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.courseIndex(draft.CourseID)
	if idx < 0 {
		return models.Submission{}, appErrors.Clone(appErrors.ErrNotFound, "Course not found for this submission")
	}

	submission := models.Submission{
		ID:           c.ids.New(PrefixSubmission),
		AssignmentID: draft.AssignmentID,
		StudentID:    actor.ID,
		CourseID:     draft.CourseID,
		TeacherID:    c.courses[idx].TeacherID,
		Content:      draft.Content,
		SubmittedAt:  c.now().UTC(),
	}
	c.setSubmissions(ctx, append(c.copySubmissions(), submission))
	return submission, nil
}

// Evaluate grades a submission through the AI evaluator and records the result. A submission
// whose assignment no longer resolves is returned unchanged. Grades are never overwritten.
func (c *Container) Evaluate(ctx context.Context, actor models.User, submissionID string) (models.Submission, error) {
	c.mu.Lock()
	idx := c.submissionIndex(submissionID)
	if idx < 0 {
		c.mu.Unlock()
		return models.Submission{}, appErrors.Clone(appErrors.ErrNotFound, "submission not found")
	}
	submission := c.submissions[idx]

	allowed := models.MatchRole(actor.Role,
		func() bool { return false },
		func() bool { return submission.TeacherID == actor.ID },
		func() bool { return true },
	)
	if !allowed {
		c.mu.Unlock()
		return models.Submission{}, appErrors.Clone(appErrors.ErrForbidden, "you cannot evaluate this submission")
	}
	if submission.IsGraded() {
		c.mu.Unlock()
		return models.Submission{}, appErrors.ErrAlreadyGraded
	}

	var (
		assignment models.Assignment
		resolved   bool
	)
	if courseIdx := c.courseIndex(submission.CourseID); courseIdx >= 0 {
		assignment, resolved = c.courses[courseIdx].FindAssignment(submission.AssignmentID)
	}
	c.mu.Unlock()

	if !resolved {
		c.log(ctx).Debug("evaluation skipped, assignment not found",
			zap.String("submission_id", submissionID),
			zap.String("assignment_id", submission.AssignmentID),
		)
		return submission, nil
	}

	evaluation, err := c.ai.EvaluateSubmission(ctx, assignment, submission)
	if err != nil {
		return models.Submission{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	idx = c.submissionIndex(submissionID)
	if idx < 0 {
		return models.Submission{}, appErrors.Clone(appErrors.ErrNotFound, "submission not found")
	}
	if c.submissions[idx].IsGraded() {
		return models.Submission{}, appErrors.ErrAlreadyGraded
	}

	grade := evaluation.Grade
	feedback := evaluation.Feedback
	submissions := c.copySubmissions()
	submissions[idx].Grade = &grade
	submissions[idx].Feedback = &feedback
	c.setSubmissions(ctx, submissions)

	c.log(ctx).Info("submission evaluated", zap.String("submission_id", submissionID), zap.Int("grade", grade))
	return submissions[idx], nil
}
