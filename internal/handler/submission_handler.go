package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/lms-ai-api/internal/dto"
	"github.com/noah-isme/lms-ai-api/internal/models"
)

type submissionManager interface {
	SubmitAssignment(ctx context.Context, actor models.User, draft models.SubmissionDraft) (models.Submission, error)
	Evaluate(ctx context.Context, actor models.User, submissionID string) (models.Submission, error)
}

// SubmissionHandler records submissions and triggers AI grading.
type SubmissionHandler struct {
	base
	submissions submissionManager
}

// NewSubmissionHandler constructs a SubmissionHandler.
func NewSubmissionHandler(submissions submissionManager, notes notificationLister) *SubmissionHandler {
	return &SubmissionHandler{base: base{notes: notes}, submissions: submissions}
}

// Submit godoc
// @Summary Submit assignment
// @Tags Submissions
// @Accept json
// @Produce json
// @Param payload body dto.SubmitAssignmentRequest true "Submission"
// @Success 201 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /submissions [post]
func (h *SubmissionHandler) Submit(c *gin.Context) {
	session, err := currentSession(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	var req dto.SubmitAssignmentRequest
	if err := bindJSON(c, &req, "invalid submission payload"); err != nil {
		h.fail(c, err)
		return
	}
	submission, err := h.submissions.SubmitAssignment(c.Request.Context(), session.User, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, http.StatusCreated, submission)
}

// Evaluate godoc
// @Summary Grade submission with AI
// @Tags Submissions
// @Produce json
// @Param id path string true "Submission ID"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /submissions/{id}/evaluate [post]
func (h *SubmissionHandler) Evaluate(c *gin.Context) {
	session, err := currentSession(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	submission, err := h.submissions.Evaluate(c.Request.Context(), session.User, c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, http.StatusOK, submission)
}
