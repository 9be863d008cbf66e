package dto

import "github.com/noah-isme/lms-ai-api/internal/models"

// GenerateCourseRequest asks the AI curriculum designer for a course on topic.
type GenerateCourseRequest struct {
	Topic string `json:"topic" validate:"required"`
}

// CreateCourseRequest is the manual course authoring payload.
type CreateCourseRequest = models.CourseDraft

// SubmitAssignmentRequest is a student's answer to an assignment.
type SubmitAssignmentRequest = models.SubmissionDraft

// StudyHelpRequest is a question for the course study assistant.
type StudyHelpRequest struct {
	Question string `json:"question" validate:"required"`
}

// StudyHelpResponse carries the assistant's answer.
type StudyHelpResponse struct {
	Answer string `json:"answer"`
}
