package models

import (
	"fmt"
	"time"
)

// Submission is a student's answer to an assignment. Grade and Feedback move from nil to
// set exactly once.
type Submission struct {
	ID           string    `json:"id"`
	AssignmentID string    `json:"assignmentId"`
	StudentID    string    `json:"studentId"`
	CourseID     string    `json:"courseId"`
	TeacherID    string    `json:"teacherId"`
	Content      string    `json:"content"`
	Grade        *int      `json:"grade"`
	Feedback     *string   `json:"feedback"`
	SubmittedAt  time.Time `json:"submittedAt"`
}

// IsGraded reports whether an evaluation has been recorded.
func (s Submission) IsGraded() bool {
	return s.Grade != nil
}

// StatusBadge renders the assignment status shown next to a submitted assignment.
func (s Submission) StatusBadge() string {
	if s.Grade != nil {
		return fmt.Sprintf("Graded: %d/100", *s.Grade)
	}
	return "Submitted"
}

// SubmissionDraft is what a student sends when submitting.
type SubmissionDraft struct {
	AssignmentID string `json:"assignmentId" validate:"required"`
	CourseID     string `json:"courseId" validate:"required"`
	Content      string `json:"content" validate:"required"`
}
