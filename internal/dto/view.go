package dto

import (
	"time"

	"github.com/noah-isme/lms-ai-api/internal/models"
)

// ViewResponse wraps a rendered view with the navigation for the current role.
type ViewResponse struct {
	View       string      `json:"view"`
	Navigation []NavItem   `json:"navigation"`
	Content    interface{} `json:"content"`
}

// CourseListView lists courses with enrollment state for students.
type CourseListView struct {
	Title        string       `json:"title"`
	Courses      []CourseCard `json:"courses"`
	EmptyMessage string       `json:"emptyMessage,omitempty"`
	Actions      []Action     `json:"actions"`
}

// Course detail modes.
const (
	CourseDetailFull        = "full"
	CourseDetailAdmin       = "admin"
	CourseDetailNotEnrolled = "not-enrolled"
	CourseDetailDenied      = "denied"
	CourseDetailNotFound    = "not-found"
)

// CourseDetailView renders one course for the current user.
type CourseDetailView struct {
	Mode             string       `json:"mode"`
	Title            string       `json:"title,omitempty"`
	Message          string       `json:"message,omitempty"`
	Course           *CourseCard  `json:"course,omitempty"`
	Modules          []ModuleView `json:"modules,omitempty"`
	EnrolledStudents []UserInfo   `json:"enrolledStudents,omitempty"`
	Actions          []Action     `json:"actions"`
}

// ModuleView is a module with its assignments resolved for the viewer.
type ModuleView struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Content     string           `json:"content"`
	Assignments []AssignmentView `json:"assignments"`
}

// AssignmentView pairs an assignment with the viewer's own submission, if any.
type AssignmentView struct {
	ID         string          `json:"id"`
	Title      string          `json:"title"`
	Prompt     string          `json:"prompt"`
	Status     string          `json:"status,omitempty"`
	CanSubmit  bool            `json:"canSubmit"`
	Submission *SubmissionView `json:"submission,omitempty"`
}

// SubmissionView is the read projection of a submission.
type SubmissionView struct {
	ID          string    `json:"id"`
	Content     string    `json:"content"`
	Grade       *int      `json:"grade"`
	Feedback    *string   `json:"feedback"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// NewSubmissionView projects a submission.
func NewSubmissionView(s models.Submission) SubmissionView {
	return SubmissionView{ID: s.ID, Content: s.Content, Grade: s.Grade, Feedback: s.Feedback, SubmittedAt: s.SubmittedAt}
}

// GradesView is the progress table for students and the submissions table for teachers.
type GradesView struct {
	Title             string     `json:"title"`
	ShowStudent       bool       `json:"showStudent"`
	CanGenerateReport bool       `json:"canGenerateReport"`
	Rows              []GradeRow `json:"rows"`
	EmptyMessage      string     `json:"emptyMessage,omitempty"`
}

// GradeRow is one submission in the grades table.
type GradeRow struct {
	SubmissionID    string `json:"submissionId"`
	CourseID        string `json:"courseId"`
	CourseTitle     string `json:"courseTitle"`
	AssignmentTitle string `json:"assignmentTitle"`
	StudentName     string `json:"studentName,omitempty"`
	Status          string `json:"status"`
	Grade           string `json:"grade"`
	CanEvaluate     bool   `json:"canEvaluate"`
}

// PerformanceView is the administrator overview of every student.
type PerformanceView struct {
	Title        string               `json:"title"`
	Students     []StudentPerformance `json:"students"`
	EmptyMessage string               `json:"emptyMessage,omitempty"`
}

// StudentPerformance aggregates one student's enrollment and graded work.
type StudentPerformance struct {
	StudentID     string `json:"studentId"`
	Username      string `json:"username"`
	EnrolledCount int    `json:"enrolledCount"`
	AverageGrade  *int   `json:"averageGrade"`
}

// UserManagementView groups the roster by role.
type UserManagementView struct {
	Title  string      `json:"title"`
	Groups []UserGroup `json:"groups"`
}

// UserGroup is the roster for one role.
type UserGroup struct {
	Role         models.Role `json:"role"`
	Title        string      `json:"title"`
	Users        []UserRow   `json:"users"`
	EmptyMessage string      `json:"emptyMessage,omitempty"`
}

// UserRow is a roster entry with its allowed actions.
type UserRow struct {
	UserInfo
	Editable bool `json:"editable"`
}

// FormView describes a course creation form.
type FormView struct {
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Submit      Action      `json:"submit"`
	Fields      []FormField `json:"fields"`
}

// FormField is one input of a form descriptor.
type FormField struct {
	Name        string `json:"name"`
	Label       string `json:"label"`
	Placeholder string `json:"placeholder,omitempty"`
	Multiline   bool   `json:"multiline,omitempty"`
	Required    bool   `json:"required"`
}
