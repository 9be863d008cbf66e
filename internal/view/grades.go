package view

import (
	"fmt"

	"github.com/noah-isme/lms-ai-api/internal/dto"
	"github.com/noah-isme/lms-ai-api/internal/models"
	"github.com/noah-isme/lms-ai-api/internal/state"
)

const (
	unresolvedTitle   = "N/A"
	unresolvedStudent = "Unknown"
)

// GradesView renders the student's progress table or the teacher's submissions table.
// Administrators use the performance view instead and get an empty table here.
func GradesView(snap state.Snapshot, actor models.User) dto.GradesView {
	view := models.MatchRole(actor.Role,
		func() dto.GradesView {
			return dto.GradesView{Title: "Progress & Grades", CanGenerateReport: true, Rows: GradebookRows(snap, actor)}
		},
		func() dto.GradesView {
			return dto.GradesView{Title: "Submissions", ShowStudent: true, Rows: GradebookRows(snap, actor)}
		},
		func() dto.GradesView {
			return dto.GradesView{Title: "Submissions", ShowStudent: true, Rows: []dto.GradeRow{}}
		},
	)
	if len(view.Rows) == 0 {
		view.EmptyMessage = "No submissions to display."
	}
	return view
}

// GradebookRows lists the submissions visible to actor: a student's own, a teacher's incoming,
// or every submission for an administrator. References to deleted courses, assignments or
// users fall back to placeholders.
func GradebookRows(snap state.Snapshot, actor models.User) []dto.GradeRow {
	submissions := models.MatchRole(actor.Role,
		func() []models.Submission { return snap.SubmissionsByStudent(actor.ID) },
		func() []models.Submission { return snap.SubmissionsForTeacher(actor.ID) },
		func() []models.Submission { return snap.Submissions },
	)
	showStudent := actor.Role != models.RoleStudent

	rows := make([]dto.GradeRow, 0, len(submissions))
	for _, sub := range submissions {
		row := dto.GradeRow{
			SubmissionID:    sub.ID,
			CourseID:        sub.CourseID,
			CourseTitle:     unresolvedTitle,
			AssignmentTitle: unresolvedTitle,
			Status:          "Submitted",
			Grade:           "N/A",
			CanEvaluate:     showStudent && !sub.IsGraded(),
		}
		if course, ok := snap.FindCourse(sub.CourseID); ok {
			row.CourseTitle = course.Title
			if assignment, ok := course.FindAssignment(sub.AssignmentID); ok {
				row.AssignmentTitle = assignment.Title
			}
		}
		if showStudent {
			row.StudentName = unresolvedStudent
			if student, ok := snap.FindUser(sub.StudentID); ok {
				row.StudentName = student.Username
			}
		}
		if sub.Grade != nil {
			row.Status = "Graded"
			row.Grade = fmt.Sprintf("%d / 100", *sub.Grade)
		}
		rows = append(rows, row)
	}
	return rows
}
