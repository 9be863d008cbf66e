package view

import (
	"fmt"

	"github.com/noah-isme/lms-ai-api/internal/dto"
	"github.com/noah-isme/lms-ai-api/internal/models"
	"github.com/noah-isme/lms-ai-api/internal/state"
)

// DashboardView renders the landing page: a greeting, three counters and the courses relevant
// to the actor.
func DashboardView(snap state.Snapshot, actor models.User) dto.DashboardView {
	view := models.MatchRole(actor.Role,
		func() dto.DashboardView {
			submissions := snap.SubmissionsByStudent(actor.ID)
			courses := snap.EnrolledCourses(actor.ID)
			return dto.DashboardView{
				Title:   fmt.Sprintf("Welcome, %s!", actor.Username),
				Message: "Your learning journey starts here. Let's make progress today!",
				Stats: []dto.Stat{
					{Label: "Enrolled Courses", Value: len(courses)},
					{Label: "Submitted Work", Value: len(submissions)},
					{Label: "Graded Assignments", Value: countGraded(submissions, true)},
				},
				CoursesHeading: "Your Enrolled Courses",
				Courses:        courseCards(courses, actor),
			}
		},
		func() dto.DashboardView {
			submissions := snap.SubmissionsForTeacher(actor.ID)
			courses := snap.TaughtCourses(actor.ID)
			return dto.DashboardView{
				Title:   "Teacher Dashboard",
				Message: "Manage courses, evaluate submissions, and guide your students.",
				Stats: []dto.Stat{
					{Label: "Your Courses", Value: len(courses)},
					{Label: "Total Submissions", Value: len(submissions)},
					{Label: "Awaiting Grading", Value: countGraded(submissions, false)},
				},
				CoursesHeading: "Courses",
				Courses:        courseCards(courses, actor),
			}
		},
		func() dto.DashboardView {
			return dto.DashboardView{
				Title:   "Admin Dashboard",
				Message: "Oversee all platform activity from a bird's-eye view.",
				Stats: []dto.Stat{
					{Label: "Total Courses", Value: len(snap.Courses)},
					{Label: "Total Users", Value: len(snap.Users)},
					{Label: "Total Submissions", Value: len(snap.Submissions)},
				},
				CoursesHeading: "Courses",
				Courses:        courseCards(snap.Courses, actor),
			}
		},
	)

	view.Actions = []dto.Action{}
	if len(view.Courses) == 0 {
		if actor.Role == models.RoleStudent {
			view.EmptyMessage = "You are not enrolled in any courses."
		} else {
			view.EmptyMessage = "No courses have been created yet."
			view.Actions = []dto.Action{{ID: CreateCourse, Label: "Create a Course"}}
		}
	}
	return view
}

func countGraded(submissions []models.Submission, graded bool) int {
	n := 0
	for _, s := range submissions {
		if s.IsGraded() == graded {
			n++
		}
	}
	return n
}
