package state

import (
	"math"

	"github.com/noah-isme/lms-ai-api/internal/models"
)

// FindUser looks up a user by id.
func (s Snapshot) FindUser(id string) (models.User, bool) {
	for _, u := range s.Users {
		if u.ID == id {
			return u, true
		}
	}
	return models.User{}, false
}

// FindCourse looks up a course by id.
func (s Snapshot) FindCourse(id string) (models.Course, bool) {
	for _, c := range s.Courses {
		if c.ID == id {
			return c, true
		}
	}
	return models.Course{}, false
}

// UsersWithRole filters the roster by role, keeping roster order.
func (s Snapshot) UsersWithRole(role models.Role) []models.User {
	out := []models.User{}
	for _, u := range s.Users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out
}

// EnrolledCourses returns the courses listing studentID.
func (s Snapshot) EnrolledCourses(studentID string) []models.Course {
	out := []models.Course{}
	for _, c := range s.Courses {
		if c.IsEnrolled(studentID) {
			out = append(out, c)
		}
	}
	return out
}

// TaughtCourses returns the courses owned by teacherID.
func (s Snapshot) TaughtCourses(teacherID string) []models.Course {
	out := []models.Course{}
	for _, c := range s.Courses {
		if c.TeacherID == teacherID {
			out = append(out, c)
		}
	}
	return out
}

// SubmissionsByStudent returns every submission made by studentID.
func (s Snapshot) SubmissionsByStudent(studentID string) []models.Submission {
	return s.filterSubmissions(func(sub models.Submission) bool { return sub.StudentID == studentID })
}

// SubmissionsForTeacher returns every submission addressed to teacherID.
func (s Snapshot) SubmissionsForTeacher(teacherID string) []models.Submission {
	return s.filterSubmissions(func(sub models.Submission) bool { return sub.TeacherID == teacherID })
}

// SubmissionFor returns the student's submission for an assignment, if any.
func (s Snapshot) SubmissionFor(studentID, assignmentID string) (models.Submission, bool) {
	for _, sub := range s.Submissions {
		if sub.StudentID == studentID && sub.AssignmentID == assignmentID {
			return sub, true
		}
	}
	return models.Submission{}, false
}

// StudentStats reports how many courses list the student and the rounded mean of their
// graded submissions. The average is nil when nothing has been graded.
func (s Snapshot) StudentStats(studentID string) (enrolled int, average *int) {
	enrolled = len(s.EnrolledCourses(studentID))
	total, graded := 0, 0
	for _, sub := range s.Submissions {
		if sub.StudentID == studentID && sub.Grade != nil {
			total += *sub.Grade
			graded++
		}
	}
	if graded == 0 {
		return enrolled, nil
	}
	avg := int(math.Floor(float64(total)/float64(graded) + 0.5))
	return enrolled, &avg
}

func (s Snapshot) filterSubmissions(keep func(models.Submission) bool) []models.Submission {
	out := []models.Submission{}
	for _, sub := range s.Submissions {
		if keep(sub) {
			out = append(out, sub)
		}
	}
	return out
}
