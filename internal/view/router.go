// Package view renders role-aware view models from a state snapshot. Every function here is
// pure: it reads the snapshot and the acting user and never mutates state.
package view

import (
	"github.com/noah-isme/lms-ai-api/internal/dto"
	"github.com/noah-isme/lms-ai-api/internal/models"
	"github.com/noah-isme/lms-ai-api/internal/state"
	appErrors "github.com/noah-isme/lms-ai-api/pkg/errors"
)

// View identifiers.
const (
	Dashboard          = "dashboard"
	Courses            = "courses"
	CourseDetail       = "course-detail"
	CreateCourse       = "create-course"
	ManualCreateCourse = "manual-create-course"
	Grades             = "grades"
	Performance        = "performance"
	UserManagement     = "user-management"
)

var known = map[string]struct{}{
	Dashboard:          {},
	Courses:            {},
	CourseDetail:       {},
	CreateCourse:       {},
	ManualCreateCourse: {},
	Grades:             {},
	Performance:        {},
	UserManagement:     {},
}

// Request selects a view and, for course-detail, the course.
type Request struct {
	View     string
	CourseID string
}

// Resolve maps a view identifier to a known view, falling back to the dashboard.
func Resolve(id string) string {
	if _, ok := known[id]; ok {
		return id
	}
	return Dashboard
}

// Navigation returns the sidebar entries for role.
func Navigation(role models.Role) []dto.NavItem {
	items := []dto.NavItem{
		{ID: Dashboard, Label: "Dashboard"},
		{ID: Courses, Label: "Courses"},
	}
	extra := models.MatchRole(role,
		func() []dto.NavItem { return []dto.NavItem{{ID: Grades, Label: "Progress"}} },
		func() []dto.NavItem { return []dto.NavItem{{ID: Grades, Label: "Submissions"}} },
		func() []dto.NavItem {
			return []dto.NavItem{
				{ID: Performance, Label: "Performance"},
				{ID: UserManagement, Label: "User Management"},
			}
		},
	)
	return append(items, extra...)
}

// Render resolves req and renders the selected view for actor.
func Render(snap state.Snapshot, actor models.User, req Request) (dto.ViewResponse, error) {
	id := Resolve(req.View)
	var (
		content interface{}
		err     error
	)
	switch id {
	case Courses:
		content = CourseList(snap, actor)
	case CourseDetail:
		content = CourseDetailView(snap, actor, req.CourseID)
	case CreateCourse:
		content, err = CourseForm(actor, true)
	case ManualCreateCourse:
		content, err = CourseForm(actor, false)
	case Grades:
		content = GradesView(snap, actor)
	case Performance:
		content, err = PerformanceView(snap, actor)
	case UserManagement:
		content, err = UserManagementView(snap, actor)
	default:
		content = DashboardView(snap, actor)
	}
	if err != nil {
		return dto.ViewResponse{}, err
	}
	return dto.ViewResponse{View: id, Navigation: Navigation(actor.Role), Content: content}, nil
}

func requireAdministrator(actor models.User) error {
	if actor.Role != models.RoleAdministrator {
		return appErrors.Clone(appErrors.ErrForbidden, "administrator access required")
	}
	return nil
}

func requireCreator(actor models.User) error {
	return models.MatchRole(actor.Role,
		func() error { return appErrors.Clone(appErrors.ErrForbidden, "students cannot create courses") },
		func() error { return nil },
		func() error { return nil },
	)
}

func courseCard(c models.Course, actor models.User) dto.CourseCard {
	card := dto.CourseCard{ID: c.ID, Title: c.Title, Description: c.Description}
	if actor.Role == models.RoleStudent {
		card.IsEnrolled = c.IsEnrolled(actor.ID)
	}
	return card
}

func courseCards(courses []models.Course, actor models.User) []dto.CourseCard {
	out := make([]dto.CourseCard, 0, len(courses))
	for _, c := range courses {
		out = append(out, courseCard(c, actor))
	}
	return out
}

func createActions(role models.Role) []dto.Action {
	if role == models.RoleStudent {
		return []dto.Action{}
	}
	return []dto.Action{
		{ID: ManualCreateCourse, Label: "Create Manually"},
		{ID: CreateCourse, Label: "Create with AI"},
	}
}
