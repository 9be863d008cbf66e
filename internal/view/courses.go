package view

import (
	"github.com/noah-isme/lms-ai-api/internal/dto"
	"github.com/noah-isme/lms-ai-api/internal/models"
	"github.com/noah-isme/lms-ai-api/internal/state"
)

// CourseList renders the course catalogue. Teachers see their own courses; students and
// administrators see every course.
func CourseList(snap state.Snapshot, actor models.User) dto.CourseListView {
	sel := models.MatchRole(actor.Role,
		func() courseSelection { return courseSelection{"All Courses", snap.Courses} },
		func() courseSelection { return courseSelection{"Your Courses", snap.TaughtCourses(actor.ID)} },
		func() courseSelection { return courseSelection{"All Courses", snap.Courses} },
	)

	view := dto.CourseListView{
		Title:   sel.title,
		Courses: courseCards(sel.courses, actor),
		Actions: createActions(actor.Role),
	}
	if len(snap.Courses) == 0 {
		view.EmptyMessage = "There are no available courses."
	}
	return view
}

type courseSelection struct {
	title   string
	courses []models.Course
}

// CourseDetailView renders one course. Administrators get the enrollment overview, teachers
// may only open their own courses, and students must be enrolled to see the modules.
func CourseDetailView(snap state.Snapshot, actor models.User, courseID string) dto.CourseDetailView {
	course, ok := snap.FindCourse(courseID)
	if !ok {
		return dto.CourseDetailView{Mode: dto.CourseDetailNotFound, Message: "Course not found.", Actions: []dto.Action{}}
	}
	card := courseCard(course, actor)

	return models.MatchRole(actor.Role,
		func() dto.CourseDetailView {
			if !course.IsEnrolled(actor.ID) {
				return dto.CourseDetailView{
					Mode:    dto.CourseDetailNotEnrolled,
					Title:   course.Title,
					Message: "You are not enrolled in this course.",
					Course:  &card,
					Actions: []dto.Action{{ID: "enroll", Label: "Enroll Now"}},
				}
			}
			return dto.CourseDetailView{
				Mode:    dto.CourseDetailFull,
				Title:   course.Title,
				Course:  &card,
				Modules: moduleViews(snap, actor, course),
				Actions: []dto.Action{{ID: "study-help", Label: "AI Study Assistant"}},
			}
		},
		func() dto.CourseDetailView {
			if course.TeacherID != actor.ID {
				return dto.CourseDetailView{
					Mode:    dto.CourseDetailDenied,
					Title:   "Access Denied",
					Message: "You do not have permission to view this course.",
					Actions: []dto.Action{},
				}
			}
			return dto.CourseDetailView{
				Mode:    dto.CourseDetailFull,
				Title:   course.Title,
				Course:  &card,
				Modules: moduleViews(snap, actor, course),
				Actions: []dto.Action{{ID: "delete", Label: "Delete Course"}},
			}
		},
		func() dto.CourseDetailView {
			enrolled := []dto.UserInfo{}
			for _, u := range snap.Users {
				if course.IsEnrolled(u.ID) {
					enrolled = append(enrolled, dto.NewUserInfo(u))
				}
			}
			view := dto.CourseDetailView{
				Mode:             dto.CourseDetailAdmin,
				Title:            course.Title,
				Course:           &card,
				EnrolledStudents: enrolled,
				Actions:          []dto.Action{{ID: "delete", Label: "Delete Course"}},
			}
			if len(enrolled) == 0 {
				view.Message = "No students are currently enrolled in this course."
			}
			return view
		},
	)
}

func moduleViews(snap state.Snapshot, actor models.User, course models.Course) []dto.ModuleView {
	modules := make([]dto.ModuleView, 0, len(course.Modules))
	for _, m := range course.Modules {
		mv := dto.ModuleView{
			ID:          m.ID,
			Title:       m.Title,
			Description: m.Description,
			Content:     m.Content,
			Assignments: make([]dto.AssignmentView, 0, len(m.Assignments)),
		}
		for _, a := range m.Assignments {
			av := dto.AssignmentView{ID: a.ID, Title: a.Title, Prompt: a.Prompt}
			if sub, ok := snap.SubmissionFor(actor.ID, a.ID); ok {
				sv := dto.NewSubmissionView(sub)
				av.Submission = &sv
				av.Status = sub.StatusBadge()
			} else {
				av.CanSubmit = actor.Role == models.RoleStudent
			}
			mv.Assignments = append(mv.Assignments, av)
		}
		modules = append(modules, mv)
	}
	return modules
}

// CourseForm describes the AI or manual course creation form. Students cannot create courses.
func CourseForm(actor models.User, ai bool) (dto.FormView, error) {
	if err := requireCreator(actor); err != nil {
		return dto.FormView{}, err
	}
	return courseForm(ai), nil
}

func courseForm(ai bool) dto.FormView {
	if ai {
		return dto.FormView{
			Title:       "Create a Course with AI",
			Description: "Just provide a topic, and our AI curriculum designer will do the rest.",
			Submit:      dto.Action{ID: "generate", Label: "Generate Course"},
			Fields: []dto.FormField{
				{Name: "topic", Label: "Course Topic", Placeholder: "e.g., Introduction to Quantum Physics", Required: true},
			},
		}
	}
	return dto.FormView{
		Title:  "Create a New Course Manually",
		Submit: dto.Action{ID: "save", Label: "Save Course"},
		Fields: []dto.FormField{
			{Name: "title", Label: "Course Title", Required: true},
			{Name: "description", Label: "Course Description", Multiline: true, Required: true},
			{Name: "modules[].title", Label: "Module Title", Required: true},
			{Name: "modules[].description", Label: "Module Description", Multiline: true, Required: true},
			{Name: "modules[].content", Label: "Module Learning Content", Multiline: true, Required: true},
			{Name: "modules[].assignments[].title", Label: "Assignment Title", Required: true},
			{Name: "modules[].assignments[].prompt", Label: "Assignment Prompt", Multiline: true, Required: true},
		},
	}
}
