package models

// Course is a teacher-owned collection of ordered modules.
type Course struct {
	ID                 string   `json:"id"`
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	TeacherID          string   `json:"teacherId"`
	Modules            []Module `json:"modules"`
	EnrolledStudentIDs []string `json:"enrolledStudentIds"`
}

// Module is a unit of learning content inside a course.
type Module struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Content     string       `json:"content"`
	Assignments []Assignment `json:"assignments"`
}

// Assignment is a prompt students answer with a submission.
type Assignment struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Prompt string `json:"prompt"`
}

// FindAssignment looks up an assignment across all modules.
func (c Course) FindAssignment(id string) (Assignment, bool) {
	for _, m := range c.Modules {
		for _, a := range m.Assignments {
			if a.ID == id {
				return a, true
			}
		}
	}
	return Assignment{}, false
}

// IsEnrolled reports whether studentID appears in the enrollment list.
func (c Course) IsEnrolled(studentID string) bool {
	for _, id := range c.EnrolledStudentIDs {
		if id == studentID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers cannot alias container state.
func (c Course) Clone() Course {
	out := c
	out.EnrolledStudentIDs = append([]string(nil), c.EnrolledStudentIDs...)
	out.Modules = make([]Module, len(c.Modules))
	for i, m := range c.Modules {
		m.Assignments = append([]Assignment(nil), m.Assignments...)
		out.Modules[i] = m
	}
	return out
}

// CourseDraft is course content without identifiers, as authored manually or generated.
type CourseDraft struct {
	Title       string        `json:"title" validate:"required"`
	Description string        `json:"description"`
	Modules     []ModuleDraft `json:"modules" validate:"dive"`
}

// ModuleDraft is a module without identifiers.
type ModuleDraft struct {
	Title       string            `json:"title" validate:"required"`
	Description string            `json:"description"`
	Content     string            `json:"content"`
	Assignments []AssignmentDraft `json:"assignments" validate:"dive"`
}

// AssignmentDraft is an assignment without an identifier.
type AssignmentDraft struct {
	Title  string `json:"title" validate:"required"`
	Prompt string `json:"prompt"`
}
