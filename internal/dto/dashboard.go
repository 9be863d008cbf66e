package dto

// NavItem is one entry of the role-based sidebar.
type NavItem struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Action is a role-gated control the client may offer, pointing at a view or endpoint.
type Action struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Stat is a single dashboard counter.
type Stat struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// CourseCard summarises a course in lists.
type CourseCard struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	IsEnrolled  bool   `json:"isEnrolled,omitempty"`
}

// DashboardView is the role-specific landing page.
type DashboardView struct {
	Title          string       `json:"title"`
	Message        string       `json:"message"`
	Stats          []Stat       `json:"stats"`
	CoursesHeading string       `json:"coursesHeading"`
	Courses        []CourseCard `json:"courses"`
	EmptyMessage   string       `json:"emptyMessage,omitempty"`
	Actions        []Action     `json:"actions"`
}
