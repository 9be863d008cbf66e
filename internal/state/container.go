// Package state holds the authoritative in-memory LMS collections. Every mutation computes a
// new whole collection under the container lock and mirrors it to the store.
package state

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/lms-ai-api/internal/models"
	"github.com/noah-isme/lms-ai-api/pkg/logger"
)

type userStore interface {
	Load(ctx context.Context, seed []models.User) []models.User
	Save(ctx context.Context, users []models.User)
}

type courseStore interface {
	Load(ctx context.Context) []models.Course
	Save(ctx context.Context, courses []models.Course)
}

type submissionStore interface {
	Load(ctx context.Context) []models.Submission
	Save(ctx context.Context, submissions []models.Submission)
}

type sessionStore interface {
	Get(ctx context.Context, id string) (models.Session, bool)
	Put(ctx context.Context, session models.Session)
	Delete(ctx context.Context, id string)
}

// ContentGenerator is the AI boundary the container delegates to.
type ContentGenerator interface {
	GenerateCourse(ctx context.Context, topic string) (models.CourseDraft, error)
	EvaluateSubmission(ctx context.Context, assignment models.Assignment, submission models.Submission) (models.Evaluation, error)
}

// Notifier delivers toast notifications to the session carried by ctx.
type Notifier interface {
	Notify(ctx context.Context, kind models.NotificationType, message string)
}

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, models.NotificationType, string) {}

// Stores groups the persistence dependencies.
type Stores struct {
	Users       userStore
	Courses     courseStore
	Submissions submissionStore
	Sessions    sessionStore
}

// Option customises a Container.
type Option func(*Container)

// WithClock overrides the time source for ids and timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Container) {
		if now != nil {
			c.now = now
			c.ids = NewIDGenerator(now)
		}
	}
}

// WithNotifier routes user-facing notifications.
func WithNotifier(n Notifier) Option {
	return func(c *Container) {
		if n != nil {
			c.notifier = n
		}
	}
}

// WithLogger sets the container logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Container) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// DefaultUsers is the roster used when nothing has been stored yet.
func DefaultUsers() []models.User {
	return []models.User{
		{ID: "admin-01", Username: "admin", Password: "password", Role: models.RoleAdministrator},
		{ID: "teacher-01", Username: "teacher", Password: "password", Role: models.RoleTeacher},
		{ID: "student-01", Username: "student", Password: "password", Role: models.RoleStudent},
	}
}

// Container owns users, courses and submissions.
type Container struct {
	mu          sync.Mutex
	users       []models.User
	courses     []models.Course
	submissions []models.Submission

	stores   Stores
	ai       ContentGenerator
	notifier Notifier
	logger   *zap.Logger
	ids      *IDGenerator
	now      func() time.Time
}

// New loads every collection from its store and returns a ready container.
func New(ctx context.Context, stores Stores, ai ContentGenerator, opts ...Option) *Container {
	c := &Container{
		stores:   stores,
		ai:       ai,
		notifier: nopNotifier{},
		logger:   zap.NewNop(),
		now:      time.Now,
	}
	c.ids = NewIDGenerator(c.now)
	for _, opt := range opts {
		opt(c)
	}

	c.users = stores.Users.Load(ctx, DefaultUsers())
	c.courses = stores.Courses.Load(ctx)
	c.submissions = stores.Submissions.Load(ctx)
	c.logger.Info("state loaded",
		zap.Int("users", len(c.users)),
		zap.Int("courses", len(c.courses)),
		zap.Int("submissions", len(c.submissions)),
	)
	return c
}

// Snapshot is a detached copy of the collections for read-only consumers.
type Snapshot struct {
	Users       []models.User
	Courses     []models.Course
	Submissions []models.Submission
}

// Snapshot copies the current collections.
func (c *Container) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		Users:       c.copyUsers(),
		Courses:     c.copyCourses(),
		Submissions: c.copySubmissions(),
	}
}

// Users returns a copy of the roster.
func (c *Container) Users() []models.User {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.copyUsers()
}

// Courses returns a copy of the course catalogue.
func (c *Container) Courses() []models.Course {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.copyCourses()
}

// Submissions returns a copy of every submission.
func (c *Container) Submissions() []models.Submission {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.copySubmissions()
}

// User looks up a user by id.
func (c *Container) User(id string) (models.User, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, u := range c.users {
		if u.ID == id {
			return u, true
		}
	}
	return models.User{}, false
}

// Course looks up a course by id.
func (c *Container) Course(id string) (models.Course, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	idx := c.courseIndex(id)
	if idx < 0 {
		return models.Course{}, false
	}
	return c.courses[idx].Clone(), true
}

func (c *Container) log(ctx context.Context) *zap.Logger {
	return logger.For(ctx, c.logger)
}

func (c *Container) copyUsers() []models.User {
	return append([]models.User{}, c.users...)
}

func (c *Container) copyCourses() []models.Course {
	out := make([]models.Course, len(c.courses))
	for i, course := range c.courses {
		out[i] = course.Clone()
	}
	return out
}

func (c *Container) copySubmissions() []models.Submission {
	return append([]models.Submission{}, c.submissions...)
}

func (c *Container) courseIndex(id string) int {
	for i, course := range c.courses {
		if course.ID == id {
			return i
		}
	}
	return -1
}

func (c *Container) submissionIndex(id string) int {
	for i, s := range c.submissions {
		if s.ID == id {
			return i
		}
	}
	return -1
}

func (c *Container) setUsers(ctx context.Context, users []models.User) {
	c.users = users
	c.stores.Users.Save(ctx, users)
}

func (c *Container) setCourses(ctx context.Context, courses []models.Course) {
	c.courses = courses
	c.stores.Courses.Save(ctx, courses)
}

func (c *Container) setSubmissions(ctx context.Context, submissions []models.Submission) {
	c.submissions = submissions
	c.stores.Submissions.Save(ctx, submissions)
}
