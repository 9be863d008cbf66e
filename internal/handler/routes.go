package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/lms-ai-api/internal/middleware"
	"github.com/noah-isme/lms-ai-api/internal/models"
)

// Handlers bundles every API handler mounted under the API prefix.
type Handlers struct {
	Auth          *AuthHandler
	Users         *UserHandler
	Courses       *CourseHandler
	Submissions   *SubmissionHandler
	Reports       *ReportHandler
	Views         *ViewHandler
	Notifications *NotificationHandler
}

// RegisterRoutes mounts the public login route and the session-protected API on group.
func RegisterRoutes(group *gin.RouterGroup, auth gin.HandlerFunc, h Handlers) {
	const (
		student = models.RoleStudent
		teacher = models.RoleTeacher
		admin   = models.RoleAdministrator
	)

	group.POST("/auth/login", h.Auth.Login)

	secured := group.Group("")
	secured.Use(auth)

	secured.POST("/auth/logout", h.Auth.Logout)
	secured.GET("/auth/me", h.Auth.Me)

	secured.GET("/navigation", h.Views.Navigation)
	secured.GET("/views/:view", h.Views.Render)

	users := secured.Group("/users", middleware.RequireRoles(admin))
	users.GET("", h.Users.List)
	users.POST("", h.Users.Create)
	users.PUT("/:id", h.Users.Update)
	users.DELETE("/:id", h.Users.Delete)

	secured.PUT("/profile", middleware.RequireRoles(student, teacher), h.Users.UpdateProfile)

	courses := secured.Group("/courses")
	courses.GET("", h.Courses.List)
	courses.GET("/:id", h.Courses.Get)
	courses.POST("", middleware.RequireRoles(teacher, admin), h.Courses.Create)
	courses.POST("/generate", middleware.RequireRoles(teacher, admin), h.Courses.Generate)
	courses.DELETE("/:id", middleware.RequireRoles(teacher, admin), h.Courses.Delete)
	courses.POST("/:id/enroll", middleware.RequireRoles(student), h.Courses.Enroll)
	courses.POST("/:id/unenroll", middleware.RequireRoles(student), h.Courses.Unenroll)
	courses.POST("/:id/study-help", h.Courses.StudyHelp)

	secured.POST("/submissions", middleware.RequireRoles(student), h.Submissions.Submit)
	secured.POST("/submissions/:id/evaluate", middleware.RequireRoles(teacher, admin), h.Submissions.Evaluate)

	secured.GET("/reports/progress", middleware.RequireRoles(student), h.Reports.Progress)
	secured.GET("/reports/performance/:studentId", middleware.RequireRoles(admin), h.Reports.Performance)
	secured.GET("/grades/export", h.Reports.ExportGrades)

	secured.GET("/notifications", h.Notifications.List)
	secured.DELETE("/notifications/:id", h.Notifications.Dismiss)
}
