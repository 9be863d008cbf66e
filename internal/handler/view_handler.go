package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/lms-ai-api/internal/state"
	"github.com/noah-isme/lms-ai-api/internal/view"
)

type snapshotSource interface {
	Snapshot() state.Snapshot
}

// ViewHandler renders role-aware view models.
type ViewHandler struct {
	base
	state snapshotSource
}

// NewViewHandler constructs a ViewHandler.
func NewViewHandler(src snapshotSource, notes notificationLister) *ViewHandler {
	return &ViewHandler{base: base{notes: notes}, state: src}
}

// Navigation godoc
// @Summary Sidebar navigation for the session role
// @Tags Views
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /navigation [get]
func (h *ViewHandler) Navigation(c *gin.Context) {
	session, err := currentSession(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, http.StatusOK, view.Navigation(session.User.Role))
}

// Render godoc
// @Summary Render a view
// @Description Unknown view identifiers fall back to the dashboard
// @Tags Views
// @Produce json
// @Param view path string true "View identifier"
// @Param courseId query string false "Course for course-detail"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /views/{view} [get]
func (h *ViewHandler) Render(c *gin.Context) {
	session, err := currentSession(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	res, err := view.Render(h.state.Snapshot(), session.User, view.Request{View: c.Param("view"), CourseID: c.Query("courseId")})
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, http.StatusOK, res)
}
