package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/lms-ai-api/internal/dto"
	"github.com/noah-isme/lms-ai-api/internal/models"
)

type reportService interface {
	ProgressReport(ctx context.Context, actor models.User) (*dto.ProgressReportResponse, error)
	PerformanceSummary(ctx context.Context, actor models.User, studentID string) (*dto.PerformanceSummaryResponse, error)
}

type gradebookExporter interface {
	Gradebook(actor models.User, format dto.ExportFormat) (*dto.ExportResult, error)
}

// ReportHandler serves AI reports and gradebook downloads.
type ReportHandler struct {
	base
	reports reportService
	exports gradebookExporter
}

// NewReportHandler constructs a ReportHandler.
func NewReportHandler(reports reportService, exports gradebookExporter, notes notificationLister) *ReportHandler {
	return &ReportHandler{base: base{notes: notes}, reports: reports, exports: exports}
}

// Progress godoc
// @Summary Student progress report
// @Tags Reports
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /reports/progress [get]
func (h *ReportHandler) Progress(c *gin.Context) {
	session, err := currentSession(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	res, err := h.reports.ProgressReport(c.Request.Context(), session.User)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, http.StatusOK, res)
}

// Performance godoc
// @Summary Administrator performance summary for a student
// @Tags Reports
// @Produce json
// @Param studentId path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /reports/performance/{studentId} [get]
func (h *ReportHandler) Performance(c *gin.Context) {
	session, err := currentSession(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	res, err := h.reports.PerformanceSummary(c.Request.Context(), session.User, c.Param("studentId"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, http.StatusOK, res)
}

// ExportGrades godoc
// @Summary Download gradebook
// @Tags Reports
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv or pdf"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /grades/export [get]
func (h *ReportHandler) ExportGrades(c *gin.Context) {
	session, err := currentSession(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	format := dto.ExportFormat(strings.ToLower(c.DefaultQuery("format", string(dto.ExportFormatCSV))))
	res, err := h.exports.Gradebook(session.User, format)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", res.Filename))
	c.Data(http.StatusOK, res.ContentType, res.Body)
}
