package service

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/lms-ai-api/internal/dto"
	"github.com/noah-isme/lms-ai-api/internal/models"
	"github.com/noah-isme/lms-ai-api/internal/view"
	appErrors "github.com/noah-isme/lms-ai-api/pkg/errors"
	"github.com/noah-isme/lms-ai-api/pkg/export"
)

type csvRenderer interface {
	Render(table export.Table) ([]byte, error)
}

type pdfRenderer interface {
	Render(table export.Table) ([]byte, error)
}

// ExportService renders the gradebook visible to a user as a downloadable file.
type ExportService struct {
	state  snapshotSource
	csv    csvRenderer
	pdf    pdfRenderer
	logger *zap.Logger
	now    func() time.Time
}

// NewExportService constructs an ExportService. Nil renderers fall back to the defaults.
func NewExportService(src snapshotSource, logger *zap.Logger, csv csvRenderer, pdf pdfRenderer) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{state: src, csv: csv, pdf: pdf, logger: logger, now: time.Now}
}

// Gradebook renders the submissions visible to actor in the requested format.
func (s *ExportService) Gradebook(actor models.User, format dto.ExportFormat) (*dto.ExportResult, error) {
	if format == "" {
		format = dto.ExportFormatCSV
	}
	if format != dto.ExportFormatCSV && format != dto.ExportFormatPDF {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}

	rows := view.GradebookRows(s.state.Snapshot(), actor)
	table := gradebookTable(actor, rows)
	stamp := s.now().UTC()
	table.Title = fmt.Sprintf("Gradebook - %s (%s)", actor.Username, stamp.Format("2006-01-02"))

	var (
		body        []byte
		err         error
		contentType string
	)
	switch format {
	case dto.ExportFormatPDF:
		body, err = s.pdf.Render(table)
		contentType = "application/pdf"
	default:
		body, err = s.csv.Render(table)
		contentType = "text/csv"
	}
	if err != nil {
		s.logger.Error("gradebook export failed", zap.String("format", string(format)), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render gradebook")
	}

	return &dto.ExportResult{
		Filename:    fmt.Sprintf("gradebook-%s-%s.%s", actor.Username, stamp.Format("20060102"), format),
		ContentType: contentType,
		Body:        body,
	}, nil
}

func gradebookTable(actor models.User, rows []dto.GradeRow) export.Table {
	showStudent := actor.Role != models.RoleStudent
	headers := []string{"Course", "Assignment"}
	if showStudent {
		headers = append(headers, "Student")
	}
	headers = append(headers, "Status", "Grade")

	table := export.Table{Headers: headers, Rows: make([][]string, 0, len(rows))}
	for _, row := range rows {
		record := []string{row.CourseTitle, row.AssignmentTitle}
		if showStudent {
			record = append(record, row.StudentName)
		}
		record = append(record, row.Status, row.Grade)
		table.Rows = append(table.Rows, record)
	}
	return table
}
