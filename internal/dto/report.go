package dto

// ProgressReportResponse is the narrative report generated for a student.
type ProgressReportResponse struct {
	StudentID string `json:"studentId"`
	Report    string `json:"report"`
}

// PerformanceSummaryResponse is the administrator summary for one student.
type PerformanceSummaryResponse struct {
	StudentID    string `json:"studentId"`
	Summary      string `json:"summary"`
	Performance  string `json:"performance"`
	Text         string `json:"text"`
	Enrolled     int    `json:"enrolledCount"`
	AverageGrade *int   `json:"averageGrade"`
}

// ExportFormat enumerates gradebook export renderers.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

// ExportResult is a rendered gradebook file.
type ExportResult struct {
	Filename    string
	ContentType string
	Body        []byte
}
