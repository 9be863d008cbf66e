package models

import "fmt"

// PerformanceNotAvailable labels students without any graded work.
const PerformanceNotAvailable = "N/A"

// Evaluation is the structured grading reply.
type Evaluation struct {
	Grade    int    `json:"grade"`
	Feedback string `json:"feedback"`
}

// PerformanceSummary is the structured administrator summary reply.
type PerformanceSummary struct {
	Summary     string `json:"summary"`
	Performance string `json:"performance"`
}

// Text renders the summary the way the performance view displays it.
func (p PerformanceSummary) Text() string {
	if p.Performance == "" || p.Performance == PerformanceNotAvailable {
		return p.Summary
	}
	return fmt.Sprintf("%s Overall Performance: %s.", p.Summary, p.Performance)
}
