package api

import (
	"time"

	"github.com/dmanzanoa/lactic-acidosis-detection/internal/report"
)

// HealthResponse is the body of GET /api/v1/health.
type HealthResponse struct {
	Status    string     `json:"status"`
	RunCount  int        `json:"run_count"`
	LastRunAt *time.Time `json:"last_run_at,omitempty"`
}

// RunSummary is one element of GET /api/v1/runs — a report without the
// per-subject results.
type RunSummary struct {
	RunID      string    `json:"run_id"`
	FinishedAt time.Time `json:"finished_at"`
	Flagged    int       `json:"flagged"`
	WithCode   int       `json:"with_code"`
	Percentage float64   `json:"percentage"`
}

// toRunSummary strips the per-subject results from a report.
func toRunSummary(rep *report.Report) RunSummary {
	return RunSummary{
		RunID:      rep.RunID,
		FinishedAt: rep.FinishedAt,
		Flagged:    rep.Flagged,
		WithCode:   rep.WithCode,
		Percentage: rep.Percentage,
	}
}

// errorResponse is the JSON body returned for error statuses.
type errorResponse struct {
	Error string `json:"error"`
}
