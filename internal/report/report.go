package report

import (
	"fmt"
	"time"

	"github.com/dmanzanoa/lactic-acidosis-detection/pkg/types"
)

// Report is the outcome of one screening run.
type Report struct {
	RunID      string    `json:"run_id"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	// Flagged is the number of subjects with a qualifying episode.
	Flagged int `json:"flagged"`

	// WithCode is how many flagged subjects carry a matching diagnosis code.
	WithCode int `json:"with_code"`

	// Percentage is WithCode over Flagged, in percent. Defined as 0 when
	// Flagged is zero.
	Percentage float64 `json:"percentage"`

	Results []types.CohortResult `json:"results"`
}

// New builds a Report from the cohort results of one run.
func New(results []types.CohortResult, startedAt, finishedAt time.Time) *Report {
	withCode := 0
	for _, r := range results {
		if r.HasCode {
			withCode++
		}
	}
	pct := 0.0
	if len(results) > 0 {
		pct = float64(withCode) / float64(len(results)) * 100
	}
	return &Report{
		RunID:      fmt.Sprintf("run-%d", finishedAt.UnixNano()),
		StartedAt:  startedAt,
		FinishedAt: finishedAt,
		Flagged:    len(results),
		WithCode:   withCode,
		Percentage: pct,
		Results:    results,
	}
}

// Summary returns the three-line human-readable summary, with the percentage
// rendered to two decimals.
func (r *Report) Summary() string {
	return fmt.Sprintf(
		"Number of subjects identified: %d\n"+
			"Number with lactic acidosis diagnosis: %d\n"+
			"Percentage with diagnosis: %.2f%%\n",
		r.Flagged, r.WithCode, r.Percentage)
}
