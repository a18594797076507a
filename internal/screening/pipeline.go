package screening

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/dmanzanoa/lactic-acidosis-detection/internal/report"
	"github.com/dmanzanoa/lactic-acidosis-detection/internal/warehouse"
	"github.com/dmanzanoa/lactic-acidosis-detection/pkg/types"
)

// Params holds the tunable inputs of one screening run.
type Params struct {
	Thresholds  Thresholds
	MinDuration time.Duration

	// Medications is the controlled vocabulary of vasoactive medication
	// names fetched from the administration record.
	Medications []string

	// CodePattern is the diagnosis code prefix used in the cross-check.
	CodePattern string

	// LactateFilter and PHFilter select the reference items per kind.
	LactateFilter warehouse.ItemFilter
	PHFilter      warehouse.ItemFilter
}

// Runner executes screening runs against a warehouse.
//
// Params may be swapped between runs via UpdateParams (config hot reload);
// a run in progress keeps the parameter set it started with.
type Runner struct {
	wh  warehouse.Warehouse
	now func() time.Time // injectable for deterministic tests

	mu     sync.Mutex
	params Params
}

// NewRunner creates a Runner over the given warehouse.
func NewRunner(wh warehouse.Warehouse, params Params) *Runner {
	return &Runner{
		wh:     wh,
		now:    time.Now,
		params: params,
	}
}

// UpdateParams replaces the parameter set used by subsequent runs.
func (r *Runner) UpdateParams(params Params) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.params = params
}

// Run executes one full screening pass: fetch the reference items, lab
// events and medication administrations, detect qualifying episodes per
// subject, and cross-check the flagged cohort against discharge diagnoses.
func (r *Runner) Run(ctx context.Context) (*report.Report, error) {
	r.mu.Lock()
	params := r.params
	r.mu.Unlock()

	startedAt := r.now()

	refs, err := r.wh.ReferenceItems(ctx, params.LactateFilter, params.PHFilter)
	if err != nil {
		return nil, fmt.Errorf("screening: reference items: %w", err)
	}

	events, err := r.wh.LabEvents(ctx, refs.ItemIDs())
	if err != nil {
		return nil, fmt.Errorf("screening: lab events: %w", err)
	}

	administrations, err := r.wh.MedicationAdministrations(ctx, params.Medications)
	if err != nil {
		return nil, fmt.Errorf("screening: medications: %w", err)
	}

	candidates := flagSubjects(events, administrations, refs, params)

	diagnoses := map[int64]bool{}
	if len(candidates) > 0 {
		diagnoses, err = r.wh.DiagnosisSubjects(ctx, candidates, params.CodePattern)
		if err != nil {
			return nil, fmt.Errorf("screening: diagnoses: %w", err)
		}
	}

	results := Evaluate(candidates, diagnoses)
	rep := report.New(results, startedAt, r.now())

	slog.Info("screening: run complete",
		"subjects", len(candidates),
		"with_code", rep.WithCode,
		"lab_events", len(events),
		"administrations", len(administrations),
		"duration", rep.FinishedAt.Sub(rep.StartedAt),
	)
	return rep, nil
}

// flagSubjects applies the segmenter and the overlap filter per subject and
// returns the subjects with at least one qualifying episode, in ascending
// subject order.
func flagSubjects(events []types.MeasurementRecord, administrations []types.MedicationAdministration, refs types.ReferenceItems, params Params) []int64 {
	bySubject := make(map[int64][]types.MeasurementRecord)
	for _, rec := range events {
		bySubject[rec.SubjectID] = append(bySubject[rec.SubjectID], rec)
	}

	medsBySubject := make(map[int64][]types.MedicationAdministration)
	for _, ad := range administrations {
		medsBySubject[ad.SubjectID] = append(medsBySubject[ad.SubjectID], ad)
	}

	subjects := make([]int64, 0, len(bySubject))
	for id := range bySubject {
		subjects = append(subjects, id)
	}
	sort.Slice(subjects, func(i, j int) bool { return subjects[i] < subjects[j] })

	var flagged []int64
	for _, id := range subjects {
		records := bySubject[id]
		// Stable sort keeps input order for equal chart times.
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].ChartTime.Before(records[j].ChartTime)
		})

		episodes := Segment(records, refs, params.Thresholds, params.MinDuration)
		if len(episodes) == 0 {
			continue
		}
		if HasOverlap(episodes, medsBySubject[id]) {
			flagged = append(flagged, id)
		}
	}
	return flagged
}
