package types

import (
	"sort"
	"time"
)

// MeasurementRecord is one laboratory measurement for a subject, as returned
// by the warehouse lab event fetch. Records with a NULL value never leave the
// warehouse layer, so Value is always present.
type MeasurementRecord struct {
	SubjectID int64     `json:"subject_id"`
	ItemID    int64     `json:"item_id"`
	ChartTime time.Time `json:"chart_time"`
	Value     float64   `json:"value"`
}

// MedicationAdministration is one scheduled administration of a vasoactive
// medication for a subject.
type MedicationAdministration struct {
	SubjectID    int64     `json:"subject_id"`
	Medication   string    `json:"medication"`
	ScheduleTime time.Time `json:"schedule_time"`
}

// ReferenceItems holds the lab item identifiers for each measurement kind.
// The two sets may overlap; classification checks each kind independently.
type ReferenceItems struct {
	lactate map[int64]struct{}
	ph      map[int64]struct{}
}

// NewReferenceItems builds a ReferenceItems from the two identifier lists
// returned by the warehouse reference lookup. Duplicates are collapsed.
func NewReferenceItems(lactateIDs, phIDs []int64) ReferenceItems {
	r := ReferenceItems{
		lactate: make(map[int64]struct{}, len(lactateIDs)),
		ph:      make(map[int64]struct{}, len(phIDs)),
	}
	for _, id := range lactateIDs {
		r.lactate[id] = struct{}{}
	}
	for _, id := range phIDs {
		r.ph[id] = struct{}{}
	}
	return r
}

// IsLactate reports whether id identifies a lactate measurement.
func (r ReferenceItems) IsLactate(id int64) bool {
	_, ok := r.lactate[id]
	return ok
}

// IsPH reports whether id identifies an arterial pH measurement.
func (r ReferenceItems) IsPH(id int64) bool {
	_, ok := r.ph[id]
	return ok
}

// ItemIDs returns the sorted union of both identifier sets, suitable for an
// IN-list query parameter.
func (r ReferenceItems) ItemIDs() []int64 {
	union := make(map[int64]struct{}, len(r.lactate)+len(r.ph))
	for id := range r.lactate {
		union[id] = struct{}{}
	}
	for id := range r.ph {
		union[id] = struct{}{}
	}
	out := make([]int64, 0, len(union))
	for id := range union {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Episode is one maximal contiguous abnormal interval for a subject.
// Start is the chart time of the first abnormal reading in the run; End is
// the chart time of the first normal reading after it, i.e. the observed
// return to normal. End is exclusive of the abnormal run.
type Episode struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Duration returns End minus Start.
func (e Episode) Duration() time.Duration {
	return e.End.Sub(e.Start)
}

// CohortResult is the per-subject outcome of the diagnosis cross-check.
type CohortResult struct {
	SubjectID int64 `json:"subject_id"`
	HasCode   bool  `json:"has_code"`
}
