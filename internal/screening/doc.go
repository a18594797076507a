// Package screening implements the acidosis episode detection core.
//
// classify.go decides whether a single measurement is abnormal under
// kind-specific thresholds (lactate > 4.0 mmol/L, arterial pH ≤ 7.35).
//
// segment.go scans one subject's chronologically ordered measurements and
// emits the maximal contiguous abnormal intervals lasting at least the
// configured minimum duration. A run must be closed by an observed normal
// reading to count; a run still open at stream end is discarded.
//
// overlap.go tests whether any medication administration falls strictly
// inside any episode (open interval — boundary times do not count).
//
// cohort.go joins the flagged subject set against the diagnosis lookup,
// defaulting to false for subjects absent from the lookup.
//
// pipeline.go orchestrates the full run against a warehouse: fetch, group by
// subject, segment, filter, evaluate. All core functions are pure; the only
// state in the package is the Runner's swappable parameter set.
package screening
