// Package report turns cohort evaluation results into the run summary: the
// flagged count, the count with a matching diagnosis code, and the match
// percentage. Summary renders the three-line human-readable form printed by
// the CLI; the struct itself is the JSON body served in serve mode.
package report
