package report

import (
	"strings"
	"testing"
	"time"

	"github.com/dmanzanoa/lactic-acidosis-detection/pkg/types"
)

var (
	started  = time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	finished = started.Add(90 * time.Second)
)

func TestNew_Counts(t *testing.T) {
	results := []types.CohortResult{
		{SubjectID: 1, HasCode: true},
		{SubjectID: 2, HasCode: false},
		{SubjectID: 3, HasCode: true},
		{SubjectID: 4, HasCode: false},
	}
	rep := New(results, started, finished)

	if rep.Flagged != 4 {
		t.Errorf("Flagged: got %d, want 4", rep.Flagged)
	}
	if rep.WithCode != 2 {
		t.Errorf("WithCode: got %d, want 2", rep.WithCode)
	}
	if rep.Percentage != 50.0 {
		t.Errorf("Percentage: got %v, want 50", rep.Percentage)
	}
	if rep.RunID == "" {
		t.Error("RunID is empty")
	}
}

func TestNew_EmptyResults(t *testing.T) {
	// Zero flagged subjects must not divide by zero; percentage is defined
	// as zero.
	rep := New(nil, started, finished)

	if rep.Flagged != 0 {
		t.Errorf("Flagged: got %d, want 0", rep.Flagged)
	}
	if rep.Percentage != 0.0 {
		t.Errorf("Percentage: got %v, want 0", rep.Percentage)
	}
}

func TestSummary_Format(t *testing.T) {
	results := []types.CohortResult{
		{SubjectID: 1, HasCode: true},
		{SubjectID: 2, HasCode: false},
		{SubjectID: 3, HasCode: false},
	}
	got := New(results, started, finished).Summary()

	want := "Number of subjects identified: 3\n" +
		"Number with lactic acidosis diagnosis: 1\n" +
		"Percentage with diagnosis: 33.33%\n"
	if got != want {
		t.Errorf("Summary:\ngot  %q\nwant %q", got, want)
	}
}

func TestSummary_ZeroSubjects(t *testing.T) {
	got := New(nil, started, finished).Summary()
	if !strings.Contains(got, "Percentage with diagnosis: 0.00%") {
		t.Errorf("Summary for empty run: got %q, want 0.00%%", got)
	}
}
