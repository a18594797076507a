package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmanzanoa/lactic-acidosis-detection/internal/config"
	"github.com/dmanzanoa/lactic-acidosis-detection/internal/report"
	"github.com/dmanzanoa/lactic-acidosis-detection/internal/runstore"
	"github.com/dmanzanoa/lactic-acidosis-detection/pkg/types"
)

func testStore(reports ...*report.Report) *runstore.Store {
	st := runstore.New(24 * time.Hour)
	for _, rep := range reports {
		st.Put(rep)
	}
	return st
}

func testReport(flagged, withCode int) *report.Report {
	results := make([]types.CohortResult, 0, flagged)
	for i := 0; i < flagged; i++ {
		results = append(results, types.CohortResult{
			SubjectID: int64(i + 1),
			HasCode:   i < withCode,
		})
	}
	return report.New(results, time.Now().Add(-time.Minute), time.Now())
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth_NoRuns(t *testing.T) {
	h := New(testStore(), config.AuthConfig{})

	rec := get(t, h, "/api/v1/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}

	var resp HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != "ok" {
		t.Errorf("Status: got %q, want ok", resp.Status)
	}
	if resp.RunCount != 0 {
		t.Errorf("RunCount: got %d, want 0", resp.RunCount)
	}
	if resp.LastRunAt != nil {
		t.Errorf("LastRunAt: got %v, want nil", resp.LastRunAt)
	}
}

func TestReport_NoRuns(t *testing.T) {
	h := New(testStore(), config.AuthConfig{})

	rec := get(t, h, "/api/v1/report")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status: got %d, want 404", rec.Code)
	}
}

func TestReport_ReturnsLatest(t *testing.T) {
	st := testStore(testReport(2, 1), testReport(5, 3))
	h := New(st, config.AuthConfig{})

	rec := get(t, h, "/api/v1/report")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}

	var rep report.Report
	if err := json.Unmarshal(rec.Body.Bytes(), &rep); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rep.Flagged != 5 {
		t.Errorf("Flagged: got %d, want 5 (latest run)", rep.Flagged)
	}
	if rep.WithCode != 3 {
		t.Errorf("WithCode: got %d, want 3", rep.WithCode)
	}
	if len(rep.Results) != 5 {
		t.Errorf("Results: got %d entries, want 5", len(rep.Results))
	}
}

func TestRuns_SummariesOnly(t *testing.T) {
	st := testStore(testReport(2, 1), testReport(5, 3))
	h := New(st, config.AuthConfig{})

	rec := get(t, h, "/api/v1/runs")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}

	var runs []RunSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &runs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}
	if runs[0].Flagged != 2 || runs[1].Flagged != 5 {
		t.Errorf("run order: got flagged counts [%d, %d], want [2, 5]",
			runs[0].Flagged, runs[1].Flagged)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	h := New(testStore(), config.AuthConfig{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/report", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status: got %d, want 405", rec.Code)
	}
}

func TestAPIKey_Enforced(t *testing.T) {
	t.Setenv("ACIDOSCAN_TEST_API_KEY", "secret")
	auth := config.AuthConfig{Mode: "apikey", KeyEnv: "ACIDOSCAN_TEST_API_KEY"}
	h := New(testStore(), auth)

	// Missing key → 401.
	rec := get(t, h, "/api/v1/health")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status without key: got %d, want 401", rec.Code)
	}

	// Correct key → 200.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	req.Header.Set("x-api-key", "secret")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status with key: got %d, want 200", rec.Code)
	}
}

func TestAPIKey_PassThroughWhenUnconfigured(t *testing.T) {
	// apikey mode with no key in the environment allows everything.
	auth := config.AuthConfig{Mode: "apikey", KeyEnv: "ACIDOSCAN_TEST_API_KEY_UNSET"}
	h := New(testStore(), auth)

	rec := get(t, h, "/api/v1/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
}
