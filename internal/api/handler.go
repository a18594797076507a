package api

import (
	"encoding/json"
	"net/http"

	"github.com/dmanzanoa/lactic-acidosis-detection/internal/config"
	"github.com/dmanzanoa/lactic-acidosis-detection/internal/runstore"
)

// Handler is the HTTP handler for all /api/v1/* endpoints.
type Handler struct {
	runs *runstore.Store
	auth config.AuthConfig
	mux  *http.ServeMux
}

// New creates a Handler wired to the given run store and registers all routes.
func New(runs *runstore.Store, auth config.AuthConfig) http.Handler {
	h := &Handler{runs: runs, auth: auth, mux: http.NewServeMux()}

	h.mux.HandleFunc("/api/v1/health", h.health)
	h.mux.HandleFunc("/api/v1/report", h.latestReport)
	h.mux.HandleFunc("/api/v1/runs", h.listRuns)

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(r) {
		jsonErr(w, http.StatusUnauthorized, "invalid api key")
		return
	}
	h.mux.ServeHTTP(w, r)
}

// authorized enforces API key auth when configured. Non-apikey modes or an
// unconfigured key allow everything.
func (h *Handler) authorized(r *http.Request) bool {
	key := h.auth.Key()
	if h.auth.Mode != "apikey" || key == "" {
		return true
	}
	return r.Header.Get(h.auth.EffectiveHeader()) == key
}

// --- route handlers ---------------------------------------------------------

// health returns GET /api/v1/health — liveness plus run counts.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	resp := HealthResponse{
		Status:   "ok",
		RunCount: h.runs.Count(),
	}
	if latest, ok := h.runs.Latest(); ok {
		t := latest.FinishedAt
		resp.LastRunAt = &t
	}
	jsonResp(w, http.StatusOK, resp)
}

// latestReport returns GET /api/v1/report — the most recent full run report.
func (h *Handler) latestReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	rep, ok := h.runs.Latest()
	if !ok {
		jsonErr(w, http.StatusNotFound, "no completed runs")
		return
	}
	jsonResp(w, http.StatusOK, rep)
}

// listRuns returns GET /api/v1/runs — summaries of all retained runs.
func (h *Handler) listRuns(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	reports := h.runs.List()
	out := make([]RunSummary, 0, len(reports))
	for _, rep := range reports {
		out = append(out, toRunSummary(rep))
	}
	jsonResp(w, http.StatusOK, out)
}

// --- helpers ----------------------------------------------------------------

func jsonResp(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func jsonErr(w http.ResponseWriter, status int, msg string) {
	jsonResp(w, status, errorResponse{Error: msg})
}
