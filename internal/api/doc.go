// Package api is the serve-mode HTTP surface. It reads completed run
// reports from the runstore and returns JSON responses:
//
//	GET /api/v1/health  — service liveness and run counts
//	GET /api/v1/report  — the latest full run report
//	GET /api/v1/runs    — summaries of all retained runs
//
// Access is optionally gated by an API key header (config serve.auth).
package api
