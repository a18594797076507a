// Package warehouse is the boundary to the analytical store holding the
// critical-care tables (lab item metadata, lab events, medication
// administrations, discharge diagnoses).
//
// The Warehouse interface is the capability the screening pipeline consumes;
// Postgres is the production adapter, and tests substitute in-memory fakes.
// Calls are opaque and synchronous: no retries, no local recovery — query
// failures propagate wrapped to the caller. A store that cannot be reached
// at Open time is reported as ErrUnavailable.
package warehouse
