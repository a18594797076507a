// Package runstore keeps recent screening run reports in memory for the
// serve-mode HTTP surface. Reports older than the configured retention are
// evicted by a background loop; Latest and List only ever return reports
// still within retention.
package runstore
