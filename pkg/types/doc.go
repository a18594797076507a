// Package types defines shared Go types used across the screening pipeline.
// These are the canonical in-memory representations of warehouse rows and
// derived cohort results, separate from any SQL or JSON encoding.
package types
