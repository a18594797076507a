// Package config loads the screening configuration from a YAML file.
//
// Config fields:
//   - Warehouse.DSNEnv — environment variable holding the Postgres DSN
//   - Warehouse.Schema — schema holding the clinical tables (default mimiciv_hosp)
//   - Screening.*     — thresholds, minimum episode duration, medication
//     vocabulary, diagnosis code prefix, reference-item filters
//   - Serve.*         — HTTP port, run interval, report retention, API auth
//
// Load(path) applies defaults before unmarshalling, then validates. An empty
// path yields the built-in defaults. Watch re-loads the file on change and
// hands the new Config to the caller; a file that fails to parse keeps the
// previous configuration active.
package config
