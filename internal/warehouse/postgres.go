package warehouse

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/dmanzanoa/lactic-acidosis-detection/pkg/types"
)

// DefaultSchema is the schema holding the hospital-wide MIMIC-IV tables.
const DefaultSchema = "mimiciv_hosp"

// Postgres is the production Warehouse backed by a PostgreSQL copy of the
// critical-care database.
type Postgres struct {
	db     *sql.DB
	schema string
}

var _ Warehouse = (*Postgres)(nil)

// Open connects to the store at dsn and verifies the connection with a ping.
// A failed connection or ping is reported as ErrUnavailable. schema selects
// the namespace holding the clinical tables; empty means DefaultSchema.
func Open(dsn, schema string) (*Postgres, error) {
	if schema == "" {
		schema = DefaultSchema
	}
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return &Postgres{db: db, schema: schema}, nil
}

// Close releases the underlying connection pool.
func (p *Postgres) Close() error {
	return p.db.Close()
}

// ReferenceItems runs one filtered lookup per measurement kind against the
// lab item dictionary.
func (p *Postgres) ReferenceItems(ctx context.Context, lactate, ph ItemFilter) (types.ReferenceItems, error) {
	lactateIDs, err := p.itemIDs(ctx, lactate)
	if err != nil {
		return types.ReferenceItems{}, fmt.Errorf("warehouse: lactate items: %w", err)
	}
	phIDs, err := p.itemIDs(ctx, ph)
	if err != nil {
		return types.ReferenceItems{}, fmt.Errorf("warehouse: ph items: %w", err)
	}
	return types.NewReferenceItems(lactateIDs, phIDs), nil
}

// itemIDs queries d_labitems for identifiers matching the filter.
func (p *Postgres) itemIDs(ctx context.Context, f ItemFilter) ([]int64, error) {
	query := fmt.Sprintf(`SELECT itemid FROM %s.d_labitems WHERE lower(label) LIKE $1`, p.schema)
	args := []any{likePattern(f.Label)}
	if f.Category != "" {
		query += ` AND lower(category) LIKE $2`
		args = append(args, likePattern(f.Category))
	}

	rows, err := p.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// LabEvents fetches the measurement rows for the given items. Rows are
// returned ordered by subject and chart time so the pipeline's per-subject
// grouping preserves input order for ties.
func (p *Postgres) LabEvents(ctx context.Context, itemIDs []int64) ([]types.MeasurementRecord, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}
	query := fmt.Sprintf(`
		SELECT subject_id, itemid, charttime, valuenum
		FROM %s.labevents
		WHERE itemid = ANY($1) AND valuenum IS NOT NULL
		ORDER BY subject_id, charttime`, p.schema)

	rows, err := p.db.QueryContext(ctx, query, pq.Array(itemIDs))
	if err != nil {
		return nil, fmt.Errorf("warehouse: lab events: %w", err)
	}
	defer rows.Close()

	var out []types.MeasurementRecord
	for rows.Next() {
		var rec types.MeasurementRecord
		if err := rows.Scan(&rec.SubjectID, &rec.ItemID, &rec.ChartTime, &rec.Value); err != nil {
			return nil, fmt.Errorf("warehouse: lab events: scan: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("warehouse: lab events: %w", err)
	}
	return out, nil
}

// MedicationAdministrations fetches administration rows from the medication
// administration record for the given names. Matching is case-insensitive
// exact match against the controlled vocabulary; rows without a schedule
// time are excluded.
func (p *Postgres) MedicationAdministrations(ctx context.Context, medications []string) ([]types.MedicationAdministration, error) {
	if len(medications) == 0 {
		return nil, nil
	}
	names := make([]string, len(medications))
	for i, m := range medications {
		names[i] = strings.ToLower(m)
	}
	query := fmt.Sprintf(`
		SELECT subject_id, medication, scheduletime
		FROM %s.emar
		WHERE lower(medication) = ANY($1) AND scheduletime IS NOT NULL`, p.schema)

	rows, err := p.db.QueryContext(ctx, query, pq.Array(names))
	if err != nil {
		return nil, fmt.Errorf("warehouse: medications: %w", err)
	}
	defer rows.Close()

	var out []types.MedicationAdministration
	for rows.Next() {
		var ad types.MedicationAdministration
		if err := rows.Scan(&ad.SubjectID, &ad.Medication, &ad.ScheduleTime); err != nil {
			return nil, fmt.Errorf("warehouse: medications: scan: %w", err)
		}
		out = append(out, ad)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("warehouse: medications: %w", err)
	}
	return out, nil
}

// DiagnosisSubjects reports which subjects carry a discharge diagnosis code
// with the given prefix.
func (p *Postgres) DiagnosisSubjects(ctx context.Context, subjectIDs []int64, codePattern string) (map[int64]bool, error) {
	if len(subjectIDs) == 0 {
		return map[int64]bool{}, nil
	}
	query := fmt.Sprintf(`
		SELECT DISTINCT subject_id
		FROM %s.diagnoses_icd
		WHERE subject_id = ANY($1) AND icd_code LIKE $2`, p.schema)

	rows, err := p.db.QueryContext(ctx, query, pq.Array(subjectIDs), codePattern+"%")
	if err != nil {
		return nil, fmt.Errorf("warehouse: diagnoses: %w", err)
	}
	defer rows.Close()

	out := make(map[int64]bool)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("warehouse: diagnoses: scan: %w", err)
		}
		out[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("warehouse: diagnoses: %w", err)
	}
	return out, nil
}

// likePattern wraps a filter term for a case-insensitive substring LIKE.
func likePattern(term string) string {
	return "%" + strings.ToLower(term) + "%"
}
