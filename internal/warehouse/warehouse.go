package warehouse

import (
	"context"
	"errors"

	"github.com/dmanzanoa/lactic-acidosis-detection/pkg/types"
)

// ErrUnavailable indicates the analytical store cannot be reached. It is
// returned (wrapped) by Open when the connection or ping fails, and surfaced
// to the user as a non-recoverable condition.
var ErrUnavailable = errors.New("warehouse unavailable")

// ItemFilter selects lab items by case-insensitive substring match on label
// and, when Category is non-empty, on category.
type ItemFilter struct {
	Label    string
	Category string
}

// Warehouse is the data-retrieval capability the screening pipeline depends
// on. Implementations return fully materialized tables; the pipeline holds
// them in memory for the duration of one run.
type Warehouse interface {
	// ReferenceItems runs the two kind-filtered item lookups and returns the
	// identifier sets for lactate and arterial pH measurements.
	ReferenceItems(ctx context.Context, lactate, ph ItemFilter) (types.ReferenceItems, error)

	// LabEvents returns all measurements for the given item identifiers.
	// Rows with a NULL value are excluded at the query level.
	LabEvents(ctx context.Context, itemIDs []int64) ([]types.MeasurementRecord, error)

	// MedicationAdministrations returns administration rows whose medication
	// name matches one of the given names, case-insensitively.
	MedicationAdministrations(ctx context.Context, medications []string) ([]types.MedicationAdministration, error)

	// DiagnosisSubjects reports which of the given subjects carry a discharge
	// diagnosis code matching codePattern (prefix match). Subjects without a
	// matching code are absent from the returned map. An empty subject list
	// yields an empty map without touching the store.
	DiagnosisSubjects(ctx context.Context, subjectIDs []int64, codePattern string) (map[int64]bool, error)
}
