package screening

import (
	"github.com/dmanzanoa/lactic-acidosis-detection/pkg/types"
)

// Default abnormality cutoffs. Lactate above 4.0 mmol/L indicates lactic
// acidosis; arterial pH at or below 7.35 indicates metabolic acidosis.
const (
	DefaultLactateAbove = 4.0
	DefaultPHAtOrBelow  = 7.35
)

// Thresholds holds the kind-specific abnormality cutoffs.
type Thresholds struct {
	// LactateAbove marks a lactate reading abnormal when value > LactateAbove.
	LactateAbove float64

	// PHAtOrBelow marks a pH reading abnormal when value <= PHAtOrBelow.
	PHAtOrBelow float64
}

// DefaultThresholds returns the standard clinical cutoffs.
func DefaultThresholds() Thresholds {
	return Thresholds{
		LactateAbove: DefaultLactateAbove,
		PHAtOrBelow:  DefaultPHAtOrBelow,
	}
}

// IsAbnormal reports whether a single measurement is abnormal.
//
// A reading is abnormal when its item belongs to the lactate reference set
// and the value exceeds the lactate cutoff, or its item belongs to the pH
// reference set and the value is at or below the pH cutoff. An item in
// neither set is never abnormal. Both checks run independently, so an item
// present in both sets is abnormal if either condition holds.
func IsAbnormal(itemID int64, value float64, refs types.ReferenceItems, th Thresholds) bool {
	if refs.IsLactate(itemID) && value > th.LactateAbove {
		return true
	}
	if refs.IsPH(itemID) && value <= th.PHAtOrBelow {
		return true
	}
	return false
}
