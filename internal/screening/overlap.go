package screening

import (
	"github.com/dmanzanoa/lactic-acidosis-detection/pkg/types"
)

// HasOverlap reports whether any administration falls strictly inside any
// episode: Start < ScheduleTime < End. Administrations exactly at an episode
// boundary do not count.
//
// This is an existence check only — it returns on the first match and does
// not report which episode or medication matched.
func HasOverlap(episodes []types.Episode, administrations []types.MedicationAdministration) bool {
	for _, ep := range episodes {
		for _, ad := range administrations {
			if ad.ScheduleTime.After(ep.Start) && ad.ScheduleTime.Before(ep.End) {
				return true
			}
		}
	}
	return false
}
