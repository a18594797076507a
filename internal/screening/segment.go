package screening

import (
	"time"

	"github.com/dmanzanoa/lactic-acidosis-detection/pkg/types"
)

// DefaultMinEpisodeDuration is the minimum length an abnormal run must reach
// to be retained as an episode.
const DefaultMinEpisodeDuration = 120 * time.Minute

// Segment scans one subject's measurements, which must already be sorted by
// chart time, and returns the maximal contiguous abnormal intervals lasting
// at least minDuration.
//
// A run opens at the first abnormal reading and closes at the first normal
// reading after it; that normal reading's chart time becomes the episode end.
// Runs shorter than minDuration are dropped. A run still open when the
// stream ends is discarded entirely: an episode must be bounded by an
// observed return to normal.
//
// The returned episodes are time-ordered and non-overlapping. Segment does
// not modify records.
func Segment(records []types.MeasurementRecord, refs types.ReferenceItems, th Thresholds, minDuration time.Duration) []types.Episode {
	var (
		episodes []types.Episode
		start    time.Time
		open     bool
	)
	for _, rec := range records {
		if IsAbnormal(rec.ItemID, rec.Value, refs, th) {
			if !open {
				start = rec.ChartTime
				open = true
			}
			continue
		}
		if open {
			if rec.ChartTime.Sub(start) >= minDuration {
				episodes = append(episodes, types.Episode{Start: start, End: rec.ChartTime})
			}
			open = false
		}
	}
	return episodes
}
