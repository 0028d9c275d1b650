package eventlog

import (
	"fmt"
	"sort"
	"time"

	"github.com/LyesArab/ProcessMining/internal/monitoring"
)

// FilterResult carries the cleaned events plus audit counters so the effect
// of validation and debouncing is visible to callers.
type FilterResult struct {
	Events    []CleanedEvent
	Rejected  int // malformed readings dropped before filtering
	Debounced int // rapid-fire repeats removed by the threshold rule
}

// Filter validates and debounces a batch of raw readings.
//
// Readings are sorted ascending by timestamp (input order is not trusted),
// malformed readings (zero timestamp, empty sensor_id or value) are dropped
// and counted, then for every sensor a reading is kept only if it is the
// first seen for that sensor or its gap to the previously kept reading from
// the same sensor is at least threshold seconds. The boundary is inclusive:
// a gap exactly equal to the threshold is kept. A zero threshold disables
// debouncing entirely.
//
// Ordering across sensors is preserved; the filter runs in a single forward
// pass keeping only a last-kept timestamp per sensor.
func Filter(readings []SensorReading, threshold float64) (FilterResult, error) {
	if threshold < 0 {
		return FilterResult{}, fmt.Errorf("noise threshold must be non-negative, got %f", threshold)
	}

	sorted := make([]SensorReading, len(readings))
	copy(sorted, readings)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	res := FilterResult{Events: make([]CleanedEvent, 0, len(sorted))}
	gap := time.Duration(threshold * float64(time.Second))
	lastKept := make(map[string]time.Time)

	for _, r := range sorted {
		if r.Timestamp.IsZero() || r.SensorID == "" || r.Value == "" {
			res.Rejected++
			continue
		}

		if prev, seen := lastKept[r.SensorID]; seen && threshold > 0 {
			if r.Timestamp.Sub(prev) < gap {
				res.Debounced++
				continue
			}
		}
		lastKept[r.SensorID] = r.Timestamp

		res.Events = append(res.Events, CleanedEvent{
			Timestamp: r.Timestamp,
			SensorID:  r.SensorID,
			Value:     r.Value,
			Activity:  ActivityLabel(r.SensorID, r.Value),
		})
	}

	if res.Rejected > 0 || res.Debounced > 0 {
		monitoring.Logf("noise filter: kept %d events, rejected %d malformed, debounced %d (threshold %.3fs)",
			len(res.Events), res.Rejected, res.Debounced, threshold)
	}

	return res, nil
}
