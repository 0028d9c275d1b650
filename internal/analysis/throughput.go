package analysis

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/LyesArab/ProcessMining/internal/eventlog"
	"github.com/LyesArab/ProcessMining/internal/units"
)

// PercentilePoint is one percentile of the case duration distribution.
type PercentilePoint struct {
	Percentile float64 `json:"percentile"`
	Value      float64 `json:"value"`
}

// DurationStats aggregates per-case throughput times. All values are in the
// configured unit. StdDev is the sample standard deviation and is 0 for
// fewer than two cases. Percentiles use linear interpolation between order
// statistics (gonum stat.Quantile with LinInterp, index p*(n-1)), the same
// rule as the pandas quantile default.
type DurationStats struct {
	Unit        string            `json:"unit"`
	Count       int               `json:"count"`
	Mean        float64           `json:"mean"`
	Median      float64           `json:"median"`
	Min         float64           `json:"min"`
	Max         float64           `json:"max"`
	StdDev      float64           `json:"std_dev"`
	Percentiles []PercentilePoint `json:"percentiles"`
}

// CaseDuration is the throughput time of a single case.
type CaseDuration struct {
	CaseID   string  `json:"case_id"`
	Duration float64 `json:"duration"`
}

// CaseDurations computes each case's duration, last event minus first, in
// the given unit. Events within a case are ordered, so the span is simply
// last minus first; a single-event case has duration 0.
func CaseDurations(log *eventlog.Log, unit string) []CaseDuration {
	out := make([]CaseDuration, 0, len(log.Cases))
	for _, c := range log.Cases {
		if len(c.Events) == 0 {
			continue
		}
		span := c.Events[len(c.Events)-1].Timestamp.Sub(c.Events[0].Timestamp)
		out = append(out, CaseDuration{
			CaseID:   c.ID,
			Duration: units.ConvertDuration(span.Seconds(), unit),
		})
	}
	return out
}

// Throughput aggregates case durations into summary statistics. percentiles
// are values in (0,100). An empty log yields zero-valued stats with the
// requested percentile points all at 0.
func Throughput(log *eventlog.Log, percentiles []float64, unit string) DurationStats {
	stats := DurationStats{Unit: unit}

	durations := CaseDurations(log, unit)
	xs := make([]float64, len(durations))
	for i, d := range durations {
		xs[i] = d.Duration
	}
	sort.Float64s(xs)

	stats.Count = len(xs)
	stats.Percentiles = make([]PercentilePoint, len(percentiles))
	for i, p := range percentiles {
		stats.Percentiles[i].Percentile = p
	}
	if stats.Count == 0 {
		return stats
	}

	stats.Min = xs[0]
	stats.Max = xs[len(xs)-1]
	stats.Mean = stat.Mean(xs, nil)
	stats.Median = stat.Quantile(0.5, stat.LinInterp, xs, nil)
	if stats.Count > 1 {
		stats.StdDev = stat.StdDev(xs, nil)
	}
	for i, p := range percentiles {
		stats.Percentiles[i].Value = stat.Quantile(p/100, stat.LinInterp, xs, nil)
	}

	return stats
}
