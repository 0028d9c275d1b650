package analysis

import (
	"math"
	"testing"

	"github.com/LyesArab/ProcessMining/internal/units"
)

func approx(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func TestCaseDurations(t *testing.T) {
	log := buildLog(t, [][3]string{
		{"a", "x", "2010-11-04 08:00:00"},
		{"a", "y", "2010-11-04 10:00:00"},
		{"b", "x", "2010-11-05 08:00:00"}, // single event
	})

	durations := CaseDurations(log, units.Hours)

	if len(durations) != 2 {
		t.Fatalf("durations = %d, want 2", len(durations))
	}
	approx(t, "case a duration", durations[0].Duration, 2)
	approx(t, "case b duration", durations[1].Duration, 0)
}

func TestCaseDurationsNonNegative(t *testing.T) {
	log := buildLog(t, [][3]string{
		{"a", "x", "2010-11-04 08:00:00"},
		{"a", "y", "2010-11-04 09:30:00"},
		{"b", "x", "2010-11-05 12:00:00"},
		{"c", "x", "2010-11-06 00:00:00"},
		{"c", "y", "2010-11-06 23:59:59"},
	})

	for _, d := range CaseDurations(log, units.Hours) {
		if d.Duration < 0 {
			t.Errorf("case %s has negative duration %f", d.CaseID, d.Duration)
		}
	}
}

func TestThroughputStats(t *testing.T) {
	// Case durations in hours: 2, 0, 1, 3.
	log := buildLog(t, [][3]string{
		{"a", "x", "2010-11-04 08:00:00"},
		{"a", "y", "2010-11-04 10:00:00"},
		{"b", "x", "2010-11-05 08:00:00"},
		{"c", "x", "2010-11-06 08:00:00"},
		{"c", "y", "2010-11-06 09:00:00"},
		{"d", "x", "2010-11-07 08:00:00"},
		{"d", "y", "2010-11-07 11:00:00"},
	})

	stats := Throughput(log, []float64{25, 75, 90}, units.Hours)

	if stats.Count != 4 {
		t.Fatalf("count = %d, want 4", stats.Count)
	}
	approx(t, "mean", stats.Mean, 1.5)
	approx(t, "median", stats.Median, 1.5)
	approx(t, "min", stats.Min, 0)
	approx(t, "max", stats.Max, 3)
	approx(t, "stddev", stats.StdDev, math.Sqrt(5.0/3.0))

	// Linear interpolation between order statistics at index p*(n-1).
	approx(t, "p25", stats.Percentiles[0].Value, 0.75)
	approx(t, "p75", stats.Percentiles[1].Value, 2.25)
	approx(t, "p90", stats.Percentiles[2].Value, 2.7)
}

func TestThroughputUnits(t *testing.T) {
	log := buildLog(t, [][3]string{
		{"a", "x", "2010-11-04 08:00:00"},
		{"a", "y", "2010-11-04 08:30:00"},
	})

	approx(t, "hours", Throughput(log, nil, units.Hours).Max, 0.5)
	approx(t, "minutes", Throughput(log, nil, units.Minutes).Max, 30)
	approx(t, "seconds", Throughput(log, nil, units.Seconds).Max, 1800)
}

func TestThroughputSingleCase(t *testing.T) {
	log := buildLog(t, [][3]string{
		{"a", "x", "2010-11-04 08:00:00"},
		{"a", "y", "2010-11-04 09:00:00"},
	})

	stats := Throughput(log, []float64{50}, units.Hours)

	approx(t, "mean", stats.Mean, 1)
	// Sample standard deviation is undefined for one observation; report 0.
	approx(t, "stddev", stats.StdDev, 0)
	approx(t, "p50", stats.Percentiles[0].Value, 1)
}

func TestThroughputEmptyLog(t *testing.T) {
	stats := Throughput(emptyLog(t), []float64{25, 50, 75}, units.Hours)

	if stats.Count != 0 {
		t.Errorf("count = %d, want 0", stats.Count)
	}
	approx(t, "mean", stats.Mean, 0)
	approx(t, "stddev", stats.StdDev, 0)
	if len(stats.Percentiles) != 3 {
		t.Fatalf("percentile points = %d, want 3", len(stats.Percentiles))
	}
	for _, p := range stats.Percentiles {
		approx(t, "empty percentile", p.Value, 0)
	}
}
