// Package eventlog implements the curation pipeline that turns raw smart-home
// sensor readings into a frozen event log: debounce filtering, case
// segmentation and assembly of the canonical (case_id, activity, timestamp)
// record set consumed by external process-discovery tools.
package eventlog

import (
	"time"

	"gonum.org/v1/gonum/stat"
)

// SensorReading is a single raw reading as produced by the ingestion layer.
// Readings are immutable once read.
type SensorReading struct {
	Timestamp time.Time `json:"timestamp"`
	SensorID  string    `json:"sensor_id"`
	Value     string    `json:"value"`
}

// CleanedEvent is a reading that survived validation and debounce filtering,
// carrying the derived activity label (sensor_id + "_" + value).
type CleanedEvent struct {
	Timestamp time.Time `json:"timestamp"`
	SensorID  string    `json:"sensor_id"`
	Value     string    `json:"value"`
	Activity  string    `json:"activity"`
}

// ActivityLabel derives the activity label for a sensor/value pair.
func ActivityLabel(sensorID, value string) string {
	return sensorID + "_" + value
}

// Record is the canonical event-log row handed to external discovery
// collaborators.
type Record struct {
	CaseID    string    `json:"case_id"`
	Activity  string    `json:"activity"`
	Timestamp time.Time `json:"timestamp"`
}

// Case is one process instance: an ordered group of records sharing a case ID.
// Events are non-decreasing by timestamp.
type Case struct {
	ID     string   `json:"case_id"`
	Events []Record `json:"events"`
}

// Trace returns the full ordered activity-label sequence of the case.
func (c Case) Trace() []string {
	trace := make([]string, len(c.Events))
	for i, e := range c.Events {
		trace[i] = e.Activity
	}
	return trace
}

// CaseLengthStats summarises per-case event counts for diagnostics. All
// fields are zero for a log with no cases.
type CaseLengthStats struct {
	Min    int     `json:"min"`
	Max    int     `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
}

// Log is the assembled event log. It is treated as a read-only snapshot once
// built: the four analyzers and any external consumer may share it freely.
type Log struct {
	Cases       []Case          `json:"cases"`
	TotalEvents int             `json:"total_events"`
	Lengths     CaseLengthStats `json:"case_lengths"`
}

// Records flattens the log into its canonical row set, ordered by
// (case_id, timestamp) ascending.
func (l *Log) Records() []Record {
	out := make([]Record, 0, l.TotalEvents)
	for _, c := range l.Cases {
		out = append(out, c.Events...)
	}
	return out
}

// caseLengthStats computes min/max/mean/median over sorted case lengths.
// The input slice must be sorted ascending.
func caseLengthStats(sorted []float64) CaseLengthStats {
	if len(sorted) == 0 {
		return CaseLengthStats{}
	}
	return CaseLengthStats{
		Min:    int(sorted[0]),
		Max:    int(sorted[len(sorted)-1]),
		Mean:   stat.Mean(sorted, nil),
		Median: stat.Quantile(0.5, stat.LinInterp, sorted, nil),
	}
}
