package eventlog

import "sort"

// Assemble builds the frozen event log from case-tagged records. Input order
// is not required: records are sorted ascending by (case_id, timestamp) with
// a stable sort, so events within a case are never reordered relative to
// each other. Every input record appears exactly once in the output.
//
// An empty input yields a log with zero cases and all case-length statistics
// at their zero values rather than an error.
func Assemble(records []Record) *Log {
	sorted := make([]Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].CaseID != sorted[j].CaseID {
			return sorted[i].CaseID < sorted[j].CaseID
		}
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	log := &Log{TotalEvents: len(sorted)}
	for _, r := range sorted {
		n := len(log.Cases)
		if n == 0 || log.Cases[n-1].ID != r.CaseID {
			log.Cases = append(log.Cases, Case{ID: r.CaseID})
			n++
		}
		log.Cases[n-1].Events = append(log.Cases[n-1].Events, r)
	}

	lengths := make([]float64, len(log.Cases))
	for i, c := range log.Cases {
		lengths[i] = float64(len(c.Events))
	}
	sort.Float64s(lengths)
	log.Lengths = caseLengthStats(lengths)

	return log
}
