// Package analysis implements the descriptive analyzers over an assembled
// event log. Every analyzer is a pure function of the frozen log: no shared
// state, safe to run concurrently, and an empty log always yields a
// well-defined empty or zero-valued result.
package analysis

import (
	"sort"

	"github.com/LyesArab/ProcessMining/internal/eventlog"
)

// ActivityCount is one row of the activity frequency ranking.
type ActivityCount struct {
	Activity   string  `json:"activity"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// ActivityFrequency ranks activity labels by occurrence across the whole
// log, count descending with ties broken by label ascending so output is
// deterministic. Percentages are computed over the full event count.
func ActivityFrequency(log *eventlog.Log) []ActivityCount {
	counts := make(map[string]int)
	for _, c := range log.Cases {
		for _, e := range c.Events {
			counts[e.Activity]++
		}
	}

	ranked := make([]ActivityCount, 0, len(counts))
	for activity, n := range counts {
		ranked = append(ranked, ActivityCount{Activity: activity, Count: n})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Activity < ranked[j].Activity
	})

	if log.TotalEvents > 0 {
		for i := range ranked {
			ranked[i].Percentage = float64(ranked[i].Count) / float64(log.TotalEvents) * 100
		}
	}

	return ranked
}
