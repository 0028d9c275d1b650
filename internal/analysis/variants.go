package analysis

import (
	"sort"
	"strings"

	"github.com/LyesArab/ProcessMining/internal/eventlog"
)

// Variant is an equivalence class of cases sharing an identical full
// activity sequence.
type Variant struct {
	Sequence   []string `json:"sequence"`
	CaseIDs    []string `json:"case_ids"`
	Count      int      `json:"count"`
	Percentage float64  `json:"percentage"`
}

// VariantSummary is the trace-variant analysis result. Variants are ranked
// by case-membership count descending; ties keep first-encountered order
// in the log.
type VariantSummary struct {
	TotalCases     int `json:"total_cases"`
	UniqueVariants int `json:"unique_variants"`

	// Complexity is unique_variants / total_cases, in (0,1] for a non-empty log.
	Complexity     float64 `json:"complexity"`
	CoverageTarget float64 `json:"coverage_target"`

	// CoveredBy is the smallest prefix of ranked variants whose cumulative
	// case coverage reaches the target; 0 for an empty log.
	CoveredBy int       `json:"covered_by"`
	Variants  []Variant `json:"variants"`
}

// variantKey joins a sequence with a separator that cannot appear in an
// activity label derived from sensor readings.
func variantKey(seq []string) string {
	return strings.Join(seq, "\x1f")
}

// TraceVariants groups the log's cases by their exact activity sequence:
// two cases match only when their sequences are equal element for element.
// coverageTarget is a fraction in (0,1].
func TraceVariants(log *eventlog.Log, coverageTarget float64) VariantSummary {
	summary := VariantSummary{
		TotalCases:     len(log.Cases),
		CoverageTarget: coverageTarget,
	}

	index := make(map[string]int)
	for _, c := range log.Cases {
		trace := c.Trace()
		key := variantKey(trace)
		i, seen := index[key]
		if !seen {
			i = len(summary.Variants)
			index[key] = i
			summary.Variants = append(summary.Variants, Variant{Sequence: trace})
		}
		summary.Variants[i].CaseIDs = append(summary.Variants[i].CaseIDs, c.ID)
		summary.Variants[i].Count++
	}

	summary.UniqueVariants = len(summary.Variants)
	if summary.TotalCases == 0 {
		return summary
	}
	summary.Complexity = float64(summary.UniqueVariants) / float64(summary.TotalCases)

	// Stable sort keeps first-encountered order for equal counts.
	sort.SliceStable(summary.Variants, func(i, j int) bool {
		return summary.Variants[i].Count > summary.Variants[j].Count
	})

	covered := 0
	for i := range summary.Variants {
		summary.Variants[i].Percentage = float64(summary.Variants[i].Count) / float64(summary.TotalCases) * 100
		covered += summary.Variants[i].Count
		if summary.CoveredBy == 0 && float64(covered) >= coverageTarget*float64(summary.TotalCases) {
			summary.CoveredBy = i + 1
		}
	}

	return summary
}
