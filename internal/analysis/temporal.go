package analysis

import (
	"sort"
	"time"

	"github.com/LyesArab/ProcessMining/internal/eventlog"
)

// WeekdayNames is the canonical Monday-first bucket ordering for the
// weekday histogram.
var WeekdayNames = [7]string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// DateCount is one bucket of the per-date event histogram.
type DateCount struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Count int    `json:"count"`
}

// TemporalProfile holds three independent event-count histograms: by hour of
// day, by weekday (Monday first) and by calendar date in chronological order.
type TemporalProfile struct {
	HourCounts    [24]int     `json:"hour_counts"`
	WeekdayCounts [7]int      `json:"weekday_counts"`
	Daily         []DateCount `json:"daily"`
}

// weekdayIndex maps time.Weekday (Sunday = 0) onto the Monday-first buckets.
func weekdayIndex(d time.Weekday) int {
	return (int(d) + 6) % 7
}

// TemporalPatterns aggregates event counts by hour, weekday and calendar
// date. A pure function of the log: repeated calls never accumulate.
func TemporalPatterns(log *eventlog.Log) TemporalProfile {
	var profile TemporalProfile

	byDate := make(map[string]int)
	for _, c := range log.Cases {
		for _, e := range c.Events {
			profile.HourCounts[e.Timestamp.Hour()]++
			profile.WeekdayCounts[weekdayIndex(e.Timestamp.Weekday())]++
			byDate[e.Timestamp.Format("2006-01-02")]++
		}
	}

	profile.Daily = make([]DateCount, 0, len(byDate))
	for date, n := range byDate {
		profile.Daily = append(profile.Daily, DateCount{Date: date, Count: n})
	}
	sort.Slice(profile.Daily, func(i, j int) bool {
		return profile.Daily[i].Date < profile.Daily[j].Date
	})

	return profile
}
