package pipeline

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Pipeline counters, exported on the API server's /metrics endpoint.
var (
	readingsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "curation_readings_total",
		Help: "Raw sensor readings fed into the pipeline.",
	})
	malformedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "curation_malformed_readings_total",
		Help: "Readings rejected before filtering (bad timestamp, missing fields).",
	})
	debouncedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "curation_debounced_readings_total",
		Help: "Rapid-fire readings removed by the noise filter.",
	})
	eventsKeptTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "curation_events_kept_total",
		Help: "Cleaned events that made it into an assembled log.",
	})
	runsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "curation_runs_total",
		Help: "Completed pipeline runs.",
	})
)
