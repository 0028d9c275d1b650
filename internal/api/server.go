// Package api exposes pipeline results over HTTP: summary counters, the
// analyzer outputs as JSON, the curated event log, and debug chart pages.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/LyesArab/ProcessMining/internal/db"
	"github.com/LyesArab/ProcessMining/internal/monitoring"
	"github.com/LyesArab/ProcessMining/internal/pipeline"
)

// ANSI escape codes for request logging
const colorCyan = "\033[36m"
const colorReset = "\033[0m"
const colorYellow = "\033[33m"
const colorBoldGreen = "\033[1;32m"
const colorBoldRed = "\033[1;31m"

type Server struct {
	db *db.DB

	mu     sync.RWMutex
	latest *pipeline.Result
}

func NewServer(database *db.DB) *Server {
	return &Server{db: database}
}

// SetResult publishes a pipeline run as the one the read endpoints serve.
func (s *Server) SetResult(res *pipeline.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest = res
}

func (s *Server) result() *pipeline.Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest
}

type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

func (lrw *loggingResponseWriter) Flush() {
	if flusher, ok := lrw.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

func statusCodeColor(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return colorBoldGreen + strconv.Itoa(statusCode) + colorReset
	case statusCode >= 300 && statusCode < 400:
		return colorYellow + strconv.Itoa(statusCode) + colorReset
	case statusCode >= 400:
		return colorBoldRed + strconv.Itoa(statusCode) + colorReset
	default:
		return strconv.Itoa(statusCode)
	}
}

// LoggingMiddleware logs method, path, query, status, and duration
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lrw := &loggingResponseWriter{w, http.StatusOK}
		next.ServeHTTP(lrw, r)
		monitoring.Logf(
			"[%s] %s %s%s%s %vms",
			statusCodeColor(lrw.statusCode), r.Method,
			colorCyan, r.RequestURI, colorReset,
			float64(time.Since(start).Nanoseconds())/1e6,
		)
	})
}

func (s *Server) ServeMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/summary", s.showSummary)
	mux.HandleFunc("/api/activities", s.showActivities)
	mux.HandleFunc("/api/variants", s.showVariants)
	mux.HandleFunc("/api/throughput", s.showThroughput)
	mux.HandleFunc("/api/temporal", s.showTemporal)
	mux.HandleFunc("/api/log", s.listEvents)
	mux.HandleFunc("/api/runs", s.listRuns)
	mux.HandleFunc("/debug/charts/activities", s.chartActivities)
	mux.HandleFunc("/debug/charts/hours", s.chartHours)
	mux.HandleFunc("/debug/charts/weekdays", s.chartWeekdays)
	mux.HandleFunc("/debug/charts/daily", s.chartDaily)
	mux.Handle("/metrics", promhttp.Handler())
	if s.db != nil {
		s.db.AttachAdminRoutes(mux)
	}
	return mux
}

func (s *Server) writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, "Failed to write response")
	}
}

// requireResult rejects read requests until a pipeline run has been published.
func (s *Server) requireResult(w http.ResponseWriter, r *http.Request) *pipeline.Result {
	if r.Method != http.MethodGet {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return nil
	}
	res := s.result()
	if res == nil {
		s.writeJSONError(w, http.StatusNotFound, "No pipeline run available yet")
		return nil
	}
	return res
}

func (s *Server) showSummary(w http.ResponseWriter, r *http.Request) {
	res := s.requireResult(w, r)
	if res == nil {
		return
	}
	s.writeJSON(w, map[string]any{
		"run_id":        res.RunID,
		"case_strategy": res.CaseStrategy,
		"stats":         res.Stats,
	})
}

func (s *Server) showActivities(w http.ResponseWriter, r *http.Request) {
	res := s.requireResult(w, r)
	if res == nil {
		return
	}
	s.writeJSON(w, res.Frequency)
}

func (s *Server) showVariants(w http.ResponseWriter, r *http.Request) {
	res := s.requireResult(w, r)
	if res == nil {
		return
	}
	s.writeJSON(w, res.Variants)
}

func (s *Server) showThroughput(w http.ResponseWriter, r *http.Request) {
	res := s.requireResult(w, r)
	if res == nil {
		return
	}
	s.writeJSON(w, res.Throughput)
}

func (s *Server) showTemporal(w http.ResponseWriter, r *http.Request) {
	res := s.requireResult(w, r)
	if res == nil {
		return
	}
	s.writeJSON(w, res.Temporal)
}

// listEvents serves the curated event log. With ?run_id= it reads a persisted
// run from sqlite; otherwise it serves the latest in-memory run.
func (s *Server) listEvents(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	if runID := r.URL.Query().Get("run_id"); runID != "" {
		if s.db == nil {
			s.writeJSONError(w, http.StatusNotFound, "No database configured")
			return
		}
		records, err := s.db.Events(runID)
		if err != nil {
			s.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to retrieve events: %v", err))
			return
		}
		s.writeJSON(w, records)
		return
	}

	res := s.result()
	if res == nil {
		s.writeJSONError(w, http.StatusNotFound, "No pipeline run available yet")
		return
	}
	s.writeJSON(w, res.Log.Records())
}

func (s *Server) listRuns(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	if s.db == nil {
		s.writeJSONError(w, http.StatusNotFound, "No database configured")
		return
	}

	limit := 20
	if l := r.URL.Query().Get("limit"); l != "" {
		v, err := strconv.Atoi(l)
		if err != nil || v < 1 {
			s.writeJSONError(w, http.StatusBadRequest, "Invalid 'limit' parameter")
			return
		}
		limit = v
	}

	runs, err := s.db.Runs(limit)
	if err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to retrieve runs: %v", err))
		return
	}
	s.writeJSON(w, runs)
}
