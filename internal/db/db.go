// Package db persists curated event logs to sqlite. The events table is the
// hand-off surface for external process-discovery tools: one row per
// canonical (case_id, activity, timestamp) record, keyed by run.
package db

import (
	"database/sql"
	"embed"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/tailscale/tailsql/server/tailsql"
	_ "modernc.org/sqlite"
	"tailscale.com/tsweb"

	"github.com/LyesArab/ProcessMining/internal/eventlog"
	"github.com/LyesArab/ProcessMining/internal/pipeline"
)

// timestampLayout is how event timestamps are stored. RFC3339 with
// nanoseconds keeps sub-second precision and sorts lexicographically.
const timestampLayout = time.RFC3339Nano

//go:embed migrations/*.sql
var migrationsFS embed.FS

type DB struct {
	*sql.DB
	path string
}

// NewDB opens the sqlite database at path and brings the schema up to the
// latest migration version.
func NewDB(path string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	db := &DB{DB: sqlDB, path: path}
	if err := db.MigrateUp(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return db, nil
}

// Run is one persisted pipeline run.
type Run struct {
	RunID        string            `json:"run_id"`
	CaseStrategy string            `json:"case_strategy"`
	Stats        pipeline.RunStats `json:"stats"`
	CreatedAt    time.Time         `json:"created_at"`
}

// SaveRun records a pipeline run and its full event log in one transaction.
func (db *DB) SaveRun(res *pipeline.Result) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO runs (run_id, case_strategy, readings_in, malformed, debounced, events_kept, case_count)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		res.RunID, res.CaseStrategy,
		res.Stats.ReadingsIn, res.Stats.Malformed, res.Stats.Debounced,
		res.Stats.EventsKept, res.Stats.Cases,
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO events (run_id, case_id, activity, timestamp) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare event insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range res.Log.Records() {
		if _, err := stmt.Exec(res.RunID, r.CaseID, r.Activity, r.Timestamp.UTC().Format(timestampLayout)); err != nil {
			return fmt.Errorf("failed to insert event: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}
	return nil
}

// Events returns a run's event log in canonical (case_id, timestamp) order.
func (db *DB) Events(runID string) ([]eventlog.Record, error) {
	rows, err := db.Query(
		`SELECT case_id, activity, timestamp FROM events WHERE run_id = ? ORDER BY case_id, timestamp`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var records []eventlog.Record
	for rows.Next() {
		var caseID, activity, stamp string
		if err := rows.Scan(&caseID, &activity, &stamp); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		ts, err := time.Parse(timestampLayout, stamp)
		if err != nil {
			return nil, fmt.Errorf("failed to parse stored timestamp %q: %w", stamp, err)
		}
		records = append(records, eventlog.Record{CaseID: caseID, Activity: activity, Timestamp: ts})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// Runs returns the most recent pipeline runs, newest first.
func (db *DB) Runs(limit int) ([]Run, error) {
	rows, err := db.Query(
		`SELECT run_id, case_strategy, readings_in, malformed, debounced, events_kept, case_count, created_at
		 FROM runs ORDER BY created_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(
			&r.RunID, &r.CaseStrategy,
			&r.Stats.ReadingsIn, &r.Stats.Malformed, &r.Stats.Debounced,
			&r.Stats.EventsKept, &r.Stats.Cases, &r.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return runs, nil
}

// DeleteRun removes a run and its events.
func (db *DB) DeleteRun(runID string) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM events WHERE run_id = ?`, runID); err != nil {
		return fmt.Errorf("failed to delete events: %w", err)
	}
	result, err := tx.Exec(`DELETE FROM runs WHERE run_id = ?`, runID)
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("run not found")
	}

	return tx.Commit()
}

// AttachAdminRoutes mounts the live SQL debugger and debug handlers on mux.
func (db *DB) AttachAdminRoutes(mux *http.ServeMux) {
	debug := tsweb.Debugger(mux)
	tsql, err := tailsql.NewServer(tailsql.Options{
		RoutePrefix: "/debug/tailsql/",
	})
	if err != nil {
		log.Fatalf("failed to create tailsql server: %v", err)
	}
	tsql.SetDB("sqlite://"+db.path, db.DB, &tailsql.DBOptions{
		Label: "Event Log DB",
	})

	debug.Handle("tailsql/", "SQL live debugging", tsql.NewMux())
}
