// Package ingest reads raw sensor readings from the headerless four-column
// CSV format (date, time, sensor_id, sensor_value) produced by smart-home
// data loggers.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/LyesArab/ProcessMining/internal/eventlog"
	"github.com/LyesArab/ProcessMining/internal/monitoring"
)

// timestampLayout parses a combined "date time" field with an optional
// fractional-seconds component.
const timestampLayout = "2006-01-02 15:04:05.999999"

// Options controls reading behaviour.
type Options struct {
	// MaxRows caps the number of data rows read; 0 reads everything.
	MaxRows int

	// Location is the timezone raw timestamps are interpreted in.
	// Defaults to UTC.
	Location *time.Location
}

// Result carries the parsed readings plus the malformed-row count so the
// effect of input validation is auditable.
type Result struct {
	Readings  []eventlog.SensorReading
	Malformed int
}

// ReadFile reads readings from a CSV file on disk.
func ReadFile(path string, opts Options) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("failed to open readings file: %w", err)
	}
	defer f.Close()

	res, err := Read(f, opts)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return res, nil
}

// Read parses readings from r. Rows with the wrong field count, an
// unparsable timestamp, or an empty sensor_id/value are counted as malformed
// and skipped; a malformed row never aborts the read.
func Read(r io.Reader, opts Options) (Result, error) {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // row length validated by hand so bad rows are skippable
	cr.TrimLeadingSpace = true

	var res Result
	for {
		if opts.MaxRows > 0 && len(res.Readings) >= opts.MaxRows {
			break
		}

		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			// csv-level structural errors (bad quoting) drop the row only.
			res.Malformed++
			continue
		}
		if err != nil {
			// Anything else is an I/O failure from the underlying reader
			// and would repeat on every call.
			return res, fmt.Errorf("failed to read input: %w", err)
		}

		reading, ok := parseRow(row, loc)
		if !ok {
			res.Malformed++
			continue
		}
		res.Readings = append(res.Readings, reading)
	}

	if res.Malformed > 0 {
		monitoring.Logf("ingest: parsed %d readings, skipped %d malformed rows", len(res.Readings), res.Malformed)
	}

	return res, nil
}

func parseRow(row []string, loc *time.Location) (eventlog.SensorReading, bool) {
	if len(row) != 4 {
		return eventlog.SensorReading{}, false
	}

	date := strings.TrimSpace(row[0])
	clock := strings.TrimSpace(row[1])
	sensorID := strings.TrimSpace(row[2])
	value := strings.TrimSpace(row[3])
	if sensorID == "" || value == "" {
		return eventlog.SensorReading{}, false
	}

	stamp, err := time.ParseInLocation(timestampLayout, date+" "+clock, loc)
	if err != nil {
		return eventlog.SensorReading{}, false
	}

	return eventlog.SensorReading{
		Timestamp: stamp,
		SensorID:  sensorID,
		Value:     value,
	}, true
}
