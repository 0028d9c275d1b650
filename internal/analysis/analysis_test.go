package analysis

import (
	"testing"
	"time"

	"github.com/LyesArab/ProcessMining/internal/eventlog"
)

// buildLog assembles a log from (case_id, activity, timestamp) triples.
func buildLog(t *testing.T, rows [][3]string) *eventlog.Log {
	t.Helper()
	records := make([]eventlog.Record, 0, len(rows))
	for _, row := range rows {
		stamp, err := time.Parse("2006-01-02 15:04:05.999999", row[2])
		if err != nil {
			t.Fatalf("bad test timestamp %q: %v", row[2], err)
		}
		records = append(records, eventlog.Record{CaseID: row[0], Activity: row[1], Timestamp: stamp})
	}
	return eventlog.Assemble(records)
}

func emptyLog(t *testing.T) *eventlog.Log {
	t.Helper()
	return eventlog.Assemble(nil)
}
