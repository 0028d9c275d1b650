package eventlog

import (
	"fmt"
	"strconv"
	"time"
)

// Case segmentation strategies.
const (
	StrategyDaily   = "daily"
	StrategySession = "session"
)

// Session labelling modes. LabelEventDate recomputes the calendar date per
// event, so a session spanning midnight carries two date prefixes;
// LabelSessionStart fixes the date at the first event of the session instead.
const (
	LabelEventDate    = "event-date"
	LabelSessionStart = "session-start-date"
)

const dateLayout = "2006-01-02"

// Segmenter assigns a case ID to every cleaned event according to the
// configured strategy.
type Segmenter struct {
	strategy     string
	sessionGap   time.Duration
	sessionLabel string
}

// NewSegmenter validates the strategy eagerly: an unknown strategy or
// labelling mode is a configuration error surfaced before any data is
// processed. gapSeconds only applies to the session strategy.
func NewSegmenter(strategy string, gapSeconds float64, sessionLabel string) (*Segmenter, error) {
	switch strategy {
	case StrategyDaily, StrategySession:
	default:
		return nil, fmt.Errorf("unknown case_strategy %q (valid: %s, %s)", strategy, StrategyDaily, StrategySession)
	}
	if gapSeconds < 0 {
		return nil, fmt.Errorf("session_gap_seconds must be non-negative, got %f", gapSeconds)
	}
	if sessionLabel == "" {
		sessionLabel = LabelEventDate
	}
	switch sessionLabel {
	case LabelEventDate, LabelSessionStart:
	default:
		return nil, fmt.Errorf("unknown session_label %q (valid: %s, %s)", sessionLabel, LabelEventDate, LabelSessionStart)
	}

	return &Segmenter{
		strategy:     strategy,
		sessionGap:   time.Duration(gapSeconds * float64(time.Second)),
		sessionLabel: sessionLabel,
	}, nil
}

// Strategy reports the configured strategy name.
func (s *Segmenter) Strategy() string { return s.strategy }

// Assign tags every event with a case ID. Events must be sorted ascending by
// timestamp; the filter stage guarantees this for pipeline callers.
//
// Daily: the case ID is the event's calendar date (YYYY-MM-DD).
// Session: a new session starts at the first event or whenever the gap to
// the immediately preceding event, regardless of sensor, exceeds the
// configured session gap. Case IDs are <date>_S<ordinal> with ordinals
// counted from 1.
func (s *Segmenter) Assign(events []CleanedEvent) []Record {
	records := make([]Record, 0, len(events))

	switch s.strategy {
	case StrategyDaily:
		for _, e := range events {
			records = append(records, Record{
				CaseID:    e.Timestamp.Format(dateLayout),
				Activity:  e.Activity,
				Timestamp: e.Timestamp,
			})
		}

	case StrategySession:
		session := 0
		var prev time.Time
		var sessionStart time.Time
		for i, e := range events {
			if i == 0 || e.Timestamp.Sub(prev) > s.sessionGap {
				session++
				sessionStart = e.Timestamp
			}
			prev = e.Timestamp

			labelTime := e.Timestamp
			if s.sessionLabel == LabelSessionStart {
				labelTime = sessionStart
			}
			records = append(records, Record{
				CaseID:    labelTime.Format(dateLayout) + "_S" + strconv.Itoa(session),
				Activity:  e.Activity,
				Timestamp: e.Timestamp,
			})
		}
	}

	return records
}
