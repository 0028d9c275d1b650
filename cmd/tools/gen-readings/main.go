// Command gen-readings writes a synthetic smart-home sensor CSV.
//
// This is useful for exercising the curation pipeline without a real
// deployment export. It simulates a single household over a number of days:
// motion sensors fire in bursts around daily routines, doors open and close
// around departures, and a fraction of motion readings chatter at sub-second
// intervals so the debounce filter has something to remove.
//
// Usage:
//
//	go run ./cmd/tools/gen-readings [flags]
//
// Flags:
//
//	-out    Output CSV path (default: readings.csv)
//	-days   Number of days to simulate (default: 7)
//	-start  First day, YYYY-MM-DD (default: 2010-11-01)
//	-seed   Random seed (default: 1)
package main

import (
	"encoding/csv"
	"flag"
	"log"
	"math/rand"
	"os"
	"time"
)

// Rows use the headerless four-column export format the ingest layer reads:
// date, time, sensor_id, value.
const dateLayout = "2006-01-02"
const clockLayout = "15:04:05.999999"

var motionSensors = []string{"M001", "M002", "M003", "M004", "M005", "M006", "M007", "M008"}
var doorSensors = []string{"D001", "D002", "D003"}

func main() {
	out := flag.String("out", "readings.csv", "Output CSV path")
	days := flag.Int("days", 7, "Number of days to simulate")
	start := flag.String("start", "2010-11-01", "First day, YYYY-MM-DD")
	seed := flag.Int64("seed", 1, "Random seed")
	flag.Parse()

	day, err := time.Parse("2006-01-02", *start)
	if err != nil {
		log.Fatalf("invalid -start: %v", err)
	}
	rng := rand.New(rand.NewSource(*seed))

	f, err := os.Create(*out)
	if err != nil {
		log.Fatalf("failed to create %s: %v", *out, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	total := 0
	for d := 0; d < *days; d++ {
		total += writeDay(w, rng, day.AddDate(0, 0, d))
	}
	w.Flush()
	if err := w.Error(); err != nil {
		log.Fatalf("failed to write CSV: %v", err)
	}

	log.Printf("wrote %d readings over %d days to %s", total, *days, *out)
}

// writeDay emits one day of readings: a morning burst, scattered daytime
// activity, door events around a midday departure, and an evening burst.
func writeDay(w *csv.Writer, rng *rand.Rand, day time.Time) int {
	count := 0
	emit := func(t time.Time, sensor, value string) {
		if err := w.Write([]string{t.Format(dateLayout), t.Format(clockLayout), sensor, value}); err != nil {
			log.Fatalf("failed to write row: %v", err)
		}
		count++
	}

	burst := func(start time.Time, events int) {
		t := start
		for i := 0; i < events; i++ {
			sensor := motionSensors[rng.Intn(len(motionSensors))]
			emit(t, sensor, "ON")
			hold := time.Duration(2+rng.Intn(30)) * time.Second
			emit(t.Add(hold), sensor, "OFF")

			// Occasional chatter: sub-second repeats that a debounce
			// threshold of one second should collapse.
			if rng.Float64() < 0.15 {
				chatter := t.Add(hold + 200*time.Millisecond)
				emit(chatter, sensor, "ON")
				emit(chatter.Add(300*time.Millisecond), sensor, "OFF")
			}

			t = t.Add(time.Duration(30+rng.Intn(600)) * time.Second)
		}
	}

	jitter := func(h int) time.Time {
		return day.Add(time.Duration(h)*time.Hour + time.Duration(rng.Intn(3600))*time.Second)
	}

	// Morning routine
	burst(jitter(6), 8+rng.Intn(8))

	// Midday departure and return
	departure := jitter(11)
	door := doorSensors[rng.Intn(len(doorSensors))]
	emit(departure, door, "OPEN")
	emit(departure.Add(time.Duration(5+rng.Intn(20))*time.Second), door, "CLOSE")
	ret := departure.Add(time.Duration(1+rng.Intn(4)) * time.Hour)
	emit(ret, door, "OPEN")
	emit(ret.Add(time.Duration(5+rng.Intn(20))*time.Second), door, "CLOSE")
	burst(ret.Add(time.Minute), 4+rng.Intn(6))

	// Evening routine
	burst(jitter(18), 10+rng.Intn(10))

	// A few malformed rows now and then, as real exports have.
	if rng.Float64() < 0.3 {
		if err := w.Write([]string{day.Format(dateLayout), "12:00:00", "", "ON"}); err != nil {
			log.Fatalf("failed to write row: %v", err)
		}
		count++
	}

	return count
}
