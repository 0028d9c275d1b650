// Package report renders pipeline results to static PNG plots for offline
// review and sharing.
package report

import (
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/LyesArab/ProcessMining/internal/analysis"
	"github.com/LyesArab/ProcessMining/internal/monitoring"
	"github.com/LyesArab/ProcessMining/internal/pipeline"
)

// WriteAll renders every plot for a run into outputDir and returns the
// written file paths. The directory is created if missing.
func WriteAll(res *pipeline.Result, outputDir string) ([]string, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output dir: %w", err)
	}

	var written []string
	plots := []struct {
		file   string
		render func(path string) error
	}{
		{"case_durations.png", func(p string) error { return DurationHistogram(res, p) }},
		{"hourly_profile.png", func(p string) error { return HourlyProfile(res, p) }},
		{"weekday_profile.png", func(p string) error { return WeekdayProfile(res, p) }},
	}
	if len(res.Log.Cases) == 0 {
		// An empty log has no duration distribution; skip the histogram
		// rather than failing the whole report.
		monitoring.Logf("report: no cases in run %s, skipping duration histogram", res.RunID)
		plots = plots[1:]
	}
	for _, pl := range plots {
		path := filepath.Join(outputDir, pl.file)
		if err := pl.render(path); err != nil {
			return written, err
		}
		monitoring.Logf("wrote plot %s", path)
		written = append(written, path)
	}
	return written, nil
}

// DurationHistogram plots the distribution of case throughput times.
func DurationHistogram(res *pipeline.Result, path string) error {
	durations := analysis.CaseDurations(res.Log, res.Throughput.Unit)
	if len(durations) == 0 {
		return fmt.Errorf("no cases to plot")
	}

	values := make(plotter.Values, 0, len(durations))
	for _, d := range durations {
		values = append(values, d.Duration)
	}

	p := plot.New()
	p.Title.Text = "Case Durations"
	p.X.Label.Text = fmt.Sprintf("Duration (%s)", res.Throughput.Unit)
	p.Y.Label.Text = "Cases"

	bins := 20
	if len(values) < bins {
		bins = len(values)
	}
	hist, err := plotter.NewHist(values, bins)
	if err != nil {
		return fmt.Errorf("failed to build histogram: %w", err)
	}
	p.Add(hist)

	if err := p.Save(10*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to save histogram: %w", err)
	}
	return nil
}

// HourlyProfile plots event counts per hour of day.
func HourlyProfile(res *pipeline.Result, path string) error {
	values := make(plotter.Values, 24)
	labels := make([]string, 24)
	for h, c := range res.Temporal.HourCounts {
		values[h] = float64(c)
		labels[h] = fmt.Sprintf("%02d", h)
	}

	p := plot.New()
	p.Title.Text = "Events by Hour of Day"
	p.Y.Label.Text = "Events"

	bars, err := plotter.NewBarChart(values, vg.Points(14))
	if err != nil {
		return fmt.Errorf("failed to build bar chart: %w", err)
	}
	p.Add(bars)
	p.NominalX(labels...)

	if err := p.Save(10*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to save hourly profile: %w", err)
	}
	return nil
}

// WeekdayProfile plots event counts per weekday, Monday first.
func WeekdayProfile(res *pipeline.Result, path string) error {
	values := make(plotter.Values, 7)
	for i, c := range res.Temporal.WeekdayCounts {
		values[i] = float64(c)
	}

	p := plot.New()
	p.Title.Text = "Events by Weekday"
	p.Y.Label.Text = "Events"

	bars, err := plotter.NewBarChart(values, vg.Points(30))
	if err != nil {
		return fmt.Errorf("failed to build bar chart: %w", err)
	}
	p.Add(bars)
	p.NominalX(analysis.WeekdayNames[:]...)

	if err := p.Save(10*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to save weekday profile: %w", err)
	}
	return nil
}
