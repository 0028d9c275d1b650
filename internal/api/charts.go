package api

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/LyesArab/ProcessMining/internal/analysis"
)

// Debug chart endpoints (no auth): quick visual checks of the analyzer
// output without a frontend.

type chartRenderer interface {
	Render(w io.Writer) error
}

func (s *Server) renderChart(w http.ResponseWriter, chart chartRenderer) {
	var buf bytes.Buffer
	if err := chart.Render(&buf); err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("failed to render chart: %v", err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

// chartActivities renders a bar chart of activity frequencies.
// Query params:
//   - top (optional; default 20) number of activities to show
func (s *Server) chartActivities(w http.ResponseWriter, r *http.Request) {
	res := s.requireResult(w, r)
	if res == nil {
		return
	}

	top := 20
	if v := r.URL.Query().Get("top"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			top = n
		}
	}
	freq := res.Frequency
	if len(freq) > top {
		freq = freq[:top]
	}

	labels := make([]string, 0, len(freq))
	data := make([]opts.BarData, 0, len(freq))
	for _, f := range freq {
		labels = append(labels, f.Activity)
		data = append(data, opts.BarData{Value: f.Count})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Activity Frequency", Theme: "dark", Width: "1200px", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{Title: "Activity Frequency", Subtitle: fmt.Sprintf("run=%s activities=%d", res.RunID, len(freq))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{AxisLabel: &opts.AxisLabel{Rotate: 45}}),
	)
	bar.SetXAxis(labels).AddSeries("events", data)

	s.renderChart(w, bar)
}

// chartHours renders a bar chart of event counts per hour of day.
func (s *Server) chartHours(w http.ResponseWriter, r *http.Request) {
	res := s.requireResult(w, r)
	if res == nil {
		return
	}

	labels := make([]string, 0, 24)
	data := make([]opts.BarData, 0, 24)
	for h, c := range res.Temporal.HourCounts {
		labels = append(labels, fmt.Sprintf("%02d", h))
		data = append(data, opts.BarData{Value: c})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Hourly Activity", Theme: "dark", Width: "1200px", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{Title: "Events by Hour of Day", Subtitle: fmt.Sprintf("run=%s", res.RunID)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(labels).AddSeries("events", data)

	s.renderChart(w, bar)
}

// chartWeekdays renders a bar chart of event counts per weekday, Monday first.
func (s *Server) chartWeekdays(w http.ResponseWriter, r *http.Request) {
	res := s.requireResult(w, r)
	if res == nil {
		return
	}

	data := make([]opts.BarData, 0, 7)
	for _, c := range res.Temporal.WeekdayCounts {
		data = append(data, opts.BarData{Value: c})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Weekday Activity", Theme: "dark", Width: "1200px", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{Title: "Events by Weekday", Subtitle: fmt.Sprintf("run=%s", res.RunID)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(analysis.WeekdayNames[:]).AddSeries("events", data)

	s.renderChart(w, bar)
}

// chartDaily renders a line chart of event counts per calendar date.
func (s *Server) chartDaily(w http.ResponseWriter, r *http.Request) {
	res := s.requireResult(w, r)
	if res == nil {
		return
	}

	labels := make([]string, 0, len(res.Temporal.Daily))
	data := make([]opts.LineData, 0, len(res.Temporal.Daily))
	for _, d := range res.Temporal.Daily {
		labels = append(labels, d.Date)
		data = append(data, opts.LineData{Value: d.Count})
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Daily Activity", Theme: "dark", Width: "1200px", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{Title: "Events per Day", Subtitle: fmt.Sprintf("run=%s days=%d", res.RunID, len(labels))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	line.SetXAxis(labels).AddSeries("events", data, charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))

	s.renderChart(w, line)
}
