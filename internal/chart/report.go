package chart

import (
	"fmt"
	"io"
	"time"

	"github.com/perimosocordiae/crossword-stats/internal/model"
)

const recentSparkCount = 30

// weekdayOrder lists the columns Monday-first, the way the provider groups
// its weeks.
var weekdayOrder = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

// WeekdayAggregate summarizes solved puzzles for one weekday.
type WeekdayAggregate struct {
	Weekday     time.Weekday
	Puzzles     int
	Solved      int
	MeanSeconds float64
	MinSeconds  float64
	MaxSeconds  float64
}

// ApplyFilter restricts a series to the configured date window and count.
func ApplyFilter(series model.StatsSeries, cfg model.ReportConfig) model.StatsSeries {
	out := series
	if cfg.Since != nil {
		filtered := make(model.StatsSeries, 0, len(out))
		for _, r := range out {
			if r.Date.Before(*cfg.Since) {
				continue
			}
			filtered = append(filtered, r)
		}
		out = filtered
	}
	if cfg.Last > 0 && len(out) > cfg.Last {
		out = out[len(out)-cfg.Last:]
	}
	return out
}

// WeekdayAggregates groups solved records by weekday, Monday first.
func WeekdayAggregates(series model.StatsSeries) []WeekdayAggregate {
	byDay := make(map[time.Weekday]*WeekdayAggregate, len(weekdayOrder))
	for _, day := range weekdayOrder {
		byDay[day] = &WeekdayAggregate{Weekday: day}
	}
	for _, r := range series {
		agg := byDay[r.Date.Weekday()]
		agg.Puzzles++
		if !r.Solved {
			continue
		}
		secs := float64(r.DurationSeconds)
		if agg.Solved == 0 || secs < agg.MinSeconds {
			agg.MinSeconds = secs
		}
		if secs > agg.MaxSeconds {
			agg.MaxSeconds = secs
		}
		agg.MeanSeconds += secs
		agg.Solved++
	}
	out := make([]WeekdayAggregate, 0, len(weekdayOrder))
	for _, day := range weekdayOrder {
		agg := byDay[day]
		if agg.Solved > 0 {
			agg.MeanSeconds /= float64(agg.Solved)
		}
		out = append(out, *agg)
	}
	return out
}

// RenderSummary prints a summary of the solve history.
func RenderSummary(w io.Writer, series model.StatsSeries) error {
	if len(series) == 0 {
		_, err := fmt.Fprintln(w, "No puzzles found.")
		return err
	}
	solved := series.Solved()
	if _, err := fmt.Fprintln(w, "Summary"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Puzzles: %d (%s to %s)\n",
		len(series),
		series[0].Date.Format("2006-01-02"),
		series[len(series)-1].Date.Format("2006-01-02"),
	); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Solved: %d (%.1f%%)\n",
		len(solved), float64(len(solved))/float64(len(series))*100); err != nil {
		return err
	}
	if len(solved) == 0 {
		_, err := fmt.Fprintln(w, "")
		return err
	}
	fastest, slowest := solved[0], solved[0]
	var total float64
	for _, r := range solved {
		if r.DurationSeconds < fastest.DurationSeconds {
			fastest = r
		}
		if r.DurationSeconds > slowest.DurationSeconds {
			slowest = r
		}
		total += float64(r.DurationSeconds)
	}
	if _, err := fmt.Fprintf(w, "Avg time: %s\n", FormatDuration(total/float64(len(solved)))); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Fastest: %s (%s)\n",
		FormatDuration(float64(fastest.DurationSeconds)), fastest.Date.Format("2006-01-02")); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Slowest: %s (%s)\n",
		FormatDuration(float64(slowest.DurationSeconds)), slowest.Date.Format("2006-01-02")); err != nil {
		return err
	}
	recent := solved
	if len(recent) > recentSparkCount {
		recent = recent[len(recent)-recentSparkCount:]
	}
	if _, err := fmt.Fprintf(w, "Recent: %s\n", Sparkline(recent.Durations())); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderSolveCurve prints the solve-time curve with a moving average overlay.
func RenderSolveCurve(w io.Writer, series model.StatsSeries, window int) error {
	return RenderSolveCurveWithSize(w, series, window, 0, 10, false)
}

// RenderSolveCurveWithSize prints the solve-time curve sized to a given total width.
func RenderSolveCurveWithSize(w io.Writer, series model.StatsSeries, window, totalWidth, height int, useColor bool) error {
	solved := series.Solved()
	if len(solved) == 0 {
		return nil
	}
	durations := solved.Durations()
	smoothed := MovingAverage(durations, window)

	width := 0
	if totalWidth > 0 {
		width = PlotWidthFor(totalWidth)
	}
	title := fmt.Sprintf("Solve Times (%s to %s)",
		solved[0].Date.Format("2006-01-02"),
		solved[len(solved)-1].Date.Format("2006-01-02"))
	return PlotSeriesWithColor(w, title, []Series{
		{Name: "Solve time", Values: durations, Format: FormatDuration},
		{Name: fmt.Sprintf("Avg (window %d)", window), Values: smoothed, Format: FormatDuration},
	}, width, height, useColor)
}

// RenderWeekdayTable prints per-weekday solve-time aggregates.
func RenderWeekdayTable(w io.Writer, series model.StatsSeries) error {
	aggs := WeekdayAggregates(series)
	headers := []string{"Day", "Puzzles", "Solved", "Avg", "Min", "Max"}
	rows := make([][]string, 0, len(aggs))
	for _, agg := range aggs {
		row := []string{
			agg.Weekday.String()[:3],
			fmt.Sprintf("%d", agg.Puzzles),
			fmt.Sprintf("%d", agg.Solved),
			"-", "-", "-",
		}
		if agg.Solved > 0 {
			row[3] = FormatDuration(agg.MeanSeconds)
			row[4] = FormatDuration(agg.MinSeconds)
			row[5] = FormatDuration(agg.MaxSeconds)
		}
		rows = append(rows, row)
	}
	rightAlign := map[int]bool{1: true, 2: true, 3: true, 4: true, 5: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderStreaks prints the streak and solve-rate summary.
func RenderStreaks(w io.Writer, streaks model.StreakStats) error {
	if _, err := fmt.Fprintf(w, "Current streak: %d days\n", streaks.CurrentStreak); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Longest streak: %d days\n", streaks.LongestStreak); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Solve rate: %.1f%%\n", streaks.SolveRate*100); err != nil {
		return err
	}
	if len(streaks.Ranges) == 0 {
		_, err := fmt.Fprintln(w, "")
		return err
	}
	headers := []string{"From", "To", "Days"}
	rows := make([][]string, 0, len(streaks.Ranges))
	for _, r := range streaks.Ranges {
		days := int(r.Stop.Sub(r.Start).Hours()/24) + 1
		rows = append(rows, []string{
			r.Start.Format("2006-01-02"),
			r.Stop.Format("2006-01-02"),
			fmt.Sprintf("%d", days),
		})
	}
	if _, err := fmt.Fprintln(w, "Streaks:"); err != nil {
		return err
	}
	for _, line := range formatTable(headers, rows, map[int]bool{2: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}
