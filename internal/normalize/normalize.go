// Package normalize maps raw provider payloads into provider-independent
// series. It is the only boundary that knows the upstream field names, so
// schema drift requires changes here and in the client types only.
package normalize

import (
	"sort"
	"time"

	"github.com/perimosocordiae/crossword-stats/internal/model"
	"github.com/perimosocordiae/crossword-stats/internal/nyt"
)

const dateLayout = "2006-01-02"

// Normalize transforms a raw solve history into a StatsSeries: one record
// per date, sorted ascending. Entries missing a required field are skipped
// rather than aborting the whole transformation, so one malformed record
// cannot discard a multi-year history. Duplicate dates resolve
// last-write-wins by input order; re-solved puzzles appear later in the feed.
func Normalize(raw nyt.SolveHistory) model.StatsSeries {
	byDate := make(map[time.Time]model.SolveRecord, len(raw.Results))
	for _, entry := range raw.Results {
		record, ok := normalizeEntry(entry)
		if !ok {
			continue
		}
		byDate[record.Date] = record
	}
	series := make(model.StatsSeries, 0, len(byDate))
	for _, record := range byDate {
		series = append(series, record)
	}
	sort.Slice(series, func(i, j int) bool {
		return series[i].Date.Before(series[j].Date)
	})
	return series
}

func normalizeEntry(entry nyt.SolveEntry) (model.SolveRecord, bool) {
	date, err := time.Parse(dateLayout, entry.PrintDate)
	if err != nil {
		return model.SolveRecord{}, false
	}
	if entry.Solved == nil {
		return model.SolveRecord{}, false
	}
	record := model.SolveRecord{Date: date, Solved: *entry.Solved}
	if record.Solved {
		if entry.SolvingSeconds == nil || *entry.SolvingSeconds < 0 {
			return model.SolveRecord{}, false
		}
		record.DurationSeconds = *entry.SolvingSeconds
	} else if entry.SolvingSeconds != nil && *entry.SolvingSeconds > 0 {
		record.DurationSeconds = *entry.SolvingSeconds
	}
	return record, true
}

// NormalizeStreaks maps the raw streak payload into model.StreakStats.
// Streak rows with unparseable dates are skipped; single-element rows are
// one-day streaks.
func NormalizeStreaks(raw nyt.StreakStats) model.StreakStats {
	streaks := raw.Results.Streaks
	out := model.StreakStats{
		CurrentStreak: streaks.CurrentStreak,
		LongestStreak: streaks.LongestStreak,
		SolveRate:     raw.Results.Stats.SolveRate,
	}
	for _, row := range streaks.Dates {
		if len(row) == 0 {
			continue
		}
		start, err := time.Parse(dateLayout, row[0])
		if err != nil {
			continue
		}
		stop := start
		if len(row) > 1 {
			stop, err = time.Parse(dateLayout, row[len(row)-1])
			if err != nil {
				continue
			}
		}
		if stop.Before(start) {
			start, stop = stop, start
		}
		out.Ranges = append(out.Ranges, model.StreakRange{Start: start, Stop: stop})
	}
	return out
}
