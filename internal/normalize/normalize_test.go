package normalize

import (
	"reflect"
	"testing"
	"time"

	"github.com/perimosocordiae/crossword-stats/internal/nyt"
)

func boolPtr(b bool) *bool    { return &b }
func intPtr(n int) *int       { return &n }
func date(s string) time.Time { d, _ := time.Parse("2006-01-02", s); return d }

func TestNormalizeBasic(t *testing.T) {
	raw := nyt.SolveHistory{Results: []nyt.SolveEntry{
		{PrintDate: "2023-01-01", Solved: boolPtr(true), SolvingSeconds: intPtr(120)},
		{PrintDate: "2023-01-02", Solved: boolPtr(true), SolvingSeconds: intPtr(90)},
	}}
	series := Normalize(raw)
	if len(series) != 2 {
		t.Fatalf("expected 2 records, got %d", len(series))
	}
	if !series[0].Date.Equal(date("2023-01-01")) || series[0].DurationSeconds != 120 || !series[0].Solved {
		t.Fatalf("unexpected first record: %+v", series[0])
	}
	if !series[1].Date.Equal(date("2023-01-02")) || series[1].DurationSeconds != 90 || !series[1].Solved {
		t.Fatalf("unexpected second record: %+v", series[1])
	}
}

func TestNormalizeSortsAscending(t *testing.T) {
	raw := nyt.SolveHistory{Results: []nyt.SolveEntry{
		{PrintDate: "2023-03-05", Solved: boolPtr(true), SolvingSeconds: intPtr(300)},
		{PrintDate: "2023-01-01", Solved: boolPtr(true), SolvingSeconds: intPtr(100)},
		{PrintDate: "2023-02-10", Solved: boolPtr(false)},
	}}
	series := Normalize(raw)
	if len(series) != 3 {
		t.Fatalf("expected 3 records, got %d", len(series))
	}
	for i := 1; i < len(series); i++ {
		if !series[i-1].Date.Before(series[i].Date) {
			t.Fatalf("series not strictly ascending at %d: %v >= %v", i, series[i-1].Date, series[i].Date)
		}
	}
}

func TestNormalizeSkipsMalformedEntries(t *testing.T) {
	tests := []struct {
		name  string
		entry nyt.SolveEntry
	}{
		{name: "missing date", entry: nyt.SolveEntry{Solved: boolPtr(true), SolvingSeconds: intPtr(10)}},
		{name: "bad date", entry: nyt.SolveEntry{PrintDate: "not-a-date", Solved: boolPtr(true), SolvingSeconds: intPtr(10)}},
		{name: "missing solved flag", entry: nyt.SolveEntry{PrintDate: "2023-01-02", SolvingSeconds: intPtr(10)}},
		{name: "solved without duration", entry: nyt.SolveEntry{PrintDate: "2023-01-02", Solved: boolPtr(true)}},
		{name: "negative duration", entry: nyt.SolveEntry{PrintDate: "2023-01-02", Solved: boolPtr(true), SolvingSeconds: intPtr(-5)}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			raw := nyt.SolveHistory{Results: []nyt.SolveEntry{
				{PrintDate: "2023-01-01", Solved: boolPtr(true), SolvingSeconds: intPtr(60)},
				tc.entry,
				{PrintDate: "2023-01-03", Solved: boolPtr(true), SolvingSeconds: intPtr(70)},
			}}
			series := Normalize(raw)
			if len(series) != 2 {
				t.Fatalf("expected the malformed entry skipped, got %d records", len(series))
			}
			if !series[0].Date.Equal(date("2023-01-01")) || !series[1].Date.Equal(date("2023-01-03")) {
				t.Fatalf("valid entries lost: %+v", series)
			}
		})
	}
}

func TestNormalizeDuplicateDatesLastWins(t *testing.T) {
	raw := nyt.SolveHistory{Results: []nyt.SolveEntry{
		{PrintDate: "2023-01-01", Solved: boolPtr(true), SolvingSeconds: intPtr(120)},
		{PrintDate: "2023-01-01", Solved: boolPtr(true), SolvingSeconds: intPtr(95)},
	}}
	series := Normalize(raw)
	if len(series) != 1 {
		t.Fatalf("expected 1 record, got %d", len(series))
	}
	if series[0].DurationSeconds != 95 {
		t.Fatalf("expected later entry to win, got %d seconds", series[0].DurationSeconds)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	raw := nyt.SolveHistory{Results: []nyt.SolveEntry{
		{PrintDate: "2023-01-02", Solved: boolPtr(true), SolvingSeconds: intPtr(90)},
		{PrintDate: "2023-01-01", Solved: boolPtr(false)},
		{PrintDate: "2023-01-01", Solved: boolPtr(true), SolvingSeconds: intPtr(120)},
	}}
	first := Normalize(raw)
	second := Normalize(raw)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("normalize is not idempotent:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestNormalizeUnsolvedKeepsZeroDuration(t *testing.T) {
	raw := nyt.SolveHistory{Results: []nyt.SolveEntry{
		{PrintDate: "2023-01-01", Solved: boolPtr(false)},
	}}
	series := Normalize(raw)
	if len(series) != 1 {
		t.Fatalf("expected 1 record, got %d", len(series))
	}
	if series[0].Solved || series[0].DurationSeconds != 0 {
		t.Fatalf("unexpected record: %+v", series[0])
	}
}

func TestNormalizeStreaks(t *testing.T) {
	var raw nyt.StreakStats
	raw.Results.Streaks.CurrentStreak = 4
	raw.Results.Streaks.LongestStreak = 21
	raw.Results.Streaks.Dates = [][]string{
		{"2023-01-01", "2023-01-21"},
		{"2023-02-03"},
		{"garbage"},
	}
	raw.Results.Stats.SolveRate = 0.875

	streaks := NormalizeStreaks(raw)
	if streaks.CurrentStreak != 4 || streaks.LongestStreak != 21 {
		t.Fatalf("unexpected streak counts: %+v", streaks)
	}
	if streaks.SolveRate != 0.875 {
		t.Fatalf("unexpected solve rate: %v", streaks.SolveRate)
	}
	if len(streaks.Ranges) != 2 {
		t.Fatalf("expected 2 ranges, got %d", len(streaks.Ranges))
	}
	if !streaks.Ranges[0].Start.Equal(date("2023-01-01")) || !streaks.Ranges[0].Stop.Equal(date("2023-01-21")) {
		t.Fatalf("unexpected first range: %+v", streaks.Ranges[0])
	}
	if !streaks.Ranges[1].Start.Equal(streaks.Ranges[1].Stop) {
		t.Fatalf("single-day streak should have equal bounds: %+v", streaks.Ranges[1])
	}
}
