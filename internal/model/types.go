// Package model defines shared data structures.
package model

import "time"

// Credential identifies the user and carries the replayed session cookie.
// It is loaded once at startup and never persisted.
type Credential struct {
	UserID string
	Cookie string
}

// SolveRecord is one normalized observation of a single puzzle attempt.
type SolveRecord struct {
	Date            time.Time
	DurationSeconds int
	Solved          bool
}

// StatsSeries is an ordered sequence of SolveRecords, ascending by date,
// one record per day.
type StatsSeries []SolveRecord

// Solved returns only the solved records, preserving order.
func (s StatsSeries) Solved() StatsSeries {
	out := make(StatsSeries, 0, len(s))
	for _, r := range s {
		if r.Solved {
			out = append(out, r)
		}
	}
	return out
}

// Durations returns the solve durations in seconds, preserving order.
func (s StatsSeries) Durations() []float64 {
	out := make([]float64, len(s))
	for i, r := range s {
		out[i] = float64(r.DurationSeconds)
	}
	return out
}

// StreakRange is a contiguous run of solved days.
type StreakRange struct {
	Start time.Time
	Stop  time.Time
}

// StreakStats summarizes the provider's streak and solve-rate data.
type StreakStats struct {
	CurrentStreak int
	LongestStreak int
	SolveRate     float64
	Ranges        []StreakRange
}

// ReportConfig defines filters and options for stats output.
type ReportConfig struct {
	Since  *time.Time
	Last   int
	Window int
}
