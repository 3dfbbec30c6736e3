package nyt

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/perimosocordiae/crossword-stats/internal/model"
)

var testCred = model.Credential{UserID: "12345", Cookie: "secret-cookie"}

func testClient(url string) *Client {
	return NewClient(testCred, url, time.Second)
}

func TestFetchSolveHistory(t *testing.T) {
	var gotPath string
	var gotQuery map[string][]string
	var gotCookie string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		gotCookie = r.Header.Get("nyt-s")
		_, _ = w.Write([]byte(`{"results": [
			{"puzzle_id": 1, "print_date": "2023-01-01", "solved": true, "solving_seconds": 120},
			{"puzzle_id": 2, "print_date": "2023-01-02", "solved": false}
		]}`))
	}))
	defer server.Close()

	start, _ := time.Parse("2006-01-02", "2023-01-01")
	stop, _ := time.Parse("2006-01-02", "2023-01-31")
	history, err := testClient(server.URL).FetchSolveHistory(context.Background(), start, stop)
	if err != nil {
		t.Fatalf("FetchSolveHistory failed: %v", err)
	}
	if gotPath != "/v3/12345/puzzles.json" {
		t.Fatalf("unexpected path: %s", gotPath)
	}
	if gotCookie != "secret-cookie" {
		t.Fatalf("cookie header not replayed, got %q", gotCookie)
	}
	for key, want := range map[string]string{
		"publish_type": "daily",
		"sort_order":   "asc",
		"sort_by":      "print_date",
		"date_start":   "2023-01-01",
		"date_end":     "2023-01-31",
	} {
		if got := gotQuery[key]; len(got) != 1 || got[0] != want {
			t.Fatalf("query param %s = %v, want %s", key, got, want)
		}
	}
	if len(history.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(history.Results))
	}
	first := history.Results[0]
	if first.Solved == nil || !*first.Solved || first.SolvingSeconds == nil || *first.SolvingSeconds != 120 {
		t.Fatalf("unexpected first entry: %+v", first)
	}
	second := history.Results[1]
	if second.SolvingSeconds != nil {
		t.Fatalf("absent solving_seconds should decode to nil, got %v", *second.SolvingSeconds)
	}
}

func TestFetchSolveHistoryAuthError(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(status)
		}))
		_, err := testClient(server.URL).FetchSolveHistory(context.Background(), time.Now(), time.Now())
		server.Close()
		if !errors.Is(err, ErrAuthentication) {
			t.Fatalf("status %d: expected ErrAuthentication, got %v", status, err)
		}
	}
}

func TestFetchSolveHistoryFormatError(t *testing.T) {
	t.Run("bad json", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("<html>not json</html>"))
		}))
		defer server.Close()
		_, err := testClient(server.URL).FetchSolveHistory(context.Background(), time.Now(), time.Now())
		if !errors.Is(err, ErrFormat) {
			t.Fatalf("expected ErrFormat, got %v", err)
		}
	})
	t.Run("unexpected status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()
		_, err := testClient(server.URL).FetchSolveHistory(context.Background(), time.Now(), time.Now())
		if !errors.Is(err, ErrFormat) {
			t.Fatalf("expected ErrFormat, got %v", err)
		}
	})
}

func TestFetchSolveHistoryNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()
	_, err := testClient(server.URL).FetchSolveHistory(context.Background(), time.Now(), time.Now())
	if !errors.Is(err, ErrNetwork) {
		t.Fatalf("expected ErrNetwork, got %v", err)
	}
}

func TestFetchStreaks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v3/12345/stats-and-streaks.json" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("start_on_monday"); got != "true" {
			t.Errorf("start_on_monday = %q", got)
		}
		_, _ = w.Write([]byte(`{"results": {
			"streaks": {"current_streak": 3, "longest_streak": 10, "dates": [["2023-01-01", "2023-01-03"]]},
			"stats": {"solve_rate": 0.9}
		}}`))
	}))
	defer server.Close()

	stats, err := testClient(server.URL).FetchStreaks(context.Background())
	if err != nil {
		t.Fatalf("FetchStreaks failed: %v", err)
	}
	if stats.Results.Streaks.CurrentStreak != 3 || stats.Results.Streaks.LongestStreak != 10 {
		t.Fatalf("unexpected streaks: %+v", stats.Results.Streaks)
	}
	if stats.Results.Stats.SolveRate != 0.9 {
		t.Fatalf("unexpected solve rate: %v", stats.Results.Stats.SolveRate)
	}
}

func TestFetchPuzzle(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v6/game/777.json" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{
			"board": {"cells": [{"guess": "A", "timestamp": 5}, {"blank": true}]},
			"calcs": {"secondsSpentSolving": 321, "solved": true}
		}`))
	}))
	defer server.Close()

	detail, err := testClient(server.URL).FetchPuzzle(context.Background(), 777)
	if err != nil {
		t.Fatalf("FetchPuzzle failed: %v", err)
	}
	if len(detail.Board.Cells) != 2 {
		t.Fatalf("expected 2 cells, got %d", len(detail.Board.Cells))
	}
	if !detail.Board.Cells[1].Blank {
		t.Fatalf("expected second cell blank")
	}
	if detail.Calcs.SecondsSpentSolving != 321 {
		t.Fatalf("unexpected solve seconds: %d", detail.Calcs.SecondsSpentSolving)
	}
}
