package nyt

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type fakeCache struct {
	entries map[string][]byte
	puts    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string][]byte)}
}

func (f *fakeCache) Get(_ context.Context, userID, resource string, _ time.Duration) ([]byte, bool, error) {
	body, ok := f.entries[userID+"/"+resource]
	return body, ok, nil
}

func (f *fakeCache) Put(_ context.Context, userID, resource string, body []byte) error {
	f.entries[userID+"/"+resource] = body
	f.puts++
	return nil
}

func TestCachedClientWritesThrough(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		_, _ = w.Write([]byte(`{"results": [{"print_date": "2023-01-01", "solved": true, "solving_seconds": 60}]}`))
	}))
	defer server.Close()

	fc := newFakeCache()
	cc := NewCachedClient(testClient(server.URL), fc, time.Hour)
	start, _ := time.Parse("2006-01-02", "2023-01-01")
	stop, _ := time.Parse("2006-01-02", "2023-01-31")

	ctx := context.Background()
	first, err := cc.FetchSolveHistory(ctx, start, stop)
	if err != nil {
		t.Fatalf("first fetch failed: %v", err)
	}
	if hits != 1 || fc.puts != 1 {
		t.Fatalf("expected one upstream hit and one cache write, got %d/%d", hits, fc.puts)
	}

	second, err := cc.FetchSolveHistory(ctx, start, stop)
	if err != nil {
		t.Fatalf("second fetch failed: %v", err)
	}
	if hits != 1 {
		t.Fatalf("expected second fetch served from cache, upstream hits %d", hits)
	}
	if len(first.Results) != 1 || len(second.Results) != 1 {
		t.Fatalf("unexpected results: %d/%d", len(first.Results), len(second.Results))
	}
}

func TestCachedClientCorruptEntryRefetches(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"results": {"streaks": {"current_streak": 2}, "stats": {}}}`))
	}))
	defer server.Close()

	fc := newFakeCache()
	fc.entries["12345/stats-and-streaks"] = []byte("not json")
	cc := NewCachedClient(testClient(server.URL), fc, time.Hour)

	stats, err := cc.FetchStreaks(context.Background())
	if err != nil {
		t.Fatalf("FetchStreaks failed: %v", err)
	}
	if stats.Results.Streaks.CurrentStreak != 2 {
		t.Fatalf("expected fresh payload, got %+v", stats.Results.Streaks)
	}
	if fc.puts != 1 {
		t.Fatalf("expected corrupt entry replaced, puts = %d", fc.puts)
	}
}

func TestCachedClientNilCache(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"board": {"cells": []}, "calcs": {"secondsSpentSolving": 10}}`))
	}))
	defer server.Close()

	cc := NewCachedClient(testClient(server.URL), nil, 0)
	if _, err := cc.FetchPuzzle(context.Background(), 42); err != nil {
		t.Fatalf("FetchPuzzle failed: %v", err)
	}
}
