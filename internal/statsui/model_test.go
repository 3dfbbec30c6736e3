package statsui

import (
	"strings"
	"testing"
)

func TestWindowStepping(t *testing.T) {
	tests := []struct {
		n    int
		next int
		prev int
	}{
		{1, 5, 1},
		{5, 10, 1},
		{7, 10, 5},
		{10, 15, 5},
		{28, 30, 25},
	}
	for _, tc := range tests {
		if got := nextWindow(tc.n); got != tc.next {
			t.Fatalf("nextWindow(%d) = %d, want %d", tc.n, got, tc.next)
		}
		if got := prevWindow(tc.n); got != tc.prev {
			t.Fatalf("prevWindow(%d) = %d, want %d", tc.n, got, tc.prev)
		}
	}
}

func TestFitLines(t *testing.T) {
	out := fitLines("a\nbb", 4, 3)
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	for i, line := range lines {
		if len(line) != 4 {
			t.Fatalf("line %d not padded to width: %q", i, line)
		}
	}
}

func TestFitLinesTruncatesHeight(t *testing.T) {
	out := fitLines("a\nb\nc\nd", 1, 2)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0] != "a" || lines[1] != "b" {
		t.Fatalf("unexpected lines: %v", lines)
	}
}

func TestTruncateLine(t *testing.T) {
	if got := truncateLine("short", 10); got != "short" {
		t.Fatalf("expected unchanged line, got %q", got)
	}
	if got := truncateLine("a long line here", 9); got != "a long..." {
		t.Fatalf("unexpected truncation: %q", got)
	}
	if got := truncateLine("abcdef", 2); got != "ab" {
		t.Fatalf("unexpected narrow truncation: %q", got)
	}
}
