package chart

import (
	"bytes"
	"strings"
	"testing"

	"github.com/perimosocordiae/crossword-stats/internal/nyt"
)

func TestGuessDimensions(t *testing.T) {
	tests := []struct {
		n    int
		rows int
		cols int
	}{
		{225, 15, 15},
		{441, 21, 21},
		{12, 3, 4},
		{7, 1, 7},
		{1, 1, 1},
	}
	for _, tc := range tests {
		rows, cols := guessDimensions(tc.n)
		if rows != tc.rows || cols != tc.cols {
			t.Fatalf("guessDimensions(%d) = (%d, %d), want (%d, %d)",
				tc.n, rows, cols, tc.rows, tc.cols)
		}
	}
}

func TestRenderBoard(t *testing.T) {
	detail := nyt.PuzzleDetail{}
	detail.Board.Cells = []nyt.BoardCell{
		{Guess: "A", Timestamp: 10},
		{Guess: "B", Timestamp: 20},
		{Blank: true},
		{Guess: "CD", Timestamp: 30}, // rebus square
	}
	detail.Calcs.SecondsSpentSolving = 125
	detail.Calcs.Solved = true

	var buf bytes.Buffer
	if err := RenderBoard(&buf, detail); err != nil {
		t.Fatalf("RenderBoard failed: %v", err)
	}
	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) < 2 {
		t.Fatalf("expected at least 2 grid lines, got %q", out)
	}
	if !strings.Contains(out, "A") || !strings.Contains(out, "B") {
		t.Fatalf("expected letters in output, got %q", out)
	}
	if !strings.Contains(out, "█") {
		t.Fatalf("expected blank square in output, got %q", out)
	}
	if strings.Contains(out, "CD") {
		t.Fatalf("rebus square should be truncated to one rune, got %q", out)
	}
	if !strings.Contains(out, "Solve time: 2:05") {
		t.Fatalf("expected solve time footer, got %q", out)
	}
}

func TestRenderBoardEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderBoard(&buf, nyt.PuzzleDetail{}); err != nil {
		t.Fatalf("RenderBoard failed: %v", err)
	}
	if !strings.Contains(buf.String(), "No board data.") {
		t.Fatalf("expected empty notice, got %q", buf.String())
	}
}
