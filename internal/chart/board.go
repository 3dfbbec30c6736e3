package chart

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/perimosocordiae/crossword-stats/internal/nyt"
)

// fillRamp shades cells from earliest fill to latest.
var fillRamp = []lipgloss.Style{
	lipgloss.NewStyle().Foreground(lipgloss.Color("#2A4D69")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#4B86B4")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#63A69F")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#D9B44A")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#EF6F6C")),
}

var blankStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#3A3A3A"))

// RenderBoard prints the filled puzzle grid, letters shaded by fill order so
// the solve path is visible at a glance.
func RenderBoard(w io.Writer, detail nyt.PuzzleDetail) error {
	cells := detail.Board.Cells
	if len(cells) == 0 {
		_, err := fmt.Fprintln(w, "No board data.")
		return err
	}
	rows, cols := guessDimensions(len(cells))

	timestamps := make([]int64, 0, len(cells))
	for _, cell := range cells {
		if cell.Blank {
			continue
		}
		timestamps = append(timestamps, cell.Timestamp)
	}
	sort.Slice(timestamps, func(i, j int) bool { return timestamps[i] < timestamps[j] })

	for r := 0; r < rows; r++ {
		var line strings.Builder
		for c := 0; c < cols; c++ {
			cell := cells[r*cols+c]
			if c > 0 {
				line.WriteByte(' ')
			}
			line.WriteString(renderCell(cell, timestamps))
		}
		if _, err := fmt.Fprintln(w, line.String()); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "\nSolve time: %s\n",
		FormatDuration(float64(detail.Calcs.SecondsSpentSolving))); err != nil {
		return err
	}
	return nil
}

func renderCell(cell nyt.BoardCell, timestamps []int64) string {
	if cell.Blank {
		return blankStyle.Render("█")
	}
	letter := cell.Guess
	if letter == "" {
		letter = "."
	}
	if len([]rune(letter)) > 1 {
		// Rebus squares keep their first rune so the grid stays aligned.
		letter = string([]rune(letter)[0])
	}
	return fillStyle(cell.Timestamp, timestamps).Render(letter)
}

func fillStyle(ts int64, sorted []int64) lipgloss.Style {
	if len(sorted) == 0 {
		return fillRamp[0]
	}
	rank := sort.Search(len(sorted), func(i int) bool { return sorted[i] >= ts })
	idx := rank * len(fillRamp) / len(sorted)
	if idx >= len(fillRamp) {
		idx = len(fillRamp) - 1
	}
	return fillRamp[idx]
}

// guessDimensions picks the most square grid shape for a flat cell list.
func guessDimensions(n int) (rows, cols int) {
	guess := int(math.Sqrt(float64(n)))
	if guess < 1 {
		guess = 1
	}
	for n%guess != 0 {
		guess--
	}
	return guess, n / guess
}
