package chart

import (
	"strings"
	"testing"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "0:00"},
		{59, "0:59"},
		{60, "1:00"},
		{754, "12:34"},
		{3600, "1:00:00"},
		{3723, "1:02:03"},
		{-5, "0:00"},
	}
	for _, tc := range tests {
		if got := FormatDuration(tc.seconds); got != tc.want {
			t.Fatalf("FormatDuration(%v) = %q, want %q", tc.seconds, got, tc.want)
		}
	}
}

func TestMovingAverage(t *testing.T) {
	values := []float64{2, 4, 6, 8}
	out := MovingAverage(values, 2)
	if len(out) != len(values) {
		t.Fatalf("expected %d values, got %d", len(values), len(out))
	}
	expected := []float64{2, 3, 5, 7}
	for i, want := range expected {
		if out[i] != want {
			t.Fatalf("unexpected average at %d: got %v, want %v", i, out[i], want)
		}
	}
}

func TestMovingAverageWindowOne(t *testing.T) {
	values := []float64{1, 2, 3}
	out := MovingAverage(values, 1)
	for i := range values {
		if out[i] != values[i] {
			t.Fatalf("window 1 should be identity, got %v", out)
		}
	}
}

func TestSparkline(t *testing.T) {
	out := Sparkline([]float64{0, 5, 10})
	if len(out) != 3 {
		t.Fatalf("expected 3 chars, got %q", out)
	}
	if out[0] != sparkChars[0] {
		t.Fatalf("expected minimum char first, got %q", out)
	}
	if out[2] != sparkChars[len(sparkChars)-1] {
		t.Fatalf("expected maximum char last, got %q", out)
	}
}

func TestSparklineFlat(t *testing.T) {
	out := Sparkline([]float64{3, 3, 3, 3})
	if len(out) != 4 {
		t.Fatalf("expected 4 chars, got %q", out)
	}
	if strings.Count(out, string(out[0])) != 4 {
		t.Fatalf("expected uniform sparkline for flat values, got %q", out)
	}
}
