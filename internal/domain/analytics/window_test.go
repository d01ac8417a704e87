package analytics

import (
	"errors"
	"testing"
	"time"
)

func TestMonthWindow(t *testing.T) {
	window, err := MonthWindow(2026, 2)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !window.Start.Equal(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected start: %v", window.Start)
	}
	// February 2026 has 28 days, the end bound is exclusive.
	if !window.End.Equal(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected end: %v", window.End)
	}
}

func TestMonthWindowLeapFebruary(t *testing.T) {
	window, err := MonthWindow(2028, 2)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if window.End.Sub(window.Start) != 29*24*time.Hour {
		t.Fatalf("expected 29 days, got %v", window.End.Sub(window.Start))
	}
}

func TestMonthWindowRejectsBadInput(t *testing.T) {
	for _, tc := range []struct{ year, month int }{
		{2026, 0},
		{2026, 13},
		{2026, -1},
		{0, 5},
		{-1, 5},
	} {
		if _, err := MonthWindow(tc.year, tc.month); !errors.Is(err, ErrInvalidWindow) {
			t.Fatalf("MonthWindow(%d, %d): expected ErrInvalidWindow, got %v", tc.year, tc.month, err)
		}
	}
}
