package query

import (
	"time"

	"github.com/fundsight/salespulse/internal/domain/models"
)

// LastQuarterBounds returns the inclusive date range of the most recently
// completed calendar quarter relative to ref. In Q1 the range rolls back to
// Q4 of the previous year.
func LastQuarterBounds(ref time.Time) (start, end time.Time) {
	year := ref.Year()
	quarter := (int(ref.Month()) - 1) / 3 // 0-based current quarter

	lastQuarter := quarter - 1
	if lastQuarter < 0 {
		lastQuarter = 3
		year--
	}

	startMonth := time.Month(3*lastQuarter + 1)
	start = time.Date(year, startMonth, 1, 0, 0, 0, 0, time.UTC)
	end = start.AddDate(0, 3, -1) // last day of the quarter
	return start, end
}

// windowBounds resolves a named window to inclusive date bounds. The second
// return is false for windows that apply no time filter.
func windowBounds(w models.Window, ref time.Time) (start, end time.Time, ok bool) {
	switch w {
	case models.WindowLastQuarter:
		start, end = LastQuarterBounds(ref)
		return start, end, true
	default:
		return time.Time{}, time.Time{}, false
	}
}

// inRange reports whether the date part of d falls within [start, end].
func inRange(d, start, end time.Time) bool {
	day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	return !day.Before(start) && !day.After(end)
}
