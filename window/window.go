// Copyright (c) 2026 the Incognitas authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package window

import "time"

// Window is a closed-closed time interval: both boundary instants are inside.
type Window struct {
	Start time.Time
	End   time.Time
}

// IsOpen reports whether now falls within the window (boundaries included).
func (w Window) IsOpen(now time.Time) bool {
	return !now.Before(w.Start) && !now.After(w.End)
}

// HasEnded reports whether now is strictly past the window's end.
func (w Window) HasEnded(now time.Time) bool {
	return now.After(w.End)
}

// HasNotStarted reports whether now is strictly before the window's start.
func (w Window) HasNotStarted(now time.Time) bool {
	return now.Before(w.Start)
}

// Info is a snapshot of a window relative to an instant, for API responses.
type Info struct {
	StartDate     time.Time `json:"startDate"`
	EndDate       time.Time `json:"endDate"`
	IsActive      bool      `json:"isActive"`
	HasEnded      bool      `json:"hasEnded"`
	HasNotStarted bool      `json:"hasNotStarted"`
	DaysRemaining int       `json:"daysRemaining"`
}

// Info evaluates the window at the given instant. DaysRemaining is the number
// of whole or partial days until the end, never negative.
func (w Window) Info(now time.Time) Info {
	days := 0
	if remaining := w.End.Sub(now); remaining > 0 {
		days = int((remaining + 24*time.Hour - 1) / (24 * time.Hour))
	}

	return Info{
		StartDate:     w.Start,
		EndDate:       w.End,
		IsActive:      w.IsOpen(now),
		HasEnded:      w.HasEnded(now),
		HasNotStarted: w.HasNotStarted(now),
		DaysRemaining: days,
	}
}
