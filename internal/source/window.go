package source

import "time"

// Window is the rolling acceptance window for announced meetings: the
// current calendar month plus the following two, computed from the wall
// clock at run start.
type Window struct {
	start time.Time // first instant of the current month
	end   time.Time // first instant of the month three months on, exclusive
}

// NewWindow builds the window containing now.
func NewWindow(now time.Time) Window {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	// AddDate carries month arithmetic across year boundaries.
	return Window{start: start, end: start.AddDate(0, 3, 0)}
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.start) && t.Before(w.end)
}
