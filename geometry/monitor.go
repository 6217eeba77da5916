package geometry

import (
	"errors"
	"sort"
)

// ErrNoMatchingMonitor is returned when the current monitor is not among the
// enumerated monitors.
var ErrNoMatchingMonitor = errors.New("no matching monitor")

// Monitor is a display and its work area. Values are gathered fresh for every
// action and never cached.
type Monitor struct {
	ID       uintptr
	WorkArea Rect
}

// Direction selects the neighbour when cycling through monitors.
type Direction int

const (
	Next Direction = iota
	Prev
)

func (d Direction) String() string {
	if d == Prev {
		return "prev"
	}
	return "next"
}

// SortMonitors orders monitors left to right, then top to bottom, by work
// area origin. The input slice is not modified.
func SortMonitors(monitors []Monitor) []Monitor {
	sorted := make([]Monitor, len(monitors))
	copy(sorted, monitors)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].WorkArea, sorted[j].WorkArea
		if a.Left != b.Left {
			return a.Left < b.Left
		}
		return a.Top < b.Top
	})
	return sorted
}

// SelectAdjacentMonitor returns the monitor after (Next) or before (Prev)
// current in sorted order, wrapping at both ends. Monitors are matched by
// work area. With fewer than two monitors the only monitor is returned.
func SelectAdjacentMonitor(monitors []Monitor, current Monitor, dir Direction) (Monitor, error) {
	switch len(monitors) {
	case 0:
		return Monitor{}, ErrNoMatchingMonitor
	case 1:
		return monitors[0], nil
	}

	sorted := SortMonitors(monitors)
	idx := -1
	for i, m := range sorted {
		if m.WorkArea == current.WorkArea {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Monitor{}, ErrNoMatchingMonitor
	}

	n := len(sorted)
	if dir == Prev {
		idx = (idx - 1 + n) % n
	} else {
		idx = (idx + 1) % n
	}
	return sorted[idx], nil
}
