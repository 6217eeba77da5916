// Package hotkey binds exact key combinations to window actions.
package hotkey

import (
	"fmt"
	"strings"

	"markestedt/grist/geometry"
)

// Kind tags the variant held by an Action.
type Kind int

const (
	KindClearTopmost Kind = iota + 1
	KindMaximize
	KindMinimize
	KindMonitorEdge
	KindMoveAdjacentMonitor
	KindPlaceOnDesktop
	KindPlaceOnMonitor
)

var kindNames = map[Kind]string{
	KindClearTopmost:        "clear-topmost",
	KindMaximize:            "maximize",
	KindMinimize:            "minimize",
	KindMonitorEdge:         "monitor-edge",
	KindMoveAdjacentMonitor: "move-adjacent-monitor",
	KindPlaceOnDesktop:      "place-on-desktop",
	KindPlaceOnMonitor:      "place-on-monitor",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Action is a window operation described as plain data. Only the fields
// relevant to Kind are set, so two actions compare equal with == exactly when
// they do the same thing.
type Action struct {
	Kind Kind

	// Edge is set for KindMonitorEdge.
	Edge geometry.Edge
	// Direction is set for KindMoveAdjacentMonitor.
	Direction geometry.Direction
	// X, Y, W, H are set for KindPlaceOnDesktop (absolute desktop rect) and
	// KindPlaceOnMonitor (offsets added to the work area edges).
	X, Y, W, H int
}

// ClearTopmost moves the window below always-on-top windows.
func ClearTopmost() Action { return Action{Kind: KindClearTopmost} }

// Maximize maximizes the window.
func Maximize() Action { return Action{Kind: KindMaximize} }

// Minimize minimizes the window unless its process is excluded.
func Minimize() Action { return Action{Kind: KindMinimize} }

// MonitorEdge places the window on a half or quadrant of its monitor.
func MonitorEdge(e geometry.Edge) Action {
	return Action{Kind: KindMonitorEdge, Edge: e}
}

// MoveAdjacentMonitor moves the window to the next or previous monitor.
func MoveAdjacentMonitor(dir geometry.Direction) Action {
	return Action{Kind: KindMoveAdjacentMonitor, Direction: dir}
}

// PlaceOnDesktop places the window at an absolute desktop rect.
func PlaceOnDesktop(x, y, w, h int) Action {
	return Action{Kind: KindPlaceOnDesktop, X: x, Y: y, W: w, H: h}
}

// PlaceOnMonitor offsets the edges of the work area by dx, dy, dw and dh.
func PlaceOnMonitor(dx, dy, dw, dh int) Action {
	return Action{Kind: KindPlaceOnMonitor, X: dx, Y: dy, W: dw, H: dh}
}

// Target computes the window rect for monitor-relative and desktop placements
// given the work area of the window's monitor. It reports false for kinds
// that do not place against a work area.
func (a Action) Target(workArea geometry.Rect) (geometry.Rect, bool) {
	switch a.Kind {
	case KindMonitorEdge:
		return a.Edge.Place(workArea), true
	case KindPlaceOnDesktop:
		return geometry.FromSize(a.X, a.Y, a.W, a.H), true
	case KindPlaceOnMonitor:
		return geometry.Rect{
			Left:   workArea.Left + a.X,
			Top:    workArea.Top + a.Y,
			Right:  workArea.Right + a.X + a.W,
			Bottom: workArea.Bottom + a.Y + a.H,
		}.Normalize(), true
	}
	return geometry.Rect{}, false
}

// Valid reports whether a carries the parameters its kind needs.
func (a Action) Valid() bool {
	switch a.Kind {
	case KindClearTopmost, KindMaximize, KindMinimize, KindPlaceOnDesktop, KindPlaceOnMonitor:
		return true
	case KindMonitorEdge:
		return a.Edge.Valid()
	case KindMoveAdjacentMonitor:
		return a.Direction == geometry.Next || a.Direction == geometry.Prev
	}
	return false
}

func (a Action) String() string {
	switch a.Kind {
	case KindMonitorEdge:
		return fmt.Sprintf("%s(%s)", a.Kind, a.Edge)
	case KindMoveAdjacentMonitor:
		return fmt.Sprintf("%s(%s)", a.Kind, a.Direction)
	case KindPlaceOnDesktop, KindPlaceOnMonitor:
		return fmt.Sprintf("%s(%d,%d,%d,%d)", a.Kind, a.X, a.Y, a.W, a.H)
	}
	return a.Kind.String()
}

// ParseAction maps a configuration name to an Action. Placement kinds take
// their rect from x, y, w, h; other kinds ignore them.
func ParseAction(name string, x, y, w, h int) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "clear-topmost", "clear-top":
		return ClearTopmost(), nil
	case "maximize":
		return Maximize(), nil
	case "minimize":
		return Minimize(), nil
	case "next-monitor", "move-next":
		return MoveAdjacentMonitor(geometry.Next), nil
	case "prev-monitor", "move-prev":
		return MoveAdjacentMonitor(geometry.Prev), nil
	case "on-desktop":
		if w <= 0 || h <= 0 {
			return Action{}, fmt.Errorf("on-desktop needs a positive size, got %dx%d", w, h)
		}
		return PlaceOnDesktop(x, y, w, h), nil
	case "on-monitor":
		return PlaceOnMonitor(x, y, w, h), nil
	}
	edge, err := geometry.ParseEdge(name)
	if err != nil {
		return Action{}, fmt.Errorf("unknown action: %s", name)
	}
	return MonitorEdge(edge), nil
}
