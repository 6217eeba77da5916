// Package window applies hotkey actions to the foreground window.
package window

import (
	"errors"
	"fmt"
	"log/slog"

	"markestedt/grist/geometry"
	"markestedt/grist/hotkey"
	"markestedt/grist/platform"
)

// ErrExcluded is returned when the exclusion policy refuses an action.
var ErrExcluded = errors.New("process is excluded")

// Tracing reports whether verbose per-action logging is on.
type Tracing interface {
	Enabled() bool
}

// Executor applies actions through a WindowService. It holds no state of its
// own: monitors and margins are queried fresh on every call.
type Executor struct {
	svc     platform.WindowService
	exclude ExclusionPolicy
	trace   Tracing
}

// NewExecutor creates an executor. exclude and trace may be nil.
func NewExecutor(svc platform.WindowService, exclude ExclusionPolicy, trace Tracing) *Executor {
	return &Executor{svc: svc, exclude: exclude, trace: trace}
}

func (x *Executor) tracing() bool {
	return x.trace != nil && x.trace.Enabled()
}

// Apply runs a against the foreground window.
func (x *Executor) Apply(a hotkey.Action) error {
	if !a.Valid() {
		return fmt.Errorf("%w: %s", hotkey.ErrInvalidAction, a)
	}

	w, err := x.svc.ForegroundWindow()
	if err != nil {
		return err
	}

	switch a.Kind {
	case hotkey.KindClearTopmost:
		return x.svc.ClearTopmost(w)

	case hotkey.KindMaximize:
		return x.svc.Show(w, platform.ShowMaximized)

	case hotkey.KindMinimize:
		if err := x.checkExcluded(w); err != nil {
			return err
		}
		return x.svc.Show(w, platform.ShowMinimized)

	case hotkey.KindMoveAdjacentMonitor:
		current, err := x.svc.MonitorOf(w)
		if err != nil {
			return err
		}
		monitors, err := x.svc.Monitors()
		if err != nil {
			return err
		}
		dest, err := geometry.SelectAdjacentMonitor(monitors, current, a.Direction)
		if err != nil {
			return fmt.Errorf("select %s monitor from %s: %w", a.Direction, current.WorkArea, err)
		}
		return x.place(w, geometry.TopLeft.Place(dest.WorkArea))

	default:
		mon, err := x.svc.MonitorOf(w)
		if err != nil {
			return err
		}
		target, ok := a.Target(mon.WorkArea)
		if !ok {
			return fmt.Errorf("%w: %s", hotkey.ErrInvalidAction, a)
		}
		return x.place(w, target)
	}
}

func (x *Executor) checkExcluded(w platform.Window) error {
	if x.exclude == nil {
		return nil
	}
	path, err := x.svc.ProcessPath(w)
	if err != nil {
		slog.Debug("Could not resolve foreground process", "error", err)
		return nil
	}
	if x.exclude.Excludes(path) {
		return fmt.Errorf("%w: %s", ErrExcluded, path)
	}
	return nil
}

// place moves w so that its visible frame covers target, then recenters the
// cursor on target unless it is already inside.
func (x *Executor) place(w platform.Window, target geometry.Rect) error {
	if err := x.svc.Restore(w); err != nil {
		return err
	}

	margin, err := x.margin(w)
	if err != nil {
		return err
	}

	if x.tracing() {
		title, _ := x.svc.WindowTitle(w)
		slog.Info("Positioning window", "title", title, "target", target, "margin", margin)
	}

	if err := x.svc.MoveResize(w, margin.Apply(target)); err != nil {
		return err
	}

	pos, err := x.svc.CursorPos()
	if err != nil {
		return err
	}
	if target.Contains(pos) {
		return nil
	}
	return x.svc.SetCursorPos(target.Center())
}

// margin measures the invisible border around w. Windows without extended
// frame bounds (DWM composition off, some legacy windows) get a zero margin.
func (x *Executor) margin(w platform.Window) (geometry.Margin, error) {
	raw, err := x.svc.WindowRect(w)
	if err != nil {
		return geometry.Margin{}, err
	}
	frame, err := x.svc.ExtendedFrameBounds(w)
	if err != nil {
		slog.Debug("No extended frame bounds, using raw rect", "error", err)
		return geometry.Margin{}, nil
	}
	return geometry.ComputeMargin(raw, frame), nil
}
