package geometry

// Margin is the offset between a window's raw bounding rect and its visible
// (extended) frame bounds. Windows 10+ pads most top-level windows with an
// invisible resize border, so Margin is typically {-7, 0, 7, 7}.
type Margin struct {
	Left   int
	Top    int
	Right  int
	Bottom int
}

// ComputeMargin subtracts the extended frame bounds from the raw window rect
// component-wise.
func ComputeMargin(raw, extendedFrame Rect) Margin {
	return Margin{
		Left:   raw.Left - extendedFrame.Left,
		Top:    raw.Top - extendedFrame.Top,
		Right:  raw.Right - extendedFrame.Right,
		Bottom: raw.Bottom - extendedFrame.Bottom,
	}
}

// Apply grows target by the margin so that the visible frame, not the
// invisible border, lands on target.
func (m Margin) Apply(target Rect) Rect {
	return Rect{
		Left:   target.Left + m.Left,
		Top:    target.Top + m.Top,
		Right:  target.Right + m.Right,
		Bottom: target.Bottom + m.Bottom,
	}
}

// IsZero reports whether the margin is empty.
func (m Margin) IsZero() bool {
	return m == Margin{}
}
