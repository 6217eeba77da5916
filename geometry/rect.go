package geometry

import "fmt"

// Point is a screen coordinate.
type Point struct {
	X int
	Y int
}

// Rect is a screen rectangle in the platform's convention: left/top are
// inclusive, right/bottom are exclusive.
type Rect struct {
	Left   int
	Top    int
	Right  int
	Bottom int
}

// FromTwoPoints builds a normalized rect spanning p0 and p1. The argument
// order does not matter.
func FromTwoPoints(p0, p1 Point) Rect {
	return Rect{
		Left:   min(p0.X, p1.X),
		Top:    min(p0.Y, p1.Y),
		Right:  max(p0.X, p1.X),
		Bottom: max(p0.Y, p1.Y),
	}
}

// FromSize builds a rect from an origin and a size.
func FromSize(x, y, w, h int) Rect {
	return FromTwoPoints(Point{x, y}, Point{x + w, y + h})
}

// Normalize swaps edges so that Left <= Right and Top <= Bottom.
func (r Rect) Normalize() Rect {
	return FromTwoPoints(r.TopLeft(), r.BottomRight())
}

// Width returns Right-Left.
func (r Rect) Width() int { return r.Right - r.Left }

// Height returns Bottom-Top.
func (r Rect) Height() int { return r.Bottom - r.Top }

// TopLeft returns the (Left, Top) corner.
func (r Rect) TopLeft() Point { return Point{r.Left, r.Top} }

// TopRight returns the (Right, Top) corner.
func (r Rect) TopRight() Point { return Point{r.Right, r.Top} }

// BottomLeft returns the (Left, Bottom) corner.
func (r Rect) BottomLeft() Point { return Point{r.Left, r.Bottom} }

// BottomRight returns the (Right, Bottom) corner.
func (r Rect) BottomRight() Point { return Point{r.Right, r.Bottom} }

// Center returns the midpoint of the top-left and bottom-right corners,
// rounded toward negative infinity.
func (r Rect) Center() Point {
	return Point{floorHalf(r.Left + r.Right), floorHalf(r.Top + r.Bottom)}
}

// North returns the midpoint of the top edge.
func (r Rect) North() Point { return Point{r.Center().X, r.Top} }

// South returns the midpoint of the bottom edge.
func (r Rect) South() Point { return Point{r.Center().X, r.Bottom} }

// East returns the midpoint of the right edge.
func (r Rect) East() Point { return Point{r.Right, r.Center().Y} }

// West returns the midpoint of the left edge.
func (r Rect) West() Point { return Point{r.Left, r.Center().Y} }

// Contains reports whether p lies inside r. The right and bottom edges are
// excluded, matching PtInRect.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left && p.X < r.Right && p.Y >= r.Top && p.Y < r.Bottom
}

// Offset returns r shifted by dx, dy.
func (r Rect) Offset(dx, dy int) Rect {
	return Rect{r.Left + dx, r.Top + dy, r.Right + dx, r.Bottom + dy}
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", r.Left, r.Top, r.Right, r.Bottom)
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

func floorHalf(v int) int {
	if v < 0 && v%2 != 0 {
		return v/2 - 1
	}
	return v / 2
}
