package geometry

import (
	"fmt"
	"strings"
)

// Edge names one of the eight monitor-relative placements.
type Edge int

const (
	West Edge = iota
	East
	North
	South
	TopLeft
	TopRight
	BottomLeft
	BottomRight
)

var edgeNames = [...]string{
	West:        "west",
	East:        "east",
	North:       "north",
	South:       "south",
	TopLeft:     "top-left",
	TopRight:    "top-right",
	BottomLeft:  "bottom-left",
	BottomRight: "bottom-right",
}

// edgeAnchors pairs two anchor points on the work area for each edge. Halves
// pair a corner with an edge midpoint, quadrants pair a corner with the center.
var edgeAnchors = map[Edge]func(Rect) (Point, Point){
	West:        func(r Rect) (Point, Point) { return r.TopLeft(), r.South() },
	East:        func(r Rect) (Point, Point) { return r.TopRight(), r.South() },
	North:       func(r Rect) (Point, Point) { return r.TopLeft(), r.East() },
	South:       func(r Rect) (Point, Point) { return r.BottomLeft(), r.East() },
	TopLeft:     func(r Rect) (Point, Point) { return r.TopLeft(), r.Center() },
	TopRight:    func(r Rect) (Point, Point) { return r.TopRight(), r.Center() },
	BottomLeft:  func(r Rect) (Point, Point) { return r.BottomLeft(), r.Center() },
	BottomRight: func(r Rect) (Point, Point) { return r.BottomRight(), r.Center() },
}

// Edges lists every edge in declaration order.
func Edges() []Edge {
	return []Edge{West, East, North, South, TopLeft, TopRight, BottomLeft, BottomRight}
}

// Place returns the part of workArea that the edge selects.
func (e Edge) Place(workArea Rect) Rect {
	anchors, ok := edgeAnchors[e]
	if !ok {
		return workArea
	}
	return FromTwoPoints(anchors(workArea))
}

// Valid reports whether e is one of the eight placements.
func (e Edge) Valid() bool {
	return e >= West && e <= BottomRight
}

func (e Edge) String() string {
	if !e.Valid() {
		return fmt.Sprintf("edge(%d)", int(e))
	}
	return edgeNames[e]
}

// ParseEdge maps a name such as "top-left" or "north" to an Edge.
func ParseEdge(name string) (Edge, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, s := range edgeNames {
		if s == n {
			return Edge(i), nil
		}
	}
	switch n {
	case "left":
		return West, nil
	case "right":
		return East, nil
	case "top":
		return North, nil
	case "bottom":
		return South, nil
	}
	return 0, fmt.Errorf("unknown edge: %s", name)
}
