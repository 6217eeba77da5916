package hotkey

import (
	"markestedt/grist/geometry"
	"markestedt/grist/keyboard"
)

// DefaultBindings returns the built-in table: quadrants and halves on both
// the numpad and the number row, maximize/minimize on the arrows, and
// monitor cycling.
func DefaultBindings() []Binding {
	const win = keyboard.LeftWindows
	return []Binding{
		NewBinding("Move Next", MoveAdjacentMonitor(geometry.Next), win, keyboard.Numpad5),
		NewBinding("Move Next", MoveAdjacentMonitor(geometry.Next), win, keyboard.Right),
		NewBinding("Move Prev", MoveAdjacentMonitor(geometry.Prev), win, keyboard.Clear),
		NewBinding("Move Prev", MoveAdjacentMonitor(geometry.Prev), win, keyboard.Left),

		NewBinding("Top Left", MonitorEdge(geometry.TopLeft), win, keyboard.Numpad7),
		NewBinding("Top Left", MonitorEdge(geometry.TopLeft), win, keyboard.N1),
		NewBinding("Top Right", MonitorEdge(geometry.TopRight), win, keyboard.Numpad9),
		NewBinding("Top Right", MonitorEdge(geometry.TopRight), win, keyboard.N2),
		NewBinding("Bottom Left", MonitorEdge(geometry.BottomLeft), win, keyboard.Numpad1),
		NewBinding("Bottom Left", MonitorEdge(geometry.BottomLeft), win, keyboard.N3),
		NewBinding("Bottom Right", MonitorEdge(geometry.BottomRight), win, keyboard.Numpad3),
		NewBinding("Bottom Right", MonitorEdge(geometry.BottomRight), win, keyboard.N4),
		NewBinding("Left", MonitorEdge(geometry.West), win, keyboard.Numpad4),
		NewBinding("Left", MonitorEdge(geometry.West), win, keyboard.N7),
		NewBinding("Right", MonitorEdge(geometry.East), win, keyboard.Numpad6),
		NewBinding("Right", MonitorEdge(geometry.East), win, keyboard.N8),
		NewBinding("Top", MonitorEdge(geometry.North), win, keyboard.Numpad8),
		NewBinding("Top", MonitorEdge(geometry.North), win, keyboard.N5),
		NewBinding("Bottom", MonitorEdge(geometry.South), win, keyboard.Numpad2),
		NewBinding("Bottom", MonitorEdge(geometry.South), win, keyboard.N6),

		NewBinding("Maximize", Maximize(), win, keyboard.Up),
		NewBinding("Minimize", Minimize(), win, keyboard.Down),
		NewBinding("Clear Topmost", ClearTopmost(), win, keyboard.LeftShift, keyboard.Z),
	}
}
