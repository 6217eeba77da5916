package hotkey

import (
	"fmt"
	"strings"

	"markestedt/grist/keyboard"
)

// DescribePressed renders the held keys for a diagnostic message.
func DescribePressed(pressed keyboard.KeySet) string {
	if pressed.Empty() {
		return "No keys currently pressed"
	}
	return "Pressed: " + pressed.String()
}

// FormatTable renders bindings one per line in registration order, with
// aliases of the same name listed together.
func FormatTable(bindings []Binding) string {
	if len(bindings) == 0 {
		return "No bindings registered"
	}

	var names []string
	triggers := map[string][]string{}
	actions := map[string]Action{}
	for _, b := range bindings {
		if _, ok := triggers[b.Name]; !ok {
			names = append(names, b.Name)
			actions[b.Name] = b.Action
		}
		triggers[b.Name] = append(triggers[b.Name], b.Trigger.String())
	}

	var sb strings.Builder
	for i, name := range names {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "%s: %s (%s)", name, strings.Join(triggers[name], " or "), actions[name])
	}
	return sb.String()
}
