package hotkey

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"markestedt/grist/keyboard"
)

var (
	ErrEmptyTrigger       = errors.New("binding has an empty trigger")
	ErrInvalidAction      = errors.New("binding has an invalid action")
	ErrConflictingTrigger = errors.New("trigger is already bound to a different action")
)

// Binding ties a named action to the exact set of keys that fires it.
type Binding struct {
	Name    string
	Trigger keyboard.KeySet
	Action  Action
}

// NewBinding builds a binding from a list of keys.
func NewBinding(name string, action Action, keys ...keyboard.VK) Binding {
	return Binding{
		Name:    name,
		Trigger: keyboard.NewKeySet(keys...),
		Action:  action,
	}
}

func (b Binding) String() string {
	return fmt.Sprintf("%s [%s] %s", b.Name, b.Trigger, b.Action)
}

// ConflictPolicy decides what happens when two bindings share a trigger but
// not an action.
type ConflictPolicy int

const (
	// RejectConflicts fails registry construction.
	RejectConflicts ConflictPolicy = iota
	// FirstWins keeps every binding; only the first registered one is ever
	// matched and the shadowed ones are logged.
	FirstWins
)

// ParseConflictPolicy maps "reject" and "first-wins" to a policy.
func ParseConflictPolicy(s string) (ConflictPolicy, error) {
	switch s {
	case "", "reject":
		return RejectConflicts, nil
	case "first-wins":
		return FirstWins, nil
	}
	return 0, fmt.Errorf("unknown conflict policy: %s", s)
}

// Registry is the ordered table of bindings. It is built once at startup
// and read on every key event.
type Registry struct {
	mu       sync.RWMutex
	bindings []Binding
}

// NewRegistry validates bindings and keeps them in the given order.
// Bindings sharing a trigger are allowed when they carry the same action.
func NewRegistry(bindings []Binding, policy ConflictPolicy) (*Registry, error) {
	seen := make(map[keyboard.KeySet]Binding, len(bindings))
	for _, b := range bindings {
		if b.Trigger.Empty() {
			return nil, fmt.Errorf("%w: %q", ErrEmptyTrigger, b.Name)
		}
		if !b.Action.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrInvalidAction, b.Name)
		}
		first, dup := seen[b.Trigger]
		if !dup {
			seen[b.Trigger] = b
			continue
		}
		if first.Action == b.Action {
			continue
		}
		if policy == RejectConflicts {
			return nil, fmt.Errorf("%w: [%s] %q vs %q", ErrConflictingTrigger, b.Trigger, first.Name, b.Name)
		}
		slog.Warn("Binding is shadowed by an earlier one with the same trigger",
			"trigger", b.Trigger.String(), "shadowed", b.Name, "active", first.Name)
	}

	r := &Registry{bindings: make([]Binding, len(bindings))}
	copy(r.bindings, bindings)
	return r, nil
}

// FindMatch returns the first binding, in registration order, whose trigger
// equals current exactly. Holding an extra key breaks the match.
func (r *Registry) FindMatch(current keyboard.KeySet) (Binding, bool) {
	if current.Empty() {
		return Binding{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, b := range r.bindings {
		if b.Trigger == current {
			return b, true
		}
	}
	return Binding{}, false
}

// Bindings returns a copy of the table in registration order.
func (r *Registry) Bindings() []Binding {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Binding, len(r.bindings))
	copy(out, r.bindings)
	return out
}

// Len returns the number of registered bindings.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.bindings)
}
