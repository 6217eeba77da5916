package keyboard

import "sync"

// Tracker holds the keys currently held down. The hook callback is the only
// writer; snapshots may be taken from anywhere.
type Tracker struct {
	mu      sync.RWMutex
	pressed KeySet
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

// OnKeyEvent records a transition and returns the resulting set. The
// returned snapshot already reflects this transition and all earlier ones.
func (t *Tracker) OnKeyEvent(vk VK, down bool) KeySet {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pressed.Set(vk, down)
	return t.pressed
}

// Snapshot returns a copy of the held keys.
func (t *Tracker) Snapshot() KeySet {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.pressed
}

// Reset forgets every held key. Used after the input feed was removed, since
// releases that happened while unhooked were never observed.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pressed = KeySet{}
}
