package engine

import "sync"

// Flag is a boolean shared between the input thread and the shell.
type Flag struct {
	mu sync.RWMutex
	on bool
}

// Enabled reports the current value.
func (f *Flag) Enabled() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.on
}

// Set stores on.
func (f *Flag) Set(on bool) {
	f.mu.Lock()
	f.on = on
	f.mu.Unlock()
}

// Toggle flips the flag and returns the new value.
func (f *Flag) Toggle() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.on = !f.on
	return f.on
}
