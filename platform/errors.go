package platform

import (
	"errors"
	"fmt"
)

var (
	// ErrNoForegroundWindow is always delivered wrapped in an *OSError.
	ErrNoForegroundWindow = errors.New("no foreground window")
	ErrUnsupported        = errors.New("not supported on this platform")
	ErrNotRunning         = errors.New("input thread is not running")
)

// OSError reports a failed platform call.
type OSError struct {
	Op  string
	Err error
}

func (e *OSError) Error() string {
	if e.Err == nil {
		return e.Op + " failed"
	}
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *OSError) Unwrap() error { return e.Err }

func osError(op string, err error) error {
	return &OSError{Op: op, Err: err}
}
