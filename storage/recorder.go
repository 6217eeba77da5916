package storage

import (
	"context"
	"log/slog"
	"sync/atomic"

	"markestedt/grist/engine"
)

// Recorder persists action events off the input thread. Record never blocks;
// when the buffer is full the event is dropped and counted.
type Recorder struct {
	db      *DB
	events  chan engine.ActionEvent
	dropped atomic.Int64
	done    chan struct{}
}

// NewRecorder creates a recorder with room for size pending events.
func NewRecorder(db *DB, size int) *Recorder {
	if size <= 0 {
		size = 64
	}
	return &Recorder{
		db:     db,
		events: make(chan engine.ActionEvent, size),
		done:   make(chan struct{}),
	}
}

// Record queues ev. It is an engine.Observer.
func (r *Recorder) Record(ev engine.ActionEvent) {
	select {
	case r.events <- ev:
	default:
		r.dropped.Add(1)
	}
}

// Dropped returns how many events were discarded because the buffer was full.
func (r *Recorder) Dropped() int64 {
	return r.dropped.Load()
}

// Run writes queued events until ctx is cancelled, then flushes what is left.
func (r *Recorder) Run(ctx context.Context) {
	defer close(r.done)
	for {
		select {
		case ev := <-r.events:
			r.save(ev)
		case <-ctx.Done():
			for {
				select {
				case ev := <-r.events:
					r.save(ev)
				default:
					return
				}
			}
		}
	}
}

// Done is closed once Run has returned.
func (r *Recorder) Done() <-chan struct{} {
	return r.done
}

func (r *Recorder) save(ev engine.ActionEvent) {
	inv := FromEvent(ev)
	if err := r.db.SaveInvocation(&inv); err != nil {
		slog.Error("Failed to save invocation", "binding", ev.Binding, "error", err)
	}
}

// FromEvent converts an action event into a storable invocation.
func FromEvent(ev engine.ActionEvent) Invocation {
	inv := Invocation{
		Timestamp:  ev.At,
		Binding:    ev.Binding,
		Action:     ev.Action.String(),
		Trigger:    ev.Trigger.String(),
		DurationUs: ev.Duration.Microseconds(),
		Slow:       ev.Slow,
		Success:    ev.Err == nil,
	}
	if ev.Err != nil {
		inv.ErrorMessage = ev.Err.Error()
	}
	return inv
}
