package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"markestedt/grist/engine"
	"markestedt/grist/geometry"
	"markestedt/grist/hotkey"
	"markestedt/grist/keyboard"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSaveAndListInvocations(t *testing.T) {
	db := openTestDB(t)
	now := time.Now().UTC().Truncate(time.Second)

	first := &Invocation{Timestamp: now.Add(-time.Minute), Binding: "Left", Action: "monitor-edge(west)", Trigger: "LeftWindows+Numpad4", DurationUs: 1500, Success: true}
	second := &Invocation{Timestamp: now, Binding: "Move Next", Action: "move-adjacent-monitor(next)", Trigger: "LeftWindows+Right", DurationUs: 400000, Slow: true, Success: false, ErrorMessage: "GetForegroundWindow failed: no foreground window"}
	require.NoError(t, db.SaveInvocation(first))
	require.NoError(t, db.SaveInvocation(second))
	assert.NotZero(t, first.ID)
	assert.Greater(t, second.ID, first.ID)

	count, err := db.GetInvocationCount()
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	list, err := db.GetInvocations(10, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Move Next", list[0].Binding)
	assert.Equal(t, "GetForegroundWindow failed: no foreground window", list[0].ErrorMessage)
	assert.True(t, list[0].Slow)
	assert.False(t, list[0].Success)
	assert.True(t, list[0].Timestamp.Equal(now))
	assert.Equal(t, "", list[1].ErrorMessage)

	page, err := db.GetInvocations(1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "Left", page[0].Binding)
}

func TestDeleteInvocation(t *testing.T) {
	db := openTestDB(t)
	inv := &Invocation{Binding: "Maximize", Action: "maximize", Trigger: "LeftWindows+Up", Success: true}
	require.NoError(t, db.SaveInvocation(inv))

	require.NoError(t, db.DeleteInvocation(inv.ID))
	err := db.DeleteInvocation(inv.ID)
	assert.True(t, errors.Is(err, ErrNotFound))

	require.NoError(t, db.SaveInvocation(&Invocation{Binding: "a", Action: "maximize", Trigger: "A", Success: true}))
	require.NoError(t, db.SaveInvocation(&Invocation{Binding: "b", Action: "maximize", Trigger: "B", Success: true}))
	n, err := db.ClearInvocations()
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestStats(t *testing.T) {
	db := openTestDB(t)
	now := time.Now()
	for _, inv := range []Invocation{
		{Timestamp: now, Binding: "Left", Action: "monitor-edge(west)", Trigger: "x", DurationUs: 1000, Success: true},
		{Timestamp: now, Binding: "Left", Action: "monitor-edge(west)", Trigger: "x", DurationUs: 3000, Success: false, ErrorMessage: "boom"},
		{Timestamp: now, Binding: "Maximize", Action: "maximize", Trigger: "y", DurationUs: 500, Slow: true, Success: true},
		{Timestamp: now.AddDate(0, 0, -30), Binding: "Old", Action: "minimize", Trigger: "z", DurationUs: 100, Success: true},
	} {
		inv := inv
		require.NoError(t, db.SaveInvocation(&inv))
	}

	actions, err := db.GetActionStats(7)
	require.NoError(t, err)
	require.Len(t, actions, 2)
	assert.Equal(t, "Left", actions[0].Binding)
	assert.Equal(t, 2, actions[0].Total)
	assert.Equal(t, 1, actions[0].FailureCount)
	assert.InDelta(t, 2.0, actions[0].AvgDurationMs, 0.001)
	assert.InDelta(t, 3.0, actions[0].MaxDurationMs, 0.001)

	daily, err := db.GetDailyStats(7)
	require.NoError(t, err)
	require.Len(t, daily, 1)
	assert.Equal(t, 3, daily[0].Total)
	assert.Equal(t, 1, daily[0].FailureCount)
	assert.Equal(t, 1, daily[0].SlowCount)

	overall, err := db.GetOverallStats(60)
	require.NoError(t, err)
	assert.Equal(t, 4, overall.Total)
	assert.Equal(t, 3, overall.SuccessCount)
}

func TestRecorderPersistsEvents(t *testing.T) {
	db := openTestDB(t)
	rec := NewRecorder(db, 8)

	ctx, cancel := context.WithCancel(context.Background())
	go rec.Run(ctx)

	rec.Record(engine.ActionEvent{
		Binding:  "Top Left",
		Action:   hotkey.MonitorEdge(geometry.TopLeft),
		Trigger:  keyboard.NewKeySet(keyboard.LeftWindows, keyboard.Numpad7),
		Duration: 2 * time.Millisecond,
		At:       time.Now(),
	})
	cancel()
	<-rec.Done()

	list, err := db.GetInvocations(10, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Top Left", list[0].Binding)
	assert.Equal(t, "monitor-edge(top-left)", list[0].Action)
	assert.Equal(t, int64(2000), list[0].DurationUs)
	assert.True(t, list[0].Success)
}

func TestRecorderDropsWhenFull(t *testing.T) {
	rec := NewRecorder(nil, 1)
	rec.Record(engine.ActionEvent{Binding: "a"})
	rec.Record(engine.ActionEvent{Binding: "b"})
	rec.Record(engine.ActionEvent{Binding: "c"})
	assert.Equal(t, int64(2), rec.Dropped())
}

func TestFromEvent(t *testing.T) {
	inv := FromEvent(engine.ActionEvent{
		Binding: "Minimize",
		Action:  hotkey.Minimize(),
		Trigger: keyboard.NewKeySet(keyboard.LeftWindows, keyboard.Down),
		Err:     errors.New("process is excluded"),
	})
	assert.False(t, inv.Success)
	assert.Equal(t, "process is excluded", inv.ErrorMessage)
	assert.Equal(t, "minimize", inv.Action)
}
