package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"markestedt/grist/engine"
	"markestedt/grist/geometry"
	"markestedt/grist/hotkey"
)

func TestObserveAction(t *testing.T) {
	m := New()

	m.ObserveAction(engine.ActionEvent{Action: hotkey.MonitorEdge(geometry.West), Duration: time.Millisecond})
	m.ObserveAction(engine.ActionEvent{Action: hotkey.MonitorEdge(geometry.East), Duration: 2 * time.Millisecond})
	m.ObserveAction(engine.ActionEvent{Action: hotkey.Minimize(), Err: errors.New("excluded"), Slow: true})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ActionsTotal.WithLabelValues("monitor-edge", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ActionsTotal.WithLabelValues("minimize", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SlowCallbacks))
}

func TestObserveHook(t *testing.T) {
	m := New()

	m.ObserveHook(engine.Hooked)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HookInstalled))
	m.ObserveHook(engine.Unhooked)
	assert.Equal(t, 0.0, testutil.ToFloat64(m.HookInstalled))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HookChanges.WithLabelValues("hooked")))
}

func TestHandler(t *testing.T) {
	m := New()
	m.ObserveHook(engine.Hooked)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "grist_hook_installed 1")
	assert.Contains(t, string(body), "go_goroutines")
}
