package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"markestedt/grist/engine"
	"markestedt/grist/geometry"
	"markestedt/grist/hotkey"
	"markestedt/grist/keyboard"
	"markestedt/grist/platform"
	"markestedt/grist/platform/platformtest"
	"markestedt/grist/storage"
)

type nopApplier struct{}

func (nopApplier) Apply(hotkey.Action) error { return nil }

type fixture struct {
	srv     *Server
	http    *httptest.Server
	engine  *engine.Engine
	hook    *engine.HookController
	feed    *platformtest.Feed
	db      *storage.DB
	clients chan int
}

func newFixture(t *testing.T, withDB bool) *fixture {
	t.Helper()
	reg, err := hotkey.NewRegistry(hotkey.DefaultBindings(), hotkey.RejectConflicts)
	require.NoError(t, err)
	eng := engine.New(reg, nopApplier{}, engine.Options{})
	feed := &platformtest.Feed{}
	hook := engine.NewHookController(feed, eng)

	f := &fixture{engine: eng, hook: hook, feed: feed, clients: make(chan int, 8)}
	if withDB {
		db, err := storage.Open(t.TempDir())
		require.NoError(t, err)
		t.Cleanup(func() { db.Close() })
		f.db = db
	}

	f.srv = NewServer(Options{
		Engine:    eng,
		Hook:      hook,
		DB:        f.db,
		Metrics:   http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.Write([]byte("grist_up 1\n")) }),
		OnClients: func(n int) { f.clients <- n },
	})
	eng.OnDebugChange(f.srv.BroadcastDebug)
	handler, err := f.srv.Handler()
	require.NoError(t, err)
	f.http = httptest.NewServer(handler)
	t.Cleanup(func() {
		f.http.Close()
		f.srv.hub.Stop()
	})
	return f
}

func (f *fixture) do(t *testing.T, method, path, body string) (*http.Response, map[string]interface{}) {
	t.Helper()
	return f.doWithOrigin(t, method, path, body, "")
}

func (f *fixture) doWithOrigin(t *testing.T, method, path, body, origin string) (*http.Response, map[string]interface{}) {
	t.Helper()
	req, err := http.NewRequest(method, f.http.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]interface{}
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	}
	return resp, out
}

func TestStatusAndHookToggle(t *testing.T) {
	f := newFixture(t, false)

	resp, body := f.do(t, http.MethodGet, "/api/status", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "unhooked", body["hook"])
	assert.Equal(t, float64(23), body["bindings"])
	assert.Equal(t, false, body["history"])

	_, body = f.do(t, http.MethodPost, "/api/hook/toggle", "")
	assert.Equal(t, "hooked", body["hook"])
	assert.True(t, f.feed.Installed())

	_, body = f.do(t, http.MethodPost, "/api/hook/reload", "")
	assert.Equal(t, "hooked", body["hook"])
	assert.Equal(t, 2, f.feed.Installs)

	resp, _ = f.do(t, http.MethodGet, "/api/hook/toggle", "")
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestKeysAndBindings(t *testing.T) {
	f := newFixture(t, false)
	require.NoError(t, f.hook.Hook())
	f.feed.Press(platform.KeyEvent{Code: uint32(keyboard.LeftWindows), Down: true})

	_, body := f.do(t, http.MethodGet, "/api/keys", "")
	assert.Equal(t, []interface{}{"LeftWindows"}, body["keys"])

	_, body = f.do(t, http.MethodGet, "/api/bindings", "")
	bindings := body["bindings"].([]interface{})
	require.Len(t, bindings, 23)
	first := bindings[0].(map[string]interface{})
	assert.NotEmpty(t, first["name"])
	assert.NotEmpty(t, first["action"])
}

func TestDebugEndpoint(t *testing.T) {
	f := newFixture(t, false)

	_, body := f.do(t, http.MethodPut, "/api/debug", `{"enabled": true}`)
	assert.Equal(t, true, body["enabled"])
	assert.True(t, f.engine.Debug())

	resp, _ := f.do(t, http.MethodPut, "/api/debug", `{}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	_, body = f.do(t, http.MethodGet, "/api/debug", "")
	assert.Equal(t, true, body["enabled"])
}

func TestHistoryDisabled(t *testing.T) {
	f := newFixture(t, false)

	resp, _ := f.do(t, http.MethodGet, "/api/history", "")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	resp, _ = f.do(t, http.MethodGet, "/api/stats", "")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestHistoryAndStats(t *testing.T) {
	f := newFixture(t, true)
	for _, name := range []string{"Left", "Left", "Maximize"} {
		require.NoError(t, f.db.SaveInvocation(&storage.Invocation{Binding: name, Action: "maximize", Trigger: "x", Success: true}))
	}

	_, body := f.do(t, http.MethodGet, "/api/history?limit=2", "")
	assert.Equal(t, float64(3), body["total"])
	assert.Len(t, body["invocations"], 2)

	_, body = f.do(t, http.MethodGet, "/api/stats?days=1", "")
	assert.Equal(t, float64(1), body["days"])
	assert.Len(t, body["actions"], 2)

	resp, _ := f.do(t, http.MethodDelete, "/api/history/1", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = f.do(t, http.MethodDelete, "/api/history/1", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp, _ = f.do(t, http.MethodDelete, "/api/history/abc", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	_, body = f.do(t, http.MethodDelete, "/api/history", "")
	assert.Equal(t, float64(2), body["deleted"])
}

func TestMetricsAndStatic(t *testing.T) {
	f := newFixture(t, false)

	resp, err := http.Get(f.http.URL + "/metrics")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(f.http.URL + "/")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
}

func TestWebSocketBroadcast(t *testing.T) {
	f := newFixture(t, false)

	url := "ws" + strings.TrimPrefix(f.http.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	select {
	case n := <-f.clients:
		require.Equal(t, 1, n)
	case <-time.After(2 * time.Second):
		t.Fatal("client never registered")
	}

	f.srv.BroadcastAction(engine.ActionEvent{
		Binding: "Left",
		Action:  hotkey.MonitorEdge(geometry.West),
		Trigger: keyboard.NewKeySet(keyboard.LeftWindows, keyboard.Numpad4),
		At:      time.Now(),
	})
	f.srv.BroadcastHook(engine.Hooked)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	var msg struct {
		Type string          `json:"type"`
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, MessageTypeAction, msg.Type)
	var action ActionMessage
	require.NoError(t, json.Unmarshal(msg.Data, &action))
	assert.Equal(t, "Left", action.Binding)
	assert.Equal(t, "monitor-edge(west)", action.Action)
	assert.True(t, action.Success)

	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, MessageTypeHook, msg.Type)
	assert.JSONEq(t, `{"state":"hooked"}`, string(msg.Data))
}

func (f *fixture) wsURL() string {
	return "ws" + strings.TrimPrefix(f.http.URL, "http") + "/ws"
}

func TestCrossOriginWritesRejected(t *testing.T) {
	f := newFixture(t, false)
	const evil = "https://evil.example"

	resp, _ := f.doWithOrigin(t, http.MethodPost, "/api/hook/toggle", "", evil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp, _ = f.doWithOrigin(t, http.MethodPost, "/api/hook/reload", "", evil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp, _ = f.doWithOrigin(t, http.MethodPut, "/api/debug", `{"enabled": true}`, evil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp, _ = f.doWithOrigin(t, http.MethodDelete, "/api/history", "", evil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.False(t, f.feed.Installed())
	assert.False(t, f.engine.Debug())

	// The dashboard's own origin, under either loopback name, is accepted.
	resp, body := f.doWithOrigin(t, http.MethodPost, "/api/hook/toggle", "", f.http.URL)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "hooked", body["hook"])
	localhost := strings.Replace(f.http.URL, "127.0.0.1", "localhost", 1)
	resp, _ = f.doWithOrigin(t, http.MethodPost, "/api/hook/toggle", "", localhost)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Reads stay open.
	resp, _ = f.doWithOrigin(t, http.MethodGet, "/api/status", "", evil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCrossOriginWebSocketRejected(t *testing.T) {
	f := newFixture(t, false)

	conn, resp, err := websocket.DefaultDialer.Dial(f.wsURL(), http.Header{"Origin": {"https://evil.example"}})
	if conn != nil {
		conn.Close()
	}
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	conn, _, err = websocket.DefaultDialer.Dial(f.wsURL(), http.Header{"Origin": {f.http.URL}})
	require.NoError(t, err)
	conn.Close()
}

func TestDebugChangeBroadcast(t *testing.T) {
	f := newFixture(t, false)

	conn, _, err := websocket.DefaultDialer.Dial(f.wsURL(), nil)
	require.NoError(t, err)
	defer conn.Close()
	select {
	case <-f.clients:
	case <-time.After(2 * time.Second):
		t.Fatal("client never registered")
	}

	f.do(t, http.MethodPut, "/api/debug", `{"enabled": true}`)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg struct {
		Type string          `json:"type"`
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, MessageTypeDebug, msg.Type)
	assert.JSONEq(t, `{"enabled":true}`, string(msg.Data))
}
