package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"markestedt/grist/geometry"
	"markestedt/grist/hotkey"
	"markestedt/grist/keyboard"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadFileCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.FileExists(t, path)
	assert.Equal(t, path, cfg.Path())
	assert.Equal(t, 300, cfg.Hook.SlowCallbackMs)
	assert.Equal(t, 8427, cfg.Web.Port)
	assert.True(t, cfg.Storage.Enabled)
	assert.True(t, cfg.Tray.Enabled)
	assert.False(t, cfg.Web.Enabled)

	// The written file loads back to the same values.
	again, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Engine, again.Engine)
	assert.Equal(t, cfg.Web, again.Web)
}

func TestLoadFileOverrides(t *testing.T) {
	path := writeConfig(t, `
[engine]
debug = true
conflicts = "first-wins"

[hook]
slow_callback_ms = 150

[minimize]
exclude = ["vlc.exe"]

[log]
level = "debug"

[web]
enabled = true
port = 9000

[[bindings.extra]]
name = "Centered"
keys = "LeftWindows+C"
action = "on-monitor"
x = 200
y = 100
w = -400
h = -200
`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.True(t, cfg.Engine.Debug)
	assert.Equal(t, hotkey.FirstWins, cfg.ConflictPolicy())
	assert.Equal(t, 150*time.Millisecond, cfg.SlowCallback())
	assert.Equal(t, []string{"vlc.exe"}, cfg.Minimize.Exclude)
	assert.Equal(t, 9000, cfg.Web.Port)
	// Sections not present keep their defaults.
	assert.True(t, cfg.Storage.Enabled)

	bindings, err := cfg.BuildBindings()
	require.NoError(t, err)
	require.Len(t, bindings, 24)
	last := bindings[23]
	assert.Equal(t, "Centered", last.Name)
	assert.Equal(t, keyboard.NewKeySet(keyboard.LeftWindows, keyboard.C), last.Trigger)
	assert.Equal(t, hotkey.PlaceOnMonitor(200, 100, -400, -200), last.Action)
}

func TestLoadFileRejectsBadValues(t *testing.T) {
	tests := map[string]string{
		"policy": "[engine]\nconflicts = \"random\"\n",
		"level":  "[log]\nlevel = \"loud\"\n",
		"port":   "[web]\nport = 70000\n",
		"slow":   "[hook]\nslow_callback_ms = -1\n",
		"syntax": "[engine\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadFile(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}

func TestBuildBindingsReplaceDefaults(t *testing.T) {
	cfg := defaultConfig()
	cfg.Bindings.ReplaceDefaults = true
	cfg.Bindings.Extra = []BindingConfig{
		{Keys: "win+numpad4", Action: "west"},
		{Name: "Wide", Keys: "LeftWindows+W", Action: "on-desktop", X: 0, Y: 0, W: 2560, H: 1080},
	}

	bindings, err := cfg.BuildBindings()
	require.NoError(t, err)
	require.Len(t, bindings, 2)
	assert.Equal(t, "monitor-edge(west)", bindings[0].Name)
	assert.Equal(t, hotkey.MonitorEdge(geometry.West), bindings[0].Action)
	assert.Equal(t, hotkey.PlaceOnDesktop(0, 0, 2560, 1080), bindings[1].Action)
}

func TestBuildBindingsErrors(t *testing.T) {
	cfg := defaultConfig()
	cfg.Bindings.Extra = []BindingConfig{{Name: "bad", Keys: "LeftWindows+NotAKey", Action: "west"}}
	_, err := cfg.BuildBindings()
	assert.ErrorContains(t, err, `"bad"`)

	cfg.Bindings.Extra = []BindingConfig{{Name: "bad", Keys: "LeftWindows+A", Action: "sideways"}}
	_, err = cfg.BuildBindings()
	assert.Error(t, err)

	_, err = ParseTrigger("  ")
	assert.Error(t, err)
}

func TestSlowCallbackZeroDisables(t *testing.T) {
	cfg := defaultConfig()
	cfg.Hook.SlowCallbackMs = 0
	assert.Less(t, cfg.SlowCallback(), time.Duration(0))
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("WARN")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, lvl)

	lvl, err = ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, lvl)

	_, err = ParseLevel("trace")
	assert.Error(t, err)
}

func TestSaveWithoutPath(t *testing.T) {
	assert.Error(t, defaultConfig().Save())
}
