package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"markestedt/grist/hotkey"
	"markestedt/grist/keyboard"
)

type Config struct {
	Engine   EngineConfig   `toml:"engine"`
	Hook     HookConfig     `toml:"hook"`
	Minimize MinimizeConfig `toml:"minimize"`
	Log      LogConfig      `toml:"log"`
	Web      WebConfig      `toml:"web"`
	Storage  StorageConfig  `toml:"storage"`
	Tray     TrayConfig     `toml:"tray"`
	Bindings BindingsConfig `toml:"bindings"`

	path string
}

type EngineConfig struct {
	Debug     bool   `toml:"debug"`
	Conflicts string `toml:"conflicts"`
}

type HookConfig struct {
	SlowCallbackMs int `toml:"slow_callback_ms"`
}

type MinimizeConfig struct {
	Exclude []string `toml:"exclude"`
}

type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type WebConfig struct {
	Enabled bool `toml:"enabled"`
	Port    int  `toml:"port"`
}

type StorageConfig struct {
	Enabled bool `toml:"enabled"`
}

type TrayConfig struct {
	Enabled bool `toml:"enabled"`
}

type BindingsConfig struct {
	ReplaceDefaults bool            `toml:"replace_defaults"`
	Extra           []BindingConfig `toml:"extra"`
}

// BindingConfig is one user binding, e.g.
//
//	[[bindings.extra]]
//	name = "Centered"
//	keys = "LeftWindows+C"
//	action = "on-monitor"
//	x = 200
//	y = 100
//	w = -400
//	h = -200
type BindingConfig struct {
	Name   string `toml:"name"`
	Keys   string `toml:"keys"`
	Action string `toml:"action"`
	X      int    `toml:"x"`
	Y      int    `toml:"y"`
	W      int    `toml:"w"`
	H      int    `toml:"h"`
}

// Default configuration
func defaultConfig() *Config {
	return &Config{
		Engine: EngineConfig{
			Debug:     false,
			Conflicts: "reject",
		},
		Hook: HookConfig{
			SlowCallbackMs: 300,
		},
		Minimize: MinimizeConfig{
			Exclude: []string{},
		},
		Log: LogConfig{
			Level: "info",
			File:  "",
		},
		Web: WebConfig{
			Enabled: false,
			Port:    8427,
		},
		Storage: StorageConfig{
			Enabled: true,
		},
		Tray: TrayConfig{
			Enabled: true,
		},
		Bindings: BindingsConfig{
			ReplaceDefaults: false,
			Extra:           []BindingConfig{},
		},
	}
}

// Dir returns the per-user directory holding the config file and database
func Dir() (string, error) {
	appData := os.Getenv("APPDATA")
	if appData == "" {
		if profile := os.Getenv("USERPROFILE"); profile != "" {
			appData = filepath.Join(profile, "AppData", "Roaming")
		} else {
			dir, err := os.UserConfigDir()
			if err != nil {
				return "", fmt.Errorf("failed to locate config directory: %w", err)
			}
			appData = dir
		}
	}

	configDir := filepath.Join(appData, "grist")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	return configDir, nil
}

// ConfigPath returns the path to the configuration file
func ConfigPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load loads the configuration from the default TOML file
// If the file doesn't exist, it creates it with default values
func Load() (*Config, error) {
	configPath, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFile(configPath)
}

// LoadFile loads the configuration from path, creating it with defaults if
// missing
func LoadFile(configPath string) (*Config, error) {
	// If config doesn't exist, create it with defaults
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg := defaultConfig()
		cfg.path = configPath
		if err := save(configPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
		return cfg, nil
	}

	// Load existing config
	cfg := defaultConfig()
	md, err := toml.DecodeFile(configPath, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	for _, key := range md.Undecoded() {
		slog.Warn("Unknown config key", "key", key.String(), "file", configPath)
	}
	cfg.path = configPath

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Path returns the file the configuration was loaded from
func (c *Config) Path() string {
	return c.path
}

// Save writes the configuration back to its file
func (c *Config) Save() error {
	if c.path == "" {
		return fmt.Errorf("config has no file path")
	}
	return save(c.path, c)
}

// save writes the configuration to the TOML file
func save(path string, cfg *Config) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Validate checks values that would otherwise fail later at startup
func (c *Config) Validate() error {
	if _, err := hotkey.ParseConflictPolicy(c.Engine.Conflicts); err != nil {
		return fmt.Errorf("engine.conflicts: %w", err)
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if c.Hook.SlowCallbackMs < 0 {
		return fmt.Errorf("hook.slow_callback_ms must not be negative, got %d", c.Hook.SlowCallbackMs)
	}
	if c.Web.Port <= 0 || c.Web.Port > 65535 {
		return fmt.Errorf("web.port out of range: %d", c.Web.Port)
	}
	return nil
}

// SlowCallback returns the slow hook callback threshold. Zero disables the
// warning.
func (c *Config) SlowCallback() time.Duration {
	if c.Hook.SlowCallbackMs == 0 {
		return -1
	}
	return time.Duration(c.Hook.SlowCallbackMs) * time.Millisecond
}

// ConflictPolicy returns the parsed engine.conflicts value
func (c *Config) ConflictPolicy() hotkey.ConflictPolicy {
	p, err := hotkey.ParseConflictPolicy(c.Engine.Conflicts)
	if err != nil {
		return hotkey.RejectConflicts
	}
	return p
}

// BuildBindings returns the binding table: the defaults unless replaced,
// followed by the extra bindings in file order
func (c *Config) BuildBindings() ([]hotkey.Binding, error) {
	var bindings []hotkey.Binding
	if !c.Bindings.ReplaceDefaults {
		bindings = hotkey.DefaultBindings()
	}

	for i, bc := range c.Bindings.Extra {
		trigger, err := ParseTrigger(bc.Keys)
		if err != nil {
			return nil, fmt.Errorf("bindings.extra[%d] %q: %w", i, bc.Name, err)
		}
		action, err := ParseAction(bc)
		if err != nil {
			return nil, fmt.Errorf("bindings.extra[%d] %q: %w", i, bc.Name, err)
		}
		name := bc.Name
		if name == "" {
			name = action.String()
		}
		bindings = append(bindings, hotkey.Binding{Name: name, Trigger: trigger, Action: action})
	}
	return bindings, nil
}

// ParseTrigger parses a trigger like "LeftWindows+Numpad7" or "win+shift+z"
func ParseTrigger(keys string) (keyboard.KeySet, error) {
	if strings.TrimSpace(keys) == "" {
		return keyboard.KeySet{}, fmt.Errorf("empty trigger")
	}
	return keyboard.ParseKeySet(keys)
}

// ParseAction maps a binding's action name and rect to an Action
func ParseAction(bc BindingConfig) (hotkey.Action, error) {
	return hotkey.ParseAction(bc.Action, bc.X, bc.Y, bc.W, bc.H)
}

// ParseLevel maps a log level name to a slog.Level
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level: %s", s)
}
