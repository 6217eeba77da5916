package systray

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"

	"github.com/getlantern/systray"

	"markestedt/grist/engine"
	"markestedt/grist/hotkey"
	"markestedt/grist/keyboard"
	"markestedt/grist/platform"
)

//go:embed icon.ico
var iconData []byte

// Engine is what the tray menu reads and toggles on the engine
type Engine interface {
	PressedKeys() keyboard.KeySet
	Bindings() []hotkey.Binding
	Debug() bool
	ToggleDebug() bool
	OnDebugChange(fn func(on bool))
}

// Hook is what the tray menu drives on the hook controller
type Hook interface {
	State() engine.HookState
	Toggle() (engine.HookState, error)
	Reload() error
	OnStateChange(fn func(engine.HookState))
}

// SystrayManager manages the system tray icon and menu
type SystrayManager struct {
	engine   Engine
	hook     Hook
	notifier platform.Notifier
	webURL   string
	quit     chan struct{}
}

// NewSystrayManager creates a new systray manager. webURL may be empty when
// the dashboard is disabled.
func NewSystrayManager(eng Engine, hook Hook, notifier platform.Notifier, webURL string) *SystrayManager {
	return &SystrayManager{
		engine:   eng,
		hook:     hook,
		notifier: notifier,
		webURL:   webURL,
		quit:     make(chan struct{}),
	}
}

// Run starts the system tray (blocking call)
func (m *SystrayManager) Run() {
	systray.Run(m.onReady, m.onExit)
}

// Stop stops the system tray
func (m *SystrayManager) Stop() {
	systray.Quit()
}

// WaitForQuit returns a channel that will be closed when user clicks Quit
func (m *SystrayManager) WaitForQuit() <-chan struct{} {
	return m.quit
}

// onReady is called when the systray is ready
func (m *SystrayManager) onReady() {
	systray.SetIcon(iconData)
	systray.SetTitle("Grist")
	systray.SetTooltip("Grist - Window placement hotkeys")

	mEnabled := systray.AddMenuItemCheckbox("Enabled", "Install or remove the keyboard hook", m.hook.State() == engine.Hooked)
	mReload := systray.AddMenuItem("Reload", "Reinstall the keyboard hook")
	mDebug := systray.AddMenuItemCheckbox("Debug logging", "Log every key event and action", m.engine.Debug())
	systray.AddSeparator()
	mKeys := systray.AddMenuItem("Show pressed keys", "Show the keys currently held")
	mBindings := systray.AddMenuItem("List bindings", "Show every hotkey binding")
	mDashboard := systray.AddMenuItem("Open dashboard", "Open the Grist web dashboard")
	if m.webURL == "" {
		mDashboard.Hide()
	}
	systray.AddSeparator()
	mQuit := systray.AddMenuItem("Quit", "Exit Grist")

	m.hook.OnStateChange(func(state engine.HookState) {
		if state == engine.Hooked {
			mEnabled.Check()
			systray.SetTooltip("Grist - Window placement hotkeys")
		} else {
			mEnabled.Uncheck()
			systray.SetTooltip("Grist - Paused")
		}
	})

	// The dashboard can change debug logging too
	m.engine.OnDebugChange(func(on bool) {
		if on {
			mDebug.Check()
		} else {
			mDebug.Uncheck()
		}
	})

	// Handle menu clicks
	go func() {
		for {
			select {
			case <-mEnabled.ClickedCh:
				if _, err := m.hook.Toggle(); err != nil {
					slog.Error("Failed to toggle hook", "error", err)
				}
			case <-mReload.ClickedCh:
				if err := m.hook.Reload(); err != nil {
					slog.Error("Failed to reload hook", "error", err)
				}
			case <-mDebug.ClickedCh:
				m.engine.ToggleDebug()
			case <-mKeys.ClickedCh:
				m.show("Pressed keys", hotkey.DescribePressed(m.engine.PressedKeys()))
			case <-mBindings.ClickedCh:
				m.show("Bindings", hotkey.FormatTable(m.engine.Bindings()))
			case <-mDashboard.ClickedCh:
				m.openWebUI()
			case <-mQuit.ClickedCh:
				slog.Info("User requested quit from system tray")
				close(m.quit)
				systray.Quit()
				return
			}
		}
	}()
}

// onExit is called when the systray is exiting
func (m *SystrayManager) onExit() {
	slog.Info("System tray exited")
}

// show displays text without blocking the menu loop
func (m *SystrayManager) show(title, text string) {
	go func() {
		if err := m.notifier.ShowMessage(title, text); err != nil {
			slog.Error("Failed to show message", "title", title, "error", err)
		}
	}()
}

// openWebUI opens the web UI in the default browser
func (m *SystrayManager) openWebUI() {
	slog.Info("Opening web UI", "url", m.webURL)

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", m.webURL)
	case "darwin":
		cmd = exec.Command("open", m.webURL)
	case "linux":
		cmd = exec.Command("xdg-open", m.webURL)
	default:
		slog.Error("Unsupported platform for opening browser", "platform", runtime.GOOS)
		return
	}

	if err := cmd.Start(); err != nil {
		slog.Error("Failed to open web UI", "error", fmt.Errorf("start %s: %w", cmd.Path, err))
	}
}
