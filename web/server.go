// Package web serves the local diagnostics dashboard.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"markestedt/grist/engine"
	"markestedt/grist/hotkey"
	"markestedt/grist/keyboard"
	"markestedt/grist/storage"
)

//go:embed static/*
var staticFiles embed.FS

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     sameOrigin,
}

// Engine is the part of the engine the dashboard reads and toggles
type Engine interface {
	PressedKeys() keyboard.KeySet
	Bindings() []hotkey.Binding
	Debug() bool
	SetDebug(on bool)
}

// Hook is the part of the hook controller the dashboard drives
type Hook interface {
	State() engine.HookState
	Toggle() (engine.HookState, error)
	Reload() error
}

// Options configures a Server. DB and Metrics may be nil.
type Options struct {
	Port    int
	Engine  Engine
	Hook    Hook
	DB      *storage.DB
	Metrics http.Handler
	// OnClients is told the number of connected dashboard clients.
	OnClients func(n int)
}

// Server represents the web server
type Server struct {
	engine  Engine
	hook    Hook
	db      *storage.DB
	metrics http.Handler
	port    int
	hub     *Hub
	started time.Time
}

// NewServer creates a new web server and starts its hub
func NewServer(opts Options) *Server {
	hub := NewHub()
	hub.onCount = opts.OnClients
	go hub.Run()

	return &Server{
		engine:  opts.Engine,
		hook:    opts.Hook,
		db:      opts.DB,
		metrics: opts.Metrics,
		port:    opts.Port,
		hub:     hub,
		started: time.Now(),
	}
}

// Handler builds the HTTP routes
func (s *Server) Handler() (http.Handler, error) {
	mux := http.NewServeMux()

	// API endpoints
	mux.HandleFunc("/api/status", s.handleStatus)
	mux.HandleFunc("/api/keys", s.handleKeys)
	mux.HandleFunc("/api/bindings", s.handleBindings)
	mux.HandleFunc("/api/debug", s.handleDebug)
	mux.HandleFunc("/api/hook/toggle", s.handleHookToggle)
	mux.HandleFunc("/api/hook/reload", s.handleHookReload)
	mux.HandleFunc("/api/stats", s.handleStats)
	mux.HandleFunc("/api/history", s.handleHistory)
	mux.HandleFunc("/api/history/", s.handleHistory)
	mux.HandleFunc("/ws", s.handleWebSocket)
	if s.metrics != nil {
		mux.Handle("/metrics", s.metrics)
	}

	// Static files
	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		return nil, fmt.Errorf("failed to load static files: %w", err)
	}
	mux.Handle("/", http.FileServer(http.FS(staticFS)))

	return requireSameOrigin(mux), nil
}

// Start serves on 127.0.0.1 until ctx is cancelled
func (s *Server) Start(ctx context.Context) error {
	handler, err := s.Handler()
	if err != nil {
		return err
	}

	addr := fmt.Sprintf("127.0.0.1:%d", s.port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Warn("Web server shutdown failed", "error", err)
		}
		s.hub.Stop()
	}()

	slog.Info("Starting web server", "port", s.port, "url", s.URL())

	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// URL returns the dashboard address
func (s *Server) URL() string {
	return fmt.Sprintf("http://localhost:%d", s.port)
}

// BroadcastAction pushes a fired binding to all clients. It is an
// engine.Observer.
func (s *Server) BroadcastAction(ev engine.ActionEvent) {
	inv := storage.FromEvent(ev)
	s.hub.BroadcastMessage(Message{
		Type: MessageTypeAction,
		Data: ActionMessage{
			Binding:    inv.Binding,
			Action:     inv.Action,
			Trigger:    inv.Trigger,
			DurationUs: inv.DurationUs,
			Slow:       inv.Slow,
			Success:    inv.Success,
			Error:      inv.ErrorMessage,
			Timestamp:  ev.At.UTC().Format(time.RFC3339),
		},
	})
}

// BroadcastHook pushes a hook state change to all clients
func (s *Server) BroadcastHook(state engine.HookState) {
	s.hub.BroadcastMessage(Message{
		Type: MessageTypeHook,
		Data: HookMessage{State: state.String()},
	})
}

// BroadcastDebug pushes a debug flag change to all clients
func (s *Server) BroadcastDebug(on bool) {
	s.hub.BroadcastMessage(Message{
		Type: MessageTypeDebug,
		Data: DebugMessage{Enabled: on},
	})
}

// handleWebSocket handles WebSocket connections
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("Failed to upgrade WebSocket connection", "error", err)
		return
	}

	client := &Client{
		hub:  s.hub,
		conn: conn,
		send: make(chan []byte, 256),
	}

	select {
	case s.hub.register <- client:
	case <-s.hub.done:
		conn.Close()
		return
	}

	// Start client goroutines
	go client.writePump()
	go client.readPump()
}
