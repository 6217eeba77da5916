package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"markestedt/grist/keyboard"
	"markestedt/grist/storage"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Debug("Failed to write response", "error", err)
	}
}

// handleStatus returns hook and debug state
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := map[string]interface{}{
		"hook":     s.hook.State().String(),
		"debug":    s.engine.Debug(),
		"bindings": len(s.engine.Bindings()),
		"history":  s.db != nil,
		"uptime":   time.Since(s.started).Round(time.Second).String(),
	}

	writeJSON(w, http.StatusOK, response)
}

// handleKeys returns the currently held keys
func (s *Server) handleKeys(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	pressed := s.engine.PressedKeys()
	names := make([]string, 0, pressed.Len())
	for _, vk := range pressed.Keys() {
		names = append(names, vk.String())
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"keys": names,
	})
}

type bindingJSON struct {
	Name    string   `json:"name"`
	Keys    []string `json:"keys"`
	Action  string   `json:"action"`
	Trigger string   `json:"trigger"`
}

// handleBindings lists the binding table in registration order
func (s *Server) handleBindings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	bindings := s.engine.Bindings()
	out := make([]bindingJSON, 0, len(bindings))
	for _, b := range bindings {
		out = append(out, bindingJSON{
			Name:    b.Name,
			Keys:    keyNames(b.Trigger),
			Action:  b.Action.String(),
			Trigger: b.Trigger.String(),
		})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"bindings": out,
	})
}

func keyNames(set keyboard.KeySet) []string {
	keys := set.Keys()
	names := make([]string, len(keys))
	for i, vk := range keys {
		names[i] = vk.String()
	}
	return names
}

// handleDebug handles GET and PUT for the debug flag
func (s *Server) handleDebug(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
	case http.MethodPut:
		var req struct {
			Enabled *bool `json:"enabled"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Enabled == nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		s.engine.SetDebug(*req.Enabled)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"enabled": s.engine.Debug()})
}

// handleHookToggle flips the keyboard hook
func (s *Server) handleHookToggle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	state, err := s.hook.Toggle()
	if err != nil {
		slog.Error("Failed to toggle hook", "error", err)
		http.Error(w, "Failed to toggle hook", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"hook": state.String()})
}

// handleHookReload reinstalls the keyboard hook
func (s *Server) handleHookReload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := s.hook.Reload(); err != nil {
		slog.Error("Failed to reload hook", "error", err)
		http.Error(w, "Failed to reload hook", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"hook": s.hook.State().String()})
}

// requireDB reports 503 when history is disabled
func (s *Server) requireDB(w http.ResponseWriter) bool {
	if s.db == nil {
		http.Error(w, "History is disabled", http.StatusServiceUnavailable)
		return false
	}
	return true
}

// handleStats returns statistics for the specified time range
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !s.requireDB(w) {
		return
	}

	daysStr := r.URL.Query().Get("days")
	days := 7 // default to 7 days
	if daysStr != "" {
		if d, err := strconv.Atoi(daysStr); err == nil && d > 0 {
			days = d
		}
	}

	overall, err := s.db.GetOverallStats(days)
	if err != nil {
		slog.Error("Failed to get overall stats", "error", err)
		http.Error(w, "Failed to get statistics", http.StatusInternalServerError)
		return
	}

	daily, err := s.db.GetDailyStats(days)
	if err != nil {
		slog.Error("Failed to get daily stats", "error", err)
		http.Error(w, "Failed to get statistics", http.StatusInternalServerError)
		return
	}

	actions, err := s.db.GetActionStats(days)
	if err != nil {
		slog.Error("Failed to get action stats", "error", err)
		http.Error(w, "Failed to get statistics", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"days":    days,
		"overall": overall,
		"daily":   daily,
		"actions": actions,
	})
}

// handleHistory handles GET and DELETE requests for invocation history
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if !s.requireDB(w) {
		return
	}
	switch r.Method {
	case http.MethodGet:
		s.handleGetHistory(w, r)
	case http.MethodDelete:
		s.handleDeleteHistory(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleGetHistory returns paginated invocation history
func (s *Server) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	limitStr := r.URL.Query().Get("limit")
	offsetStr := r.URL.Query().Get("offset")

	limit := 50 // default
	offset := 0

	if limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			limit = l
		}
	}

	if offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			offset = o
		}
	}

	invocations, err := s.db.GetInvocations(limit, offset)
	if err != nil {
		slog.Error("Failed to get invocations", "error", err)
		http.Error(w, "Failed to get history", http.StatusInternalServerError)
		return
	}
	if invocations == nil {
		invocations = []storage.Invocation{}
	}

	total, err := s.db.GetInvocationCount()
	if err != nil {
		slog.Error("Failed to get invocation count", "error", err)
		http.Error(w, "Failed to get history", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"invocations": invocations,
		"total":       total,
		"limit":       limit,
		"offset":      offset,
	})
}

// handleDeleteHistory deletes one invocation (/api/history/123) or the
// whole history (/api/history)
func (s *Server) handleDeleteHistory(w http.ResponseWriter, r *http.Request) {
	idStr := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/history"), "/")
	if idStr == "" {
		n, err := s.db.ClearInvocations()
		if err != nil {
			slog.Error("Failed to clear history", "error", err)
			http.Error(w, "Failed to clear history", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"status": "success", "deleted": n})
		return
	}

	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}

	if err := s.db.DeleteInvocation(id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "Invocation not found", http.StatusNotFound)
			return
		}
		slog.Error("Failed to delete invocation", "error", err, "id", id)
		http.Error(w, "Failed to delete invocation", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}
