package web

import (
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
)

// sameOrigin reports whether r came from the dashboard itself. Requests
// without an Origin header (curl, scripts) are allowed; a browser always
// sends one for cross-origin writes and websocket handshakes.
func sameOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil || u.Host == "" {
		return false
	}
	if strings.EqualFold(u.Host, r.Host) {
		return true
	}

	// localhost and 127.0.0.1 name the same listener
	oHost, oPort, err := net.SplitHostPort(u.Host)
	if err != nil {
		return false
	}
	rHost, rPort, err := net.SplitHostPort(r.Host)
	if err != nil {
		return false
	}
	return oPort == rPort && isLoopback(oHost) && isLoopback(rHost)
}

func isLoopback(host string) bool {
	if strings.EqualFold(host, "localhost") {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

// requireSameOrigin rejects cross-origin state-changing API calls
func requireSameOrigin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") && r.Method != http.MethodGet && r.Method != http.MethodHead && !sameOrigin(r) {
			slog.Warn("Rejected cross-origin request", "method", r.Method, "path", r.URL.Path, "origin", r.Header.Get("Origin"))
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
