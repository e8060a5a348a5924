package server

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/muurk/maskentry/internal/logging"
)

// Handler returns the HTTP handler serving /ws and /healthz.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ws", s.handleWebSocket)
	mux.HandleFunc("GET /healthz", handleHealth)
	return mux
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

// handleWebSocket upgrades the request and runs an editing session on it
// until the peer disconnects.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	LogHTTPRequestDetails(r)

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied with an HTTP error
		logging.Error("WebSocket upgrade failed",
			zap.String("remote_addr", r.RemoteAddr),
			zap.Error(err),
		)
		return
	}

	sess := newSession(conn, r.RemoteAddr)
	if !s.register(sess) {
		sess.close(1013, "server shutting down") // try again later
		return
	}
	defer s.unregister(sess)
	defer func() { _ = conn.Close() }()

	if err := sess.run(s.ctx); err != nil {
		logging.Warn("Session ended with error",
			zap.String("remote_addr", r.RemoteAddr),
			zap.Error(err),
		)
	}
}

// LogHTTPRequestDetails logs the headers of an upgrade request at debug level
func LogHTTPRequestDetails(req *http.Request) {
	if !logging.GetLogger().Core().Enabled(zap.DebugLevel) {
		return
	}

	headers := make(map[string]string)
	for key, values := range req.Header {
		headers[key] = strings.Join(values, ", ")
	}

	logging.Debug("WebSocket upgrade request",
		zap.String("remote_addr", req.RemoteAddr),
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
		zap.String("host", req.Host),
		zap.String("origin", req.Header.Get("Origin")),
		zap.String("sec_websocket_version", req.Header.Get("Sec-WebSocket-Version")),
		zap.String("user_agent", req.Header.Get("User-Agent")),
		zap.Any("headers", headers),
	)
}
