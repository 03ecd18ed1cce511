// Package httpapi serves the launcher to a browser-side surface.
//
// REST endpoints expose the snapshot, search and lookups. The message
// protocol is available both as a single POST endpoint, which shares one
// keystroke buffer between callers, and as a WebSocket at /api/keys/ws,
// where every connection gets its own buffer.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"github.com/jpl-au/shortkey/internal/action"
	"github.com/jpl-au/shortkey/internal/handler"
	"github.com/jpl-au/shortkey/internal/settings"
)

// DefaultAddr is the listen address when none is configured.
const DefaultAddr = "127.0.0.1:8765"

// Server holds the collaborators shared by every request.
type Server struct {
	store    *settings.Store
	dispatch *action.Dispatcher
	log      *slog.Logger
	shared   *handler.Handler
	sessions *sessions
	origins  []string
	upgrader websocket.Upgrader
}

// Option configures a Server.
type Option func(*Server)

// WithAllowedOrigins lets browser pages from these origins call the API
// in addition to pages served from the API's own host.
func WithAllowedOrigins(origins ...string) Option {
	return func(s *Server) { s.origins = append(s.origins, origins...) }
}

// New returns a Server. A nil logger logs to slog.Default.
func New(store *settings.Store, d *action.Dispatcher, log *slog.Logger, opts ...Option) *Server {
	if log == nil {
		log = slog.Default()
	}
	s := &Server{
		store:    store,
		dispatch: d,
		log:      log,
		shared:   handler.New(store, d, log),
		sessions: &sessions{},
	}
	for _, o := range opts {
		o(s)
	}
	s.upgrader = websocket.Upgrader{CheckOrigin: s.originAllowed}
	return s
}

// Routes returns the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(s.checkOrigin)

	r.Get("/api/settings", s.getSettings)
	r.Get("/api/search", s.search)
	r.Get("/api/find", s.find)
	r.Get("/api/shortcuts/{ref}", s.getShortcut)
	r.Get("/api/tags", s.listTags)

	r.Group(func(r chi.Router) {
		r.Use(middleware.AllowContentType("application/json"))
		r.Post("/api/use/{id}", s.use)
		r.Post("/api/reload", s.reload)
		r.Post("/api/message", s.message)
	})

	r.Get("/api/keys/ws", s.handleWS)

	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down and waits
// for pending usage writes.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.log.Info("http api listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdown, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	err := srv.Shutdown(shutdown)
	s.Wait()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Wait blocks until fired usage writes from every session have finished.
func (s *Server) Wait() {
	s.shared.Wait()
	s.sessions.wait()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
