// Package httpapi exposes editor sessions over HTTP. Each session wraps one
// live editor; events posted to it drive the placement tool exactly like
// local input would.
package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/veldtlabs/breadboard"
	"github.com/veldtlabs/breadboard/internal/logging"
	"github.com/veldtlabs/breadboard/pkg/domain"
	"github.com/veldtlabs/breadboard/pkg/ports"
	"github.com/veldtlabs/breadboard/pkg/session"
	"github.com/veldtlabs/breadboard/pkg/undo"
)

// Server carries the handler dependencies.
type Server struct {
	sessions *session.Manager
	catalog  ports.Catalog
	logger   *slog.Logger
	metrics  http.Handler
	version  string
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetricsHandler mounts a metrics endpoint at GET /metrics, typically
// promhttp for the process registry.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithVersion overrides the version reported by GET /info.
func WithVersion(version string) Option {
	return func(s *Server) {
		s.version = version
	}
}

// NewHandler builds the HTTP handler for a session manager and the catalog
// it places from.
func NewHandler(sessions *session.Manager, cat ports.Catalog, opts ...Option) http.Handler {
	s := &Server{
		sessions: sessions,
		catalog:  cat,
		logger:   logging.NewNop(),
		version:  strings.TrimSpace(breadboard.Version),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Get("/health", s.getHealth)
	r.Get("/info", s.getInfo)
	r.Get("/definitions", s.listDefinitions)
	r.Get("/definitions/{id}", s.getDefinition)
	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.createSession)
		r.Get("/", s.listSessions)
		r.Route("/{id}", func(r chi.Router) {
			r.Delete("/", s.closeSession)
			r.Post("/events", s.postEvent)
			r.Post("/undo", s.postUndo)
			r.Post("/redo", s.postRedo)
			r.Get("/document", s.getDocument)
			r.Get("/history", s.getHistory)
		})
	})
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) getHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) getInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":     "breadboard-http",
		"version": s.version,
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "error", err)
	}
}

// writeError maps domain failures onto status codes: missing resources are
// 404, rejected input is 400, operations the current state forbids are 409,
// everything else is a logged 500.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	var verr *domain.ValidationError
	var merr *domain.MutationError
	switch {
	case errors.Is(err, session.ErrNotFound),
		errors.Is(err, domain.ErrDefinitionNotFound),
		errors.Is(err, domain.ErrVariantNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, session.ErrLimitReached):
		http.Error(w, err.Error(), http.StatusTooManyRequests)
	case errors.As(err, &verr):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, domain.ErrDefinitionNotInstalled),
		errors.Is(err, undo.ErrTransactionOpen),
		errors.As(err, &merr):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		s.logger.Error("request failed", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
