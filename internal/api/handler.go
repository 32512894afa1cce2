// Package api implements the vinrisk REST API.
// It exposes analysis, validation and dataset statistics over a loaded
// analyzer.
package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vinrisk/vinrisk/internal/analyzer"
)

// Version is reported by the root endpoint.
const Version = "1.0.0"

// Handler is the top-level API handler.
type Handler struct {
	analyzer *analyzer.Analyzer
	logger   *log.Logger
	origins  []string
}

// Option configures a Handler.
type Option func(*Handler)

// WithLogger sets the logger used for request and error logging.
func WithLogger(logger *log.Logger) Option {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithAllowedOrigins restricts CORS to the given origins. "*" allows any.
func WithAllowedOrigins(origins []string) Option {
	return func(h *Handler) { h.origins = origins }
}

// NewHandler creates a new API handler. A nil analyzer makes every data
// endpoint answer 503.
func NewHandler(a *analyzer.Analyzer, opts ...Option) *Handler {
	h := &Handler{
		analyzer: a,
		logger:   log.Default(),
		origins:  []string{"*"},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Routes returns a chi.Router with every endpoint and middleware mounted.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(middleware.Recoverer)
	r.Use(CORS(h.origins))
	r.Use(h.logRequests)

	r.Get("/", h.handleRoot)
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/analyze", h.handleAnalyze)
		r.Post("/validate", h.handleValidate)
		r.Get("/vehicles/{vin}", h.handleGetVehicle)
		r.Get("/stats", h.handleStats)
		r.Get("/health", h.handleHealth)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Not Found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})
	return r
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"detail": msg})
}
