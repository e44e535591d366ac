// Package rest is the HTTP surface of the recommender. Handlers stay thin:
// decode, call the core, encode.
package rest

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/avelasco/acorde/internal/core/ports"
	"github.com/avelasco/acorde/internal/core/services"
)

// Handler manages the HTTP interface for the recommender.
type Handler struct {
	svc     *services.Recommender
	library ports.TrackLibrary
	logger  *zap.Logger
	router  chi.Router
}

// NewHandler wires the routes. A nil logger means no logging.
func NewHandler(svc *services.Recommender, library ports.TrackLibrary, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &Handler{
		svc:     svc,
		library: library,
		logger:  logger,
		router:  chi.NewRouter(),
	}
	h.routes()
	return h
}

// ServeHTTP satisfies the http.Handler interface.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) routes() {
	h.router.Use(h.requestID)
	h.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	h.router.Get("/health", h.HealthCheck)
	h.router.Get("/db/ping", h.DBPing)

	// the recommend path fans out to Neo4j and the LLM, so it gets a lid
	h.router.With(httprate.LimitByIP(30, time.Minute)).Post("/recommend", h.Recommend)

	h.router.Get("/tracks/sample", h.SampleTracks)
	h.router.Get("/artists/exists", h.ArtistExists)
	h.router.Route("/users/{id}/preferences", func(r chi.Router) {
		r.Get("/", h.GetPreferenceTracks)
		r.Put("/", h.SavePreferences)
	})
}

// requestID tags every request with a UUID for log correlation.
func (h *Handler) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-ID", id)
		h.logger.Debug("request",
			zap.String("request_id", id),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
		)
		next.ServeHTTP(w, r)
	})
}

// HealthCheck verifies the API is running.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "message": "acorde is live 🎶"})
}

// DBPing reports whether the track graph is reachable.
func (h *Handler) DBPing(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"neo4j_ok": h.library.Ping(r.Context())})
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func isJSONContentType(r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(ct)), "application/json")
}
