// Package api exposes the generative core over HTTP: game generation,
// seed code decoding, saved game retrieval and live session control.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/gamesmith/gamesmith-go/internal/session"
	"github.com/gamesmith/gamesmith-go/internal/store"
)

// Server handles HTTP requests.
type Server struct {
	db           store.DB
	sessions     *session.Manager
	ws           *session.WSHandler
	errorHandler *ErrorHandler
	logger       *zap.Logger
	startTime    time.Time
}

// NewServer creates the API server. db may be nil for a stateless
// (generate/decode only) deployment.
func NewServer(db store.DB, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	sessions := session.NewManager(logger)
	return &Server{
		db:           db,
		sessions:     sessions,
		ws:           session.NewWSHandler(sessions, logger),
		errorHandler: NewErrorHandler(logger),
		logger:       logger,
		startTime:    time.Now(),
	}
}

// Routes sets up the HTTP routes with middleware.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.errorHandler.RecoveryHandler)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/health", s.handleHealthCheck)
	r.Get("/health/ready", s.handleReadiness)
	r.Get("/health/live", s.handleLiveness)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/games", s.handleGenerate)
		r.Get("/games", s.handleListGames)
		r.Get("/games/{code}", s.handleGetGame)
		r.Post("/seed/decode", s.handleDecode)
		r.Get("/verbs", s.handleVerbs)
		r.Post("/sessions", s.handleStartSession)
		r.Delete("/sessions/{id}", s.handleEndSession)
		r.Get("/sessions/{id}/ws", s.handleSessionWS)
	})

	return r
}

// writeJSON writes a JSON response with standard headers.
func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Engine-Version", EngineVersion)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
