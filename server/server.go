// Package server exposes the vault over HTTP: the session gate, the four
// views (chat, memory bank, journal, dashboard) and a WebSocket chat
// transport.
package server

import (
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/sanctum-app/sanctum/config"
	"github.com/sanctum-app/sanctum/pkg/chain"
	"github.com/sanctum-app/sanctum/pkg/gate"
	"github.com/sanctum-app/sanctum/pkg/vault"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type Server struct {
	*http.Server

	vault *vault.Vault
	gate  *gate.Gate
	chain chain.Provider

	validate *validator.Validate
}

func New(cfg *config.Config) (*Server, error) {
	s := &Server{
		vault: cfg.Vault,
		gate:  cfg.Gate,
		chain: cfg.Chain,

		validate: validator.New(),
	}

	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(requestLogger)

	if len(cfg.Origins) > 0 {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.Origins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	if cfg.Limiter != nil {
		router.Use(rateLimit(cfg.Limiter))
	}

	router.Get("/health", s.handleHealth)

	router.Route("/api", func(r chi.Router) {
		r.Get("/gate", s.handleGateStatus)
		r.Post("/gate/enroll", s.handleEnroll)
		r.Post("/gate/unlock", s.handleUnlock)

		r.Group(func(r chi.Router) {
			r.Use(s.authenticate)

			r.Post("/gate/lock", s.handleLock)

			r.Get("/profile", s.handleGetProfile)
			r.Put("/profile", s.handleUpdateProfile)

			r.Get("/memories", s.handleListMemories)
			r.Post("/memories", s.handleAddMemory)
			r.Delete("/memories/{memoryID}", s.handleDeleteMemory)

			r.Get("/journal", s.handleListJournal)
			r.Post("/journal", s.handleAddJournal)

			r.Get("/chat", s.handleChatHistory)
			r.Post("/chat", s.handleChatSend)
			r.Get("/chat/ws", s.handleChatSocket)

			r.Get("/dashboard", s.handleDashboard)
		})
	})

	s.Server = &http.Server{
		Addr:    cfg.Address,
		Handler: otelhttp.NewHandler(router, "sanctum"),
	}

	return s, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.WithError(err).Error("failed to encode response")
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]any{
		"error":   true,
		"message": message,
		"code":    status,
	})
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, into any) bool {
	if err := json.NewDecoder(r.Body).Decode(into); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}

	if err := s.validate.Struct(into); err != nil {
		respondError(w, http.StatusBadRequest, "validation error: "+err.Error())
		return false
	}

	return true
}
