// Package api exposes the engine as JSON over HTTP for a chat or turn UI
package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/KirkDiggler/tabletop-engine/internal/dice"
	"github.com/KirkDiggler/tabletop-engine/internal/services/character"
	"github.com/KirkDiggler/tabletop-engine/internal/services/encounter"
)

// Handler serves the engine routes
type Handler struct {
	encounterService encounter.Service
	characterService character.Service
	source           dice.Source
	logger           *zap.Logger
}

// HandlerConfig holds configuration for the handler
type HandlerConfig struct {
	EncounterService encounter.Service // Required
	CharacterService character.Service // Required
	Source           dice.Source       // Optional, defaults to a crypto source
	Logger           *zap.Logger
}

// NewHandler creates a new handler
func NewHandler(cfg *HandlerConfig) *Handler {
	if cfg == nil {
		panic("config cannot be nil")
	}
	if cfg.EncounterService == nil {
		panic("encounter service is required")
	}
	if cfg.CharacterService == nil {
		panic("character service is required")
	}

	h := &Handler{
		encounterService: cfg.EncounterService,
		characterService: cfg.CharacterService,
		source:           cfg.Source,
		logger:           cfg.Logger,
	}
	if h.source == nil {
		h.source = dice.NewCryptoSource()
	}
	if h.logger == nil {
		h.logger = zap.NewNop()
	}

	return h
}

// Router builds the route table
func (h *Handler) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(recoverMiddleware(h.logger), loggingMiddleware(h.logger))
	r.NotFoundHandler = http.HandlerFunc(notFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)

	r.HandleFunc("/healthz", h.health).Methods(http.MethodGet)

	// Subrouters answer unmatched requests themselves instead of deferring to r
	v1 := r.PathPrefix("/v1").Subrouter()
	v1.NotFoundHandler = http.HandlerFunc(notFound)
	v1.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)
	v1.HandleFunc("/rolls", h.roll).Methods(http.MethodPost)

	v1.HandleFunc("/encounters", h.startEncounter).Methods(http.MethodPost)
	v1.HandleFunc("/encounters/{id}", h.getEncounter).Methods(http.MethodGet)
	v1.HandleFunc("/encounters/{id}/actions", h.submitAction).Methods(http.MethodPost)
	v1.HandleFunc("/encounters/{id}/flee", h.flee).Methods(http.MethodPost)
	v1.HandleFunc("/encounters/{id}/choices", h.submitChoice).Methods(http.MethodPost)
	v1.HandleFunc("/encounters/{id}/narration", h.rollNarration).Methods(http.MethodPost)

	v1.HandleFunc("/characters", h.createCharacter).Methods(http.MethodPost)
	v1.HandleFunc("/characters", h.listCharacters).Methods(http.MethodGet)
	v1.HandleFunc("/characters/{id}", h.getCharacter).Methods(http.MethodGet)
	v1.HandleFunc("/characters/{id}/experience", h.awardExperience).Methods(http.MethodPost)

	return r
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusNotFound, "not_found", "route not found")
}

func methodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
