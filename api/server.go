package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/SEPR-EEP/taxe-server/game/config"
	"github.com/SEPR-EEP/taxe-server/game/service"
	"github.com/SEPR-EEP/taxe-server/transport/websocket"
)

// Server represents the REST API server
type Server struct {
	service service.GameService
	presets *config.Manager
	hub     *websocket.Hub
	router  *mux.Router
}

// NewServer creates a new API server
func NewServer(gameService service.GameService, presets *config.Manager, hub *websocket.Hub) *Server {
	s := &Server{
		service: gameService,
		presets: presets,
		hub:     hub,
		router:  mux.NewRouter(),
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API routes. Game mutation happens over the
// WebSocket channel only, because create/join/move bind to a connection
// identity; the REST surface is read-only.
func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()

	// Lobby
	api.HandleFunc("/games", s.handleListGames).Methods("GET")
	api.HandleFunc("/games/{id}", s.handleGetGame).Methods("GET")

	// Presets
	api.HandleFunc("/presets", s.handleListPresets).Methods("GET")
	api.HandleFunc("/presets/{id}", s.handleGetPreset).Methods("GET")

	// Health
	api.HandleFunc("/health", s.handleHealth).Methods("GET")

	// WebSocket
	s.router.HandleFunc("/ws", s.handleWebSocket)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// Lobby Handlers

func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	games := s.service.ListGames(r.Context())

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count": len(games),
		"games": games,
	})
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	gameID := vars["id"]

	for _, game := range s.service.ListGames(r.Context()) {
		if game.ID == gameID {
			respondJSON(w, http.StatusOK, game)
			return
		}
	}

	respondError(w, http.StatusNotFound, "game not found")
}

// Preset Handlers

func (s *Server) handleListPresets(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.presets.List())
}

func (s *Server) handleGetPreset(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	preset, err := s.presets.Get(vars["id"])
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, preset)
}

// Health check

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	stats := s.service.Stats(r.Context())

	connections := 0
	if s.hub != nil {
		connections = s.hub.ClientCount()
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":      "healthy",
		"connections": connections,
		"stats":       stats,
	})
}

// WebSocket Handler

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if s.hub == nil {
		respondError(w, http.StatusServiceUnavailable, "websocket transport not enabled")
		return
	}
	s.hub.ServeWS(w, r)
}
