package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/voxelverse/metaverse-server/game/world"
	"github.com/voxelverse/metaverse-server/transport/websocket"
)

// Server is the HTTP server wrapping the realtime hub.
type Server struct {
	world     *world.World
	hub       *websocket.Hub
	router    *mux.Router
	staticDir string
	started   time.Time
}

// NewServer creates the HTTP server. staticDir is the directory served at
// the root for client assets.
func NewServer(w *world.World, hub *websocket.Hub, staticDir string) *Server {
	s := &Server{
		world:     w,
		hub:       hub,
		router:    mux.NewRouter(),
		staticDir: staticDir,
		started:   time.Now(),
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/stats", s.handleStats).Methods("GET")

	s.router.Handle("/metrics", promhttp.Handler())

	// WebSocket
	s.router.HandleFunc("/ws", s.handleWebSocket)

	// Static client assets
	s.router.PathPrefix("/").Handler(http.FileServer(http.Dir(s.staticDir)))
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// statsResponse is the /api/stats body.
type statsResponse struct {
	PlayersOnline     int   `json:"playersOnline"`
	TotalNPCs         int   `json:"totalNPCs"`
	ChatHistoryLength int   `json:"chatHistoryLength"`
	UptimeSeconds     int64 `json:"uptimeSeconds"`
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats := s.world.Stats()
	respondJSON(w, http.StatusOK, statsResponse{
		PlayersOnline:     stats.PlayersOnline,
		TotalNPCs:         stats.TotalNPCs,
		ChatHistoryLength: stats.ChatHistoryLength,
		UptimeSeconds:     int64(time.Since(s.started).Seconds()),
	})
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	s.hub.ServeWS(w, r)
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
