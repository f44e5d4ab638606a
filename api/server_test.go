package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/voxelverse/metaverse-server/game/config"
	"github.com/voxelverse/metaverse-server/game/world"
	"github.com/voxelverse/metaverse-server/transport/websocket"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	manager, err := config.NewManager("")
	if err != nil {
		t.Fatalf("Failed to load NPC content: %v", err)
	}

	hub := websocket.NewHub(time.Hour)
	w := world.New(world.Config{}, manager.NPCs(), hub)
	hub.SetHandler(w)

	staticDir := t.TempDir()
	index := []byte("<!DOCTYPE html><title>Metaverse</title>")
	if err := os.WriteFile(filepath.Join(staticDir, "index.html"), index, 0o644); err != nil {
		t.Fatalf("Failed to write index: %v", err)
	}

	return NewServer(w, hub, staticDir)
}

func TestHandleStats(t *testing.T) {
	server := newTestServer(t)

	req := httptest.NewRequest("GET", "/api/stats", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("Expected application/json, got %q", got)
	}

	var stats statsResponse
	if err := json.NewDecoder(rec.Body).Decode(&stats); err != nil {
		t.Fatalf("Failed to decode stats: %v", err)
	}
	if stats.PlayersOnline != 0 {
		t.Errorf("Expected 0 players online, got %d", stats.PlayersOnline)
	}
	if stats.TotalNPCs != 7 {
		t.Errorf("Expected 7 NPCs, got %d", stats.TotalNPCs)
	}
	if stats.ChatHistoryLength != 0 {
		t.Errorf("Expected empty chat history, got %d", stats.ChatHistoryLength)
	}
	if stats.UptimeSeconds < 0 {
		t.Errorf("Expected non-negative uptime, got %d", stats.UptimeSeconds)
	}
}

func TestHandleStatsMethodNotAllowed(t *testing.T) {
	server := newTestServer(t)

	req := httptest.NewRequest("POST", "/api/stats", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected status 405, got %d", rec.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	server := newTestServer(t)

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	if rec.Body.Len() == 0 {
		t.Error("Expected a non-empty metrics exposition")
	}
}

func TestStaticFileServing(t *testing.T) {
	server := newTestServer(t)

	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	if body := rec.Body.String(); !strings.Contains(body, "Metaverse") {
		t.Errorf("Expected index content, got %q", body)
	}
}

func TestWebSocketRouteRejectsPlainHTTP(t *testing.T) {
	server := newTestServer(t)

	req := httptest.NewRequest("GET", "/ws", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	// No upgrade headers, so the handshake fails.
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}
