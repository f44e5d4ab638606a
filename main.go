// Command metaverse-server runs the realtime presence and chat relay for
// the shared 3D metaverse.
//
// It serves the client assets over HTTP, upgrades clients to a WebSocket
// protocol for presence and chat, answers scripted NPC dialogue, and
// exposes read-only stats and Prometheus metrics.
//
// Flags control host/port, asset and content directories, the idle reaper,
// debug logging, version output, and optional ngrok tunneling for easy
// external access during development.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"

	"github.com/voxelverse/metaverse-server/api"
	"github.com/voxelverse/metaverse-server/game/config"
	"github.com/voxelverse/metaverse-server/game/world"
	"github.com/voxelverse/metaverse-server/transport/websocket"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Metaverse Presence Server"
)

// Configuration flags control how the server starts.
var (
	port         = flag.Int("port", 3000, "HTTP server port")
	host         = flag.String("host", "", "HTTP server host (empty binds all interfaces)")
	staticDir    = flag.String("static-dir", "./static/", "Directory containing client assets")
	configDir    = flag.String("config-dir", getConfigDirDefault(), "Directory containing NPC content overrides")
	idleTimeout  = flag.Duration("idle-timeout", world.DefaultIdleTimeout, "Close connections idle longer than this")
	reapInterval = flag.Duration("reap-interval", websocket.DefaultReapInterval, "How often to scan for idle connections")
	maxMove      = flag.Float64("max-move-distance", world.DefaultMaxMoveDistance, "Advisory per-update movement limit in world units")
	debug        = flag.Bool("debug", false, "Enable debug logging")
	version      = flag.Bool("version", false, "Show version information")
	ngrokEnabled = flag.Bool("ngrok", false, "Enable ngrok tunnel")
	ngrokAuth    = flag.String("ngrok-auth", "", "Ngrok auth token (or use NGROK_AUTHTOKEN env var)")
	ngrokDomain  = flag.String("ngrok-domain", "", "Custom ngrok domain (optional)")
)

// getConfigDirDefault returns the default content directory.
// It first honors the CONFIG_DIR environment variable, then falls back to "configs".
func getConfigDirDefault() string {
	if dir := os.Getenv("CONFIG_DIR"); dir != "" {
		return dir
	}
	return "configs"
}

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "%s v%s\n\n", AppName, Version)
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                    # Run on default port 3000\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -port 9090         # Run on port 9090\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -idle-timeout 2m   # Reap connections idle for 2 minutes\n", os.Args[0])
	}
}

// main parses flags, wires the components, and runs the server.
func main() {
	// Load .env file if it exists (ignore error if not found)
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: Error loading .env file: %v", err)
		}
	} else {
		log.Println("Loaded environment variables from .env file")
	}

	flag.Parse()

	if *version {
		fmt.Printf("%s v%s\n", AppName, Version)
		os.Exit(0)
	}

	if *debug {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	} else {
		log.SetFlags(log.LstdFlags)
	}

	// Honor PORT for parity with common hosting environments
	if *port == 3000 {
		if envPort := os.Getenv("PORT"); envPort != "" {
			fmt.Sscanf(envPort, "%d", port)
		}
	}

	log.Printf("Starting %s v%s", AppName, Version)

	contentManager, err := config.NewManager(*configDir)
	if err != nil {
		log.Fatalf("Failed to load NPC content: %v", err)
	}
	log.Printf("Loaded %d NPCs", contentManager.NPCs().Count())

	runServer(contentManager)
}

// runServer starts the hub loop and the HTTP server, with optional ngrok
// tunneling and graceful shutdown on SIGINT/SIGTERM.
func runServer(contentManager *config.Manager) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Wire the realtime core: the hub owns the dispatch loop, the world
	// owns the state machine behind it.
	hub := websocket.NewHub(*reapInterval)
	w := world.New(world.Config{
		IdleTimeout:     *idleTimeout,
		MaxMoveDistance: *maxMove,
	}, contentManager.NPCs(), hub)
	hub.SetHandler(w)
	go hub.Run(ctx)

	apiServer := api.NewServer(w, hub, *staticDir)

	addr := fmt.Sprintf("%s:%d", *host, *port)
	httpServer := &http.Server{
		Addr:        addr,
		Handler:     apiServer,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()

		log.Printf("Metaverse server listening on %s", addr)
		log.Printf("WebSocket: ws://%s/ws", addr)
		log.Printf("Stats: http://%s/api/stats", addr)
		log.Printf("Metrics: http://%s/metrics", addr)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	// Check if ngrok should be enabled (from flag or environment)
	ngrokShouldRun := *ngrokEnabled
	if !ngrokShouldRun {
		if envEnabled := os.Getenv("NGROK_ENABLED"); envEnabled == "true" || envEnabled == "1" {
			ngrokShouldRun = true
		}
	}

	if ngrokShouldRun {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runNgrokTunnel(ctx, apiServer)
		}()
	}

	sig := <-stop
	log.Printf("Received signal: %v. Shutting down...", sig)
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	wg.Wait()
	log.Println("Server stopped")
}

// runNgrokTunnel exposes the server through an ngrok tunnel until ctx is
// cancelled. Used for external playtesting during development.
func runNgrokTunnel(ctx context.Context, handler http.Handler) {
	authToken := *ngrokAuth
	if authToken == "" {
		authToken = os.Getenv("NGROK_AUTHTOKEN")
	}
	if authToken == "" {
		log.Println("WARNING: Ngrok enabled but no auth token provided (use -ngrok-auth or NGROK_AUTHTOKEN)")
		return
	}

	log.Println("Starting ngrok tunnel...")

	domain := *ngrokDomain
	if domain == "" {
		domain = os.Getenv("NGROK_DOMAIN")
	}

	var tunnel ngrokConfig.Tunnel
	if domain != "" {
		tunnel = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(domain))
		log.Printf("Using custom ngrok domain: %s", domain)
	} else {
		tunnel = ngrokConfig.HTTPEndpoint()
	}

	tun, err := ngrok.Listen(ctx, tunnel, ngrok.WithAuthtoken(authToken))
	if err != nil {
		log.Printf("Failed to start ngrok tunnel: %v", err)
		return
	}
	defer func() {
		if err := tun.Close(); err != nil {
			log.Printf("Failed to close ngrok tunnel: %v", err)
		}
	}()

	ngrokURL := tun.URL()
	log.Printf("Ngrok tunnel established: %s", ngrokURL)
	log.Printf("  WebSocket (ngrok): %s/ws", ngrokURL)
	log.Printf("  Client (ngrok): %s/", ngrokURL)

	if err := http.Serve(tun, handler); err != nil && err != http.ErrServerClosed {
		log.Printf("Ngrok server error: %v", err)
	}
	log.Println("Ngrok tunnel closed")
}
