/*
main.go - Application entry point

PURPOSE:
  Starts the rota engine server: loads configuration, wires the chosen
  storage backend into the engine, optionally watches the JSON documents
  for external edits, and serves the HTTP API with graceful shutdown.

COMMAND-LINE FLAGS:
  -config  YAML config file path (optional, defaults apply)
  -port    HTTP server port (overrides config)
  -backend Storage backend: jsonfile or sqlite (overrides config)
  -data    Data directory for the JSON documents (overrides config)
  -db      SQLite database path (overrides config)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM: stop accepting connections, drain active requests
  (30s timeout), stop the file watcher, close the store.

EXAMPLES:
  ./server -data=./data
  ./server -backend=sqlite -db=./data/rota.db
  ./server -config=./rota.yaml -port=3000

SEE ALSO:
  - config/config.go: YAML layout and defaults
  - api/server.go:    Router configuration
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/warp/rota-engine/api"
	"github.com/warp/rota-engine/config"
	"github.com/warp/rota-engine/roster"
	"github.com/warp/rota-engine/store/jsonfile"
	"github.com/warp/rota-engine/store/sqlite"
)

func main() {
	configPath := flag.String("config", "", "YAML config file")
	port := flag.Int("port", 0, "HTTP server port (overrides config)")
	backend := flag.String("backend", "", "storage backend: jsonfile or sqlite (overrides config)")
	dataDir := flag.String("data", "", "data directory for JSON documents (overrides config)")
	dbPath := flag.String("db", "", "SQLite database path (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *backend != "" {
		cfg.Storage.Backend = *backend
	}
	if *dataDir != "" {
		cfg.Storage.DataDir = *dataDir
	}
	if *dbPath != "" {
		cfg.Storage.DBPath = *dbPath
	}

	var (
		settings roster.SettingsStore
		archive  roster.Archive
		watched  *jsonfile.Store
		closer   func() error
	)
	switch cfg.Storage.Backend {
	case "jsonfile":
		fs, err := jsonfile.New(cfg.Storage.DataDir)
		if err != nil {
			log.Fatalf("Failed to open data directory: %v", err)
		}
		settings, archive, watched = fs, fs, fs
	case "sqlite":
		db, err := sqlite.New(cfg.Storage.DBPath)
		if err != nil {
			log.Fatalf("Failed to open database: %v", err)
		}
		settings, archive, closer = db, db, db.Close
	default:
		log.Fatalf("Unknown storage backend %q", cfg.Storage.Backend)
	}

	var picker roster.Picker
	if cfg.Scheduler.Seed != 0 {
		picker = roster.NewPicker(cfg.Scheduler.Seed)
	}
	engine := roster.NewEngine(roster.EngineConfig{
		Catalog:     roster.NewCatalog(),
		Constraints: roster.NewConstraintStore(),
		Archive:     archive,
		Random:      picker,
	})

	handler := api.NewHandler(engine, settings, archive)
	if err := handler.LoadSettings(context.Background()); err != nil {
		log.Printf("Warning: loading settings failed, starting empty: %v", err)
	}

	// Pick up hand edits to the JSON documents without a restart.
	var watcher *jsonfile.Watcher
	if watched != nil && cfg.Storage.Watch {
		watcher, err = watched.Watch(func(doc string) {
			log.Printf("Reloading %s after external change", doc)
			if err := handler.LoadSettings(context.Background()); err != nil {
				log.Printf("Warning: reload failed: %v", err)
			}
		})
		if err != nil {
			log.Printf("Warning: file watcher unavailable: %v", err)
		}
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: api.NewRouter(handler, cfg.Server.CORSOrigins),
	}

	go func() {
		log.Printf("Rota engine listening on %s (backend: %s)", srv.Addr, cfg.Storage.Backend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Forced shutdown: %v", err)
	}
	if watcher != nil {
		watcher.Close()
	}
	if closer != nil {
		if err := closer(); err != nil {
			log.Printf("Closing store failed: %v", err)
		}
	}
	log.Println("Server stopped")
}
