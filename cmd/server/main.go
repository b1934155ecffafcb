// Package main is the entry point for the Office Admin Dashboard server.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/office-admin/dashboard/internal/adminapi"
	"github.com/office-admin/dashboard/internal/api"
	"github.com/office-admin/dashboard/internal/calendar"
	"github.com/office-admin/dashboard/internal/config"
	"github.com/office-admin/dashboard/internal/notify"
	"github.com/office-admin/dashboard/internal/storage"
	"github.com/office-admin/dashboard/internal/websocket"
)

// version is set at build time via -ldflags "-X main.version=x.y.z".
// Defaults to "dev" when not provided.
var version = "dev"

func main() {
	// Parse command-line flags
	addr := flag.String("addr", ":8099", "HTTP server address")
	dataDir := flag.String("data", "/data", "Data directory for SQLite database")
	staticDir := flag.String("static", "./static", "Directory for static frontend files")
	configPath := flag.String("config", "", "Optional YAML configuration file")
	healthCheck := flag.Bool("health-check", false, "Run health check and exit")
	writeConfig := flag.String("write-config", "", "Write the effective configuration to this YAML file and exit")
	flag.Parse()

	// Health check mode for Docker HEALTHCHECK
	if *healthCheck {
		if err := runHealthCheck(*addr); err != nil {
			log.Fatalf("Health check failed: %v", err)
		}
		os.Exit(0)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Version == config.DefaultConfig().Version {
		cfg.Version = version
	}

	// Explicit flags win over the config file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "addr":
			cfg.Listen = *addr
		case "data":
			cfg.DataDir = *dataDir
		case "static":
			cfg.StaticDir = *staticDir
		}
	})

	if *writeConfig != "" {
		if err := config.Save(*writeConfig, cfg); err != nil {
			log.Fatalf("Failed to write config: %v", err)
		}
		log.Printf("Configuration written to %s", *writeConfig)
		os.Exit(0)
	}

	log.Printf("Starting Office Admin Dashboard (version: %s)...", cfg.Version)

	// Initialize database
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		log.Fatalf("Failed to create data directory %q: %v", cfg.DataDir, err)
	}
	db, err := storage.NewDB(filepath.Join(cfg.DataDir, "dashboard.db"))
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	// Run migrations
	applied, err := storage.RunMigrations(db)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Printf("Database migrations complete (%d applied)", applied)

	// Initialize WebSocket hub
	hub := websocket.NewHub()
	go hub.Run()
	broadcaster := websocket.NewEventBroadcaster(hub)

	// Store changes and toasts fan out to every open tab.
	store := storage.NewStoreRepository(db)
	store.Subscribe(broadcaster.BroadcastStoreChanged)

	queue := notify.NewQueue(cfg.Notifications.Capacity, cfg.Notifications.TTL)
	queue.OnPublish(func(t notify.Toast) {
		broadcaster.BroadcastNotification(websocket.NotificationPayload{
			ID:        t.ID,
			Kind:      string(t.Kind),
			Message:   t.Message,
			ExpiresAt: t.Expiry,
		})
	})

	registry := calendar.NewRegistry(cfg.Calendar.HoverAutoClose, func(screen string, snap calendar.Snapshot) {
		broadcaster.BroadcastScreenChanged(websocket.ScreenChangedPayload{
			Screen:   screen,
			State:    string(snap.State),
			DateKey:  snap.DateKey,
			Tab:      string(snap.Tab),
			EmptyDay: snap.EmptyDay,
		})
	})

	admin := adminapi.NewClient(adminapi.Config{
		BaseURL: cfg.Backend.BaseURL,
		Token:   cfg.Backend.Token,
		Timeout: cfg.Backend.Timeout,
	})
	var source calendar.EventSource
	if admin.Enabled() {
		source = admin
		log.Printf("Admin backend: %s", cfg.Backend.BaseURL)
	} else {
		log.Println("Admin backend not configured; running on the local store only")
	}

	// Initialize schedulers
	syncService := calendar.NewSyncService(source, store)
	calendarScheduler := calendar.NewScheduler(syncService, broadcaster, cfg.Calendar.SyncInterval)
	janitor := notify.NewJanitor(queue)

	if err := calendarScheduler.Start(context.Background()); err != nil {
		log.Printf("Warning: Failed to start calendar scheduler: %v", err)
	}
	if err := janitor.Start(); err != nil {
		log.Fatalf("Failed to start notification janitor: %v", err)
	}

	router := api.NewRouter(api.Services{
		DB:         db,
		Store:      store,
		Hub:        hub,
		Registry:   registry,
		Queue:      queue,
		Admin:      admin,
		Scheduler:  calendarScheduler,
		Location:   cfg.Location(),
		BadgeLimit: cfg.Calendar.BadgeLimit,
		PageSize:   cfg.Tables.PageSize,
		StaticDir:  cfg.StaticDir,
		Version:    cfg.Version,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Listen,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		log.Printf("Server listening on %s", cfg.Listen)
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	calendarScheduler.Stop()
	janitor.Stop()
	registry.CloseAll()

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	hub.Stop()

	log.Println("Server stopped")
}

// runHealthCheck performs a health check against the running server.
func runHealthCheck(addr string) error {
	url := "http://localhost" + addr + "/api/health"
	resp, err := http.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}
