package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/spf13/afero"
	"gopkg.in/natefinch/lumberjack.v2"

	"moviemonk/api"
	"moviemonk/config"
	"moviemonk/handlers"
	"moviemonk/services/catalog"
	"moviemonk/services/preferences"
	"moviemonk/services/tmdb"
	"moviemonk/services/watchlist"
)

func main() {
	portOverride := flag.Int("port", 0, "override server port from config")
	flag.Parse()

	fmt.Println("moviemonk backend starting...")

	// .env is optional; it lets TMDB_API_KEY live outside the settings file.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[main] could not load .env: %v", err)
	}

	configPath := os.Getenv("MOVIEMONK_CONFIG")
	if configPath == "" {
		configPath = filepath.Join("cache", "settings.json")
	}

	cfgManager := config.NewManager(configPath)
	settings, err := cfgManager.Load()
	if err != nil {
		log.Fatalf("failed to load settings: %v", err)
	}

	if key := strings.TrimSpace(os.Getenv("TMDB_API_KEY")); key != "" {
		settings.Metadata.TMDBAPIKey = key
	}

	// Set up file logging with rotation
	if settings.Log.File != "" {
		logDir := filepath.Dir(settings.Log.File)
		if err := os.MkdirAll(logDir, 0o755); err != nil {
			log.Printf("Warning: could not create log directory %s: %v", logDir, err)
		} else {
			fileWriter := &lumberjack.Logger{
				Filename:   settings.Log.File,
				MaxSize:    settings.Log.MaxSize,
				MaxBackups: settings.Log.MaxBackups,
				MaxAge:     settings.Log.MaxAge,
				Compress:   settings.Log.Compress,
			}
			log.SetOutput(io.MultiWriter(os.Stdout, fileWriter))
			log.SetFlags(log.LstdFlags | log.Lshortfile)
			log.Printf("Logging to file: %s", settings.Log.File)
		}
	}

	if *portOverride > 0 {
		settings.Server.Port = *portOverride
	}

	if settings.Metadata.TMDBAPIKey == "" {
		log.Printf("[main] no TMDB api key configured; catalog endpoints will report the missing credential")
	}

	fs := afero.NewOsFs()

	watchlistSvc, err := watchlist.NewService(fs, settings.Storage.Directory)
	if err != nil {
		log.Fatalf("failed to init watchlist store: %v", err)
	}
	preferencesSvc, err := preferences.NewService(fs, settings.Storage.Directory)
	if err != nil {
		log.Fatalf("failed to init preferences store: %v", err)
	}

	tmdbClient := tmdb.NewClient(settings.Metadata.TMDBAPIKey, settings.Metadata.Language, nil)
	catalogClient := catalog.NewClient(tmdbClient)

	r := mux.NewRouter()
	api.Register(
		r,
		handlers.NewCatalogHandler(tmdbClient, catalogClient),
		handlers.NewWatchlistHandler(watchlistSvc),
		handlers.NewPreferencesHandler(preferencesSvc),
		handlers.NewPlayerHandler(settings.Player.BaseURL),
		handlers.NewImageHandler(settings.Cache.Directory),
	)

	addr := fmt.Sprintf("%s:%d", settings.Server.Host, settings.Server.Port)
	fmt.Printf("Server starting on %s\n", addr)

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-shutdownChan
	log.Println("Shutdown signal received, cleaning up...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Shutdown complete")
}
