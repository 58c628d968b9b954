package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/petervass/lineup/internal/app"
	"github.com/petervass/lineup/internal/cache"
	"github.com/petervass/lineup/internal/config"
	"github.com/petervass/lineup/internal/handlers"
	"github.com/petervass/lineup/internal/logger"
	"github.com/petervass/lineup/internal/scraper"
	"github.com/petervass/lineup/internal/spotify"
	"github.com/petervass/lineup/internal/store"
)

func main() {
	// Optional .env for local development
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	appLogger := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	db, err := store.NewSQLiteDB(cfg.DBPath)
	if err != nil {
		appLogger.Error("Failed to init DB", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	cacheStore := cache.NewStore(cfg.CachePath)
	lineupScraper := scraper.New(cfg.LineupURL, cfg.ScrapeLimit, appLogger)

	// Credentials may be absent here; lookups then degrade to
	// spotify_not_configured records instead of failing the run.
	catalog := spotify.NewClient(cfg.SpotifyClientID, cfg.SpotifyClientSecret)
	enricher := app.NewArtistEnricher(catalog, cfg.Market, appLogger)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	h := handlers.NewHandler(cacheStore, lineupScraper, enricher, db, appLogger)
	h.RegisterRoutes(r)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Printf("Server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
