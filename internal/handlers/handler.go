// Package handlers exposes the lineup read API and the scrape/enrich
// triggers over HTTP.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/petervass/lineup/internal/cache"
	"github.com/petervass/lineup/internal/domain"
	"github.com/petervass/lineup/internal/logger"
	"github.com/petervass/lineup/internal/store"
)

// LineupFetcher produces the raw artist list, normally by scraping.
type LineupFetcher interface {
	FetchLineup(ctx context.Context) ([]domain.Artist, error)
}

// Enricher attaches Spotify metadata to raw artist records.
type Enricher interface {
	Enrich(ctx context.Context, artists []domain.Artist) []domain.Artist
}

type Handler struct {
	Cache    *cache.Store
	Fetcher  LineupFetcher
	Enricher Enricher
	Runs     *store.DB
	Logger   *logger.Logger
}

func NewHandler(c *cache.Store, fetcher LineupFetcher, enricher Enricher, runs *store.DB, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Default()
	}
	return &Handler{
		Cache:    c,
		Fetcher:  fetcher,
		Enricher: enricher,
		Runs:     runs,
		Logger:   log.WithComponent("http"),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/api/artists", h.ListArtists)
	r.Get("/api/artists/{slug}", h.GetArtist)
	r.Post("/api/scrape", h.Scrape)
	r.Post("/api/enrich", h.Enrich)
	r.Get("/api/runs", h.ListRuns)
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.Logger.Error("Failed to encode response", "error", err)
	}
}

func (h *Handler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}
