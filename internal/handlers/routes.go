package handlers

import (
	"errors"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/petervass/lineup/internal/constants"
	"github.com/petervass/lineup/internal/domain"
	"github.com/petervass/lineup/internal/scraper"
)

// ListArtists serves the cached lineup, filtered by genre and date
// substrings and sorted by name or performance date.
func (h *Handler) ListArtists(w http.ResponseWriter, r *http.Request) {
	artists, err := h.Cache.Load()
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	genre := strings.ToLower(r.URL.Query().Get("genre"))
	date := strings.ToLower(r.URL.Query().Get("date"))
	sortKey := r.URL.Query().Get("sort")
	if sortKey == "" {
		sortKey = "name"
	}
	if sortKey != "name" && sortKey != "date" {
		h.respondError(w, http.StatusBadRequest, "sort must be 'name' or 'date'")
		return
	}

	filtered := make([]domain.Artist, 0, len(artists))
	for _, artist := range artists {
		if genre != "" && !strings.Contains(strings.ToLower(artist.Genre), genre) {
			continue
		}
		if date != "" && !strings.Contains(strings.ToLower(artist.PerformanceDate), date) {
			continue
		}
		filtered = append(filtered, artist)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		if sortKey == "date" {
			return strings.ToLower(filtered[i].PerformanceDate) < strings.ToLower(filtered[j].PerformanceDate)
		}
		return strings.ToLower(filtered[i].Name) < strings.ToLower(filtered[j].Name)
	})

	h.respondJSON(w, http.StatusOK, map[string]any{
		"count":   len(filtered),
		"artists": filtered,
	})
}

// GetArtist serves one cached artist by slug.
func (h *Handler) GetArtist(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	artists, err := h.Cache.Load()
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	for _, artist := range artists {
		if artist.Slug == slug {
			h.respondJSON(w, http.StatusOK, artist)
			return
		}
	}
	h.respondError(w, http.StatusNotFound, "artist not found")
}

// Scrape runs a live scrape, enriches the result and replaces the
// cache. When the scrape itself fails the cached lineup is kept and the
// response says so instead of erroring out.
func (h *Handler) Scrape(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	run, err := h.Runs.CreateRun(domain.RunTypeScrape)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	log := h.Logger.WithRun(run.ID, string(run.Type))

	artists, err := h.Fetcher.FetchLineup(ctx)
	if err != nil {
		var scrapeErr *scraper.ScrapeError
		if !errors.As(err, &scrapeErr) {
			_ = h.Runs.FailRun(run.ID, err.Error())
			h.respondError(w, http.StatusInternalServerError, err.Error())
			return
		}

		log.Warn("Scrape failed, keeping cached lineup", "error", err)
		_ = h.Runs.FailRun(run.ID, err.Error())

		cached, cacheErr := h.Cache.Load()
		if cacheErr != nil {
			h.respondError(w, http.StatusInternalServerError, cacheErr.Error())
			return
		}
		h.respondJSON(w, http.StatusOK, map[string]any{
			"count":  len(cached),
			"source": "cache",
			"error":  err.Error(),
		})
		return
	}

	enriched := h.Enricher.Enrich(ctx, artists)
	if err := h.Cache.Save(enriched); err != nil {
		_ = h.Runs.FailRun(run.ID, err.Error())
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	matched := matchedCount(enriched)
	if err := h.Runs.FinishRun(run.ID, len(enriched), matched); err != nil {
		log.Error("Failed to record run", "error", err)
	}
	log.Info("Scrape completed", "artists", len(enriched), "matched", matched)

	h.respondJSON(w, http.StatusOK, map[string]any{
		"count":  len(enriched),
		"source": "live",
	})
}

// Enrich re-runs Spotify enrichment over the cached lineup and replaces
// the cache in place.
func (h *Handler) Enrich(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	artists, err := h.Cache.Load()
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	run, err := h.Runs.CreateRun(domain.RunTypeEnrich)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	log := h.Logger.WithRun(run.ID, string(run.Type))

	enriched := h.Enricher.Enrich(ctx, artists)
	if err := h.Cache.Save(enriched); err != nil {
		_ = h.Runs.FailRun(run.ID, err.Error())
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	matched := matchedCount(enriched)
	if err := h.Runs.FinishRun(run.ID, len(enriched), matched); err != nil {
		log.Error("Failed to record run", "error", err)
	}
	log.Info("Enrichment completed", "artists", len(enriched), "matched", matched)

	h.respondJSON(w, http.StatusOK, map[string]any{
		"count":   len(enriched),
		"matched": matched,
	})
}

// ListRuns serves recent scrape/enrich run history.
func (h *Handler) ListRuns(w http.ResponseWriter, r *http.Request) {
	limit := constants.DefaultRunsLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			h.respondError(w, http.StatusBadRequest, "limit must be a positive number")
			return
		}
		limit = parsed
	}

	runs, err := h.Runs.ListRuns(limit)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]any{
		"count": len(runs),
		"runs":  runs,
	})
}

func matchedCount(artists []domain.Artist) int {
	n := 0
	for _, a := range artists {
		if a.Spotify.Available {
			n++
		}
	}
	return n
}
