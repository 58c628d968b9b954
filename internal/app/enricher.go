package app

import (
	"context"

	"github.com/petervass/lineup/internal/constants"
	"github.com/petervass/lineup/internal/domain"
	"github.com/petervass/lineup/internal/logger"
	"github.com/petervass/lineup/internal/spotify"
)

// ArtistEnricher attaches Spotify metadata to scraped artist records.
// Each record is resolved independently; a failed lookup marks that one
// record and never aborts the run.
type ArtistEnricher struct {
	catalog spotify.Catalog
	market  string
	logger  *logger.Logger
}

func NewArtistEnricher(catalog spotify.Catalog, market string, log *logger.Logger) *ArtistEnricher {
	if market == "" {
		market = constants.DefaultMarket
	}
	if log == nil {
		log = logger.Default()
	}
	return &ArtistEnricher{
		catalog: catalog,
		market:  market,
		logger:  log.WithComponent("enricher"),
	}
}

// Enrich returns a new slice with one output record per input record, in
// input order. It never returns an error: every failure is recorded in
// the record's spotify status instead.
func (e *ArtistEnricher) Enrich(ctx context.Context, artists []domain.Artist) []domain.Artist {
	enriched := make([]domain.Artist, 0, len(artists))

	for _, artist := range artists {
		name := artist.DisplayName()
		artist.ArtistName = name
		artist.Spotify = domain.DefaultSpotifyStatus()

		if name == "" {
			enriched = append(enriched, artist)
			continue
		}

		status, err := e.lookup(ctx, name)
		if err != nil {
			log := e.logger.WithArtist(name, artist.Slug)
			if spotify.IsConfigurationError(err) {
				artist.Spotify.Status = domain.SpotifyStateNotConfigured
				log.Warn("Spotify lookup skipped", "error", err)
			} else {
				artist.Spotify.Status = domain.SpotifyStateLookupFailed
				log.Warn("Spotify lookup failed", "error", err)
			}
			enriched = append(enriched, artist)
			continue
		}

		artist.Spotify = status
		enriched = append(enriched, artist)
	}

	return enriched
}

// lookup runs search, resolution and track selection for one name. A
// result with no match is not an error; it comes back as the default
// track_unavailable status.
func (e *ArtistEnricher) lookup(ctx context.Context, name string) (domain.SpotifyStatus, error) {
	candidates, err := e.catalog.SearchArtists(ctx, name, constants.DefaultSearchLimit)
	if err != nil {
		return domain.SpotifyStatus{}, err
	}

	artistID := spotify.Resolve(name, candidates)
	if artistID == "" {
		e.logger.Debug("No catalog match", "artist", name)
		return domain.DefaultSpotifyStatus(), nil
	}

	track, err := spotify.SelectTopTrack(ctx, e.catalog, artistID, e.market)
	if err != nil {
		return domain.SpotifyStatus{}, err
	}
	if track == nil {
		e.logger.Debug("No usable top track", "artist", name, "artist_id", artistID)
		return domain.DefaultSpotifyStatus(), nil
	}

	e.logger.Debug("Matched artist", "artist", name, "artist_id", artistID, "track_id", track.ID)
	return domain.TrackSpotifyStatus(*track), nil
}
