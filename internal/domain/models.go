package domain

import (
	"time"

	"github.com/petervass/lineup/internal/constants"
)

// SpotifyState is the outcome of a single artist lookup.
type SpotifyState string

const (
	SpotifyStateOK               SpotifyState = "ok"
	SpotifyStateTrackUnavailable SpotifyState = "track_unavailable"
	SpotifyStateNotConfigured    SpotifyState = "spotify_not_configured"
	SpotifyStateLookupFailed     SpotifyState = "spotify_lookup_failed"
)

// SpotifyStatus is embedded in every cached artist record. Available is
// true exactly when Status is "ok" and all three track fields are set.
type SpotifyStatus struct {
	TrackName *string      `json:"track_name"`
	TrackID   *string      `json:"track_id"`
	EmbedURL  *string      `json:"embed_url"`
	Available bool         `json:"available"`
	Status    SpotifyState `json:"status"`
}

// DefaultSpotifyStatus is the state before any lookup, and the state
// after a lookup that found no usable track.
func DefaultSpotifyStatus() SpotifyStatus {
	return SpotifyStatus{
		Available: false,
		Status:    SpotifyStateTrackUnavailable,
	}
}

// TrackSpotifyStatus builds the success state for a resolved track.
func TrackSpotifyStatus(track Track) SpotifyStatus {
	name := track.Name
	id := track.ID
	embed := track.EmbedURL()
	return SpotifyStatus{
		TrackName: &name,
		TrackID:   &id,
		EmbedURL:  &embed,
		Available: true,
		Status:    SpotifyStateOK,
	}
}

// Artist is one lineup entry. The scraper fills the descriptive fields;
// the enrichment pipeline adds ArtistName (the canonical name used for
// catalog matching) and Spotify.
type Artist struct {
	Name            string        `json:"name"`
	Slug            string        `json:"slug"`
	Genre           string        `json:"genre"`
	Biography       string        `json:"biography"`
	PerformanceDate string        `json:"performance_date"`
	SourceURL       string        `json:"source_url"`
	ArtistName      string        `json:"artist_name,omitempty"`
	Spotify         SpotifyStatus `json:"spotify"`
}

// DisplayName is the name used for catalog matching: the canonical
// artist_name when present, the scraped name otherwise.
func (a Artist) DisplayName() string {
	if a.ArtistName != "" {
		return a.ArtistName
	}
	return a.Name
}

// Candidate is a catalog search result considered for matching. It is
// never persisted.
type Candidate struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Popularity int    `json:"popularity"`
}

// Track is a representative catalog track. A track missing either field
// is unusable.
type Track struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Usable reports whether the track can back an embedded player.
func (t Track) Usable() bool {
	return t.ID != "" && t.Name != ""
}

// EmbedURL derives the embeddable player link from the track id alone.
func (t Track) EmbedURL() string {
	return constants.SpotifyEmbedBase + t.ID
}

type RunType string

const (
	RunTypeScrape RunType = "scrape"
	RunTypeEnrich RunType = "enrich"
)

type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// Run records one scrape or enrichment invocation.
type Run struct {
	StartedAt  time.Time  `json:"started_at" db:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty" db:"finished_at"`
	Error      *string    `json:"error,omitempty" db:"error"`
	ID         string     `json:"id" db:"id"`
	Type       RunType    `json:"type" db:"type"`
	Status     RunStatus  `json:"status" db:"status"`
	Artists    int        `json:"artists" db:"artists"`
	Matched    int        `json:"matched" db:"matched"`
}
