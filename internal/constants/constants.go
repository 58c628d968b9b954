// Package constants contains application-wide constants to avoid magic numbers and strings.
package constants

import "time"

// Application defaults
const (
	DefaultPort        = "8080"
	DefaultDBPath      = "lineup.db"
	DefaultCachePath   = "cache/artists_spotify.json"
	DefaultLineupURL   = "https://szigetfestival.com/en/programs-lineup-2026"
	DefaultMarket      = "US"
	DefaultHTTPTimeout = 10 * time.Second
	DefaultSearchLimit = 5
	DefaultScrapeLimit = 0 // 0 = no limit
	DefaultRunsLimit   = 50
)

// Spotify endpoints
const (
	SpotifyTokenURL  = "https://accounts.spotify.com/api/token"
	SpotifyAPIBase   = "https://api.spotify.com/v1"
	SpotifyEmbedBase = "https://open.spotify.com/embed/track/"
)

// Catalog request pacing. Spotify tolerates short bursts; a small gap
// between requests keeps a full enrichment run under the rate limit.
const MinRequestInterval = 250 * time.Millisecond

// Database
const RunsTable = "runs"
