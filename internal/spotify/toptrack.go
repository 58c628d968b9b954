package spotify

import (
	"context"

	"github.com/petervass/lineup/internal/domain"
)

// fallbackMarkets are tried after the caller's preferred market, in this
// order. The trailing empty string queries without a market parameter.
var fallbackMarkets = []string{"GB", "DE", "JP", ""}

// SelectTopTrack fetches a representative track for an artist, trying
// the preferred market first and falling back through fallbackMarkets.
// The first market that yields a track with both id and name wins; no
// later market is queried. When every market comes up empty the result
// is nil with no error.
func SelectTopTrack(ctx context.Context, catalog Catalog, artistID, preferredMarket string) (*domain.Track, error) {
	markets := append([]string{preferredMarket}, fallbackMarkets...)

	for _, market := range markets {
		tracks, err := catalog.TopTracks(ctx, artistID, market)
		if err != nil {
			return nil, err
		}
		for _, track := range tracks {
			if track.Usable() {
				return &track, nil
			}
		}
	}

	return nil, nil
}
