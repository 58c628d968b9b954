package spotify

import (
	"context"
	"errors"
	"testing"

	"github.com/petervass/lineup/internal/domain"
)

// marketCatalog is a Catalog stub serving canned top tracks per market.
type marketCatalog struct {
	tracks  map[string][]domain.Track
	err     error
	queried []string
}

func (m *marketCatalog) SearchArtists(ctx context.Context, name string, limit int) ([]domain.Candidate, error) {
	return nil, nil
}

func (m *marketCatalog) TopTracks(ctx context.Context, artistID, market string) ([]domain.Track, error) {
	m.queried = append(m.queried, market)
	if m.err != nil {
		return nil, m.err
	}
	return m.tracks[market], nil
}

func TestSelectTopTrack_FallsBackInOrder(t *testing.T) {
	catalog := &marketCatalog{
		tracks: map[string][]domain.Track{
			"US": {},
			"GB": {{ID: "track-gb", Name: "London Song"}},
			"DE": {{ID: "track-de", Name: "Berlin Song"}},
		},
	}

	track, err := SelectTopTrack(context.Background(), catalog, "artist-1", "US")
	if err != nil {
		t.Fatalf("SelectTopTrack failed: %v", err)
	}
	if track == nil || track.ID != "track-gb" {
		t.Fatalf("Expected track-gb, got %+v", track)
	}

	wantQueried := []string{"US", "GB"}
	if len(catalog.queried) != len(wantQueried) {
		t.Fatalf("Expected markets %v, got %v", wantQueried, catalog.queried)
	}
	for i, market := range wantQueried {
		if catalog.queried[i] != market {
			t.Errorf("Expected market %q at position %d, got %q", market, i, catalog.queried[i])
		}
	}
}

func TestSelectTopTrack_SkipsUnusableTracks(t *testing.T) {
	catalog := &marketCatalog{
		tracks: map[string][]domain.Track{
			"US": {
				{ID: "", Name: "Nameless ID"},
				{ID: "track-2", Name: ""},
				{ID: "track-3", Name: "Usable Song"},
			},
		},
	}

	track, err := SelectTopTrack(context.Background(), catalog, "artist-1", "US")
	if err != nil {
		t.Fatalf("SelectTopTrack failed: %v", err)
	}
	if track == nil || track.ID != "track-3" {
		t.Fatalf("Expected track-3, got %+v", track)
	}
	if len(catalog.queried) != 1 {
		t.Errorf("Expected a single market query, got %v", catalog.queried)
	}
}

func TestSelectTopTrack_AllMarketsExhausted(t *testing.T) {
	catalog := &marketCatalog{tracks: map[string][]domain.Track{}}

	track, err := SelectTopTrack(context.Background(), catalog, "artist-1", "US")
	if err != nil {
		t.Fatalf("SelectTopTrack failed: %v", err)
	}
	if track != nil {
		t.Errorf("Expected no track, got %+v", track)
	}

	wantQueried := []string{"US", "GB", "DE", "JP", ""}
	if len(catalog.queried) != len(wantQueried) {
		t.Fatalf("Expected markets %v, got %v", wantQueried, catalog.queried)
	}
	for i, market := range wantQueried {
		if catalog.queried[i] != market {
			t.Errorf("Expected market %q at position %d, got %q", market, i, catalog.queried[i])
		}
	}
}

func TestSelectTopTrack_PropagatesErrors(t *testing.T) {
	wantErr := errors.New("boom")
	catalog := &marketCatalog{err: wantErr}

	_, err := SelectTopTrack(context.Background(), catalog, "artist-1", "US")
	if !errors.Is(err, wantErr) {
		t.Errorf("Expected wrapped boom error, got %v", err)
	}
	if len(catalog.queried) != 1 {
		t.Errorf("Expected failure after first market, got %v", catalog.queried)
	}
}
