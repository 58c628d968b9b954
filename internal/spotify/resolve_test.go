package spotify

import (
	"testing"

	"github.com/petervass/lineup/internal/domain"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "lowercases", input: "Daft Punk", want: "daft punk"},
		{name: "ampersand spelled out", input: "Florence & The Machine", want: "florence and the machine"},
		{name: "collapses whitespace", input: "  Daft \t Punk  ", want: "daft punk"},
		{name: "empty stays empty", input: "   ", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeName(tt.input); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name       string
		source     string
		candidates []domain.Candidate
		want       string
	}{
		{
			name:   "exact match accepted with zero popularity",
			source: "Daft Punk",
			candidates: []domain.Candidate{
				{ID: "artist-1", Name: "Daft Punk", Popularity: 0},
			},
			want: "artist-1",
		},
		{
			name:   "exact match after normalization",
			source: "Florence & The Machine",
			candidates: []domain.Candidate{
				{ID: "artist-2", Name: "florence and the  machine", Popularity: 10},
			},
			want: "artist-2",
		},
		{
			name:   "popularity alone cannot force acceptance",
			source: "abcdef",
			candidates: []domain.Candidate{
				{ID: "artist-3", Name: "zyxwvu", Popularity: 100},
			},
			want: "",
		},
		{
			name:   "near match above floor accepted",
			source: "The Chemical Brothers",
			candidates: []domain.Candidate{
				{ID: "artist-4", Name: "Chemical Brothers", Popularity: 40},
			},
			want: "artist-4",
		},
		{
			name:   "popularity breaks ties between equal names",
			source: "Moby",
			candidates: []domain.Candidate{
				{ID: "artist-5", Name: "Moby", Popularity: 10},
				{ID: "artist-6", Name: "Moby", Popularity: 90},
			},
			want: "artist-6",
		},
		{
			name:   "empty candidate names are discarded",
			source: "Moby",
			candidates: []domain.Candidate{
				{ID: "artist-7", Name: "   ", Popularity: 100},
				{ID: "artist-8", Name: "Moby", Popularity: 0},
			},
			want: "artist-8",
		},
		{
			name:       "no candidates",
			source:     "Daft Punk",
			candidates: nil,
			want:       "",
		},
		{
			name:   "weak matches rejected",
			source: "Daft Punk",
			candidates: []domain.Candidate{
				{ID: "artist-9", Name: "Completely Different Orchestra", Popularity: 60},
			},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(tt.source, tt.candidates); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}
