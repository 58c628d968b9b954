package spotify

import (
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"

	"github.com/petervass/lineup/internal/domain"
)

const (
	// acceptScore is the floor a candidate's combined score must reach.
	// Popularity alone tops out at 100/500 = 0.2, so it can never carry
	// a poor name match over the floor on its own.
	acceptScore = 0.55

	// exactMatchBonus is added when the normalized names are identical,
	// so an exact hit is accepted even with zero popularity.
	exactMatchBonus = 0.35

	popularityDivisor = 500.0
)

// Resolve picks the best catalog match for a scraped artist name, or
// returns an empty id when no candidate scores above the acceptance
// floor. Scoring is normalized Levenshtein similarity with a small
// popularity tie-break.
func Resolve(sourceName string, candidates []domain.Candidate) string {
	source := normalizeName(sourceName)
	lev := metrics.NewLevenshtein()

	var bestID string
	var bestScore float64

	for _, candidate := range candidates {
		name := normalizeName(candidate.Name)
		if name == "" {
			continue
		}

		score := strutil.Similarity(source, name, lev) + float64(candidate.Popularity)/popularityDivisor
		if name == source {
			score += exactMatchBonus
		}

		if score > bestScore {
			bestScore = score
			bestID = candidate.ID
		}
	}

	if bestScore < acceptScore {
		return ""
	}
	return bestID
}

// normalizeName lowercases, spells out ampersands and collapses
// whitespace so scraped display names and catalog names compare on
// equal footing.
func normalizeName(name string) string {
	lowered := strings.ReplaceAll(strings.ToLower(name), "&", "and")
	return strings.Join(strings.Fields(lowered), " ")
}
