// Package scraper extracts the festival lineup from the public program
// pages. It produces the raw artist records the enrichment pipeline
// consumes.
package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/petervass/lineup/internal/constants"
	"github.com/petervass/lineup/internal/domain"
	"github.com/petervass/lineup/internal/logger"
)

// ScrapeError wraps any failure that prevents a live scrape, so callers
// can fall back to the cached lineup.
type ScrapeError struct {
	Err error
}

func (e *ScrapeError) Error() string {
	return "live scrape failed: " + e.Err.Error()
}

func (e *ScrapeError) Unwrap() error {
	return e.Err
}

var dateRE = regexp.MustCompile(`(?i)(?:Mon|Tue|Wed|Thu|Fri|Sat|Sun)?\s*\d{1,2}\s+[A-Za-z]+\s+\d{4}`)

var slugRE = regexp.MustCompile(`[^a-z0-9]+`)

// Scraper fetches lineup pages and parses artist details out of them.
type Scraper struct {
	httpClient *http.Client
	lineupURL  string
	limit      int
	logger     *logger.Logger
}

// New builds a scraper for the given lineup URL. A limit above zero caps
// how many detail pages are visited.
func New(lineupURL string, limit int, log *logger.Logger) *Scraper {
	if log == nil {
		log = logger.Default()
	}
	return &Scraper{
		httpClient: &http.Client{
			Timeout: constants.DefaultHTTPTimeout,
		},
		lineupURL: lineupURL,
		limit:     limit,
		logger:    log.WithComponent("scraper"),
	}
}

// FetchLineup scrapes the full lineup: the listing page for artist
// links, then each detail page for the artist fields. Artists are
// deduplicated case-insensitively by name and sorted by name.
func (s *Scraper) FetchLineup(ctx context.Context) ([]domain.Artist, error) {
	links, err := s.collectArtistLinks(ctx)
	if err != nil {
		return nil, &ScrapeError{Err: err}
	}
	if len(links) == 0 {
		return nil, &ScrapeError{Err: fmt.Errorf("no artists were discovered on the lineup page")}
	}
	if s.limit > 0 && len(links) > s.limit {
		links = links[:s.limit]
	}

	seen := make(map[string]bool)
	var artists []domain.Artist
	for _, link := range links {
		artist, err := s.extractArtist(ctx, link)
		if err != nil {
			s.logger.Debug("Skipping artist page", "url", link, "error", err)
			continue
		}
		if artist == nil {
			continue
		}
		key := strings.ToLower(artist.Name)
		if seen[key] {
			continue
		}
		seen[key] = true
		artists = append(artists, *artist)
	}

	if len(artists) == 0 {
		return nil, &ScrapeError{Err: fmt.Errorf("no artist pages could be parsed")}
	}

	sort.Slice(artists, func(i, j int) bool {
		return strings.ToLower(artists[i].Name) < strings.ToLower(artists[j].Name)
	})
	return artists, nil
}

// collectArtistLinks pulls every program detail link off the listing
// page and resolves it against the lineup URL.
func (s *Scraper) collectArtistLinks(ctx context.Context) ([]string, error) {
	doc, err := s.fetchDocument(ctx, s.lineupURL)
	if err != nil {
		return nil, err
	}

	base, err := url.Parse(s.lineupURL)
	if err != nil {
		return nil, fmt.Errorf("invalid lineup URL: %w", err)
	}

	links := make(map[string]bool)
	doc.Find("a[href*='/programs/'], a[href*='programs-lineup']").Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok || href == "" || strings.HasPrefix(href, "#") {
			return
		}
		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		abs := base.ResolveReference(ref).String()
		if abs == s.lineupURL {
			return
		}
		links[abs] = true
	})

	sorted := make([]string, 0, len(links))
	for link := range links {
		sorted = append(sorted, link)
	}
	sort.Strings(sorted)
	return sorted, nil
}

// extractArtist parses one program detail page. Pages without a
// recognizable artist name yield a nil artist rather than an error.
func (s *Scraper) extractArtist(ctx context.Context, pageURL string) (*domain.Artist, error) {
	doc, err := s.fetchDocument(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	name := firstText(doc, "h1", "[data-testid='program-title']", ".program-detail h1", ".lineup-detail h1")
	if name == "" {
		return nil, nil
	}

	genre := firstText(doc, "[data-testid='program-genre']", ".program-detail .genre", ".lineup-detail .genre", ".genre")
	biography := firstText(doc, "[data-testid='program-description']", ".program-detail .description", ".lineup-detail .description", "article p", "main p")

	performanceDate := firstText(doc, "[data-testid='program-date']", ".program-detail .date", ".lineup-detail .date", ".date")
	if performanceDate == "" {
		performanceDate = dateRE.FindString(doc.Find("body").Text())
		performanceDate = normalizeWhitespace(performanceDate)
	}

	return &domain.Artist{
		Name:            name,
		Slug:            Slugify(name),
		Genre:           genre,
		Biography:       biography,
		PerformanceDate: performanceDate,
		SourceURL:       pageURL,
	}, nil
}

func (s *Scraper) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("lineup page returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}
	return doc, nil
}

// firstText returns the first non-empty normalized text among the
// selectors, tried in order.
func firstText(doc *goquery.Document, selectors ...string) string {
	for _, selector := range selectors {
		text := normalizeWhitespace(doc.Find(selector).First().Text())
		if text != "" {
			return text
		}
	}
	return ""
}

func normalizeWhitespace(value string) string {
	return strings.Join(strings.Fields(value), " ")
}

// Slugify turns an artist name into a URL-safe detail-page slug.
func Slugify(name string) string {
	slug := strings.Trim(slugRE.ReplaceAllString(strings.ToLower(name), "-"), "-")
	if slug == "" {
		return "artist"
	}
	return slug
}
