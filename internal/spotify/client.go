// Package spotify is a thin Spotify Web API client covering the three
// operations the enrichment pipeline needs: token exchange, artist
// search and top-track lookup.
package spotify

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/time/rate"

	"github.com/petervass/lineup/internal/constants"
	"github.com/petervass/lineup/internal/domain"
)

// Catalog is the subset of the Spotify API the enrichment pipeline
// depends on. Implemented by *Client and by test doubles.
type Catalog interface {
	SearchArtists(ctx context.Context, name string, limit int) ([]domain.Candidate, error)
	TopTracks(ctx context.Context, artistID, market string) ([]domain.Track, error)
}

// Client authenticates via the client-credentials flow and caches the
// resulting bearer token until a request using it is rejected.
type Client struct {
	clientID     string
	clientSecret string

	tokenURL string
	apiBase  string

	httpClient *http.Client
	limiter    *rate.Limiter

	mu    sync.Mutex
	token string
}

var _ Catalog = (*Client)(nil)

// NewClient builds a client for the given credentials. Empty values fall
// back to the SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET environment
// variables. Missing credentials are only an error once a lookup runs.
func NewClient(clientID, clientSecret string) *Client {
	if clientID == "" {
		clientID = os.Getenv("SPOTIFY_CLIENT_ID")
	}
	if clientSecret == "" {
		clientSecret = os.Getenv("SPOTIFY_CLIENT_SECRET")
	}
	return &Client{
		clientID:     clientID,
		clientSecret: clientSecret,
		tokenURL:     constants.SpotifyTokenURL,
		apiBase:      constants.SpotifyAPIBase,
		httpClient: &http.Client{
			Timeout: constants.DefaultHTTPTimeout,
		},
		limiter: rate.NewLimiter(rate.Every(constants.MinRequestInterval), 1),
	}
}

// SetEndpoints overrides the token and API base URLs. Used by tests.
func (c *Client) SetEndpoints(tokenURL, apiBase string) {
	c.tokenURL = strings.TrimSuffix(tokenURL, "/")
	c.apiBase = strings.TrimSuffix(apiBase, "/")
}

// Token returns the cached access token, exchanging client credentials
// for a fresh one when none is cached or forceRefresh is set.
func (c *Client) Token(ctx context.Context, forceRefresh bool) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && !forceRefresh {
		return c.token, nil
	}

	if c.clientID == "" || c.clientSecret == "" {
		return "", &ConfigurationError{Reason: "missing credentials, set SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET"}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create token request: %w", err)
	}
	basic := base64.StdEncoding.EncodeToString([]byte(c.clientID + ":" + c.clientSecret))
	req.Header.Set("Authorization", "Basic "+basic)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token endpoint returned status %d", resp.StatusCode)
	}

	var payload tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}
	if payload.AccessToken == "" {
		return "", &ConfigurationError{Reason: "token response did not include an access_token"}
	}

	c.token = payload.AccessToken
	return c.token, nil
}

// get issues a bearer-authenticated GET and decodes the JSON body into
// dst. A 401 invalidates the cached token and the request is retried
// exactly once with a forced refresh; a second 401 is reported as a
// plain request failure.
func (c *Client) get(ctx context.Context, path string, query url.Values, dst any) error {
	token, err := c.Token(ctx, false)
	if err != nil {
		return err
	}

	resp, err := c.do(ctx, path, query, token)
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		_ = resp.Body.Close()
		if token, err = c.Token(ctx, true); err != nil {
			return err
		}
		if resp, err = c.do(ctx, path, query, token); err != nil {
			return err
		}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("spotify returned status %d for %s", resp.StatusCode, path)
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("failed to decode response for %s: %w", path, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, path string, query url.Values, token string) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	u := c.apiBase + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	return resp, nil
}

// SearchArtists returns up to limit artist candidates for a name query.
func (c *Client) SearchArtists(ctx context.Context, name string, limit int) ([]domain.Candidate, error) {
	if limit <= 0 {
		limit = constants.DefaultSearchLimit
	}

	query := url.Values{}
	query.Set("q", name)
	query.Set("type", "artist")
	query.Set("limit", strconv.Itoa(limit))

	var payload searchResponse
	if err := c.get(ctx, "/search", query, &payload); err != nil {
		return nil, err
	}

	candidates := make([]domain.Candidate, 0, len(payload.Artists.Items))
	for _, item := range payload.Artists.Items {
		candidates = append(candidates, domain.Candidate{
			ID:         item.ID,
			Name:       item.Name,
			Popularity: item.Popularity,
		})
	}
	return candidates, nil
}

// TopTracks returns the top tracks for an artist in the given market. An
// empty market omits the market parameter entirely.
func (c *Client) TopTracks(ctx context.Context, artistID, market string) ([]domain.Track, error) {
	query := url.Values{}
	if market != "" {
		query.Set("market", market)
	}

	var payload topTracksResponse
	if err := c.get(ctx, "/artists/"+artistID+"/top-tracks", query, &payload); err != nil {
		return nil, err
	}

	tracks := make([]domain.Track, 0, len(payload.Tracks))
	for _, item := range payload.Tracks {
		tracks = append(tracks, domain.Track{ID: item.ID, Name: item.Name})
	}
	return tracks, nil
}
