package spotify

// Wire types for the three Spotify endpoints this client consumes.

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

type searchResponse struct {
	Artists struct {
		Items []artistItem `json:"items"`
	} `json:"artists"`
}

type artistItem struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Popularity int    `json:"popularity"`
}

type topTracksResponse struct {
	Tracks []trackItem `json:"tracks"`
}

type trackItem struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
