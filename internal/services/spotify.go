// Spotify Web API implementation of [Catalog]
//
// Response types based on https://developer.spotify.com/documentation/web-api/reference/
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/desertthunder/chordex/internal/models"
	"github.com/desertthunder/chordex/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
	spotifyBaseURL  = "https://api.spotify.com/v1"

	spotifyMaxPage     = 50
	spotifyMaxFeatures = 100
)

// SpotifyArtist represents a Spotify artist.
type SpotifyArtist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SpotifyTrack represents a Spotify track.
type SpotifyTrack struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Artists []SpotifyArtist `json:"artists"`
}

// SpotifySearchResponse is the body of a track search.
type SpotifySearchResponse struct {
	Tracks struct {
		Items  []SpotifyTrack `json:"items"`
		Total  int            `json:"total"`
		Offset int            `json:"offset"`
		Next   *string        `json:"next"`
	} `json:"tracks"`
}

// SpotifyAudioFeatures holds the key detection for one track.
type SpotifyAudioFeatures struct {
	ID   string `json:"id"`
	Key  int    `json:"key"`  // -1 when no key was detected
	Mode int    `json:"mode"` // 1 major, 0 minor
}

// SpotifyOpts configures a [SpotifyCatalog].
type SpotifyOpts struct {
	ClientID     string
	ClientSecret string
	TokenURL     string
	BaseURL      string
	Market       string
	PageSize     int
	HTTPClient   *http.Client // Used for token and API requests; defaults to [http.DefaultClient]
}

// SpotifyCatalog implements [Catalog] with the client-credentials flow.
// No user authorization is needed because only public catalog endpoints are used.
type SpotifyCatalog struct {
	baseURL    string
	market     string
	pageSize   int
	httpClient *http.Client
}

// NewSpotifyCatalog creates a catalog client. ctx is kept by the token source for refreshes.
func NewSpotifyCatalog(ctx context.Context, opts SpotifyOpts) (*SpotifyCatalog, error) {
	if opts.ClientID == "" {
		return nil, fmt.Errorf("%w: missing client_id", shared.ErrMissingCredentials)
	}
	if opts.ClientSecret == "" {
		return nil, fmt.Errorf("%w: missing client_secret", shared.ErrMissingCredentials)
	}
	if opts.TokenURL == "" {
		opts.TokenURL = spotifyTokenURL
	}
	if opts.BaseURL == "" {
		opts.BaseURL = spotifyBaseURL
	}
	if opts.Market == "" {
		opts.Market = "US"
	}
	if opts.PageSize <= 0 || opts.PageSize > spotifyMaxPage {
		opts.PageSize = spotifyMaxPage
	}
	if opts.HTTPClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, opts.HTTPClient)
	}

	config := &clientcredentials.Config{
		ClientID:     opts.ClientID,
		ClientSecret: opts.ClientSecret,
		TokenURL:     opts.TokenURL,
	}

	return &SpotifyCatalog{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		market:     opts.Market,
		pageSize:   opts.PageSize,
		httpClient: config.Client(ctx),
	}, nil
}

func (s *SpotifyCatalog) Name() string {
	return "Spotify"
}

// doRequest performs an authenticated GET request against the Web API.
func (s *SpotifyCatalog) doRequest(ctx context.Context, endpoint string, result any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return fmt.Errorf("%w: spotify returned status %d", shared.ErrAuthFailed, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return fmt.Errorf("%w: spotify returned status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// SearchTracks returns one page of tracks for a search query.
func (s *SpotifyCatalog) SearchTracks(ctx context.Context, query string, limit, offset int) (*SpotifySearchResponse, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("type", "track")
	params.Set("market", s.market)
	params.Set("limit", fmt.Sprint(limit))
	params.Set("offset", fmt.Sprint(offset))

	var response SpotifySearchResponse
	if err := s.doRequest(ctx, "/search?"+params.Encode(), &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// AudioFeatures returns key and mode for up to 100 tracks. Tracks without analysis are omitted.
func (s *SpotifyCatalog) AudioFeatures(ctx context.Context, trackIDs []string) (map[string]SpotifyAudioFeatures, error) {
	if len(trackIDs) == 0 {
		return map[string]SpotifyAudioFeatures{}, nil
	}
	if len(trackIDs) > spotifyMaxFeatures {
		return nil, fmt.Errorf("%w: maximum %d track IDs allowed", shared.ErrInvalidArgument, spotifyMaxFeatures)
	}

	var response struct {
		AudioFeatures []*SpotifyAudioFeatures `json:"audio_features"`
	}
	endpoint := "/audio-features?ids=" + url.QueryEscape(strings.Join(trackIDs, ","))
	if err := s.doRequest(ctx, endpoint, &response); err != nil {
		return nil, err
	}

	features := make(map[string]SpotifyAudioFeatures, len(response.AudioFeatures))
	for _, f := range response.AudioFeatures {
		if f != nil {
			features[f.ID] = *f
		}
	}
	return features, nil
}

// SearchSongs pages through a genre/year search and attaches key and mode to each track.
func (s *SpotifyCatalog) SearchSongs(ctx context.Context, q CatalogQuery) ([]models.Song, error) {
	if q.Genre == "" {
		return nil, fmt.Errorf("%w: genre is required", shared.ErrMissingArgument)
	}
	if q.Count <= 0 {
		return nil, fmt.Errorf("%w: count must be positive", shared.ErrInvalidArgument)
	}

	query := fmt.Sprintf("genre:%q", q.Genre)
	if q.StartYear > 0 && q.EndYear > 0 {
		query += fmt.Sprintf(" year:%d-%d", q.StartYear, q.EndYear)
	}

	var tracks []SpotifyTrack
	for offset := 0; offset < q.Count; offset += s.pageSize {
		limit := min(s.pageSize, q.Count-offset)
		page, err := s.SearchTracks(ctx, query, limit, offset)
		if err != nil {
			return nil, err
		}
		tracks = append(tracks, page.Tracks.Items...)
		if len(page.Tracks.Items) < limit || page.Tracks.Next == nil {
			break
		}
	}

	songs := make([]models.Song, 0, len(tracks))
	for start := 0; start < len(tracks); start += spotifyMaxFeatures {
		batch := tracks[start:min(start+spotifyMaxFeatures, len(tracks))]
		ids := make([]string, len(batch))
		for i, t := range batch {
			ids[i] = t.ID
		}

		features, err := s.AudioFeatures(ctx, ids)
		if err != nil {
			return nil, err
		}

		for _, t := range batch {
			f, ok := features[t.ID]
			if !ok || len(t.Artists) == 0 {
				continue
			}
			songs = append(songs, models.Song{
				Title:  t.Name,
				Artist: t.Artists[0].Name,
				Key:    f.Key,
				Mode:   f.Mode,
				Genre:  q.Genre,
			})
		}
	}

	return songs, nil
}
