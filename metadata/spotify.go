package metadata

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
)

// SpotifyClient fetches track metadata from the Spotify Web API using the
// client-credentials flow. The access token is cached until shortly before
// expiry.
type SpotifyClient struct {
	apiURL       string
	tokenURL     string
	clientID     string
	clientSecret string
	client       *http.Client

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

func NewSpotifyClient(apiURL, tokenURL, clientID, clientSecret string) *SpotifyClient {
	return &SpotifyClient{
		apiURL:       apiURL,
		tokenURL:     tokenURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		client:       &http.Client{Timeout: 15 * time.Second},
	}
}

type trackDocument struct {
	Name    string `json:"name"`
	Artists []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"artists"`
	Album struct {
		Name string `json:"name"`
	} `json:"album"`
	PreviewURL string `json:"preview_url"`
}

type artistDocument struct {
	Genres []string `json:"genres"`
}

func (c *SpotifyClient) FetchTrack(ctx context.Context, trackID string) (*TrackMetadata, error) {
	var track trackDocument
	if err := c.getJSON(ctx, fmt.Sprintf("%s/tracks/%s", c.apiURL, trackID), &track); err != nil {
		return nil, err
	}
	if track.Name == "" {
		return nil, errors.Wrapf(ErrNotAvailable, "track %s has no name", trackID)
	}

	meta := &TrackMetadata{
		Title:      track.Name,
		Album:      track.Album.Name,
		PreviewURL: track.PreviewURL,
		Artists:    []string{},
		ArtistIDs:  []string{},
	}
	for _, artist := range track.Artists {
		meta.Artists = append(meta.Artists, artist.Name)
		meta.ArtistIDs = append(meta.ArtistIDs, artist.ID)
	}
	return meta, nil
}

// FetchAudioFeatures returns the raw audio-feature document as JSON text.
// The attribute bag is kept opaque and stored as-is.
func (c *SpotifyClient) FetchAudioFeatures(ctx context.Context, trackID string) (string, error) {
	body, err := c.get(ctx, fmt.Sprintf("%s/audio-features/%s", c.apiURL, trackID))
	if err != nil {
		return "", err
	}
	if !json.Valid(body) {
		return "", errors.Wrap(ErrNotAvailable, "invalid audio features document")
	}
	return string(body), nil
}

// FetchGenres aggregates the genres of every performing artist, deduplicated
// in first-seen order.
func (c *SpotifyClient) FetchGenres(ctx context.Context, artistIDs []string) ([]string, error) {
	seen := make(map[string]bool)
	genres := []string{}
	for _, artistID := range artistIDs {
		var artist artistDocument
		if err := c.getJSON(ctx, fmt.Sprintf("%s/artists/%s", c.apiURL, artistID), &artist); err != nil {
			return nil, err
		}
		for _, genre := range artist.Genres {
			if seen[genre] {
				continue
			}
			seen[genre] = true
			genres = append(genres, genre)
		}
	}
	return genres, nil
}

func (c *SpotifyClient) token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && time.Now().Before(c.tokenExpiry) {
		return c.accessToken, nil
	}

	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	basic := base64.StdEncoding.EncodeToString([]byte(c.clientID + ":" + c.clientSecret))
	req.Header.Set("Authorization", "Basic "+basic)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", errors.Wrap(ErrNotAvailable, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errors.Wrapf(ErrNotAvailable, "token request failed with status %d", resp.StatusCode)
	}

	var payload struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", errors.Wrap(ErrNotAvailable, err.Error())
	}
	if payload.AccessToken == "" {
		return "", errors.Wrap(ErrNotAvailable, "empty access token")
	}

	c.accessToken = payload.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(payload.ExpiresIn-60) * time.Second)
	return c.accessToken, nil
}

func (c *SpotifyClient) get(ctx context.Context, endpoint string) ([]byte, error) {
	token, err := c.token(ctx)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(ErrNotAvailable, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Wrapf(ErrNotAvailable, "unexpected status %d for %s", resp.StatusCode, endpoint)
	}
	return io.ReadAll(resp.Body)
}

func (c *SpotifyClient) getJSON(ctx context.Context, endpoint string, out any) error {
	body, err := c.get(ctx, endpoint)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return errors.Wrap(ErrNotAvailable, err.Error())
	}
	return nil
}
