// Last.fm API [Scrobbler] implementation
//
// Talks to the audioscrobbler 2.0 endpoint. Every operation is a GET against
// a single URL with method, api_key and format=json query parameters.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/desertthunder/replay/internal/models"
	"github.com/desertthunder/replay/internal/shared"
)

const defaultLastFMBaseURL string = "http://ws.audioscrobbler.com/2.0/"

// lastFMArtist decodes the artist field of a recent-tracks entry, which nests
// the display name under "#text".
type lastFMArtist struct {
	Text string `json:"#text"`
}

// LastFMService implements the Scrobbler interface against the Last.fm API.
type LastFMService struct {
	baseURL    string
	apiKey     string
	username   string
	httpClient *http.Client
}

// NewLastFMService creates a new Last.fm service instance scoped to one user.
func NewLastFMService(baseURL, apiKey, username string) *LastFMService {
	if baseURL == "" {
		baseURL = defaultLastFMBaseURL
	}

	return &LastFMService{
		baseURL:    baseURL,
		apiKey:     apiKey,
		username:   username,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// Name returns the service name.
func (l *LastFMService) Name() string {
	return "Last.fm"
}

func (l *LastFMService) doRequest(ctx context.Context, params url.Values, result any) error {
	params.Set("api_key", l.apiKey)
	params.Set("format", "json")

	apiURL := l.baseURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Message != "" {
			return fmt.Errorf("%w: last.fm error (status %d): %s", shared.ErrAPIRequest, resp.StatusCode, errResp.Message)
		}
		return fmt.Errorf("%w: last.fm error: status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("%w: %v", shared.ErrMalformedResponse, err)
		}
	}

	return nil
}

// RecentTracks retrieves the configured user's most recent scrobbles, newest first.
//
// Calls method=user.getrecenttracks. The provider reports playcount as a
// string and omits it for some entries; absent values default to 1.
func (l *LastFMService) RecentTracks(ctx context.Context, limit int) ([]models.Recommendation, error) {
	params := url.Values{}
	params.Set("method", "user.getrecenttracks")
	params.Set("user", l.username)
	params.Set("limit", strconv.Itoa(limit))

	var payload struct {
		RecentTracks struct {
			Track []struct {
				Name      string       `json:"name"`
				URL       string       `json:"url"`
				Playcount string       `json:"playcount"`
				Artist    lastFMArtist `json:"artist"`
			} `json:"track"`
		} `json:"recenttracks"`
	}

	if err := l.doRequest(ctx, params, &payload); err != nil {
		return nil, err
	}

	tracks := make([]models.Recommendation, len(payload.RecentTracks.Track))
	for i, t := range payload.RecentTracks.Track {
		count, err := parsePlaycount(t.Playcount)
		if err != nil {
			return nil, err
		}

		tracks[i] = models.Recommendation{
			Name:      t.Name,
			Artist:    t.Artist.Text,
			URL:       t.URL,
			Playcount: count,
		}
	}

	return tracks, nil
}

// SearchTracks searches the provider's track catalog for matching songs.
//
// Calls method=track.search. Match entries carry the artist as a plain string
// and report a listener count instead of a playcount.
func (l *LastFMService) SearchTracks(ctx context.Context, query string, limit int) ([]models.Recommendation, error) {
	params := url.Values{}
	params.Set("method", "track.search")
	params.Set("track", query)
	params.Set("limit", strconv.Itoa(limit))

	var payload struct {
		Results struct {
			TrackMatches struct {
				Track []struct {
					Name      string `json:"name"`
					Artist    string `json:"artist"`
					URL       string `json:"url"`
					Listeners string `json:"listeners"`
				} `json:"track"`
			} `json:"trackmatches"`
		} `json:"results"`
	}

	if err := l.doRequest(ctx, params, &payload); err != nil {
		return nil, err
	}

	matches := payload.Results.TrackMatches.Track
	tracks := make([]models.Recommendation, len(matches))
	for i, t := range matches {
		count, err := parsePlaycount(t.Listeners)
		if err != nil {
			return nil, err
		}

		tracks[i] = models.Recommendation{
			Name:      t.Name,
			Artist:    t.Artist,
			URL:       t.URL,
			Playcount: count,
		}
	}

	return tracks, nil
}

// parsePlaycount converts the provider's string count fields, defaulting to 1
// when the value is absent.
func parsePlaycount(s string) (int, error) {
	if s == "" {
		return 1, nil
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: playcount %q", shared.ErrMalformedResponse, s)
	}

	return n, nil
}
