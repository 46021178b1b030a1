// YouTube Data API [VideoSearcher] implementation
//
// Issues search.list calls constrained to embeddable videos. The client is
// constructed once at startup and reused process-wide.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/desertthunder/replay/internal/shared"
)

const defaultYouTubeBaseURL string = "https://www.googleapis.com/youtube/v3"

// YouTubeService implements the VideoSearcher interface against the YouTube
// Data API.
type YouTubeService struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewYouTubeService creates a new YouTube service instance.
func NewYouTubeService(baseURL, apiKey string) *YouTubeService {
	if baseURL == "" {
		baseURL = defaultYouTubeBaseURL
	}

	return &YouTubeService{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// Name returns the service name.
func (y *YouTubeService) Name() string {
	return "YouTube"
}

// FindVideoID returns the identifier of the best embeddable match for the
// given song.
//
// The query appends "official audio" to bias matching toward the uploaded
// recording over covers or unrelated content. Exactly one candidate is
// requested, constrained to video results embeddable in third-party players.
// An empty identifier with a nil error means the provider had no match.
func (y *YouTubeService) FindVideoID(ctx context.Context, song, artist string) (string, error) {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("q", fmt.Sprintf("%s %s official audio", song, artist))
	params.Set("type", "video")
	params.Set("videoEmbeddable", "true")
	params.Set("maxResults", "1")
	params.Set("key", y.apiKey)

	apiURL := fmt.Sprintf("%s/search?%s", y.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := y.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Error.Message != "" {
			return "", fmt.Errorf("%w: youtube error (status %d): %s", shared.ErrAPIRequest, resp.StatusCode, errResp.Error.Message)
		}
		return "", fmt.Errorf("%w: youtube error: status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	var payload struct {
		Items []struct {
			ID struct {
				VideoID string `json:"videoId"`
			} `json:"id"`
		} `json:"items"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrMalformedResponse, err)
	}

	if len(payload.Items) == 0 {
		return "", nil
	}

	return payload.Items[0].ID.VideoID, nil
}
