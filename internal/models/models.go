package models

import "fmt"

// Recommendation is an enriched track: scrobble metadata from the music
// provider joined with an optional embeddable video identifier.
type Recommendation struct {
	Name      string `json:"name"`      // Track title
	Artist    string `json:"artist"`    // Performing artist
	URL       string `json:"url"`       // Canonical track page on the scrobble provider
	Playcount int    `json:"playcount"` // Play count reported by the provider, 1 when omitted
	YouTubeID string `json:"youtube_id,omitempty"`
}

// HasVideo reports whether an embeddable match was found for this track.
func (r Recommendation) HasVideo() bool {
	return r.YouTubeID != ""
}

// EmbedURL returns the autoplay embed address for the matched video,
// or an empty string when the track has no video identifier.
func (r Recommendation) EmbedURL() string {
	if r.YouTubeID == "" {
		return ""
	}
	return fmt.Sprintf("https://www.youtube.com/embed/%s?autoplay=1", r.YouTubeID)
}

// WatchURL returns the watch-page address for the matched video,
// or an empty string when the track has no video identifier.
func (r Recommendation) WatchURL() string {
	if r.YouTubeID == "" {
		return ""
	}
	return fmt.Sprintf("https://www.youtube.com/watch?v=%s", r.YouTubeID)
}
