// package services defines client interfaces for the upstream providers
//
// Last.fm (scrobble history, track search) and YouTube (video matching)
package services

import (
	"context"
	"time"

	"github.com/desertthunder/replay/internal/models"
)

// defaultTimeout bounds every upstream call so a hung provider cannot stall a
// request indefinitely.
const defaultTimeout = 10 * time.Second

// Scrobbler defines the interface for the scrobble-history provider: recent
// plays for the configured listener plus ad-hoc catalog search.
type Scrobbler interface {
	// RecentTracks retrieves the configured user's most recent scrobbles, newest first.
	RecentTracks(ctx context.Context, limit int) ([]models.Recommendation, error)

	// SearchTracks searches the provider's track catalog for matching songs.
	SearchTracks(ctx context.Context, query string, limit int) ([]models.Recommendation, error)

	// Name returns the provider name (e.g., "Last.fm")
	Name() string
}

// VideoSearcher defines the interface for the video-search provider.
type VideoSearcher interface {
	// FindVideoID returns the identifier of the best embeddable match for the
	// given song, or an empty string when the provider has no match.
	FindVideoID(ctx context.Context, song, artist string) (string, error)

	// Name returns the provider name (e.g., "YouTube")
	Name() string
}
