// package tasks implements the enrichment operations behind the service.
//
// The core abstraction is Engine, which fetches tracks from the scrobble provider,
// fans per-track video lookups out to a bounded worker pool, and joins the results
// in input order. Operations emit progress updates via channels for non-blocking
// status reporting to CLI/UI layers.
package tasks

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/replay/internal/models"
	"github.com/desertthunder/replay/internal/services"
	"github.com/desertthunder/replay/internal/shared"
)

// DefaultLimit is the track count used when a caller does not specify one.
const DefaultLimit = 10

// Engine defines the enrichment operations served over HTTP and the CLI.
type Engine interface {
	// Recommendations fetches the configured user's recent scrobbles and enriches each with a video identifier.
	Recommendations(ctx context.Context, limit int, progress chan<- ProgressUpdate) ([]models.Recommendation, error)

	// Search matches catalog tracks against query and enriches each with a video identifier.
	Search(ctx context.Context, query string, limit int, progress chan<- ProgressUpdate) ([]models.Recommendation, error)
}

// EnrichmentEngine implements Engine against a scrobble provider and a video provider.
type EnrichmentEngine struct {
	scrobbler services.Scrobbler
	video     services.VideoSearcher
	logger    *log.Logger
	opts      EnrichOpts
}

// NewEnrichmentEngine creates an EnrichmentEngine with the provided services.
// A nil logger falls back to the shared default; zero opts get the documented
// defaults.
func NewEnrichmentEngine(scrobbler services.Scrobbler, video services.VideoSearcher, logger *log.Logger, opts EnrichOpts) *EnrichmentEngine {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 5
	}
	if opts.NumWorkers > 10 {
		opts.NumWorkers = 10
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}

	return &EnrichmentEngine{
		scrobbler: scrobbler,
		video:     video,
		logger:    logger,
		opts:      opts,
	}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *EnrichmentEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
		// Sent successfully
	default:
		// Channel full or closed, skip this update
	}
}

// Recommendations fetches the user's most recent scrobbles and enriches each
// with an embeddable video identifier.
//
// The result preserves the provider's track order. A failed scrobble fetch
// fails the whole operation; failed video lookups degrade to absent
// identifiers.
func (e *EnrichmentEngine) Recommendations(ctx context.Context, limit int, progress chan<- ProgressUpdate) ([]models.Recommendation, error) {
	if e.scrobbler == nil {
		return nil, fmt.Errorf("%w: scrobble service not initialized", shared.ErrServiceUnavailable)
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	e.sendProgress(progress, fetchScrobblesUpdate(limit))

	tracks, err := e.scrobbler.RecentTracks(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recent tracks: %w", err)
	}

	// The provider slips a now-playing entry past the requested limit at
	// times; enforce the cap here.
	if len(tracks) > limit {
		tracks = tracks[:limit]
	}

	e.sendProgress(progress, foundTracksUpdate(FetchScrobbles, len(tracks)))

	return e.enrich(ctx, tracks, progress)
}

// Search matches catalog tracks against query and enriches each with an
// embeddable video identifier. The match list is returned in full; rendering
// layers decide what to do with tracks that have no video.
func (e *EnrichmentEngine) Search(ctx context.Context, query string, limit int, progress chan<- ProgressUpdate) ([]models.Recommendation, error) {
	if e.scrobbler == nil {
		return nil, fmt.Errorf("%w: scrobble service not initialized", shared.ErrServiceUnavailable)
	}
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: search query must not be empty", shared.ErrInvalidInput)
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	e.sendProgress(progress, searchCatalogUpdate(query))

	tracks, err := e.scrobbler.SearchTracks(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search tracks: %w", err)
	}

	if len(tracks) > limit {
		tracks = tracks[:limit]
	}

	e.sendProgress(progress, foundTracksUpdate(SearchCatalog, len(tracks)))

	return e.enrich(ctx, tracks, progress)
}
