package tasks

import (
	"context"
	"fmt"
	"sync"

	"github.com/desertthunder/replay/internal/models"
	"github.com/desertthunder/replay/internal/shared"
	"golang.org/x/time/rate"
)

// EnrichOpts configures the video-lookup worker pool.
type EnrichOpts struct {
	NumWorkers int     // Concurrent lookups (default: 5, max: 10)
	RateLimit  float64 // Video provider requests per second (default: 5)
}

// videoJob pairs a track with its position so concurrent completion cannot
// reorder the joined result.
type videoJob struct {
	index int
	track models.Recommendation
}

type videoResult struct {
	index int
	id    string
	err   error
}

// enrich launches the per-track video lookups on a bounded worker pool and
// joins the results back in input order.
//
// The join completes only once every lookup has settled; no partial batch is
// returned early. Lookup failures are logged and yield an absent identifier
// because one failed enrichment must not fail the whole batch.
func (e *EnrichmentEngine) enrich(ctx context.Context, tracks []models.Recommendation, progress chan<- ProgressUpdate) ([]models.Recommendation, error) {
	if e.video == nil {
		return nil, fmt.Errorf("%w: video service not initialized", shared.ErrServiceUnavailable)
	}

	total := len(tracks)
	enriched := make([]models.Recommendation, total)
	copy(enriched, tracks)

	if total == 0 {
		e.sendProgress(progress, completeUpdate(enriched))
		return enriched, nil
	}

	e.sendProgress(progress, matchingVideosUpdate(total))

	limiter := rate.NewLimiter(rate.Limit(e.opts.RateLimit), 1)

	jobs := make(chan videoJob, total)
	results := make(chan videoResult, total)

	var wg sync.WaitGroup
	for i := 0; i < e.opts.NumWorkers; i++ {
		wg.Add(1)
		go e.videoWorker(ctx, &wg, limiter, jobs, results)
	}

	for i, track := range tracks {
		jobs <- videoJob{index: i, track: track}
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		track := &enriched[res.index]

		if res.err != nil {
			e.logger.Warn("video lookup failed", "song", track.Name, "artist", track.Artist, "err", res.err)
			e.sendProgress(progress, videoMissedUpdate(completed, total, *track))
			continue
		}

		track.YouTubeID = res.id
		if res.id == "" {
			e.sendProgress(progress, videoMissedUpdate(completed, total, *track))
		} else {
			e.sendProgress(progress, videoMatchedUpdate(completed, total, *track))
		}
	}

	e.sendProgress(progress, completeUpdate(enriched))
	return enriched, nil
}

// videoWorker consumes lookup jobs until the jobs channel closes.
func (e *EnrichmentEngine) videoWorker(ctx context.Context, wg *sync.WaitGroup, limiter *rate.Limiter, jobs <-chan videoJob, results chan<- videoResult) {
	defer wg.Done()

	for job := range jobs {
		if err := limiter.Wait(ctx); err != nil {
			results <- videoResult{index: job.index, err: err}
			continue
		}

		id, err := e.video.FindVideoID(ctx, job.track.Name, job.track.Artist)
		results <- videoResult{index: job.index, id: id, err: err}
	}
}
