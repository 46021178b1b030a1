package tasks

import (
	"fmt"

	"github.com/desertthunder/replay/internal/models"
)

// ProgressUpdate represents a progress event during an enrichment operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	FetchScrobbles Phase = iota
	SearchCatalog
	MatchVideos
	Complete
)

func (p Phase) String() string {
	switch p {
	case FetchScrobbles:
		return "fetch_scrobbles"
	case SearchCatalog:
		return "search_catalog"
	case MatchVideos:
		return "match_videos"
	case Complete:
		return "complete"
	default:
		return ""
	}
}

func fetchScrobblesUpdate(limit int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchScrobbles,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Fetching %d recent tracks from Last.fm...", limit),
	}
}

func searchCatalogUpdate(query string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SearchCatalog,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Searching Last.fm for %q...", query),
	}
}

func foundTracksUpdate(phase Phase, count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   phase,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Found %d tracks", count),
	}
}

func matchingVideosUpdate(total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   MatchVideos,
		Step:    0,
		Total:   total,
		Message: fmt.Sprintf("Matching videos for %d tracks...", total),
	}
}

func videoMatchedUpdate(step, total int, rec models.Recommendation) ProgressUpdate {
	return ProgressUpdate{
		Phase:   MatchVideos,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s - %s", step, total, rec.Artist, rec.Name),
	}
}

func videoMissedUpdate(step, total int, rec models.Recommendation) ProgressUpdate {
	return ProgressUpdate{
		Phase:   MatchVideos,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s - %s (no match)", step, total, rec.Artist, rec.Name),
	}
}

func completeUpdate(recs []models.Recommendation) ProgressUpdate {
	matched := 0
	for _, rec := range recs {
		if rec.HasVideo() {
			matched++
		}
	}

	return ProgressUpdate{
		Phase:   Complete,
		Step:    len(recs),
		Total:   len(recs),
		Message: fmt.Sprintf("Matched %d of %d tracks", matched, len(recs)),
		Data:    recs,
	}
}
