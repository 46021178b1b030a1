package ui

import (
	"time"

	"github.com/desertthunder/replay/internal/models"
	"github.com/desertthunder/replay/internal/shared"
)

// SearchTTL is how long cached search results stay fresh on the client.
const SearchTTL = 5 * time.Minute

// Session holds the state of one presentation session: the currently playing
// track and a short-lived cache of search results. Views receive the session
// explicitly rather than reading shared globals.
type Session struct {
	nowPlaying *models.Recommendation
	searches   map[string]searchEntry
	ttl        time.Duration
	now        func() time.Time
}

type searchEntry struct {
	results   []models.Recommendation
	fetchedAt time.Time
}

// NewSession creates an empty session with the default search cache TTL.
func NewSession() *Session {
	return &Session{
		searches: map[string]searchEntry{},
		ttl:      SearchTTL,
		now:      time.Now,
	}
}

// CachedSearch returns fresh cached results for a query. Queries differing
// only in case or surrounding whitespace share an entry. Stale entries are
// reported as misses so callers refetch.
func (s *Session) CachedSearch(query string) ([]models.Recommendation, bool) {
	entry, ok := s.searches[shared.NormalizeQuery(query)]
	if !ok {
		return nil, false
	}

	if s.now().Sub(entry.fetchedAt) > s.ttl {
		return nil, false
	}

	return entry.results, true
}

// StoreSearch caches results for a query, stamped with the current time.
// Failed lookups must not be stored here so an earlier good entry survives.
func (s *Session) StoreSearch(query string, results []models.Recommendation) {
	s.searches[shared.NormalizeQuery(query)] = searchEntry{
		results:   results,
		fetchedAt: s.now(),
	}
}

// SetNowPlaying records the track the user selected for playback.
func (s *Session) SetNowPlaying(rec models.Recommendation) {
	s.nowPlaying = &rec
}

// ClearNowPlaying resets the playback selection.
func (s *Session) ClearNowPlaying() {
	s.nowPlaying = nil
}

// NowPlaying returns the selected track, or nil when nothing is playing.
func (s *Session) NowPlaying() *models.Recommendation {
	return s.nowPlaying
}
