// Package models defines the domain entities shared across the replay service.
//
// The central type is [Recommendation], the enriched track returned by the
// recommendation and search operations: scrobble metadata (name, artist, URL,
// playcount) joined with an optional YouTube video identifier. Recommendations
// are constructed fresh per request from upstream JSON and never persisted.
// The presentation layer renders only entries for which
// [Recommendation.HasVideo] is true.
package models
