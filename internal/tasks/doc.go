// Package tasks orchestrates scrobble aggregation and video enrichment with real-time progress reporting.
//
// # Core Operations
//
// The [Engine] interface defines two operations:
//
//  1. [Engine.Recommendations] : Recent listening history, enriched
//     - Fetches the user's recent scrobbles from the listening provider
//     - Looks up an embeddable video for each track concurrently
//     - Returns tracks in scrobble order with video identifiers attached
//
//  2. [Engine.Search] : Catalog search, enriched
//     - Queries the provider's track catalog with the user's search terms
//     - Enriches matches through the same video lookup pipeline
//     - Rejects blank queries before any upstream call
//
// # Progress Reporting
//
// All operations use non-blocking channels for progress updates.
//
// The [ProgressUpdate] struct contains phase, step counters, messages, and
// optional data for advanced UI rendering. Updates use select with default to
// prevent blocking.
//
// # Enrichment
//
// Video lookups fan out across a bounded worker pool governed by a shared rate
// limiter. Results join back in input order, and a failed lookup leaves the
// track's video identifier absent rather than failing the batch.
//
// # Implementation
//
// [EnrichmentEngine] implements [Engine] with dependencies on:
//   - [services.Scrobbler] : listening history and catalog search provider
//   - [services.VideoSearcher] : video lookup provider
package tasks
