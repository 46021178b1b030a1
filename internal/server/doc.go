// Package server provides HTTP routing, middleware, and request handlers for the enrichment service.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # Endpoints
//
// [API] implements the [Handler] interface and serves three routes:
//
//	GET /recommendations?limit=N   → recent listening history, enriched with video identifiers
//	GET /search?query=Q&limit=N    → catalog search results, enriched with video identifiers
//	GET /health                    → liveness plus cache reachability
//
// Successful responses are cached for thirty minutes under a key built from
// the operation name and sorted parameters; identical requests inside that
// window are served the stored bytes without contacting upstream providers.
// Cache failures degrade to a miss, never to a request failure.
//
// # Error Envelope
//
// Every failure is serialized as {"detail": "<message>"}. Invalid caller
// input is rejected with 400 before any upstream call; everything else,
// including panics caught by the [Recovery] middleware, is normalized to 500
// without leaking a stack trace.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
