// Package services defines provider client interfaces and implements them for
// Last.fm and YouTube, plus an HTTP client for the enrichment service itself.
//
// # Provider Interfaces
//
// [Scrobbler] covers the scrobble-history provider: recent plays for the
// configured user and ad-hoc track search. [VideoSearcher] covers the video
// provider: one embeddable best-match lookup per track. The enrichment engine
// depends only on these interfaces, so tests substitute in-memory fakes.
//
// # Last.fm Implementation
//
// [LastFMService] issues GETs against the audioscrobbler 2.0 endpoint with
// method, api_key and format=json query parameters. Recent-track entries nest
// the artist name under "#text" and report playcounts as strings; search
// matches carry the artist as a plain string. Both map onto
// [models.Recommendation] with a playcount default of 1.
//
// # YouTube Implementation
//
// [YouTubeService] issues one search.list call per track, constrained to
// embeddable video results with maxResults=1. A response without items yields
// an empty identifier and no error; distinguishing "no match" from failure is
// left to callers.
//
// # Service Client
//
// [Client] is the presentation layer's HTTP client for a running enrichment
// service. It decodes the service's {"detail": ...} error envelope into
// wrapped errors.
//
// # Error Handling
//
// Clients use typed errors from the shared package:
//   - [shared.ErrServiceUnavailable] : transport failure or timeout
//   - [shared.ErrAPIRequest] : upstream returned a non-2xx status
//   - [shared.ErrMalformedResponse] : body did not decode as expected
package services
