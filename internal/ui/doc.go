// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for browsing enriched listening history:
//  1. [RecommendationsView] : Browse recent favorites with matched videos
//  2. [SearchView] : Look up tracks in the catalog by name or artist
//  3. [NowPlayingView] : Inspect the selected track and open its player
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// All remote data comes from the enrichment service over HTTP; per-session state
// such as the playback selection and recent search results lives on a [Session]
// that is passed to the model explicitly. Search results are reused for
// [SearchTTL] before the service is asked again, and only tracks with a matched
// video are rendered since the others cannot be played.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, /, o, q) with
// contextual help displayed via charmbracelet/bubbles/help.
package ui
