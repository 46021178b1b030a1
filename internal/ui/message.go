package ui

import (
	"github.com/desertthunder/replay/internal/models"
)

// recommendationsMsg carries the result of a recommendations fetch.
type recommendationsMsg struct {
	recs []models.Recommendation
	err  error
}

// searchResultsMsg carries the result of a search. cached marks results
// served from the session cache rather than the service.
type searchResultsMsg struct {
	query  string
	recs   []models.Recommendation
	err    error
	cached bool
}

// browserOpenedMsg reports the outcome of launching the system browser.
type browserOpenedMsg struct {
	err error
}
