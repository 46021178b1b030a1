package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/replay/internal/models"
)

var _ list.Item = recommendationItem{}

// recommendationItem wraps [models.Recommendation] to implement [list.Item].
type recommendationItem struct {
	rec models.Recommendation
}

func (i recommendationItem) FilterValue() string { return i.rec.Name }
func (i recommendationItem) Title() string       { return i.rec.Name }
func (i recommendationItem) Description() string {
	desc := i.rec.Artist
	if i.rec.Playcount > 0 {
		plays := "plays"
		if i.rec.Playcount == 1 {
			plays = "play"
		}
		desc = fmt.Sprintf("%s • %d %s", desc, i.rec.Playcount, plays)
	}
	return desc
}

// recommendationItems converts tracks to list items, skipping tracks without
// a matched video since they cannot be played.
func recommendationItems(recs []models.Recommendation) []list.Item {
	items := []list.Item{}
	for _, rec := range recs {
		if !rec.HasVideo() {
			continue
		}
		items = append(items, recommendationItem{rec: rec})
	}
	return items
}
