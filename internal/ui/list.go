package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/jocimarsoliveira81-sudo/playlistvote/internal/models"
)

var _ list.Item = songItem{}

// songItem wraps [models.Song] to implement [list.Item].
type songItem struct {
	song    models.Song
	voterID string
}

func (i songItem) FilterValue() string { return i.song.Title }
func (i songItem) Title() string {
	title := fmt.Sprintf("%s - %s", i.song.Title, i.song.Artist)
	if !i.song.IsPublic {
		title += " (private)"
	}
	return title
}

func (i songItem) Description() string {
	parts := []string{}
	if n := len(i.song.Ratings); n > 0 {
		parts = append(parts, fmt.Sprintf("%.1f avg from %d votes", i.song.AverageRating(), n))
	} else {
		parts = append(parts, "no votes yet")
	}
	if mine := i.song.RatingBy(i.voterID); mine > 0 {
		parts = append(parts, fmt.Sprintf("yours: %s", strings.Repeat("★", mine)))
	}
	return strings.Join(parts, " • ")
}
