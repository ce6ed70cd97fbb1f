package catalog

import (
	"fmt"
	"sort"
	"time"

	"github.com/jocimarsoliveira81-sudo/playlistvote/internal/models"
	"github.com/jocimarsoliveira81-sudo/playlistvote/internal/shared"
)

// Merge reconciles an incoming song list against the existing local one.
//
// The result is the incoming list in incoming order. For each incoming
// song that shares an ID with an existing song, the ratings become the
// union of both sides; every other field takes the incoming value. Songs
// present only locally are dropped: the incoming list is the admin's
// current catalog, and removals are meant to propagate.
//
// The union deduplicates by the whole (voter, score) pair, not by voter
// alone. A voter who re-scored a song on one device can therefore end up
// with two ratings after a merge. That mirrors the hosted page's behavior
// and is kept deliberately; changing the key would silently diverge from
// tokens already in circulation.
func Merge(incoming, existing []models.Song) []models.Song {
	byID := make(map[string]models.Song, len(existing))
	for _, s := range existing {
		byID[s.ID] = s
	}

	merged := make([]models.Song, 0, len(incoming))
	for _, s := range incoming {
		if prior, ok := byID[s.ID]; ok {
			s.Ratings = unionRatings(s.Ratings, prior.Ratings)
		}
		merged = append(merged, s)
	}
	return merged
}

// unionRatings unions two rating lists, incoming first, deduplicated by
// the full (voter, score) value.
func unionRatings(incoming, existing []models.Rating) []models.Rating {
	seen := make(map[models.Rating]bool, len(incoming)+len(existing))
	union := make([]models.Rating, 0, len(incoming)+len(existing))
	for _, r := range incoming {
		if !seen[r] {
			seen[r] = true
			union = append(union, r)
		}
	}
	for _, r := range existing {
		if !seen[r] {
			seen[r] = true
			union = append(union, r)
		}
	}
	return union
}

// Vote records a score for a song, replacing any previous rating by the
// same voter. Returns the updated list or an error when the song is
// missing or the score out of range.
func Vote(songs []models.Song, songID, userID string, score int) ([]models.Song, error) {
	if score < 1 || score > 5 {
		return nil, fmt.Errorf("%w: got %d", shared.ErrInvalidScore, score)
	}

	updated := make([]models.Song, len(songs))
	found := false
	for i, s := range songs {
		if s.ID != songID {
			updated[i] = s
			continue
		}
		found = true
		ratings := make([]models.Rating, 0, len(s.Ratings)+1)
		for _, r := range s.Ratings {
			if r.UserID != userID {
				ratings = append(ratings, r)
			}
		}
		s.Ratings = append(ratings, models.Rating{UserID: userID, Score: score})
		updated[i] = s
	}

	if !found {
		return nil, fmt.Errorf("%w: %s", shared.ErrSongNotFound, songID)
	}
	return updated, nil
}

// NewSong builds a song suggestion with a fresh ID and the current time.
// Empty title and artist get the same placeholders the hosted page uses.
func NewSong(title, artist, youtubeURL string, isPublic bool) models.Song {
	if title == "" {
		title = "Untitled"
	}
	if artist == "" {
		artist = "Unknown artist"
	}
	return models.Song{
		ID:         shared.GenerateID(),
		Title:      title,
		Artist:     artist,
		YoutubeURL: youtubeURL,
		AddedAt:    time.Now().UnixMilli(),
		Ratings:    []models.Rating{},
		IsPublic:   isPublic,
	}
}

// Add prepends a song to the catalog, newest first.
func Add(songs []models.Song, song models.Song) []models.Song {
	return append([]models.Song{song}, songs...)
}

// Remove deletes a song by ID.
func Remove(songs []models.Song, songID string) ([]models.Song, error) {
	remaining := make([]models.Song, 0, len(songs))
	found := false
	for _, s := range songs {
		if s.ID == songID {
			found = true
			continue
		}
		remaining = append(remaining, s)
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", shared.ErrSongNotFound, songID)
	}
	return remaining, nil
}

// ToggleVisibility flips a song between public and private.
func ToggleVisibility(songs []models.Song, songID string) ([]models.Song, error) {
	updated := make([]models.Song, len(songs))
	found := false
	for i, s := range songs {
		if s.ID == songID {
			s.IsPublic = !s.IsPublic
			found = true
		}
		updated[i] = s
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", shared.ErrSongNotFound, songID)
	}
	return updated, nil
}

// Find returns the song with the given ID.
func Find(songs []models.Song, songID string) (models.Song, error) {
	for _, s := range songs {
		if s.ID == songID {
			return s, nil
		}
	}
	return models.Song{}, fmt.Errorf("%w: %s", shared.ErrSongNotFound, songID)
}

// VisibleTo filters and orders the catalog for display to a user.
//
// Admins see everything, most popular first (ties broken newest first).
// Members see only public songs they have not voted on yet, newest first.
func VisibleTo(songs []models.Song, user models.User) []models.Song {
	items := make([]models.Song, 0, len(songs))
	for _, s := range songs {
		if !user.IsAdmin() && (!s.IsPublic || s.RatingBy(user.ID) != 0) {
			continue
		}
		items = append(items, s)
	}

	if user.IsAdmin() {
		sort.SliceStable(items, func(i, j int) bool {
			ai, aj := items[i].AverageRating(), items[j].AverageRating()
			if ai != aj {
				return ai > aj
			}
			return items[i].AddedAt > items[j].AddedAt
		})
	} else {
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].AddedAt > items[j].AddedAt
		})
	}
	return items
}
