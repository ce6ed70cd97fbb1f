package models

import (
	"fmt"
	"math"
	"regexp"

	"github.com/jocimarsoliveira81-sudo/playlistvote/internal/shared"
)

// Role distinguishes the music director from regular team members.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// Rating is one member's score for one song. A song holds at most one
// rating per voter; casting again replaces the previous score.
type Rating struct {
	UserID string `json:"userId"`
	Score  int    `json:"score"` // 1 to 5
}

// Song is a suggested song. ID is the merge key across devices: two songs
// with the same ID from different sources are the same song regardless of
// any other field differences.
type Song struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Artist     string   `json:"artist"`
	YoutubeURL string   `json:"youtubeUrl"`
	AddedAt    int64    `json:"addedAt"` // unix milliseconds
	Ratings    []Rating `json:"ratings"`
	IsPublic   bool     `json:"isPublic"`
}

// User is a team member. Password is stored and compared in plaintext:
// the admin screen displays it for lost-password recovery, which is the
// only recovery channel this system has.
type User struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Username   string `json:"username"`
	Email      string `json:"email,omitempty"`
	Whatsapp   string `json:"whatsapp,omitempty"`
	Password   string `json:"password,omitempty"`
	Role       Role   `json:"role"`
	IsApproved bool   `json:"isApproved"`
}

// PrimaryAdminID is the fixed, well-known ID of the bootstrap admin.
const PrimaryAdminID = "admin_primary"

// PrimaryAdmin returns the bootstrap ADMIN record. It always exists in a
// resolved roster and is never deletable.
func PrimaryAdmin() User {
	return User{
		ID:         PrimaryAdminID,
		Name:       "Music Director",
		Username:   "admin",
		Email:      "admin@playlistvote.local",
		Whatsapp:   "00000000000",
		Password:   "adminadmin",
		Role:       RoleAdmin,
		IsApproved: true,
	}
}

// LoginKey returns the user's normalized login key. Email is preferred;
// accounts registered without one fall back to the username.
func (u User) LoginKey() string {
	if u.Email != "" {
		return shared.NormalizeLoginKey(u.Email)
	}
	return shared.NormalizeLoginKey(u.Username)
}

// MatchesLogin reports whether the key matches the user's email or
// username, case-insensitively. Sign-in accepts either.
func (u User) MatchesLogin(key string) bool {
	key = shared.NormalizeLoginKey(key)
	if key == "" {
		return false
	}
	return shared.NormalizeLoginKey(u.Email) == key || shared.NormalizeLoginKey(u.Username) == key
}

// IsAdmin reports whether the user holds the ADMIN role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Validate checks required user fields.
func (u User) Validate() error {
	if u.ID == "" {
		return fmt.Errorf("%w: user id is required", shared.ErrInvalidInput)
	}
	if u.LoginKey() == "" {
		return fmt.Errorf("%w: user needs an email or username", shared.ErrInvalidInput)
	}
	switch u.Role {
	case RoleAdmin, RoleUser:
	default:
		return fmt.Errorf("%w: unknown role %q", shared.ErrInvalidInput, u.Role)
	}
	return nil
}

// Validate checks required song fields.
func (s Song) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("%w: song id is required", shared.ErrInvalidInput)
	}
	if s.Title == "" {
		return fmt.Errorf("%w: song title is required", shared.ErrInvalidInput)
	}
	for _, r := range s.Ratings {
		if r.Score < 1 || r.Score > 5 {
			return fmt.Errorf("%w: got %d", shared.ErrInvalidScore, r.Score)
		}
	}
	return nil
}

// RatingBy returns the score the given voter cast on the song, or 0.
func (s Song) RatingBy(userID string) int {
	for _, r := range s.Ratings {
		if r.UserID == userID {
			return r.Score
		}
	}
	return 0
}

// AverageRating returns the mean score rounded to one decimal place,
// or 0 when the song has no ratings.
func (s Song) AverageRating() float64 {
	if len(s.Ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range s.Ratings {
		sum += r.Score
	}
	avg := float64(sum) / float64(len(s.Ratings))
	return math.Round(avg*10) / 10
}

var youtubeIDPattern = regexp.MustCompile(`^.*(youtu\.be/|v/|u/\w/|embed/|watch\?v=|&v=)([^#&?]*).*`)

// YoutubeID extracts the 11-character video ID from a YouTube URL,
// returning "" when the URL is not a recognizable YouTube link.
func YoutubeID(url string) string {
	m := youtubeIDPattern.FindStringSubmatch(url)
	if m == nil || len(m[2]) != 11 {
		return ""
	}
	return m[2]
}

// YoutubeThumbnail returns the max-resolution thumbnail URL for a YouTube
// link, or "" when the video ID cannot be extracted.
func YoutubeThumbnail(url string) string {
	id := YoutubeID(url)
	if id == "" {
		return ""
	}
	return fmt.Sprintf("https://img.youtube.com/vi/%s/maxresdefault.jpg", id)
}
