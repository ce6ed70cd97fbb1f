package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jocimarsoliveira81-sudo/playlistvote/internal/models"
)

// Slot names. Kept stable so existing databases keep working.
const (
	slotSongs = "playlist_vote_songs_v1"
	slotUsers = "playlist_vote_users_v1"
	slotAuth  = "playlist_vote_auth_v1"
)

// Store reads and writes the three persisted slots.
type Store struct {
	db *sql.DB
}

// New creates a Store over an open database. The slots table must already
// exist (see shared.RunMigrations).
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// load unmarshals a slot into dst, reporting whether the slot existed.
func (s *Store) load(name string, dst any) (bool, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM slots WHERE name = ?", name).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read slot %s: %w", name, err)
	}

	if err := json.Unmarshal([]byte(value), dst); err != nil {
		return false, fmt.Errorf("failed to decode slot %s: %w", name, err)
	}
	return true, nil
}

// save marshals v into a slot, inserting or replacing in one statement.
func (s *Store) save(name string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode slot %s: %w", name, err)
	}

	_, err = s.db.Exec(`
		INSERT INTO slots (name, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, name, string(data), time.Now())
	if err != nil {
		return fmt.Errorf("failed to write slot %s: %w", name, err)
	}
	return nil
}

func (s *Store) clear(name string) error {
	if _, err := s.db.Exec("DELETE FROM slots WHERE name = ?", name); err != nil {
		return fmt.Errorf("failed to clear slot %s: %w", name, err)
	}
	return nil
}

// LoadSongs returns the persisted catalog, empty when the slot is absent.
func (s *Store) LoadSongs() ([]models.Song, error) {
	var songs []models.Song
	if _, err := s.load(slotSongs, &songs); err != nil {
		return nil, err
	}
	if songs == nil {
		songs = []models.Song{}
	}
	return songs, nil
}

// SaveSongs writes the catalog slot.
func (s *Store) SaveSongs(songs []models.Song) error {
	if songs == nil {
		songs = []models.Song{}
	}
	return s.save(slotSongs, songs)
}

// LoadUsers returns the persisted roster, empty when the slot is absent.
func (s *Store) LoadUsers() ([]models.User, error) {
	var users []models.User
	if _, err := s.load(slotUsers, &users); err != nil {
		return nil, err
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

// SaveUsers writes the roster slot.
func (s *Store) SaveUsers(users []models.User) error {
	if users == nil {
		users = []models.User{}
	}
	return s.save(slotUsers, users)
}

// LoadSession returns the stored authenticated user, or nil when no
// session is persisted.
func (s *Store) LoadSession() (*models.User, error) {
	var user models.User
	ok, err := s.load(slotAuth, &user)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return &user, nil
}

// SaveSession stores the authenticated user.
func (s *Store) SaveSession(user models.User) error {
	return s.save(slotAuth, user)
}

// ClearSession removes the stored session, used on logout.
func (s *Store) ClearSession() error {
	return s.clear(slotAuth)
}
