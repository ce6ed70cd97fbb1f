package store

import (
	"reflect"
	"testing"

	"github.com/jocimarsoliveira81-sudo/playlistvote/internal/models"
	"github.com/jocimarsoliveira81-sudo/playlistvote/internal/shared"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	return New(db)
}

func TestSongsSlot(t *testing.T) {
	s := newTestStore(t)

	t.Run("missing slot loads empty", func(t *testing.T) {
		songs, err := s.LoadSongs()
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		if len(songs) != 0 {
			t.Errorf("expected empty catalog, got %d songs", len(songs))
		}
	})

	t.Run("write through and read back", func(t *testing.T) {
		songs := []models.Song{{
			ID: "s1", Title: "Oceans", Artist: "Hillsong",
			YoutubeURL: "https://youtu.be/dQw4w9WgXcQ", AddedAt: 1700000000000,
			Ratings: []models.Rating{{UserID: "u1", Score: 5}}, IsPublic: true,
		}}

		if err := s.SaveSongs(songs); err != nil {
			t.Fatalf("save failed: %v", err)
		}

		got, err := s.LoadSongs()
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		if !reflect.DeepEqual(songs, got) {
			t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, songs)
		}
	})

	t.Run("save replaces prior value", func(t *testing.T) {
		if err := s.SaveSongs([]models.Song{}); err != nil {
			t.Fatalf("save failed: %v", err)
		}
		got, err := s.LoadSongs()
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		if len(got) != 0 {
			t.Errorf("expected cleared catalog, got %d songs", len(got))
		}
	})
}

func TestUsersSlot(t *testing.T) {
	s := newTestStore(t)

	users := []models.User{models.PrimaryAdmin(), {
		ID: "u1", Name: "Márcia", Username: "marcia", Email: "marcia@example.com",
		Password: "senha", Role: models.RoleUser, IsApproved: true,
	}}

	if err := s.SaveUsers(users); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, err := s.LoadUsers()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !reflect.DeepEqual(users, got) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, users)
	}
}

func TestSessionSlot(t *testing.T) {
	s := newTestStore(t)

	t.Run("no session", func(t *testing.T) {
		u, err := s.LoadSession()
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		if u != nil {
			t.Errorf("expected nil session, got %+v", u)
		}
	})

	t.Run("store restore clear", func(t *testing.T) {
		admin := models.PrimaryAdmin()
		if err := s.SaveSession(admin); err != nil {
			t.Fatalf("save failed: %v", err)
		}

		u, err := s.LoadSession()
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		if u == nil || u.ID != admin.ID {
			t.Errorf("unexpected session: %+v", u)
		}

		if err := s.ClearSession(); err != nil {
			t.Fatalf("clear failed: %v", err)
		}
		u, err = s.LoadSession()
		if err != nil {
			t.Fatalf("load after clear failed: %v", err)
		}
		if u != nil {
			t.Errorf("expected cleared session, got %+v", u)
		}

		// Clearing twice is harmless.
		if err := s.ClearSession(); err != nil {
			t.Errorf("second clear failed: %v", err)
		}
	})
}

func TestSlotsIndependent(t *testing.T) {
	s := newTestStore(t)

	if err := s.SaveUsers([]models.User{models.PrimaryAdmin()}); err != nil {
		t.Fatalf("save users failed: %v", err)
	}

	songs, err := s.LoadSongs()
	if err != nil {
		t.Fatalf("load songs failed: %v", err)
	}
	if len(songs) != 0 {
		t.Error("songs slot should be untouched by roster writes")
	}

	session, err := s.LoadSession()
	if err != nil {
		t.Fatalf("load session failed: %v", err)
	}
	if session != nil {
		t.Error("session slot should be untouched by roster writes")
	}
}
