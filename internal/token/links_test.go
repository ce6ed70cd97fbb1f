package token

import (
	"net/url"
	"reflect"
	"strings"
	"testing"

	"github.com/jocimarsoliveira81-sudo/playlistvote/internal/models"
)

func TestShareLinks(t *testing.T) {
	opts := LinkOptions{BaseURL: "https://playlistvote.vercel.app/", Escape: true}
	songs := sampleSongs()

	t.Run("playlist link round trips", func(t *testing.T) {
		link, err := PlaylistLink(opts, songs)
		if err != nil {
			t.Fatalf("failed to build link: %v", err)
		}
		if !strings.HasPrefix(link, "https://playlistvote.vercel.app/?playlist=") {
			t.Fatalf("unexpected link shape: %s", link)
		}

		invite, playlist := ExtractParams(link)
		if invite != "" {
			t.Errorf("playlist link should carry no invite token, got %q", invite)
		}

		decoded, err := DecodeSongs(playlist)
		if err != nil {
			t.Fatalf("failed to decode extracted token: %v", err)
		}
		if !reflect.DeepEqual(songs, decoded) {
			t.Error("songs corrupted through link round trip")
		}
	})

	t.Run("invite link round trips", func(t *testing.T) {
		user := models.User{ID: "u2", Name: "Alto", Email: "alto@example.com", Role: models.RoleUser}
		link, err := InviteLink(opts, user, songs)
		if err != nil {
			t.Fatalf("failed to build link: %v", err)
		}

		inviteTok, _ := ExtractParams(link)
		if inviteTok == "" {
			t.Fatal("expected invite token in link")
		}

		inv, err := DecodeInvite(inviteTok)
		if err != nil {
			t.Fatalf("failed to decode invite: %v", err)
		}
		if inv.User.Email != "alto@example.com" {
			t.Errorf("unexpected user: %+v", inv.User)
		}
		if len(inv.Songs) != len(songs) {
			t.Errorf("expected %d songs, got %d", len(songs), len(inv.Songs))
		}
	})

	t.Run("unescaped legacy link still imports", func(t *testing.T) {
		// The hosted page emits raw std-base64 in the query string.
		raw := LinkOptions{BaseURL: "https://playlistvote.vercel.app", Escape: false}
		link, err := PlaylistLink(raw, songs)
		if err != nil {
			t.Fatalf("failed to build link: %v", err)
		}

		_, playlist := ExtractParams(link)
		decoded, err := DecodeSongs(playlist)
		if err != nil {
			t.Fatalf("failed to decode legacy token: %v", err)
		}
		if !reflect.DeepEqual(songs, decoded) {
			t.Error("songs corrupted through legacy link")
		}
	})

	t.Run("escaped token is query safe", func(t *testing.T) {
		link, err := PlaylistLink(opts, songs)
		if err != nil {
			t.Fatalf("failed to build link: %v", err)
		}
		u, err := url.Parse(link)
		if err != nil {
			t.Fatalf("link does not parse: %v", err)
		}
		rawTok := u.RawQuery[len("playlist="):]
		if strings.ContainsAny(rawTok, "+/") {
			t.Errorf("escaped token leaks reserved characters: %s", rawTok)
		}
	})
}

func TestExtractParams(t *testing.T) {
	tc := []struct {
		name         string
		input        string
		wantInvite   string
		wantPlaylist string
	}{
		{
			name:         "invite url",
			input:        "https://example.com/?invite=abc123",
			wantInvite:   "abc123",
			wantPlaylist: "",
		},
		{
			name:         "playlist url",
			input:        "https://example.com/?playlist=def456",
			wantInvite:   "",
			wantPlaylist: "def456",
		},
		{
			name:         "both params present",
			input:        "https://example.com/?invite=abc&playlist=def",
			wantInvite:   "abc",
			wantPlaylist: "def",
		},
		{
			name:         "bare pasted code",
			input:        "  W3siaWQiOiJzMSJ9XQ==  ",
			wantInvite:   "",
			wantPlaylist: "W3siaWQiOiJzMSJ9XQ==",
		},
		{
			name:         "empty input",
			input:        "",
			wantInvite:   "",
			wantPlaylist: "",
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			invite, playlist := ExtractParams(tt.input)
			if invite != tt.wantInvite || playlist != tt.wantPlaylist {
				t.Errorf("ExtractParams(%q) = (%q, %q), want (%q, %q)",
					tt.input, invite, playlist, tt.wantInvite, tt.wantPlaylist)
			}
		})
	}
}
