package token

import (
	"fmt"

	"github.com/jocimarsoliveira81-sudo/playlistvote/internal/models"
	"github.com/jocimarsoliveira81-sudo/playlistvote/internal/shared"
)

// UserGrant carries one user, granting that account device-local approval.
type UserGrant struct {
	User models.User `json:"user"`
}

// InviteBundle carries a user together with the sender's catalog. On
// import the song list replaces the local one wholesale.
type InviteBundle struct {
	User  models.User   `json:"user"`
	Songs []models.Song `json:"songs"`
}

// FullSync carries the whole roster and catalog. Import overwrites both
// local collections; it never merges.
type FullSync struct {
	Users []models.User `json:"users"`
	Songs []models.Song `json:"songs"`
}

// JoinRequest carries a prospective member's profile. Nothing is persisted
// anywhere until an admin approves the request.
type JoinRequest struct {
	User models.User `json:"user"`
}

// Invite is the decoded form of an invite token: either a bare grant or a
// grant bundled with songs. Exactly one constructor applies; callers
// switch on Songs == nil rather than re-probing the wire format.
type Invite struct {
	User models.User
	// Songs is nil for a plain UserGrant and non-nil (possibly empty)
	// for an InviteBundle.
	Songs []models.Song
}

// inviteWire is the single object both invite variants share on the wire.
type inviteWire struct {
	User  *models.User  `json:"user"`
	Songs []models.Song `json:"songs,omitempty"`
}

// EncodeUserGrant encodes a grant for one user.
func EncodeUserGrant(user models.User) (string, error) {
	return Encode(inviteWire{User: &user})
}

// EncodeInviteBundle encodes a grant for one user plus the current catalog.
func EncodeInviteBundle(user models.User, songs []models.Song) (string, error) {
	if songs == nil {
		songs = []models.Song{}
	}
	return Encode(inviteWire{User: &user, Songs: songs})
}

// DecodeInvite decodes an invite token into its tagged form.
func DecodeInvite(tok string) (*Invite, error) {
	var wire inviteWire
	if err := Decode(tok, &wire); err != nil {
		return nil, err
	}
	if wire.User == nil {
		return nil, fmt.Errorf("%w: invite carries no user", shared.ErrDecode)
	}
	return &Invite{User: *wire.User, Songs: wire.Songs}, nil
}

// EncodeSongs encodes a bare song list for the playlist link.
func EncodeSongs(songs []models.Song) (string, error) {
	if songs == nil {
		songs = []models.Song{}
	}
	return Encode(songs)
}

// DecodeSongs decodes a playlist token.
func DecodeSongs(tok string) ([]models.Song, error) {
	var songs []models.Song
	if err := Decode(tok, &songs); err != nil {
		return nil, err
	}
	return songs, nil
}

// EncodeFullSync encodes the church sync code from the current roster and
// catalog.
func EncodeFullSync(users []models.User, songs []models.Song) (string, error) {
	if users == nil {
		users = []models.User{}
	}
	if songs == nil {
		songs = []models.Song{}
	}
	return Encode(FullSync{Users: users, Songs: songs})
}

// DecodeFullSync decodes a church sync code.
func DecodeFullSync(tok string) (*FullSync, error) {
	var snap FullSync
	if err := Decode(tok, &snap); err != nil {
		return nil, err
	}
	if snap.Users == nil {
		return nil, fmt.Errorf("%w: sync code carries no roster", shared.ErrDecode)
	}
	return &snap, nil
}

// EncodeJoinRequest encodes a request code for a prospective member.
func EncodeJoinRequest(user models.User) (string, error) {
	return Encode(JoinRequest{User: user})
}

// DecodeJoinRequest decodes a request code.
func DecodeJoinRequest(tok string) (*JoinRequest, error) {
	var req JoinRequest
	if err := Decode(tok, &req); err != nil {
		return nil, err
	}
	if req.User.LoginKey() == "" {
		return nil, fmt.Errorf("%w: request carries no login key", shared.ErrDecode)
	}
	return &req, nil
}
