package token

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/jocimarsoliveira81-sudo/playlistvote/internal/models"
)

// LinkOptions control how share links embed their token.
type LinkOptions struct {
	// BaseURL of the hosted voting page, e.g. "https://playlistvote.vercel.app".
	BaseURL string
	// Escape percent-encodes the token. Raw std-base64 in a query string
	// works in practice ('+', '/', '=' pass through most stacks) but is
	// not strictly conformant; escaping is the safe default.
	Escape bool
}

// PlaylistLink renders the share link an admin distributes after curating
// the catalog. Importing it merges votes; it does not overwrite rosters.
func PlaylistLink(opts LinkOptions, songs []models.Song) (string, error) {
	tok, err := EncodeSongs(songs)
	if err != nil {
		return "", err
	}
	return buildLink(opts, "playlist", tok), nil
}

// InviteLink renders a personal access link for one user. When songs is
// non-nil the link also seeds the recipient's catalog.
func InviteLink(opts LinkOptions, user models.User, songs []models.Song) (string, error) {
	var tok string
	var err error
	if songs == nil {
		tok, err = EncodeUserGrant(user)
	} else {
		tok, err = EncodeInviteBundle(user, songs)
	}
	if err != nil {
		return "", err
	}
	return buildLink(opts, "invite", tok), nil
}

func buildLink(opts LinkOptions, param, tok string) string {
	base := strings.TrimRight(opts.BaseURL, "/")
	if opts.Escape {
		tok = url.QueryEscape(tok)
	}
	return fmt.Sprintf("%s/?%s=%s", base, param, tok)
}

// ExtractParams pulls the one-time invite and playlist tokens out of a
// pasted share link. A bare token (no scheme, no '=') is returned
// unchanged as the playlist token so codes can be pasted directly.
func ExtractParams(raw string) (invite, playlist string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ""
	}

	u, err := url.Parse(raw)
	if err == nil && (u.RawQuery != "" || strings.Contains(raw, "?")) {
		q := u.Query()
		return q.Get("invite"), q.Get("playlist")
	}

	return "", raw
}
