package bootstrap

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/jocimarsoliveira81-sudo/playlistvote/internal/catalog"
	"github.com/jocimarsoliveira81-sudo/playlistvote/internal/models"
	"github.com/jocimarsoliveira81-sudo/playlistvote/internal/roster"
	"github.com/jocimarsoliveira81-sudo/playlistvote/internal/store"
	"github.com/jocimarsoliveira81-sudo/playlistvote/internal/token"
)

// Inputs are the externally-supplied tokens, either of which may be empty.
// When a full share link was pasted, run it through token.ExtractParams
// first.
type Inputs struct {
	InviteToken   string
	PlaylistToken string
}

// NoticeKind classifies the user-facing outcome banner.
type NoticeKind int

const (
	NoticeNone NoticeKind = iota
	NoticeSuccess
	NoticeError
)

// Notice is the dismissible message shown after processing a token.
type Notice struct {
	Kind NoticeKind
	Text string
}

// Resolution is the initial in-memory state.
type Resolution struct {
	Songs   []models.Song
	Users   []models.User
	Session *models.User
	Notice  Notice
	// StripParams tells the caller to remove the one-time token from the
	// shareable address so a reload does not replay it.
	StripParams bool
}

// Resolve runs the bootstrap sequence against persisted state and writes
// the outcome back through the store. Only storage failures are returned
// as errors; token failures degrade to the next branch with an error
// notice.
func Resolve(in Inputs, st *store.Store, logger *log.Logger) (*Resolution, error) {
	savedSongs, err := st.LoadSongs()
	if err != nil {
		return nil, fmt.Errorf("failed to load persisted songs: %w", err)
	}
	savedUsers, err := st.LoadUsers()
	if err != nil {
		return nil, fmt.Errorf("failed to load persisted roster: %w", err)
	}

	res := &Resolution{
		Songs: savedSongs,
		Users: roster.EnsureAdmin(savedUsers),
	}

	switch {
	case in.InviteToken != "":
		res.StripParams = true
		inv, err := token.DecodeInvite(in.InviteToken)
		if err != nil {
			logger.Warn("invite token did not decode", "error", err)
			res.Notice = Notice{NoticeError, "Invalid or corrupted access link."}
			break
		}
		resolveInvite(res, inv)
		logger.Info("invite processed", "user", inv.User.Name, "songs", len(inv.Songs))

	case in.PlaylistToken != "":
		res.StripParams = true
		songs, err := token.DecodeSongs(in.PlaylistToken)
		if err != nil {
			logger.Warn("playlist token did not decode", "error", err)
			res.Notice = Notice{NoticeError, "Could not read the playlist."}
			break
		}
		res.Songs = catalog.Merge(songs, savedSongs)
		res.Notice = Notice{NoticeSuccess, "Playlist updated successfully!"}
		logger.Info("playlist merged", "incoming", len(songs), "result", len(res.Songs))
	}

	// Restoration runs in every branch and is trust-on-reuse: the stored
	// user is not re-checked against the possibly just-changed roster.
	// An invite admits its user but never signs them in; whoever was
	// signed in on this device before stays signed in.
	session, err := st.LoadSession()
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	res.Session = session

	if err := st.SaveSongs(res.Songs); err != nil {
		return nil, fmt.Errorf("failed to persist songs: %w", err)
	}
	if err := st.SaveUsers(res.Users); err != nil {
		return nil, fmt.Errorf("failed to persist roster: %w", err)
	}

	return res, nil
}

// resolveInvite admits the embedded user when their login key is new and
// lets the bundled song list, if any, replace the catalog outright. The
// member still signs in themselves afterwards.
func resolveInvite(res *Resolution, inv *token.Invite) {
	if _, exists := roster.FindByLoginKey(res.Users, inv.User.LoginKey()); !exists {
		admitted := inv.User
		admitted.IsApproved = true
		res.Users = append(res.Users, admitted)
	}

	if len(inv.Songs) > 0 {
		res.Songs = inv.Songs
	}

	res.Notice = Notice{NoticeSuccess, fmt.Sprintf("Welcome, %s! Access configured.", inv.User.Name)}
}
