package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/jocimarsoliveira81-sudo/playlistvote/internal/bootstrap"
	"github.com/jocimarsoliveira81-sudo/playlistvote/internal/catalog"
	"github.com/jocimarsoliveira81-sudo/playlistvote/internal/models"
	"github.com/jocimarsoliveira81-sudo/playlistvote/internal/roster"
	"github.com/jocimarsoliveira81-sudo/playlistvote/internal/shared"
	"github.com/jocimarsoliveira81-sudo/playlistvote/internal/store"
	"github.com/jocimarsoliveira81-sudo/playlistvote/internal/token"
	"github.com/urfave/cli/v3"
)

// Open consumes a pasted share link or bare code and applies whatever it
// carries: an invite, a playlist snapshot, or both.
func (r *Runner) Open(ctx context.Context, cmd *cli.Command) error {
	raw := strings.TrimSpace(cmd.StringArg("link"))
	if raw == "" {
		return fmt.Errorf("%w: link or code", shared.ErrMissingArgument)
	}

	invite, playlist := token.ExtractParams(raw)

	return r.withStore(func(st *store.Store) error {
		res, err := bootstrap.Resolve(bootstrap.Inputs{
			InviteToken:   invite,
			PlaylistToken: playlist,
		}, st, r.logger)
		if err != nil {
			return err
		}

		switch res.Notice.Kind {
		case bootstrap.NoticeSuccess:
			r.writePlain("✓ %s\n", res.Notice.Text)
		case bootstrap.NoticeError:
			r.writePlain("✗ %s\n", res.Notice.Text)
		}

		r.writePlain("%d songs, %d members on this device\n", len(res.Songs), len(res.Users))
		if res.Session != nil {
			r.writePlain("Signed in as %s (%s)\n", res.Session.Name, res.Session.Role)
		}
		return nil
	})
}

// SharePlaylist renders the link that carries the current catalog.
func (r *Runner) SharePlaylist(ctx context.Context, cmd *cli.Command) error {
	return r.withStore(func(st *store.Store) error {
		if _, err := r.signedInAdmin(st); err != nil {
			return err
		}

		songs, err := st.LoadSongs()
		if err != nil {
			return fmt.Errorf("failed to load songs: %w", err)
		}

		link, err := token.PlaylistLink(r.linkOptions(), songs)
		if err != nil {
			return fmt.Errorf("failed to build playlist link: %w", err)
		}

		r.logger.Info("playlist link created", "songs", len(songs))
		return r.deliver(link, cmd.Bool("copy"), cmd.Bool("open"))
	})
}

// ShareInvite renders the link that grants a roster member access on
// their own device. By default the link also replaces the member's
// catalog with the admin's; --grant-only sends the credential alone.
func (r *Runner) ShareInvite(ctx context.Context, cmd *cli.Command) error {
	loginKey := cmd.StringArg("login")

	return r.withStore(func(st *store.Store) error {
		if _, err := r.signedInAdmin(st); err != nil {
			return err
		}

		users, err := st.LoadUsers()
		if err != nil {
			return fmt.Errorf("failed to load roster: %w", err)
		}

		member, ok := roster.FindByLoginKey(users, loginKey)
		if !ok {
			return fmt.Errorf("%w: %s", shared.ErrUserNotFound, loginKey)
		}

		var songs []models.Song
		if !cmd.Bool("grant-only") {
			if songs, err = st.LoadSongs(); err != nil {
				return fmt.Errorf("failed to load songs: %w", err)
			}
		}

		link, err := token.InviteLink(r.linkOptions(), member, songs)
		if err != nil {
			return fmt.Errorf("failed to build invite link: %w", err)
		}

		r.logger.Info("invite link created", "member", member.LoginKey(), "songs", len(songs))
		return r.deliver(link, cmd.Bool("copy"), cmd.Bool("open"))
	})
}

// ShareSync renders the bare code that moves the whole roster and catalog
// to another device.
func (r *Runner) ShareSync(ctx context.Context, cmd *cli.Command) error {
	return r.withStore(func(st *store.Store) error {
		if _, err := r.signedInAdmin(st); err != nil {
			return err
		}

		users, err := st.LoadUsers()
		if err != nil {
			return fmt.Errorf("failed to load roster: %w", err)
		}

		songs, err := st.LoadSongs()
		if err != nil {
			return fmt.Errorf("failed to load songs: %w", err)
		}

		code, err := roster.CreateFullSyncToken(users, songs)
		if err != nil {
			return fmt.Errorf("failed to build sync code: %w", err)
		}

		r.logger.Info("sync code created", "members", len(users), "songs", len(songs))
		return r.deliver(code, cmd.Bool("copy"), false)
	})
}

// Request builds the join-request code a prospective member sends to the
// admin. Nothing is stored locally; the account exists once approved.
func (r *Runner) Request(ctx context.Context, cmd *cli.Command) error {
	code, err := roster.CreateRequestToken(roster.Profile{
		Name:     cmd.String("name"),
		Email:    cmd.String("email"),
		Whatsapp: cmd.String("whatsapp"),
		Password: cmd.String("password"),
	})
	if err != nil {
		return err
	}

	if err := r.deliver(code, cmd.Bool("copy"), false); err != nil {
		return err
	}
	return r.writePlain("Send this code to the playlist admin.\n")
}

// Approve consumes a join-request code, adds the member to the roster, and
// prints the invite link to send back to them.
func (r *Runner) Approve(ctx context.Context, cmd *cli.Command) error {
	code := strings.TrimSpace(cmd.StringArg("code"))
	if code == "" {
		return fmt.Errorf("%w: request code", shared.ErrMissingArgument)
	}

	return r.withStore(func(st *store.Store) error {
		if _, err := r.signedInAdmin(st); err != nil {
			return err
		}

		users, err := st.LoadUsers()
		if err != nil {
			return fmt.Errorf("failed to load roster: %w", err)
		}

		approved, err := roster.Approve(code, users)
		if err != nil {
			return err
		}

		if err := st.SaveUsers(approved); err != nil {
			return fmt.Errorf("failed to save roster: %w", err)
		}

		member := approved[len(approved)-1]

		songs, err := st.LoadSongs()
		if err != nil {
			return fmt.Errorf("failed to load songs: %w", err)
		}

		link, err := token.InviteLink(r.linkOptions(), member, songs)
		if err != nil {
			return fmt.Errorf("failed to build invite link: %w", err)
		}

		r.logger.Info("member approved", "member", member.LoginKey())
		if err := r.writePlain("✓ Approved %s <%s>\n", member.Name, member.LoginKey()); err != nil {
			return err
		}
		return r.deliver(link, cmd.Bool("copy"), false)
	})
}

// ImportSync replaces the local roster and catalog with a full sync code.
func (r *Runner) ImportSync(ctx context.Context, cmd *cli.Command) error {
	code := strings.TrimSpace(cmd.StringArg("code"))
	if code == "" {
		return fmt.Errorf("%w: sync code", shared.ErrMissingArgument)
	}

	return r.withStore(func(st *store.Store) error {
		users, songs, err := roster.ImportFullSync(code)
		if err != nil {
			return err
		}

		if err := st.SaveUsers(users); err != nil {
			return fmt.Errorf("failed to save roster: %w", err)
		}
		if err := st.SaveSongs(songs); err != nil {
			return fmt.Errorf("failed to save songs: %w", err)
		}

		r.logger.Info("full sync imported", "members", len(users), "songs", len(songs))
		return r.writePlain("✓ Imported %d members and %d songs\n", len(users), len(songs))
	})
}

// ImportPlaylist merges a bare playlist code into the local catalog.
func (r *Runner) ImportPlaylist(ctx context.Context, cmd *cli.Command) error {
	code := strings.TrimSpace(cmd.StringArg("code"))
	if code == "" {
		return fmt.Errorf("%w: playlist code", shared.ErrMissingArgument)
	}

	return r.withStore(func(st *store.Store) error {
		incoming, err := token.DecodeSongs(code)
		if err != nil {
			return err
		}

		existing, err := st.LoadSongs()
		if err != nil {
			return fmt.Errorf("failed to load songs: %w", err)
		}

		merged := catalog.Merge(incoming, existing)
		if err := st.SaveSongs(merged); err != nil {
			return fmt.Errorf("failed to save songs: %w", err)
		}

		r.logger.Info("playlist imported", "incoming", len(incoming), "total", len(merged))
		return r.writePlain("✓ Merged %d songs, catalog now has %d\n", len(incoming), len(merged))
	})
}
