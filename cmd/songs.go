package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jocimarsoliveira81-sudo/playlistvote/internal/catalog"
	"github.com/jocimarsoliveira81-sudo/playlistvote/internal/shared"
	"github.com/jocimarsoliveira81-sudo/playlistvote/internal/store"
	"github.com/urfave/cli/v3"
)

// SongsAdd appends a suggestion to the catalog, filling in title and
// artist from the oEmbed lookup when they were not given.
func (r *Runner) SongsAdd(ctx context.Context, cmd *cli.Command) error {
	url := cmd.String("url")
	title := cmd.String("title")
	artist := cmd.String("artist")

	return r.withStore(func(st *store.Store) error {
		if _, err := r.signedInAdmin(st); err != nil {
			return err
		}

		if title == "" && r.metadata != nil {
			meta, err := r.metadata.Lookup(ctx, url)
			if err != nil {
				r.logger.Warn("metadata lookup failed", "url", url, "error", err)
			} else if meta != nil {
				title = meta.Title
				if artist == "" {
					artist = meta.Author
				}
				r.logger.Debug("metadata lookup", "title", title, "author", artist)
			}
		}

		songs, err := st.LoadSongs()
		if err != nil {
			return fmt.Errorf("failed to load songs: %w", err)
		}

		song := catalog.NewSong(title, artist, url, !cmd.Bool("private"))
		if err := st.SaveSongs(catalog.Add(songs, song)); err != nil {
			return fmt.Errorf("failed to save songs: %w", err)
		}

		return r.writePlain("✓ Added %q by %s (%s)\n", song.Title, song.Artist, song.ID)
	})
}

// SongsList prints the songs the signed-in member is allowed to see, in
// the order they would appear on their voting page.
func (r *Runner) SongsList(ctx context.Context, cmd *cli.Command) error {
	return r.withStore(func(st *store.Store) error {
		user, err := r.signedIn(st)
		if err != nil {
			return err
		}

		songs, err := st.LoadSongs()
		if err != nil {
			return fmt.Errorf("failed to load songs: %w", err)
		}

		visible := catalog.VisibleTo(songs, user)

		if cmd.Bool("json") {
			return r.writeJSON(visible, cmd.Bool("pretty"))
		}

		r.writePlainHeader(fmt.Sprintf("Songs (%d)", len(visible)))
		for _, s := range visible {
			line := fmt.Sprintf("%s  %s", s.ID, s.Title)
			if s.Artist != "" {
				line += " by " + s.Artist
			}
			if user.IsAdmin() {
				visibility := "public"
				if !s.IsPublic {
					visibility = "private"
				}
				line += fmt.Sprintf("  avg %.1f (%d votes, %s)", s.AverageRating(), len(s.Ratings), visibility)
			}
			r.writePlain("%s\n", line)
		}
		return nil
	})
}

// SongsRemove deletes a song from the catalog.
func (r *Runner) SongsRemove(ctx context.Context, cmd *cli.Command) error {
	songID := strings.TrimSpace(cmd.StringArg("id"))
	if songID == "" {
		return fmt.Errorf("%w: song id", shared.ErrMissingArgument)
	}

	return r.withStore(func(st *store.Store) error {
		if _, err := r.signedInAdmin(st); err != nil {
			return err
		}

		songs, err := st.LoadSongs()
		if err != nil {
			return fmt.Errorf("failed to load songs: %w", err)
		}

		remaining, err := catalog.Remove(songs, songID)
		if err != nil {
			return err
		}

		if err := st.SaveSongs(remaining); err != nil {
			return fmt.Errorf("failed to save songs: %w", err)
		}

		return r.writePlain("✓ Removed %s\n", songID)
	})
}

// SongsVisibility flips a song between public and private.
func (r *Runner) SongsVisibility(ctx context.Context, cmd *cli.Command) error {
	songID := strings.TrimSpace(cmd.StringArg("id"))
	if songID == "" {
		return fmt.Errorf("%w: song id", shared.ErrMissingArgument)
	}

	return r.withStore(func(st *store.Store) error {
		if _, err := r.signedInAdmin(st); err != nil {
			return err
		}

		songs, err := st.LoadSongs()
		if err != nil {
			return fmt.Errorf("failed to load songs: %w", err)
		}

		toggled, err := catalog.ToggleVisibility(songs, songID)
		if err != nil {
			return err
		}

		if err := st.SaveSongs(toggled); err != nil {
			return fmt.Errorf("failed to save songs: %w", err)
		}

		song, err := catalog.Find(toggled, songID)
		if err != nil {
			return err
		}

		state := "public"
		if !song.IsPublic {
			state = "private"
		}
		return r.writePlain("✓ %q is now %s\n", song.Title, state)
	})
}

// Vote records the signed-in member's score for a song, replacing any
// score they cast before.
func (r *Runner) Vote(ctx context.Context, cmd *cli.Command) error {
	songID := strings.TrimSpace(cmd.StringArg("id"))
	if songID == "" {
		return fmt.Errorf("%w: song id", shared.ErrMissingArgument)
	}

	score, err := strconv.Atoi(strings.TrimSpace(cmd.StringArg("score")))
	if err != nil {
		return fmt.Errorf("%w: score must be a number", shared.ErrInvalidArgument)
	}

	return r.withStore(func(st *store.Store) error {
		user, err := r.signedIn(st)
		if err != nil {
			return err
		}

		songs, err := st.LoadSongs()
		if err != nil {
			return fmt.Errorf("failed to load songs: %w", err)
		}

		voted, err := catalog.Vote(songs, songID, user.ID, score)
		if err != nil {
			return err
		}

		if err := st.SaveSongs(voted); err != nil {
			return fmt.Errorf("failed to save songs: %w", err)
		}

		song, _ := catalog.Find(voted, songID)
		return r.writePlain("✓ Rated %q %d star(s)\n", song.Title, score)
	})
}
